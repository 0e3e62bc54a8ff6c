package catch

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sweet-catch/internal/sched"
)

// Round timing defaults.
const (
	LevelDuration = 15                      // seconds per round
	SpawnInterval = 1500 * time.Millisecond // time between spawns
	TickInterval  = time.Second
)

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Settings are the static rules of a round.
type Settings struct {
	LevelDuration int // seconds
	SpawnInterval time.Duration
	Kinds         Kinds
	Tiers         Tiers
}

// DefaultSettings returns the stock round rules.
func DefaultSettings() Settings {
	return Settings{
		LevelDuration: LevelDuration,
		SpawnInterval: SpawnInterval,
		Kinds:         DefaultKinds(),
		Tiers:         DefaultTiers(),
	}
}

// Target is the single in-flight catchable sweet.
type Target struct {
	Seq     int // spawn sequence number within the round, from 1
	Kind    Kind
	Points  int
	Claimed bool
}

// Engine runs one round at a time.
// It is not safe for concurrent use; the scheduler and the caller must
// deliver ticks, spawns and catches on a single event loop.
type Engine struct {
	settings Settings
	sched    sched.Scheduler
	rng      *rand.Rand
	recorder Recorder
	sessions SessionSource
	logger   *log.Logger
	onEnd    func(Result)

	phase         Phase
	timeRemaining int
	totalPoints   int
	counts        Counts
	target        *Target
	spawns        int
	lastCaught    Kind
	sessionID     int64
	result        *Result

	spawnTask sched.Task
	tickTask  sched.Task
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder sets where completed rounds are appended.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithSessions sets the source of the session id captured at round start.
func WithSessions(s SessionSource) Option {
	return func(e *Engine) { e.sessions = s }
}

// WithSessionID pins every round to a fixed session id.
func WithSessionID(id int64) Option {
	return func(e *Engine) { e.sessions = fixedSession(id) }
}

// WithSeed seeds the spawn RNG. Zero means seed from the current time.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the engine logger. A nil logger keeps the silent default.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithOnEnd registers a callback invoked once per finished round.
func WithOnEnd(fn func(Result)) Option {
	return func(e *Engine) { e.onEnd = fn }
}

// New creates an idle engine.
func New(settings Settings, s sched.Scheduler, opts ...Option) *Engine {
	if settings.LevelDuration <= 0 {
		settings.LevelDuration = LevelDuration
	}
	if settings.SpawnInterval <= 0 {
		settings.SpawnInterval = SpawnInterval
	}
	if len(settings.Kinds) == 0 {
		settings.Kinds = DefaultKinds()
	}
	if len(settings.Tiers) == 0 {
		settings.Tiers = DefaultTiers()
	}
	settings.Tiers = settings.Tiers.Sorted()

	e := &Engine{
		settings: settings,
		sched:    s,
		recorder: nopRecorder{},
		sessions: fixedSession(0),
		logger:   log.New(io.Discard),
		counts:   ZeroCounts(settings.Kinds),
	}
	WithSeed(0)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartRound discards any previous round and starts a fresh one.
func (e *Engine) StartRound() {
	e.cancelSchedules()

	e.phase = PhaseRunning
	e.timeRemaining = e.settings.LevelDuration
	e.totalPoints = 0
	e.counts = ZeroCounts(e.settings.Kinds)
	e.target = nil
	e.spawns = 0
	e.lastCaught = ""
	e.result = nil
	e.sessionID = e.sessions.CurrentSession()

	e.logger.Debug("round started", "session", e.sessionID, "duration", e.settings.LevelDuration)

	e.SpawnTarget()
	e.spawnTask = e.sched.Every(e.settings.SpawnInterval, e.SpawnTarget)
	e.tickTask = e.sched.Every(TickInterval, e.Tick)
}

// Tick advances the countdown by one second and ends the round at zero.
func (e *Engine) Tick() {
	if e.phase != PhaseRunning {
		return
	}
	e.timeRemaining--
	if e.timeRemaining <= 0 {
		e.timeRemaining = 0
		e.EndRound()
	}
}

// SpawnTarget replaces the current target with a random kind.
// An unclaimed target is discarded without penalty.
func (e *Engine) SpawnTarget() {
	if e.phase != PhaseRunning {
		return
	}
	spec := e.settings.Kinds[e.rng.Intn(len(e.settings.Kinds))]
	e.spawns++
	e.target = &Target{
		Seq:    e.spawns,
		Kind:   spec.Kind,
		Points: spec.Points,
	}
}

// Catch claims the current target. It reports false and changes nothing
// when the round is not running, no target is live, or the target was
// already claimed this spawn cycle.
func (e *Engine) Catch() (Catch, bool) {
	if e.phase != PhaseRunning || e.target == nil || e.target.Claimed {
		return Catch{}, false
	}
	e.target.Claimed = true
	e.totalPoints += e.target.Points
	e.counts[e.target.Kind]++
	e.lastCaught = e.target.Kind
	return Catch{Kind: e.target.Kind, Points: e.target.Points}, true
}

// EndRound finishes the running round and records it.
// Calling it outside the running phase does nothing.
func (e *Engine) EndRound() {
	if e.phase != PhaseRunning {
		return
	}
	e.phase = PhaseEnded
	e.cancelSchedules()

	tier := e.settings.Tiers.For(e.totalPoints)
	rec := e.recorder.AppendRound(RoundRecord{
		Points:    e.totalPoints,
		Counts:    e.counts.Clone(),
		SessionID: e.sessionID,
	})
	e.result = &Result{Record: rec, Tier: tier}

	e.logger.Debug("round ended",
		"session", e.sessionID,
		"level", rec.Level,
		"points", e.totalPoints,
		"tier", tier.Key,
	)

	if e.onEnd != nil {
		e.onEnd(*e.result)
	}
}

// Stop abandons the current round without recording it and returns to idle.
func (e *Engine) Stop() {
	e.cancelSchedules()
	e.phase = PhaseIdle
	e.timeRemaining = 0
	e.totalPoints = 0
	e.counts = ZeroCounts(e.settings.Kinds)
	e.target = nil
	e.spawns = 0
	e.lastCaught = ""
}

func (e *Engine) cancelSchedules() {
	if e.spawnTask != nil {
		e.spawnTask.Stop()
		e.spawnTask = nil
	}
	if e.tickTask != nil {
		e.tickTask.Stop()
		e.tickTask = nil
	}
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// TimeRemaining returns the whole seconds left in the round.
func (e *Engine) TimeRemaining() int { return e.timeRemaining }

// TotalPoints returns the points accumulated this round.
func (e *Engine) TotalPoints() int { return e.totalPoints }

// Counts returns a copy of this round's catch counts.
func (e *Engine) Counts() Counts { return e.counts.Clone() }

// LastCaught returns the most recently caught kind, or "" if none.
func (e *Engine) LastCaught() Kind { return e.lastCaught }

// SessionID returns the session the current round belongs to.
func (e *Engine) SessionID() int64 { return e.sessionID }

// Settings returns the engine's round rules.
func (e *Engine) Settings() Settings { return e.settings }

// Target returns a copy of the live target.
func (e *Engine) Target() (Target, bool) {
	if e.target == nil {
		return Target{}, false
	}
	return *e.target, true
}

// Result returns the outcome of the last finished round.
func (e *Engine) Result() (Result, bool) {
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}

// Progress returns the elapsed fraction of the round in [0, 1].
func (e *Engine) Progress() float64 {
	d := e.settings.LevelDuration
	if e.phase == PhaseIdle || d <= 0 {
		return 0
	}
	p := float64(d-e.timeRemaining) / float64(d)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
