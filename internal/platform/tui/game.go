package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweet-catch/internal/core"
	"github.com/vovakirdan/sweet-catch/internal/games/catch"
	"github.com/vovakirdan/sweet-catch/internal/router"
)

const laneMaxWidth = 48

// gameScreen runs rounds. Every focus starts a new session and a round;
// leaving the screen abandons an unfinished round.
type gameScreen struct {
	env      *env
	engine   *catch.Engine
	progress progress.Model

	frameGen  int
	lastSeq   int
	spawnedAt time.Time
	now       time.Time
	flash     string
	shareHint string
}

func newGameScreen(e *env) *gameScreen {
	s := &gameScreen{
		env:      e,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	s.engine = catch.New(e.Config.Settings(), e.sched,
		catch.WithRecorder(e.History),
		catch.WithSessions(e.History),
		catch.WithSeed(e.Runtime.Seed),
		catch.WithLogger(e.Logger),
	)
	return s
}

func (s *gameScreen) Init() tea.Cmd { return nil }

// Focus starts a new session and its first round.
func (s *gameScreen) Focus() tea.Cmd {
	session := s.env.History.StartNewSession()
	s.env.Logger.Debug("session started", "session", session)
	return s.startRound()
}

func (s *gameScreen) Leave() {
	s.engine.Stop()
	s.frameGen++
}

func (s *gameScreen) startRound() tea.Cmd {
	s.engine.StartRound()
	s.flash = ""
	s.shareHint = ""
	s.lastSeq = 0
	s.observeSpawn(time.Now())
	s.frameGen++
	return frameCmd(s.env.Tick, s.frameGen, s.env.Runtime.TickRate)
}

// observeSpawn notes when a new target first appeared for the animation.
func (s *gameScreen) observeSpawn(now time.Time) {
	s.now = now
	if tg, ok := s.engine.Target(); ok && tg.Seq != s.lastSeq {
		s.lastSeq = tg.Seq
		s.spawnedAt = now
	}
}

func (s *gameScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case FrameMsg:
		if msg.Gen != s.frameGen {
			return s, nil
		}
		s.observeSpawn(msg.Time)
		if s.engine.Phase() != catch.PhaseRunning {
			return s, nil
		}
		return s, frameCmd(s.env.Tick, s.frameGen, s.env.Runtime.TickRate)

	case sharedMsg:
		s.shareHint = shareHint(msg.ok)
	}
	return s, nil
}

func (s *gameScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	keys := s.env.Keys

	switch {
	case key.Matches(msg, keys.Back):
		return s, router.Navigate(router.Home)
	case key.Matches(msg, keys.Quit):
		return s, requestQuit
	}

	switch s.engine.Phase() {
	case catch.PhaseRunning:
		if key.Matches(msg, keys.Catch) {
			if c, ok := s.engine.Catch(); ok {
				name := string(c.Kind)
				if spec, found := s.engine.Settings().Kinds.Lookup(c.Kind); found {
					name = spec.Name
				}
				s.flash = fmt.Sprintf("+%d %s", c.Points, name)
			}
		}

	case catch.PhaseEnded:
		switch {
		case key.Matches(msg, keys.Again):
			return s, s.startRound()
		case key.Matches(msg, keys.Awards):
			return s, router.Replace(router.CloseAwards)
		case key.Matches(msg, keys.Share):
			if res, ok := s.engine.Result(); ok {
				return s, s.env.shareCmd(awardMessage(s.env, res.Record.Level, res.Record.Points, res.Tier.Title))
			}
		}
	}
	return s, nil
}

// Engine exposes the round engine for tests.
func (s *gameScreen) Engine() *catch.Engine { return s.engine }

func (s *gameScreen) View(width, height int) string {
	t := s.env.Theme
	e := s.engine

	laneWidth := core.Clamp(width-8, 10, laneMaxWidth)
	s.progress.Width = laneWidth

	last := "-"
	if k := e.LastCaught(); k != "" {
		if spec, ok := e.Settings().Kinds.Lookup(k); ok {
			last = t.Sweet(spec)
		}
	}
	hud := fmt.Sprintf("%s %s   %s %s   %s %s",
		t.HUDLabel.Render("Time"), t.HUDValue.Render(fmt.Sprintf("%2ds", e.TimeRemaining())),
		t.HUDLabel.Render("Points"), t.HUDValue.Render(fmt.Sprintf("%3d", e.TotalPoints())),
		t.HUDLabel.Render("Last"), last,
	)

	if e.Phase() == catch.PhaseEnded {
		return layout(width, height,
			t.Title.Render("Round over"),
			hud,
			"",
			s.resultCard(),
			"",
			s.shareHint,
			s.env.helpView(s.env.Keys.Again, s.env.Keys.Awards, s.env.Keys.Share, s.env.Keys.Back),
		)
	}

	return layout(width, height,
		t.Title.Render("Catch the sweets!"),
		hud,
		s.progress.ViewAs(e.Progress()),
		"",
		s.lane(laneWidth),
		"",
		t.Success.Render(s.flash),
		s.env.helpView(s.env.Keys.Catch, s.env.Keys.Back),
	)
}

// lane draws the flying target at its position in the current flight.
func (s *gameScreen) lane(width int) string {
	t := s.env.Theme
	cells := make([]string, width)
	for i := range cells {
		cells[i] = t.Lane.Render("·")
	}

	if tg, ok := s.engine.Target(); ok && !tg.Claimed {
		fly := s.env.Config.FlyDuration()
		frac := 0.0
		if fly > 0 {
			frac = float64(s.now.Sub(s.spawnedAt)) / float64(fly)
		}
		if frac <= 1 {
			if spec, ok := s.engine.Settings().Kinds.Lookup(tg.Kind); ok {
				cells[core.NewLane(width).Column(frac)] = t.Sweet(spec)
			}
		}
	}
	return strings.Join(cells, "")
}

func (s *gameScreen) resultCard() string {
	t := s.env.Theme
	res, ok := s.engine.Result()
	if !ok {
		return ""
	}
	body := strings.Join([]string{
		t.PopupTitle.Render(res.Tier.Title),
		t.Dim.Render(res.Tier.Description),
		"",
		fmt.Sprintf("Round %d   %s", res.Record.Level, t.Badge.Render(fmt.Sprintf("%d pts", res.Record.Points))),
	}, "\n")
	return t.Card.Render(body)
}

func (s *gameScreen) Title() string { return "Play" }
