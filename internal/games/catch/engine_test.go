package catch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sweet-catch/internal/sched"
)

// recorder collects appended rounds and numbers them like a fresh store.
type recorder struct {
	records []RoundRecord
}

func (r *recorder) AppendRound(rec RoundRecord) RoundRecord {
	rec.Level = len(r.records) + 1
	r.records = append(r.records, rec)
	return rec
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *sched.Manual, *recorder) {
	t.Helper()
	clock := sched.NewManual()
	rec := &recorder{}
	opts = append([]Option{WithRecorder(rec), WithSeed(42), WithSessionID(100)}, opts...)
	return New(DefaultSettings(), clock, opts...), clock, rec
}

// spawnUntil respawns until the live target is of kind k.
func spawnUntil(t *testing.T, e *Engine, k Kind) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if tg, ok := e.Target(); ok && tg.Kind == k && !tg.Claimed {
			return
		}
		e.SpawnTarget()
	}
	t.Fatalf("kind %q never spawned", k)
}

func TestEngineStartsIdle(t *testing.T) {
	e, _, _ := newTestEngine(t)

	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Equal(t, 0, e.TotalPoints())
	assert.Equal(t, 0, e.Counts().Total())
	_, ok := e.Target()
	assert.False(t, ok)

	_, caught := e.Catch()
	assert.False(t, caught, "catch in idle must be a no-op")
}

func TestStartRoundSpawnsImmediately(t *testing.T) {
	e, clock, _ := newTestEngine(t)
	e.StartRound()

	assert.Equal(t, PhaseRunning, e.Phase())
	assert.Equal(t, LevelDuration, e.TimeRemaining())
	tg, ok := e.Target()
	require.True(t, ok)
	assert.Equal(t, 1, tg.Seq)
	assert.Equal(t, 2, clock.Active(), "spawn and tick schedules")

	clock.Advance(SpawnInterval)
	tg, _ = e.Target()
	assert.Equal(t, 2, tg.Seq)
}

func TestCatchScoresAndCounts(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.StartRound()

	spawnUntil(t, e, "drop")
	c, ok := e.Catch()
	require.True(t, ok)
	assert.Equal(t, Catch{Kind: "drop", Points: 20}, c)

	spawnUntil(t, e, "star")
	_, ok = e.Catch()
	require.True(t, ok)

	assert.Equal(t, 50, e.TotalPoints())
	assert.Equal(t, Counts{"heart": 0, "star": 1, "drop": 1, "bear": 0}, e.Counts())
	assert.Equal(t, Kind("star"), e.LastCaught())
}

func TestCatchTwiceBeforeSpawnIsNoop(t *testing.T) {
	e, clock, _ := newTestEngine(t)
	e.StartRound()

	first, ok := e.Catch()
	require.True(t, ok)

	_, ok = e.Catch()
	assert.False(t, ok)
	assert.Equal(t, first.Points, e.TotalPoints())
	assert.Equal(t, 1, e.Counts().Total())

	clock.Advance(SpawnInterval)
	_, ok = e.Catch()
	assert.True(t, ok, "a new spawn can be caught again")
	assert.Equal(t, 2, e.Counts().Total())
}

func TestUnclaimedTargetIsDiscardedWithoutPenalty(t *testing.T) {
	e, clock, _ := newTestEngine(t)
	e.StartRound()

	clock.Advance(5 * SpawnInterval)

	assert.Equal(t, 0, e.TotalPoints())
	assert.Equal(t, 0, e.Counts().Total())
	tg, ok := e.Target()
	require.True(t, ok)
	assert.False(t, tg.Claimed)
}

func TestPointsEqualSumOfClaimedTargets(t *testing.T) {
	e, clock, _ := newTestEngine(t, WithSeed(7))
	e.StartRound()

	want := 0
	catches := 0
	for step := 0; e.Phase() == PhaseRunning; step++ {
		if step%3 != 2 {
			tg, ok := e.Target()
			if c, caught := e.Catch(); caught {
				require.True(t, ok)
				assert.Equal(t, tg.Points, c.Points)
				want += c.Points
				catches++
			}
		}
		clock.Advance(500 * time.Millisecond)
	}

	assert.Equal(t, want, e.TotalPoints())
	assert.Equal(t, catches, e.Counts().Total())
}

func TestTicksEndRoundExactlyOnce(t *testing.T) {
	ended := 0
	e, _, rec := newTestEngine(t, WithOnEnd(func(Result) { ended++ }))
	e.StartRound()

	for i := 0; i < LevelDuration-1; i++ {
		e.Tick()
	}
	assert.Equal(t, PhaseRunning, e.Phase())
	assert.Equal(t, 1, e.TimeRemaining())

	e.Tick()
	assert.Equal(t, PhaseEnded, e.Phase())
	assert.Equal(t, 0, e.TimeRemaining())

	e.Tick()
	e.EndRound()
	assert.Equal(t, 0, e.TimeRemaining(), "never negative")
	assert.Equal(t, 1, ended)
	assert.Len(t, rec.records, 1)
}

func TestNoTickFiresAfterEndRound(t *testing.T) {
	e, clock, rec := newTestEngine(t)
	e.StartRound()

	clock.Advance(LevelDuration * time.Second)
	require.Equal(t, PhaseEnded, e.Phase())
	assert.Equal(t, 0, clock.Active(), "schedules cancelled on end")

	spawns := e.spawns
	clock.Advance(time.Minute)
	assert.Equal(t, spawns, e.spawns)
	assert.Equal(t, 0, e.TimeRemaining())
	assert.Len(t, rec.records, 1)
}

func TestCatchAfterEndIsNoop(t *testing.T) {
	e, clock, _ := newTestEngine(t)
	e.StartRound()
	clock.Advance(LevelDuration * time.Second)

	points := e.TotalPoints()
	counts := e.Counts()
	_, ok := e.Catch()

	assert.False(t, ok)
	assert.Equal(t, points, e.TotalPoints())
	assert.Equal(t, counts, e.Counts())
}

func TestEndRoundRecordsResult(t *testing.T) {
	var got Result
	e, _, rec := newTestEngine(t, WithOnEnd(func(r Result) { got = r }))
	e.StartRound()

	spawnUntil(t, e, "bear")
	e.Catch()
	spawnUntil(t, e, "drop")
	e.Catch()
	e.EndRound()

	require.Len(t, rec.records, 1)
	r := rec.records[0]
	assert.Equal(t, 1, r.Level)
	assert.Equal(t, 70, r.Points)
	assert.Equal(t, int64(100), r.SessionID)
	assert.Equal(t, Counts{"heart": 0, "star": 0, "drop": 1, "bear": 1}, r.Counts)

	assert.Equal(t, "cream", got.Tier.Key)
	assert.Equal(t, r, got.Record)

	res, ok := e.Result()
	require.True(t, ok)
	assert.Equal(t, got, res)
}

func TestRecordCountsAreDetached(t *testing.T) {
	e, _, rec := newTestEngine(t)
	e.StartRound()
	e.Catch()
	e.EndRound()

	e.StartRound()
	e.Catch()

	assert.Equal(t, 1, rec.records[0].Counts.Total())
}

func TestStartRoundWhileRunningStartsFresh(t *testing.T) {
	e, clock, _ := newTestEngine(t)
	e.StartRound()
	e.Catch()
	clock.Advance(3 * time.Second)

	e.StartRound()

	assert.Equal(t, 0, e.TotalPoints())
	assert.Equal(t, LevelDuration, e.TimeRemaining())
	assert.Equal(t, 2, clock.Active(), "previous schedules cancelled")

	clock.Advance(time.Second)
	assert.Equal(t, LevelDuration-1, e.TimeRemaining(), "one tick per second, not two")
}

func TestPlayAgainAfterEnd(t *testing.T) {
	e, clock, rec := newTestEngine(t)
	e.StartRound()
	clock.Advance(LevelDuration * time.Second)
	require.Equal(t, PhaseEnded, e.Phase())

	e.StartRound()
	assert.Equal(t, PhaseRunning, e.Phase())
	_, ok := e.Result()
	assert.False(t, ok)

	clock.Advance(LevelDuration * time.Second)
	require.Len(t, rec.records, 2)
	assert.Equal(t, 2, rec.records[1].Level)
}

func TestStopDiscardsRound(t *testing.T) {
	e, clock, rec := newTestEngine(t)
	e.StartRound()
	e.Catch()

	e.Stop()

	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Equal(t, 0, e.TotalPoints())
	assert.Equal(t, 0, clock.Active())
	clock.Advance(time.Minute)
	assert.Empty(t, rec.records)
}

func TestSessionCapturedAtStart(t *testing.T) {
	src := &mutableSession{id: 1}
	e, clock, rec := newTestEngine(t, WithSessions(src))
	e.StartRound()
	src.id = 2

	clock.Advance(LevelDuration * time.Second)

	require.Len(t, rec.records, 1)
	assert.Equal(t, int64(1), rec.records[0].SessionID)
}

type mutableSession struct{ id int64 }

func (m *mutableSession) CurrentSession() int64 { return m.id }

func TestProgress(t *testing.T) {
	e, clock, _ := newTestEngine(t)
	assert.Equal(t, 0.0, e.Progress())

	e.StartRound()
	assert.Equal(t, 0.0, e.Progress())

	clock.Advance(3 * time.Second)
	assert.InDelta(t, 0.2, e.Progress(), 1e-9)

	clock.Advance(time.Minute)
	assert.Equal(t, 1.0, e.Progress())
}

func TestSpawnIsDeterministicForSeed(t *testing.T) {
	run := func() []Kind {
		e, clock, _ := newTestEngine(t, WithSeed(99))
		e.StartRound()
		var kinds []Kind
		for i := 0; i < 8; i++ {
			tg, _ := e.Target()
			kinds = append(kinds, tg.Kind)
			clock.Advance(SpawnInterval)
		}
		return kinds
	}
	assert.Equal(t, run(), run())
}
