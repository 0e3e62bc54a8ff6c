package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sweet-catch/internal/games/catch"
	"github.com/vovakirdan/sweet-catch/internal/storage"
)

func TestProfileLatestSession(t *testing.T) {
	s := New(storage.NewMemory())
	s.SetDisplayName("Mila")
	s.AppendRound(catch.RoundRecord{SessionID: 10, Points: 200})
	s.AppendRound(catch.RoundRecord{SessionID: 20, Points: 70, Counts: catch.Counts{"bear": 1, "drop": 1}})
	s.AppendRound(catch.RoundRecord{SessionID: 20, Points: 0})

	p := s.Profile()
	assert.Equal(t, "Mila", p.Name)
	assert.Equal(t, int64(20), p.SessionID)
	assert.Equal(t, 2, p.LevelsTotal())
	assert.True(t, p.IsDone(1))
	assert.True(t, p.IsDone(2))
	assert.False(t, p.IsDone(3))

	a := p.Award(1)
	assert.Equal(t, 70, a.Round.Points)
	assert.Equal(t, "cream", a.Tier.Key)
	assert.Equal(t, "70 pts", a.Badge)
	assert.Equal(t, catch.Counts{"heart": 0, "star": 0, "drop": 1, "bear": 1}, a.Counts)

	zero := p.Award(2)
	assert.Equal(t, "sweet", zero.Tier.Key)
	assert.Equal(t, "0+ pts", zero.Badge)
}

func TestProfileSelectFallsBackToLastRound(t *testing.T) {
	s := New(storage.NewMemory())
	for _, pts := range []int{10, 95, 130} {
		s.AppendRound(catch.RoundRecord{SessionID: 5, Points: pts})
	}
	p := s.Profile()

	r, ok := p.Select(9)
	require.True(t, ok)
	assert.Equal(t, 3, r.Level)
	assert.Equal(t, "lucky", p.Award(9).Tier.Key)

	r, ok = p.Select(2)
	require.True(t, ok)
	assert.Equal(t, 95, r.Points)
}

func TestProfileEmpty(t *testing.T) {
	p := New(storage.NewMemory()).Profile()

	assert.Equal(t, 0, p.LevelsTotal())
	assert.Equal(t, int64(0), p.SessionID)
	_, ok := p.Select(1)
	assert.False(t, ok)

	a := p.Award(1)
	assert.Equal(t, "sweet", a.Tier.Key)
	assert.Equal(t, "0+ pts", a.Badge)
	assert.Equal(t, 0, a.Counts.Total())
	assert.Len(t, a.Counts, len(catch.DefaultKinds()))
}

func TestProfileUsesConfiguredTiers(t *testing.T) {
	tiers := catch.Tiers{
		{Min: 0, Key: "low"},
		{Min: 100, Key: "high"},
	}
	s := New(storage.NewMemory(), WithTiers(tiers))
	s.AppendRound(catch.RoundRecord{SessionID: 1, Points: 100})

	assert.Equal(t, "high", s.Profile().Award(1).Tier.Key)
}

func TestBadge(t *testing.T) {
	tier := catch.AwardTier{Min: 60}
	assert.Equal(t, "75 pts", Badge(75, tier))
	assert.Equal(t, "60+ pts", Badge(0, tier))
}
