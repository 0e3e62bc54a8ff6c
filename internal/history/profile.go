package history

import (
	"fmt"

	"github.com/vovakirdan/sweet-catch/internal/games/catch"
)

// Profile is a read-only snapshot of the latest session used by the awards
// screen and the awards command.
type Profile struct {
	Name      string
	SessionID int64
	Rounds    []catch.RoundRecord // ordered by level

	kinds catch.Kinds
	tiers catch.Tiers
}

// Award is the derived view of one round.
type Award struct {
	Round  catch.RoundRecord
	Tier   catch.AwardTier
	Counts catch.Counts
	Badge  string
}

// Profile snapshots the latest session.
func (s *Store) Profile() Profile {
	s.mu.Lock()
	records := s.load()
	s.mu.Unlock()

	rounds := latestSession(records)
	return Profile{
		Name:      s.DisplayName(),
		SessionID: maxSession(records),
		Rounds:    rounds,
		kinds:     s.kinds,
		tiers:     s.tiers,
	}
}

// LevelsTotal returns the number of rounds in the session.
func (p Profile) LevelsTotal() int { return len(p.Rounds) }

// IsDone reports whether the given level was completed in the session.
func (p Profile) IsDone(level int) bool {
	_, ok := p.find(level)
	return ok
}

func (p Profile) find(level int) (catch.RoundRecord, bool) {
	for _, r := range p.Rounds {
		if r.Level == level {
			return r, true
		}
	}
	return catch.RoundRecord{}, false
}

// Select returns the round with the given level, falling back to the last
// round of the session. It reports false only when the session is empty.
func (p Profile) Select(level int) (catch.RoundRecord, bool) {
	if r, ok := p.find(level); ok {
		return r, true
	}
	if len(p.Rounds) == 0 {
		return catch.RoundRecord{}, false
	}
	return p.Rounds[len(p.Rounds)-1], true
}

// Award derives the tier, counts and badge text for the selected level.
// With no rounds it describes an empty round in the lowest tier.
func (p Profile) Award(level int) Award {
	rec, _ := p.Select(level)
	tier := p.tiers.For(rec.Points)
	return Award{
		Round:  rec,
		Tier:   tier,
		Counts: rec.Counts.Normalize(p.kinds),
		Badge:  Badge(rec.Points, tier),
	}
}

// Kinds returns the known catch kinds in display order.
func (p Profile) Kinds() catch.Kinds { return p.kinds }

// Tiers returns the award table.
func (p Profile) Tiers() catch.Tiers { return p.tiers }

// Badge formats the award badge: the score when positive, otherwise the
// tier's entry threshold.
func Badge(points int, tier catch.AwardTier) string {
	if points > 0 {
		return fmt.Sprintf("%d pts", points)
	}
	return fmt.Sprintf("%d+ pts", tier.Min)
}
