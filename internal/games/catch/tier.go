package catch

import (
	"fmt"
	"sort"
)

// AwardTier is one row of the award table.
type AwardTier struct {
	Min         int
	Key         string
	Title       string
	Label       string // badge level label, e.g. "Lv. 75"
	Description string
}

// Tiers is an award table ordered by descending Min.
// The last entry has Min 0 and catches every non-negative score.
type Tiers []AwardTier

// DefaultTiers returns the stock award table.
func DefaultTiers() Tiers {
	return Tiers{
		{Min: 180, Key: "gloss", Title: "Gloss Master Medal", Label: "Lv. 75", Description: "The final award, the pinnacle of skill."},
		{Min: 120, Key: "lucky", Title: "Lucky Bear", Label: "Lv. 60", Description: "For endurance and concentration."},
		{Min: 90, Key: "cookie", Title: "Cookie Star", Label: "Lv. 45", Description: "A symbol of balance and rhythm of the game."},
		{Min: 60, Key: "cream", Title: "Cream Reflex", Label: "Lv. 30", Description: "For stable reaction and accuracy."},
		{Min: 0, Key: "sweet", Title: "Sweet Spark", Label: "Lv. 15", Description: "The first award, a symbol of starting progress."},
	}
}

// Sorted returns a copy ordered by descending Min.
func (ts Tiers) Sorted() Tiers {
	out := make(Tiers, len(ts))
	copy(out, ts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Min > out[j].Min
	})
	return out
}

// For returns the first tier whose Min is <= points.
// Scores below every threshold fall back to the last entry.
func (ts Tiers) For(points int) AwardTier {
	if len(ts) == 0 {
		return AwardTier{}
	}
	for _, t := range ts {
		if points >= t.Min {
			return t
		}
	}
	return ts[len(ts)-1]
}

// Validate checks ordering and the catch-all entry.
func (ts Tiers) Validate() error {
	if len(ts) == 0 {
		return fmt.Errorf("catch: no award tiers defined")
	}
	seen := make(map[string]struct{}, len(ts))
	for i, t := range ts {
		if t.Key == "" {
			return fmt.Errorf("catch: award tier %d has empty key", i)
		}
		if _, dup := seen[t.Key]; dup {
			return fmt.Errorf("catch: duplicate award tier %q", t.Key)
		}
		seen[t.Key] = struct{}{}
		if i > 0 && t.Min >= ts[i-1].Min {
			return fmt.Errorf("catch: award tiers must have strictly descending thresholds (%q after %q)", t.Key, ts[i-1].Key)
		}
	}
	if last := ts[len(ts)-1]; last.Min != 0 {
		return fmt.Errorf("catch: lowest award tier %q must have threshold 0, got %d", last.Key, last.Min)
	}
	return nil
}
