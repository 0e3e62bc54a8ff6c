// Package catch implements the sweet-catching round: a timed loop that
// spawns one catchable sweet at a time and scores the ones the player
// claims. It contains no UI code; the platform layer drives it through a
// scheduler and forwards catch input.
package catch

import "fmt"

// Kind identifies a catchable sweet (e.g. "heart", "bear").
type Kind string

// KindSpec describes one catchable kind and its fixed point value.
type KindSpec struct {
	Kind   Kind
	Name   string
	Glyph  string
	Points int
}

// Kinds is the fixed set of catchable kinds, in display order.
type Kinds []KindSpec

// DefaultKinds returns the stock sweets.
func DefaultKinds() Kinds {
	return Kinds{
		{Kind: "heart", Name: "Yellow Heart", Glyph: "♥", Points: 10},
		{Kind: "star", Name: "Green Star", Glyph: "★", Points: 30},
		{Kind: "drop", Name: "Purple Drop", Glyph: "◆", Points: 20},
		{Kind: "bear", Name: "Bear Keychain", Glyph: "ʕ", Points: 50},
	}
}

// Lookup returns the KindSpec for k.
func (ks Kinds) Lookup(k Kind) (KindSpec, bool) {
	for _, s := range ks {
		if s.Kind == k {
			return s, true
		}
	}
	return KindSpec{}, false
}

// Keys returns the kind identifiers in display order.
func (ks Kinds) Keys() []Kind {
	keys := make([]Kind, len(ks))
	for i, s := range ks {
		keys[i] = s.Kind
	}
	return keys
}

// Validate checks that the set is usable by the engine.
func (ks Kinds) Validate() error {
	if len(ks) == 0 {
		return fmt.Errorf("catch: no kinds defined")
	}
	seen := make(map[Kind]struct{}, len(ks))
	for _, s := range ks {
		if s.Kind == "" {
			return fmt.Errorf("catch: kind with empty key")
		}
		if _, dup := seen[s.Kind]; dup {
			return fmt.Errorf("catch: duplicate kind %q", s.Kind)
		}
		if s.Points < 0 {
			return fmt.Errorf("catch: kind %q has negative points", s.Kind)
		}
		seen[s.Kind] = struct{}{}
	}
	return nil
}

// Counts maps a kind to the number of times it was caught.
type Counts map[Kind]int

// ZeroCounts returns counts with one zero entry per known kind.
func ZeroCounts(ks Kinds) Counts {
	c := make(Counts, len(ks))
	for _, s := range ks {
		c[s.Kind] = 0
	}
	return c
}

// Normalize returns a copy of c holding exactly the known kinds,
// missing entries defaulting to zero.
func (c Counts) Normalize(ks Kinds) Counts {
	out := ZeroCounts(ks)
	for k := range out {
		out[k] = c[k]
	}
	return out
}

// Clone returns a copy of c.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Total returns the number of catches across all kinds.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}
