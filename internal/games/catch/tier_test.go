package catch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tiers := DefaultTiers()

	tests := []struct {
		points int
		want   string
	}{
		{0, "sweet"},
		{59, "sweet"},
		{60, "cream"},
		{89, "cream"},
		{90, "cookie"},
		{120, "lucky"},
		{179, "lucky"},
		{180, "gloss"},
		{500, "gloss"},
	}

	for _, tt := range tests {
		got := tiers.For(tt.points)
		if got.Key != tt.want {
			t.Errorf("For(%d) = %q, want %q", tt.points, got.Key, tt.want)
		}
	}
}

func TestTierForIsMonotonic(t *testing.T) {
	tiers := DefaultTiers()
	prev := tiers.For(0).Min
	for p := 1; p <= 400; p++ {
		cur := tiers.For(p).Min
		if cur < prev {
			t.Fatalf("For(%d).Min = %d dropped below For(%d).Min = %d", p, cur, p-1, prev)
		}
		prev = cur
	}
}

func TestTierForNegativeFallsBack(t *testing.T) {
	assert.Equal(t, "sweet", DefaultTiers().For(-10).Key)
	assert.Equal(t, AwardTier{}, Tiers(nil).For(10))
}

func TestTiersSorted(t *testing.T) {
	shuffled := Tiers{
		{Min: 60, Key: "cream"},
		{Min: 0, Key: "sweet"},
		{Min: 180, Key: "gloss"},
	}
	sorted := shuffled.Sorted()

	require.NoError(t, sorted.Validate())
	assert.Equal(t, []string{"gloss", "cream", "sweet"}, []string{sorted[0].Key, sorted[1].Key, sorted[2].Key})
	assert.Equal(t, "cream", shuffled[0].Key, "Sorted must not reorder the receiver")
}

func TestTiersValidate(t *testing.T) {
	require.NoError(t, DefaultTiers().Validate())

	tests := []struct {
		name  string
		tiers Tiers
	}{
		{"empty", Tiers{}},
		{"no catch-all", Tiers{{Min: 50, Key: "a"}, {Min: 10, Key: "b"}}},
		{"ascending", Tiers{{Min: 0, Key: "a"}, {Min: 10, Key: "b"}}},
		{"duplicate key", Tiers{{Min: 10, Key: "a"}, {Min: 0, Key: "a"}}},
		{"empty key", Tiers{{Min: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.tiers.Validate())
		})
	}
}

func TestKindsValidate(t *testing.T) {
	require.NoError(t, DefaultKinds().Validate())

	assert.Error(t, Kinds{}.Validate())
	assert.Error(t, Kinds{{Kind: "a"}, {Kind: "a"}}.Validate())
	assert.Error(t, Kinds{{Kind: "a", Points: -1}}.Validate())
	assert.Error(t, Kinds{{Points: 1}}.Validate())
}

func TestCountsNormalize(t *testing.T) {
	kinds := DefaultKinds()
	c := Counts{"heart": 2, "ghost": 9}.Normalize(kinds)

	assert.Equal(t, Counts{"heart": 2, "star": 0, "drop": 0, "bear": 0}, c)
	assert.Equal(t, 2, c.Total())
}

func TestKindsLookup(t *testing.T) {
	spec, ok := DefaultKinds().Lookup("bear")
	require.True(t, ok)
	assert.Equal(t, 50, spec.Points)

	_, ok = DefaultKinds().Lookup("ghost")
	assert.False(t, ok)
}
