package core

import "testing"

func TestLaneColumn(t *testing.T) {
	lane := NewLane(11)

	tests := []struct {
		name     string
		frac     float64
		expected int
	}{
		{"start", 0, 0},
		{"middle", 0.5, 5},
		{"end", 1, 10},
		{"before start", -0.3, 0},
		{"past end", 1.8, 10},
		{"rounds to nearest", 0.26, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := lane.Column(tc.frac); got != tc.expected {
				t.Errorf("Column(%v) = %d, expected %d", tc.frac, got, tc.expected)
			}
		})
	}
}

func TestLaneMinimumWidth(t *testing.T) {
	lane := NewLane(0)
	if lane.Width != 1 {
		t.Fatalf("NewLane(0).Width = %d, expected 1", lane.Width)
	}
	if got := lane.Column(0.7); got != 0 {
		t.Errorf("Column on a one-cell lane = %d, expected 0", got)
	}
}

func TestRuntimeConfigWithSize(t *testing.T) {
	cfg := DefaultConfig().WithSize(120, 0)
	if cfg.ScreenW != 120 || cfg.ScreenH != 24 {
		t.Errorf("WithSize(120, 0) = %dx%d, expected 120x24", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

