// Package core provides small terminal-agnostic helpers shared by the
// platform layer. It contains no external dependencies.
package core

// Lane maps a target's flight progress onto a row of terminal cells.
type Lane struct {
	Width int // number of cells, at least 1
}

// NewLane creates a lane of the given width.
func NewLane(width int) Lane {
	return Lane{Width: Max(width, 1)}
}

// Column returns the cell a target occupies after the given fraction of its
// flight, 0 at the left edge and Width-1 at the right.
func (l Lane) Column(frac float64) int {
	frac = ClampF(frac, 0, 1)
	return Clamp(int(frac*float64(l.Width-1)+0.5), 0, l.Width-1)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
