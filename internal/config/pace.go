package config

import "fmt"

// PacePreset represents a named spawn pace.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceFrantic PacePreset = "frantic"
)

// PacePresets lists the accepted preset names.
func PacePresets() []PacePreset {
	return []PacePreset{PaceRelaxed, PaceNormal, PaceFrantic}
}

// spawnPercent returns the spawn interval scale for a preset, in percent.
func spawnPercent(preset PacePreset) (int, bool) {
	switch preset {
	case PaceRelaxed:
		return 140, true
	case PaceNormal, "":
		return 100, true
	case PaceFrantic:
		return 60, true
	default:
		return 0, false
	}
}

// ApplyPace scales the spawn interval and fly duration for a preset.
// Round length and point values are not affected.
func ApplyPace(cfg *Config, preset PacePreset) error {
	pct, ok := spawnPercent(preset)
	if !ok {
		return fmt.Errorf("config: unknown pace %q (want one of %v)", preset, PacePresets())
	}
	cfg.Round.SpawnIntervalMS = clampMS(cfg.Round.SpawnIntervalMS*pct/100, 100, 10000)
	cfg.Round.FlyDurationMS = clampMS(cfg.Round.FlyDurationMS*pct/100, 0, 12000)
	return nil
}

func clampMS(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
