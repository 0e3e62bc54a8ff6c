package config

import (
	_ "embed"

	"github.com/vovakirdan/sweet-catch/internal/games/catch"
)

//go:embed defaults/sweetcatch.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration used when the embedded
// YAML cannot be decoded.
func DefaultConfig() Config {
	cfg := Config{
		Round: RoundConfig{
			LevelDurationSec: catch.LevelDuration,
			SpawnIntervalMS:  int(catch.SpawnInterval.Milliseconds()),
			FlyDurationMS:    1850,
		},
		Flow: FlowConfig{
			LoaderDelayMS: 3000,
			Onboarding: []PageConfig{
				{Title: "Welcome to Sweet Catch", Text: "Grab the flying sweets.", Button: "Hello"},
				{Title: "Every sweet has a price", Text: "Each kind is worth different points.", Button: "Next"},
				{Title: "Collect awards", Text: "Score higher for better awards.", Button: "Start"},
			},
		},
		Rules: TextConfig{
			Title:      "How to play",
			Paragraphs: []string{"Press space to catch the sweet on screen before the next one appears."},
		},
		About: TextConfig{
			Title:      "About Sweet Catch",
			Paragraphs: []string{"A small reflex game about catching flying sweets."},
		},
		Share: ShareConfig{
			AppTitle:   "Share the app",
			AppMessage: "Try this app! 🎮",
			AppURL:     "https://example.com",
			AwardTitle: "My award",
		},
	}

	for _, k := range catch.DefaultKinds() {
		cfg.Kinds = append(cfg.Kinds, KindConfig{
			Key:    string(k.Kind),
			Name:   k.Name,
			Glyph:  k.Glyph,
			Points: k.Points,
		})
	}
	for _, t := range catch.DefaultTiers() {
		cfg.Tiers = append(cfg.Tiers, TierConfig{
			Min:         t.Min,
			Key:         t.Key,
			Title:       t.Title,
			Label:       t.Label,
			Description: t.Description,
		})
	}
	return cfg
}
