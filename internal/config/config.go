// Package config provides YAML (or TOML) game configuration loading and
// pace presets for Sweet Catch.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/sweet-catch/internal/games/catch"
)

// Config contains all configuration for the game and its screens.
type Config struct {
	Round RoundConfig  `yaml:"round" toml:"round"`
	Kinds []KindConfig `yaml:"kinds" toml:"kinds"`
	Tiers []TierConfig `yaml:"tiers" toml:"tiers"`
	Flow  FlowConfig   `yaml:"flow" toml:"flow"`
	Rules TextConfig   `yaml:"rules" toml:"rules"`
	About TextConfig   `yaml:"about" toml:"about"`
	Share ShareConfig  `yaml:"share" toml:"share"`
}

// RoundConfig defines round timing.
type RoundConfig struct {
	LevelDurationSec int `yaml:"level_duration_sec" toml:"level_duration_sec"`
	SpawnIntervalMS  int `yaml:"spawn_interval_ms" toml:"spawn_interval_ms"`
	FlyDurationMS    int `yaml:"fly_duration_ms" toml:"fly_duration_ms"` // how long a target takes to cross the lane
}

// KindConfig defines one catchable sweet.
type KindConfig struct {
	Key    string `yaml:"key" toml:"key"`
	Name   string `yaml:"name" toml:"name"`
	Glyph  string `yaml:"glyph" toml:"glyph"`
	Points int    `yaml:"points" toml:"points"`
}

// TierConfig defines one award tier.
type TierConfig struct {
	Min         int    `yaml:"min" toml:"min"`
	Key         string `yaml:"key" toml:"key"`
	Title       string `yaml:"title" toml:"title"`
	Label       string `yaml:"label" toml:"label"`
	Description string `yaml:"description" toml:"description"`
}

// FlowConfig defines the intro screens.
type FlowConfig struct {
	LoaderDelayMS int          `yaml:"loader_delay_ms" toml:"loader_delay_ms"`
	Onboarding    []PageConfig `yaml:"onboarding" toml:"onboarding"`
}

// PageConfig is one onboarding page.
type PageConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Text   string `yaml:"text" toml:"text"`
	Button string `yaml:"button" toml:"button"`
}

// TextConfig is a titled block of paragraphs.
type TextConfig struct {
	Title      string   `yaml:"title" toml:"title"`
	Paragraphs []string `yaml:"paragraphs" toml:"paragraphs"`
}

// ShareConfig defines the messages handed to the share capability.
type ShareConfig struct {
	AppTitle   string `yaml:"app_title" toml:"app_title"`
	AppMessage string `yaml:"app_message" toml:"app_message"`
	AppURL     string `yaml:"app_url" toml:"app_url"`
	AwardTitle string `yaml:"award_title" toml:"award_title"`
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.Round.LevelDurationSec <= 0 {
		return fmt.Errorf("config: round.level_duration_sec must be positive, got %d", c.Round.LevelDurationSec)
	}
	if c.Round.SpawnIntervalMS <= 0 {
		return fmt.Errorf("config: round.spawn_interval_ms must be positive, got %d", c.Round.SpawnIntervalMS)
	}
	if c.Round.FlyDurationMS < 0 {
		return fmt.Errorf("config: round.fly_duration_ms must not be negative, got %d", c.Round.FlyDurationMS)
	}
	if c.Flow.LoaderDelayMS < 0 {
		return fmt.Errorf("config: flow.loader_delay_ms must not be negative, got %d", c.Flow.LoaderDelayMS)
	}
	if err := c.CatchKinds().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.AwardTiers().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// CatchKinds converts the kinds section.
func (c Config) CatchKinds() catch.Kinds {
	ks := make(catch.Kinds, 0, len(c.Kinds))
	for _, k := range c.Kinds {
		ks = append(ks, catch.KindSpec{
			Kind:   catch.Kind(k.Key),
			Name:   k.Name,
			Glyph:  k.Glyph,
			Points: k.Points,
		})
	}
	return ks
}

// AwardTiers converts the tiers section, sorted by descending threshold.
func (c Config) AwardTiers() catch.Tiers {
	ts := make(catch.Tiers, 0, len(c.Tiers))
	for _, t := range c.Tiers {
		ts = append(ts, catch.AwardTier{
			Min:         t.Min,
			Key:         t.Key,
			Title:       t.Title,
			Label:       t.Label,
			Description: t.Description,
		})
	}
	return ts.Sorted()
}

// Settings returns the round rules for the engine.
func (c Config) Settings() catch.Settings {
	return catch.Settings{
		LevelDuration: c.Round.LevelDurationSec,
		SpawnInterval: c.SpawnInterval(),
		Kinds:         c.CatchKinds(),
		Tiers:         c.AwardTiers(),
	}
}

// SpawnInterval returns the time between spawns.
func (c Config) SpawnInterval() time.Duration {
	return time.Duration(c.Round.SpawnIntervalMS) * time.Millisecond
}

// FlyDuration returns how long a target takes to cross the lane.
func (c Config) FlyDuration() time.Duration {
	return time.Duration(c.Round.FlyDurationMS) * time.Millisecond
}

// LoaderDelay returns how long the splash stays up.
func (c Config) LoaderDelay() time.Duration {
	return time.Duration(c.Flow.LoaderDelayMS) * time.Millisecond
}
