package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.sweetcatch/config.yaml|.toml ->
// ./configs/sweetcatch.yaml -> embedded default -> hardcoded default.
//
// Only an unreadable or invalid customPath is an error; the other
// locations are skipped when missing or broken.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Config{}, err
		}
		if err := cfg.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	for _, name := range []string{"config.yaml", "config.toml"} {
		if p := userConfigPath(name); p != "" {
			if cfg, err := loadFile(p); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "sweetcatch.yaml")); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	return embeddedConfig(), nil
}

// embeddedConfig decodes the embedded default YAML, falling back to the
// hardcoded default if that fails.
func embeddedConfig() Config {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultConfig()
	}
	return cfg
}

// loadFile decodes path on top of the defaults, choosing the format by
// extension. Sections missing from the file keep their default values.
func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration document on top of the embedded defaults.
// ext selects the format: ".toml" for TOML, anything else for YAML.
func Parse(data []byte, ext string) (Config, error) {
	cfg := embeddedConfig()
	if strings.EqualFold(ext, ".toml") {
		var overlay Config
		if _, err := toml.Decode(string(data), &overlay); err != nil {
			return Config{}, err
		}
		merge(&cfg, overlay)
		return cfg, nil
	}
	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Config{}, err
	}
	merge(&cfg, overlay)
	return cfg, nil
}

// merge copies every non-zero field of src into dst. Lists replace the
// default list wholesale.
func merge(dst *Config, src Config) {
	if src.Round.LevelDurationSec != 0 {
		dst.Round.LevelDurationSec = src.Round.LevelDurationSec
	}
	if src.Round.SpawnIntervalMS != 0 {
		dst.Round.SpawnIntervalMS = src.Round.SpawnIntervalMS
	}
	if src.Round.FlyDurationMS != 0 {
		dst.Round.FlyDurationMS = src.Round.FlyDurationMS
	}
	if len(src.Kinds) > 0 {
		dst.Kinds = src.Kinds
	}
	if len(src.Tiers) > 0 {
		dst.Tiers = src.Tiers
	}
	if src.Flow.LoaderDelayMS != 0 {
		dst.Flow.LoaderDelayMS = src.Flow.LoaderDelayMS
	}
	if len(src.Flow.Onboarding) > 0 {
		dst.Flow.Onboarding = src.Flow.Onboarding
	}
	mergeText(&dst.Rules, src.Rules)
	mergeText(&dst.About, src.About)
	if src.Share.AppTitle != "" {
		dst.Share.AppTitle = src.Share.AppTitle
	}
	if src.Share.AppMessage != "" {
		dst.Share.AppMessage = src.Share.AppMessage
	}
	if src.Share.AppURL != "" {
		dst.Share.AppURL = src.Share.AppURL
	}
	if src.Share.AwardTitle != "" {
		dst.Share.AwardTitle = src.Share.AwardTitle
	}
}

func mergeText(dst *TextConfig, src TextConfig) {
	if src.Title != "" {
		dst.Title = src.Title
	}
	if len(src.Paragraphs) > 0 {
		dst.Paragraphs = src.Paragraphs
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sweetcatch", filename)
}
