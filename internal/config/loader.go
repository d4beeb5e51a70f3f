package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ag3/internal/core"
)

// MinGridSize is the smallest accepted board edge.
const MinGridSize = 10

// Load loads the game configuration.
// Search order: customPath -> ~/.ag3/config.yaml -> ./configs/ag3.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "ag3.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ag3", "config.yaml")
}

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var errs []error

	if c.Grid.Width < MinGridSize || c.Grid.Height < MinGridSize {
		errs = append(errs, fmt.Errorf("grid %dx%d is smaller than %dx%d",
			c.Grid.Width, c.Grid.Height, MinGridSize, MinGridSize))
	}

	if len(c.Difficulties) == 0 {
		errs = append(errs, errors.New("no difficulties defined"))
	}
	for _, d := range c.Difficulties {
		if d.Name == "" {
			errs = append(errs, errors.New("difficulty with empty name"))
		}
		if d.TickMS <= 0 {
			errs = append(errs, fmt.Errorf("difficulty %q: tick_ms must be positive", d.Name))
		}
	}
	if len(c.Difficulties) > 0 && c.DifficultyIndex(c.DefaultDifficulty) < 0 {
		errs = append(errs, fmt.Errorf("default_difficulty %q is not defined", c.DefaultDifficulty))
	}

	if len(c.Themes) == 0 {
		errs = append(errs, errors.New("no themes defined"))
	}
	for _, t := range c.Themes {
		for _, name := range []string{t.Grid, t.Head, t.Body, t.Food, t.Accent} {
			if _, ok := core.ParseColor(name); !ok {
				errs = append(errs, fmt.Errorf("theme %q: unknown color %q", t.Name, name))
			}
		}
	}
	if len(c.Themes) > 0 && c.ThemeIndex(c.DefaultTheme) < 0 {
		errs = append(errs, fmt.Errorf("default_theme %q is not defined", c.DefaultTheme))
	}

	if c.Boost.HoldMS <= 0 {
		errs = append(errs, errors.New("boost.hold_ms must be positive"))
	}
	if c.FPS <= 0 {
		errs = append(errs, errors.New("fps must be positive"))
	}

	switch c.Advice.Provider {
	case ProviderOff:
	case ProviderPhrasebook:
		if len(c.Advice.Lines) == 0 {
			errs = append(errs, errors.New("advice.lines is empty for the phrasebook provider"))
		}
	case ProviderHTTP:
		if c.Advice.Endpoint == "" {
			errs = append(errs, errors.New("advice.endpoint is required for the http provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown advice provider %q", c.Advice.Provider))
	}
	if c.Advice.TimeoutMS <= 0 {
		errs = append(errs, errors.New("advice.timeout_ms must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
