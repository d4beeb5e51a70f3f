// Package config provides YAML-based configuration for the AG~3 snake game:
// board size, difficulties, themes, boost timing, the collision rule and the
// advice provider.
package config

import (
	"time"

	"github.com/vovakirdan/ag3/internal/core"
)

// Config is the full game configuration.
type Config struct {
	Grid              core.Grid       `yaml:"grid"`
	Difficulties      []Difficulty    `yaml:"difficulties"`
	DefaultDifficulty string          `yaml:"default_difficulty"`
	Themes            []Theme         `yaml:"themes"`
	DefaultTheme      string          `yaml:"default_theme"`
	Boost             BoostConfig     `yaml:"boost"`
	Collision         CollisionConfig `yaml:"collision"`
	Advice            AdviceConfig    `yaml:"advice"`
	FPS               int             `yaml:"fps"`
}

// Difficulty is a named base tick period.
type Difficulty struct {
	Name   string `yaml:"name"`
	TickMS int    `yaml:"tick_ms"`
	Color  string `yaml:"color"` // label color in the level-select menu
}

// Period returns the unboosted tick period.
func (d Difficulty) Period() time.Duration {
	return time.Duration(d.TickMS) * time.Millisecond
}

// Theme is a cosmetic color set. Colors are core color names.
type Theme struct {
	Name   string `yaml:"name"`
	Grid   string `yaml:"grid"`
	Head   string `yaml:"head"`
	Body   string `yaml:"body"`
	Food   string `yaml:"food"`
	Accent string `yaml:"accent"`
}

// BoostConfig controls how long boost stays held without a key repeat.
type BoostConfig struct {
	HoldMS int `yaml:"hold_ms"`
}

// Hold returns the boost hold window.
func (b BoostConfig) Hold() time.Duration {
	return time.Duration(b.HoldMS) * time.Millisecond
}

// CollisionConfig selects the self-collision rule.
type CollisionConfig struct {
	// TailVacates lets the head enter the cell the tail leaves this tick.
	TailVacates bool `yaml:"tail_vacates"`
}

// Advice providers.
const (
	ProviderOff        = "off"
	ProviderPhrasebook = "phrasebook"
	ProviderHTTP       = "http"
)

// AdviceConfig selects and tunes the advice generator.
type AdviceConfig struct {
	Provider  string   `yaml:"provider"`
	Endpoint  string   `yaml:"endpoint,omitempty"`
	TimeoutMS int      `yaml:"timeout_ms"`
	Lines     []string `yaml:"lines,omitempty"`
}

// Timeout returns the per-request advice timeout.
func (a AdviceConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}
