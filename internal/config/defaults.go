package config

import (
	_ "embed"

	"github.com/vovakirdan/ag3/internal/core"
)

//go:embed defaults/ag3.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hard-coded configuration, used when no file parses.
func Default() Config {
	return Config{
		Grid: core.Grid{Width: 40, Height: 30},
		Difficulties: []Difficulty{
			{Name: "EASY", TickMS: 150, Color: "bright_cyan"},
			{Name: "MEDIUM", TickMS: 100, Color: "gold"},
			{Name: "HARD", TickMS: 60, Color: "bright_red"},
		},
		DefaultDifficulty: "MEDIUM",
		Themes: []Theme{
			{Name: "Modern", Grid: "gray", Head: "bright_green", Body: "green", Food: "bright_red", Accent: "bright_green"},
			{Name: "Neon", Grid: "blue", Head: "bright_magenta", Body: "bright_cyan", Food: "red", Accent: "bright_cyan"},
			{Name: "Classic", Grid: "yellow", Head: "dark_green", Body: "green", Food: "orange", Accent: "green"},
		},
		DefaultTheme: "Modern",
		Boost:        BoostConfig{HoldMS: 450},
		Collision:    CollisionConfig{TailVacates: false},
		Advice: AdviceConfig{
			Provider:  ProviderPhrasebook,
			TimeoutMS: 3000,
			Lines:     defaultAdviceLines(),
		},
		FPS: 60,
	}
}

func defaultAdviceLines() []string {
	return []string{
		"SIGNAL STRONG. KEEP THE LINE TIGHT AND THE WALLS FAR.",
		"NEW BARRIERS DETECTED IN SECTOR ZERO. ROUTE AROUND THE CORE.",
		"CORNER GRID HOT. HUG THE CENTER LANES.",
		"DATA HARVEST NOMINAL. HUNGER PROTOCOLS ENGAGED.",
		"YOUR TAIL IS YOUR SHADOW. NEVER TURN INTO IT.",
		"GOLD PACKETS SPOTTED. FIFTY CREDITS A BITE.",
		"BOOST BURNS CYCLES. SPEND THEM WISELY, RUNNER.",
		"THE GRID REMEMBERS EVERY MISTAKE. MAKE NONE.",
	}
}
