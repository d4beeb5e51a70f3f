package config

import (
	"strings"

	"github.com/vovakirdan/ag3/internal/core"
)

// DifficultyIndex returns the position of the named difficulty, matched
// case-insensitively, or -1.
func (c Config) DifficultyIndex(name string) int {
	for i, d := range c.Difficulties {
		if strings.EqualFold(d.Name, name) {
			return i
		}
	}
	return -1
}

// ThemeIndex returns the position of the named theme, matched
// case-insensitively, or -1.
func (c Config) ThemeIndex(name string) int {
	for i, t := range c.Themes {
		if strings.EqualFold(t.Name, name) {
			return i
		}
	}
	return -1
}

// Palette is a theme resolved to screen colors.
type Palette struct {
	Grid   core.Color
	Head   core.Color
	Body   core.Color
	Food   core.Color
	Bonus  core.Color
	Accent core.Color
}

// Palette resolves the theme's color names. Unknown names fall back to the
// default terminal color.
func (t Theme) Palette() Palette {
	return Palette{
		Grid:   colorOr(t.Grid, core.ColorGray),
		Head:   colorOr(t.Head, core.ColorDefault),
		Body:   colorOr(t.Body, core.ColorDefault),
		Food:   colorOr(t.Food, core.ColorDefault),
		Bonus:  core.ColorGold,
		Accent: colorOr(t.Accent, core.ColorDefault),
	}
}

func colorOr(name string, fallback core.Color) core.Color {
	if c, ok := core.ParseColor(name); ok {
		return c
	}
	return fallback
}
