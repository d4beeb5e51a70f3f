package game

import (
	"github.com/vovakirdan/ag3/internal/audio"
	"github.com/vovakirdan/ag3/internal/core"
	"github.com/vovakirdan/ag3/internal/screens"
)

// Menu labels.
var (
	startItems    = []string{"LAUNCH MISSION", "DIFFICULTY", "THEMES"}
	gameOverItems = []string{"REBOOT", "LOGOFF", "FREQUENCY", "AESTHETIC"}
)

const backLabel = "BACK"

// Start menu entries.
const (
	startLaunch = iota
	startDifficulty
	startThemes
)

// Game over entries.
const (
	overReboot = iota
	overLogoff
	overFrequency
	overAesthetic
)

// Cursor returns the highlighted entry of the menu shown in s.
func (g *Game) Cursor(s screens.State) int {
	return g.cursor[s]
}

// moveCursor handles Up/Down/Left/Right for a menu of n entries and
// reports whether a takes effect as navigation.
func (g *Game) moveCursor(s screens.State, a core.Action, n int) bool {
	switch a {
	case core.ActionUp, core.ActionLeft:
		g.cursor[s] = core.Wrap(g.cursor[s]-1, n)
	case core.ActionDown, core.ActionRight:
		g.cursor[s] = core.Wrap(g.cursor[s]+1, n)
	default:
		return false
	}
	return true
}

func (g *Game) handleStart(a core.Action) Effects {
	if g.moveCursor(screens.Start, a, len(startItems)) || a != core.ActionConfirm {
		return Effects{}
	}

	g.sink.Play(audio.MenuSelect)
	switch g.cursor[screens.Start] {
	case startLaunch:
		return g.launch(screens.Launch)
	case startDifficulty:
		g.openLevelSelect(screens.OpenLevelSelect)
	case startThemes:
		g.openSettings(screens.OpenSettings)
	}
	return Effects{}
}

func (g *Game) openLevelSelect(in screens.Input) {
	if g.machine.Fire(in).Entered(screens.LevelSelect) {
		g.cursor[screens.LevelSelect] = g.difficulty
	}
}

func (g *Game) openSettings(in screens.Input) {
	if g.machine.Fire(in).Entered(screens.Settings) {
		g.cursor[screens.Settings] = g.theme
	}
}

// handleLevelSelect lists the difficulties followed by BACK. Picking a
// difficulty returns to START.
func (g *Game) handleLevelSelect(a core.Action) {
	n := len(g.cfg.Difficulties) + 1
	if g.moveCursor(screens.LevelSelect, a, n) {
		return
	}

	switch a {
	case core.ActionBack:
		g.machine.Fire(screens.Back)
	case core.ActionConfirm:
		g.sink.Play(audio.MenuSelect)
		if i := g.cursor[screens.LevelSelect]; i < len(g.cfg.Difficulties) {
			g.difficulty = i
			g.driver.SetBasePeriod(g.Difficulty().Period())
			g.log.Debug("difficulty selected", "name", g.Difficulty().Name)
		}
		g.machine.Fire(screens.Back)
	}
}

// handleSettings lists the themes followed by BACK. Picking a theme applies
// it and stays on the screen so the preview updates.
func (g *Game) handleSettings(a core.Action) {
	n := len(g.cfg.Themes) + 1
	if g.moveCursor(screens.Settings, a, n) {
		return
	}

	switch a {
	case core.ActionBack:
		g.machine.Fire(screens.Back)
	case core.ActionConfirm:
		g.sink.Play(audio.MenuSelect)
		i := g.cursor[screens.Settings]
		if i >= len(g.cfg.Themes) {
			g.machine.Fire(screens.Back)
			return
		}
		g.theme = i
		g.log.Debug("theme selected", "name", g.Theme().Name)
	}
}

func (g *Game) handleGameOver(a core.Action) Effects {
	if g.moveCursor(screens.GameOver, a, len(gameOverItems)) {
		return Effects{}
	}

	choice := -1
	switch a {
	case core.ActionConfirm:
		choice = g.cursor[screens.GameOver]
	case core.ActionRetry:
		choice = overReboot
	case core.ActionBack:
		choice = overLogoff
	}
	if choice < 0 {
		return Effects{}
	}

	g.sink.Play(audio.MenuSelect)
	switch choice {
	case overReboot:
		return g.launch(screens.Retry)
	case overLogoff:
		g.machine.Fire(screens.Back)
		g.cursor[screens.Start] = 0
	case overFrequency:
		g.openLevelSelect(screens.OpenLevelSelect)
	case overAesthetic:
		g.openSettings(screens.OpenSettings)
	}
	return Effects{}
}
