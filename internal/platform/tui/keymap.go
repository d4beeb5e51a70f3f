package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ag3/internal/core"
)

// KeyMap holds the game key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Boost   key.Binding
	Pause   key.Binding
	Retry   key.Binding
	Back    key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns WASD plus arrow bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "w", "W"), key.WithHelp("w/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "s", "S"), key.WithHelp("s/↓", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "a", "A"), key.WithHelp("a/←", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d", "D"), key.WithHelp("d/→", "right")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Boost:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "boost")),
		Pause:   key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("p", "pause")),
		Retry:   key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reboot")),
		Back:    key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Boost, k.Pause, k.Cancel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Boost, k.Pause, k.Retry},
		{k.Back, k.Cancel, k.Quit},
	}
}

// Action translates a key message into a game action. Keys with no binding
// map to ActionAny so the splash screen can still be dismissed.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Boost):
		return core.ActionBoost
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Retry):
		return core.ActionRetry
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Cancel):
		return core.ActionCancel
	}
	return core.ActionAny
}
