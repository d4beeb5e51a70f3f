package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ag3/internal/advice"
	"github.com/vovakirdan/ag3/internal/core"
	"github.com/vovakirdan/ag3/internal/game"
	"github.com/vovakirdan/ag3/internal/screens"
)

// Publisher receives world snapshots for spectators.
type Publisher interface {
	Publish(v any)
}

// Model is the Bubble Tea model for one AG~3 session.
type Model struct {
	game   *game.Game
	screen *core.Screen
	view   core.Viewport
	keys   KeyMap
	pub    Publisher

	boostSeq  uint64
	published uint64
	lastState screens.State
	quitting  bool
}

// NewModel creates a model around g. pub may be nil.
func NewModel(g *game.Game, view core.Viewport, pub Publisher) Model {
	return Model{
		game:      g,
		screen:    core.NewScreen(view.Width, view.Height),
		view:      view,
		keys:      DefaultKeyMap(),
		pub:       pub,
		lastState: g.State(),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.view.FrameInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.view.Width = msg.Width
		m.view.Height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		eff := m.game.Frame(time.Time(msg))
		m.publish()
		return m, tea.Batch(frameCmd(m.view.FrameInterval()), m.effects(eff))

	case CountdownMsg:
		eff := m.game.CountdownStep(msg.Gen, time.Now())
		return m, m.effects(eff)

	case AdviceMsg:
		m.game.ApplyAdvice(advice.Response(msg))
		return m, nil

	case BoostExpireMsg:
		if msg.Seq == m.boostSeq && m.game.Boosted() {
			m.game.HandleAction(core.ActionBoostRelease, time.Now())
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	a := m.keys.Action(msg)
	// Space doubles as confirm outside of play.
	if a == core.ActionBoost && m.game.State() != screens.Playing {
		a = core.ActionConfirm
	}

	eff := m.game.HandleAction(a, time.Now())
	if eff.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	cmd := m.effects(eff)
	if a == core.ActionBoost {
		// Terminals report no key release, so boost lapses once the key
		// stops auto-repeating.
		m.boostSeq++
		cmd = tea.Batch(cmd, boostExpireCmd(m.game.BoostHold(), m.boostSeq))
	}
	return m, cmd
}

// effects turns game effects into commands.
func (m Model) effects(eff game.Effects) tea.Cmd {
	var cmds []tea.Cmd
	if eff.Countdown != nil {
		cmds = append(cmds, countdownCmd(eff.Countdown))
	}
	if eff.Advice != nil {
		cmds = append(cmds, adviceCmd(m.game, *eff.Advice))
	}
	if eff.Quit {
		cmds = append(cmds, tea.Quit)
	}
	return tea.Batch(cmds...)
}

// publish sends a snapshot when the simulation ticked or the screen changed.
func (m *Model) publish() {
	if m.pub == nil {
		return
	}
	snap := m.game.Snapshot()
	state := m.game.State()
	if snap.Tick == m.published && state == m.lastState && state != screens.Countdown {
		return
	}
	m.published = snap.Tick
	m.lastState = state
	m.pub.Publish(snap)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".ag3", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("ag3_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for g.
func Run(g *game.Game, view core.Viewport, pub Publisher) error {
	p := tea.NewProgram(
		NewModel(g, view, pub),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
