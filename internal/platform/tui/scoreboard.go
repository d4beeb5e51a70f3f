package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ag3/internal/storage"
)

const maxRuns = 100

// RunSource supplies the run history.
type RunSource interface {
	TopRuns(limit int) ([]storage.Run, error)
	Summary() (storage.Summary, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Filter, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "frequency"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ScoreboardModel lists the best recorded runs.
type ScoreboardModel struct {
	runs     []storage.Run
	summary  storage.Summary
	err      error
	filters  []string // "" means every difficulty
	filter   int
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel loads the history from src. difficulties feeds the
// frequency filter.
func NewScoreboardModel(src RunSource, difficulties []string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		filters: append([]string{""}, difficulties...),
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}

	if src != nil {
		m.runs, m.err = src.TopRuns(maxRuns)
		if m.err == nil {
			m.summary, m.err = src.Summary()
		}
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 6},
		{Title: "Growth", Width: 7},
		{Title: "Eff", Width: 6},
		{Title: "Freq", Width: 7},
		{Title: "Cause", Width: 10},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("22")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color("10")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// visible returns the runs that pass the current frequency filter.
func (m ScoreboardModel) visible() []storage.Run {
	want := m.filters[m.filter]
	if want == "" {
		return m.runs
	}
	var out []storage.Run
	for _, r := range m.runs {
		if strings.EqualFold(r.Difficulty, want) {
			out = append(out, r)
		}
	}
	return out
}

func (m *ScoreboardModel) updateTableRows() {
	runs := m.visible()
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%06d", r.Score),
			fmt.Sprintf("%ds", r.DurationSecs),
			fmt.Sprintf("+%d", r.Growth),
			fmt.Sprintf("%d%%", r.Efficiency),
			r.Difficulty,
			strings.ToUpper(r.Cause),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(m.filters)
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	title := "AG~3 // RUN LOG"
	if f := m.filters[m.filter]; f != "" {
		title += " // " + f
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText(m.summaryLine(), m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("22")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.tableContent()))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) summaryLine() string {
	if m.err != nil {
		return "RUN LOG UNAVAILABLE: " + m.err.Error()
	}
	line := fmt.Sprintf("RUNS %d  BEST %06d  AVG %.0f", m.summary.Runs, m.summary.HighScore, m.summary.AvgScore)
	if !m.summary.LastPlayed.IsZero() {
		line += "  LAST " + m.summary.LastPlayed.Format("Jan 02 15:04")
	}
	return line
}

func (m ScoreboardModel) tableContent() string {
	if len(m.visible()) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No runs recorded yet.\nLaunch a mission to log one.")
	}
	return m.table.View()
}

func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunScoreboard shows the run history until the user quits.
func RunScoreboard(src RunSource, difficulties []string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(src, difficulties, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
