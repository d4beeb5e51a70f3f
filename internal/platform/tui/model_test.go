package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ag3/internal/advice"
	"github.com/vovakirdan/ag3/internal/config"
	"github.com/vovakirdan/ag3/internal/core"
	"github.com/vovakirdan/ag3/internal/game"
	"github.com/vovakirdan/ag3/internal/screens"
)

type recordingPublisher struct {
	snaps []game.Snapshot
}

func (p *recordingPublisher) Publish(v any) {
	if snap, ok := v.(game.Snapshot); ok {
		p.snaps = append(p.snaps, snap)
	}
}

func newTestModel(t *testing.T) (Model, *game.Game, *recordingPublisher) {
	t.Helper()
	g := game.New(game.Options{Config: config.Default(), Seed: 7})
	pub := &recordingPublisher{}
	view := core.Viewport{Width: 100, Height: 40, FPS: 60}
	return NewModel(g, view, pub), g, pub
}

// startPlaying drives g straight into PLAYING.
func startPlaying(t *testing.T, g *game.Game) time.Time {
	t.Helper()
	now := time.Now()
	g.HandleAction(core.ActionAny, now)
	eff := g.HandleAction(core.ActionConfirm, now)
	for eff.Countdown != nil {
		eff = g.CountdownStep(eff.Countdown.Gen, now)
	}
	if g.State() != screens.Playing {
		t.Fatalf("State = %v, expected PLAYING", g.State())
	}
	return now
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelSplashAndLaunch(t *testing.T) {
	m, g, _ := newTestModel(t)

	m, _ = update(t, m, runes("x"))
	if g.State() != screens.Start {
		t.Fatalf("State = %v, expected START", g.State())
	}

	_, cmd := update(t, m, runes(" "))
	if g.State() != screens.Countdown {
		t.Errorf("Space on START should launch, state = %v", g.State())
	}
	if cmd == nil {
		t.Error("Launching should schedule the countdown")
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("Quit should return a command")
	}
	if v := m.View(); v != "" {
		t.Errorf("View() after quit = %q, expected empty", v)
	}
}

func TestModelBoostExpiry(t *testing.T) {
	m, g, _ := newTestModel(t)
	startPlaying(t, g)

	m, _ = update(t, m, runes(" "))
	m, _ = update(t, m, runes(" "))
	if !g.Boosted() {
		t.Fatal("Space during play should boost")
	}

	m, _ = update(t, m, BoostExpireMsg{Seq: 1})
	if !g.Boosted() {
		t.Error("An expiry armed before the latest repeat should be ignored")
	}

	update(t, m, BoostExpireMsg{Seq: 2})
	if g.Boosted() {
		t.Error("The latest expiry should release boost")
	}
}

func TestModelFramePublishes(t *testing.T) {
	m, g, pub := newTestModel(t)
	now := startPlaying(t, g)

	m, _ = update(t, m, FrameMsg(now.Add(time.Second)))
	if len(pub.snaps) != 1 {
		t.Fatalf("Published %d snapshots, expected 1", len(pub.snaps))
	}
	if pub.snaps[0].Tick != 1 {
		t.Errorf("Snapshot tick = %d, expected 1", pub.snaps[0].Tick)
	}

	// No tick due: nothing new to publish.
	update(t, m, FrameMsg(now.Add(time.Second)))
	if len(pub.snaps) != 1 {
		t.Errorf("Published %d snapshots, expected no repeat", len(pub.snaps))
	}
}

func TestModelStaleAdvice(t *testing.T) {
	m, g, _ := newTestModel(t)
	startPlaying(t, g)

	update(t, m, AdviceMsg(advice.Response{ID: 999, Text: "STALE"}))
	if g.AdviceText() == "STALE" {
		t.Error("A response for an unknown request should be dropped")
	}
}

func TestModelViewAndResize(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(m.View(), "WINDOW TOO SMALL") {
		t.Error("A small window should show the size notice")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(m.View(), "AG~3_SCORE") {
		t.Error("View() should include the HUD")
	}
}
