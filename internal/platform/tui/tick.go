// Package tui runs AG~3 in a terminal through Bubble Tea, locally or over SSH.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ag3/internal/advice"
	"github.com/vovakirdan/ag3/internal/game"
)

// FrameMsg drives one render frame.
type FrameMsg time.Time

// CountdownMsg fires a countdown step armed under Gen.
type CountdownMsg struct {
	Gen uint64
}

// AdviceMsg carries a finished advice fetch.
type AdviceMsg advice.Response

// BoostExpireMsg releases boost unless the boost key repeated since Seq was
// armed.
type BoostExpireMsg struct {
	Seq uint64
}

// frameCmd schedules the next frame after interval.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func countdownCmd(t *game.CountdownTimer) tea.Cmd {
	gen := t.Gen
	return tea.Tick(t.After, func(time.Time) tea.Msg {
		return CountdownMsg{Gen: gen}
	})
}

func boostExpireCmd(hold time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(hold, func(time.Time) tea.Msg {
		return BoostExpireMsg{Seq: seq}
	})
}

// adviceCmd fetches advice off the update loop, bounded by the game's
// advice timeout.
func adviceCmd(g *game.Game, req advice.Request) tea.Cmd {
	timeout := g.AdviceTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return AdviceMsg(g.FetchAdvice(ctx, req))
	}
}
