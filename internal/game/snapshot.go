package game

import (
	"github.com/vovakirdan/ag3/internal/core"
	"github.com/vovakirdan/ag3/internal/session"
	"github.com/vovakirdan/ag3/internal/snake"
)

// Snapshot is the world state handed to renderers and spectators.
type Snapshot struct {
	Tick       uint64         `json:"tick"`
	State      string         `json:"state"`
	Countdown  int            `json:"countdown,omitempty"`
	Grid       core.Grid      `json:"grid"`
	Snake      []core.Point   `json:"snake"`
	Direction  string         `json:"direction"`
	Food       snake.Food     `json:"food"`
	Obstacles  []core.Point   `json:"obstacles"`
	Score      int            `json:"score"`
	HighScore  int            `json:"high_score"`
	Difficulty string         `json:"difficulty"`
	Theme      string         `json:"theme"`
	Boosted    bool           `json:"boosted"`
	Advice     string         `json:"advice"`
	Stats      *session.Stats `json:"stats,omitempty"`
	NewRecord  bool           `json:"new_record,omitempty"`
	Cause      string         `json:"cause,omitempty"`
}

// Snapshot captures the current world state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.ticks,
		State:      g.machine.State().String(),
		Countdown:  g.machine.Countdown(),
		Grid:       g.cfg.Grid,
		Snake:      g.sim.Body(),
		Direction:  g.sim.Direction().String(),
		Food:       g.sim.Food(),
		Obstacles:  g.sim.Obstacles().Points(),
		Score:      g.tracker.Score(),
		HighScore:  g.tracker.HighScore(),
		Difficulty: g.Difficulty().Name,
		Theme:      g.Theme().Name,
		Boosted:    g.driver.Boosted(),
		Advice:     g.adviceText,
		NewRecord:  g.newRecord,
		Cause:      string(g.sim.Cause()),
	}
	if g.stats != nil {
		stats := *g.stats
		snap.Stats = &stats
	}
	return snap
}
