// Package game runs one AG~3 session: it owns the simulation state, the
// screen machine and the tick driver, and tells the platform which
// asynchronous work to schedule.
package game

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ag3/internal/advice"
	"github.com/vovakirdan/ag3/internal/audio"
	"github.com/vovakirdan/ag3/internal/config"
	"github.com/vovakirdan/ag3/internal/core"
	"github.com/vovakirdan/ag3/internal/loop"
	"github.com/vovakirdan/ag3/internal/screens"
	"github.com/vovakirdan/ag3/internal/session"
	"github.com/vovakirdan/ag3/internal/snake"
	"github.com/vovakirdan/ag3/internal/storage"
)

// Persistence stores the high score and the run history.
type Persistence interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
	RecordRun(r storage.Run) error
}

// Options configures a Game. Zero values are usable: no persistence, no
// audio, no advice and a discarding logger.
type Options struct {
	Config config.Config
	Seed   int64
	Store  Persistence
	Audio  audio.Sink
	Advice advice.Generator
	Logger *log.Logger
}

// CountdownTimer asks the platform to call CountdownStep(Gen) after After.
type CountdownTimer struct {
	Gen   uint64
	After time.Duration
}

// Effects lists the asynchronous work the platform must schedule after a
// call into the game.
type Effects struct {
	Countdown *CountdownTimer
	Advice    *advice.Request
	Quit      bool
}

// Game is the orchestrator for one player.
// It is not safe for concurrent use; the platform drives it from a single
// update loop.
type Game struct {
	cfg     config.Config
	rng     *rand.Rand
	store   Persistence
	sink    audio.Sink
	log     *log.Logger
	desk    *advice.Desk
	machine *screens.Machine
	driver  *loop.Driver
	tracker *session.Tracker
	sim     *snake.Simulation
	rule    snake.CollisionRule

	pending    core.Direction
	difficulty int
	theme      int
	cursor     map[screens.State]int

	adviceText string
	stats      *session.Stats
	newRecord  bool
	playStart  time.Time
	ticks      uint64

	rain *rain
}

// New creates a game in SPLASH and loads the high score.
// A failing store is logged and treated as a zero high score.
func New(opts Options) *Game {
	cfg := opts.Config
	if len(cfg.Difficulties) == 0 || len(cfg.Themes) == 0 {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sink := opts.Audio
	if sink == nil {
		sink = audio.Nop{}
	}

	rule := snake.CollideWithTail
	if cfg.Collision.TailVacates {
		rule = snake.TailVacates
	}

	g := &Game{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		store:      opts.Store,
		sink:       sink,
		log:        logger,
		desk:       advice.NewDesk(opts.Advice),
		machine:    screens.NewMachine(),
		tracker:    session.NewTracker(0),
		rule:       rule,
		pending:    core.DirRight,
		difficulty: max(cfg.DifficultyIndex(cfg.DefaultDifficulty), 0),
		theme:      max(cfg.ThemeIndex(cfg.DefaultTheme), 0),
		cursor:     make(map[screens.State]int),
		adviceText: advice.Initializing,
	}
	g.driver = loop.NewDriver(g.Difficulty().Period())
	g.rain = newRain(cfg.Grid, opts.Seed)
	g.resetBoard()

	if g.store != nil {
		hs, err := g.store.LoadHighScore()
		if err != nil {
			g.log.Warn("could not load high score", "error", err)
		}
		g.tracker.SetHighScore(hs)
	}

	return g
}

// Difficulty returns the selected difficulty.
func (g *Game) Difficulty() config.Difficulty {
	return g.cfg.Difficulties[g.difficulty]
}

// Theme returns the selected theme.
func (g *Game) Theme() config.Theme {
	return g.cfg.Themes[g.theme]
}

// SetDifficulty selects a difficulty by name. It is refused while a run is
// in progress.
func (g *Game) SetDifficulty(name string) bool {
	i := g.cfg.DifficultyIndex(name)
	if i < 0 || g.inRun() {
		return false
	}
	g.difficulty = i
	g.driver.SetBasePeriod(g.Difficulty().Period())
	return true
}

// SetTheme selects a theme by name.
func (g *Game) SetTheme(name string) bool {
	i := g.cfg.ThemeIndex(name)
	if i < 0 {
		return false
	}
	g.theme = i
	return true
}

// State returns the active screen.
func (g *Game) State() screens.State {
	return g.machine.State()
}

// Score returns the current run score.
func (g *Game) Score() int {
	return g.tracker.Score()
}

// HighScore returns the best score.
func (g *Game) HighScore() int {
	return g.tracker.HighScore()
}

// AdviceText returns the status line under the HUD.
func (g *Game) AdviceText() string {
	return g.adviceText
}

// Stats returns the stats of the last finished run, if any.
func (g *Game) Stats() (session.Stats, bool) {
	if g.stats == nil {
		return session.Stats{}, false
	}
	return *g.stats, true
}

// Boosted reports whether boost is held.
func (g *Game) Boosted() bool {
	return g.driver.Boosted()
}

// BoostHold is how long boost stays on without a repeat of the boost key.
func (g *Game) BoostHold() time.Duration {
	return g.cfg.Boost.Hold()
}

// AdviceTimeout bounds one advice fetch.
func (g *Game) AdviceTimeout() time.Duration {
	return g.cfg.Advice.Timeout()
}

// FetchAdvice performs an advice request. It may run off the update loop.
func (g *Game) FetchAdvice(ctx context.Context, req advice.Request) advice.Response {
	return g.desk.Fetch(ctx, req)
}

func (g *Game) inRun() bool {
	switch g.machine.State() {
	case screens.Countdown, screens.Playing, screens.Paused:
		return true
	}
	return false
}

// resetBoard puts a fresh snake, score, food and obstacle set in place.
func (g *Game) resetBoard() {
	grid := g.cfg.Grid
	startX := min(10, grid.Width/2)
	startY := min(10, grid.Height/2)

	g.sim = snake.NewSimulation(grid, snake.StartingBody(startX, startY), core.DirRight, g.rule)
	g.pending = core.DirRight
	g.tracker.Reset()
	g.ticks = 0

	obstacles := snake.ComputeObstacles(0, grid)
	g.sim.SetObstacles(obstacles)
	food, err := snake.PlaceFood(g.sim.Body(), obstacles, grid, g.rng)
	if err != nil {
		g.log.Error("cannot place initial food", "error", err)
		g.sim.Kill(snake.CauseBoardFull)
		return
	}
	g.sim.SetFood(food)
}

// HandleAction applies one player action.
func (g *Game) HandleAction(a core.Action, now time.Time) Effects {
	if a == core.ActionQuit {
		return Effects{Quit: true}
	}
	if a == core.ActionNone {
		return Effects{}
	}

	state := g.machine.State()
	if state == screens.Splash {
		if a != core.ActionBoostRelease {
			g.machine.Fire(screens.Any)
		}
		return Effects{}
	}

	if a == core.ActionCancel {
		g.cancel()
		return Effects{}
	}

	switch state {
	case screens.Start:
		return g.handleStart(a)
	case screens.LevelSelect:
		g.handleLevelSelect(a)
	case screens.Settings:
		g.handleSettings(a)
	case screens.Countdown:
		g.steer(a)
	case screens.Playing:
		g.handlePlaying(a)
	case screens.Paused:
		if a == core.ActionPause {
			g.machine.Fire(screens.TogglePause)
		}
	case screens.GameOver:
		return g.handleGameOver(a)
	}
	return Effects{}
}

func (g *Game) cancel() {
	tr := g.machine.Fire(screens.Cancel)
	if !tr.Changed {
		return
	}
	switch tr.From {
	case screens.Playing, screens.Paused:
		g.log.Info("run abandoned", "score", g.tracker.Score())
		g.desk.Invalidate()
	}
	g.driver.SetBoost(false)
	g.cursor[screens.Start] = 0
}

func (g *Game) steer(a core.Action) {
	d, ok := a.Direction()
	if !ok {
		return
	}
	if !core.IsOpposite(d, g.sim.Direction()) {
		g.pending = d
	}
}

func (g *Game) handlePlaying(a core.Action) {
	switch a {
	case core.ActionPause:
		g.driver.SetBoost(false)
		g.machine.Fire(screens.TogglePause)
	case core.ActionBoost:
		g.driver.SetBoost(true)
	case core.ActionBoostRelease:
		g.driver.SetBoost(false)
	default:
		g.steer(a)
	}
}

// launch resets the board and enters COUNTDOWN through in.
func (g *Game) launch(in screens.Input) Effects {
	g.resetBoard()
	g.adviceText = advice.Ready
	g.desk.Invalidate()
	g.stats = nil
	g.newRecord = false
	g.driver.SetBoost(false)

	if !g.machine.Fire(in).Entered(screens.Countdown) {
		return Effects{}
	}
	g.sink.Play(audio.Tick)
	return Effects{Countdown: g.countdownTimer()}
}

func (g *Game) countdownTimer() *CountdownTimer {
	return &CountdownTimer{Gen: g.machine.Generation(), After: screens.CountdownStep}
}

// CountdownStep advances the countdown armed under gen. Stale generations
// are ignored.
func (g *Game) CountdownStep(gen uint64, now time.Time) Effects {
	_, playing, ok := g.machine.StepCountdown(gen)
	if !ok {
		return Effects{}
	}
	if !playing {
		g.sink.Play(audio.Tick)
		return Effects{Countdown: g.countdownTimer()}
	}

	g.playStart = now
	g.driver.Reset(now)
	g.sink.Play(audio.Go)
	g.log.Info("run started",
		"difficulty", g.Difficulty().Name,
		"period", g.driver.Period(),
		"high_score", g.tracker.HighScore(),
	)
	return Effects{}
}

// Frame runs once per rendered frame.
func (g *Game) Frame(now time.Time) Effects {
	switch g.machine.State() {
	case screens.Splash:
		g.rain.step()
		return Effects{}
	case screens.Playing:
	default:
		return Effects{}
	}

	if !g.driver.Frame(now) {
		return Effects{}
	}
	return g.tick(now)
}

func (g *Game) tick(now time.Time) Effects {
	out, err := g.sim.Tick(g.pending)
	if err != nil {
		if errors.Is(err, snake.ErrDead) {
			g.log.Warn("tick after death", "cause", out.Cause)
		}
		return Effects{}
	}
	g.ticks++

	switch out.Kind {
	case snake.Ate:
		return g.eat(out.Bonus, now)
	case snake.Died:
		g.die(now)
	}
	return Effects{}
}

func (g *Game) eat(bonus bool, now time.Time) Effects {
	score := g.tracker.AddPoints(bonus)
	grid := g.cfg.Grid

	obstacles := snake.ComputeObstacles(score, grid)
	g.sim.SetObstacles(obstacles)
	g.sink.Play(audio.Eat)

	food, err := snake.PlaceFood(g.sim.Body(), obstacles, grid, g.rng)
	if errors.Is(err, snake.ErrNoSpaceAvailable) {
		g.log.Info("board full", "score", score)
		g.sim.Kill(snake.CauseBoardFull)
		g.die(now)
		return Effects{}
	}
	g.sim.SetFood(food)

	var eff Effects
	if advice.IsMilestone(score) && g.desk.Enabled() {
		req := g.desk.Request(score, g.Difficulty().Name)
		eff.Advice = &req
	}
	return eff
}

// die resolves the end of a run: stats, high score, persistence, screen.
func (g *Game) die(now time.Time) {
	score := g.tracker.Score()
	stats := g.tracker.RecordDeath(g.playStart, now, score, g.sim.Len())
	g.stats = &stats
	g.newRecord = g.tracker.CommitHighScore(score)

	if g.store != nil {
		if g.newRecord {
			if err := g.store.SaveHighScore(score); err != nil {
				g.log.Warn("could not save high score", "error", err)
			}
		}
		run := storage.Run{
			Score:        score,
			DurationSecs: stats.DurationSeconds,
			Growth:       stats.Growth,
			Efficiency:   stats.Efficiency,
			Difficulty:   g.Difficulty().Name,
			Cause:        string(g.sim.Cause()),
		}
		if err := g.store.RecordRun(run); err != nil {
			g.log.Warn("could not record run", "error", err)
		}
	}

	g.driver.SetBoost(false)
	g.machine.Fire(screens.Died)
	g.cursor[screens.GameOver] = 0
	g.sink.Play(audio.Death)
	g.log.Info("flatlined",
		"cause", g.sim.Cause(),
		"score", score,
		"duration", stats.DurationSeconds,
		"new_record", g.newRecord,
	)
}

// ApplyAdvice shows resp if it answers the latest request.
func (g *Game) ApplyAdvice(resp advice.Response) bool {
	if !g.desk.Accept(resp) {
		return false
	}
	if resp.Err != nil {
		g.log.Debug("advice fallback", "error", resp.Err)
	}
	g.adviceText = resp.Text
	return true
}
