// Package snake implements the grid simulation: snake movement, collision
// resolution, food placement and score-keyed obstacles.
package snake

import (
	"errors"
	"slices"

	"github.com/vovakirdan/ag3/internal/core"
)

// InitialLength is the body length at the start of a run.
const InitialLength = 3

// ErrDead is returned by Tick once the snake has died.
var ErrDead = errors.New("snake: simulation is over")

// OutcomeKind classifies the result of one tick.
type OutcomeKind int

const (
	Moved OutcomeKind = iota
	Ate
	Died
)

func (k OutcomeKind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Died:
		return "died"
	default:
		return "unknown"
	}
}

// DeathCause names what the head ran into.
type DeathCause string

const (
	CauseNone      DeathCause = ""
	CauseWall      DeathCause = "wall"
	CauseSelf      DeathCause = "self"
	CauseObstacle  DeathCause = "obstacle"
	CauseBoardFull DeathCause = "board full"
)

// Outcome is the result of a single tick.
type Outcome struct {
	Kind  OutcomeKind
	Bonus bool       // set when Kind == Ate
	Cause DeathCause // set when Kind == Died
}

// CollisionRule selects how the self-collision check treats the tail.
type CollisionRule int

const (
	// CollideWithTail counts the current tail cell as occupied even though it
	// is vacated on a non-growing move. A snake can never step into the cell
	// its tail occupies.
	CollideWithTail CollisionRule = iota
	// TailVacates excludes the tail cell from the self-collision check.
	TailVacates
)

// Simulation owns the snake body and heading for one run.
type Simulation struct {
	grid      core.Grid
	rule      CollisionRule
	body      []core.Point // head at index 0
	direction core.Direction
	food      Food
	obstacles ObstacleSet
	dead      bool
	cause     DeathCause
}

// NewSimulation creates a live simulation with the given body, head first.
func NewSimulation(g core.Grid, body []core.Point, dir core.Direction, rule CollisionRule) *Simulation {
	return &Simulation{
		grid:      g,
		rule:      rule,
		body:      slices.Clone(body),
		direction: dir,
		food:      Food{Pos: core.Point{X: -1, Y: -1}},
		obstacles: make(ObstacleSet),
	}
}

// StartingBody returns the default three-cell body heading right, with the
// head at (x, y).
func StartingBody(x, y int) []core.Point {
	body := make([]core.Point, InitialLength)
	for i := range body {
		body[i] = core.Point{X: x - i, Y: y}
	}
	return body
}

// Tick advances the snake one cell.
//
// The pending direction is committed unless it reverses the current heading.
// Death checks run against the new head in order: wall, self, obstacle.
// On death the body is left untouched and every later call returns ErrDead.
func (s *Simulation) Tick(pending core.Direction) (Outcome, error) {
	if s.dead {
		return Outcome{Kind: Died, Cause: s.cause}, ErrDead
	}
	if len(s.body) == 0 {
		return Outcome{}, errors.New("snake: empty body")
	}

	if !core.IsOpposite(pending, s.direction) {
		s.direction = pending
	}

	dx, dy := s.direction.Delta()
	head := s.body[0].Add(dx, dy)

	if cause := s.collision(head); cause != CauseNone {
		s.dead = true
		s.cause = cause
		return Outcome{Kind: Died, Cause: cause}, nil
	}

	s.body = append([]core.Point{head}, s.body...)

	if head == s.food.Pos {
		return Outcome{Kind: Ate, Bonus: s.food.Bonus}, nil
	}

	s.body = s.body[:len(s.body)-1]
	return Outcome{Kind: Moved}, nil
}

// collision returns the first death cause for a head at p.
func (s *Simulation) collision(p core.Point) DeathCause {
	if !s.grid.InBounds(p) {
		return CauseWall
	}

	checkLen := len(s.body)
	if s.rule == TailVacates && p != s.food.Pos {
		checkLen-- // tail leaves this tick
	}
	if core.Contains(s.body[:checkLen], p) {
		return CauseSelf
	}

	if s.obstacles.Has(p) {
		return CauseObstacle
	}
	return CauseNone
}

// Kill marks the simulation dead without moving, for terminal conditions
// found outside the tick (a full board).
func (s *Simulation) Kill(cause DeathCause) {
	s.dead = true
	s.cause = cause
}

// SetFood replaces the current food item.
func (s *Simulation) SetFood(f Food) {
	s.food = f
}

// SetObstacles replaces the obstacle set.
func (s *Simulation) SetObstacles(o ObstacleSet) {
	s.obstacles = o
}

// Body returns a copy of the body, head first.
func (s *Simulation) Body() []core.Point {
	return slices.Clone(s.body)
}

// Len returns the body length.
func (s *Simulation) Len() int {
	return len(s.body)
}

// Head returns the head cell.
func (s *Simulation) Head() core.Point {
	return s.body[0]
}

// Direction returns the committed heading.
func (s *Simulation) Direction() core.Direction {
	return s.direction
}

// Food returns the current food item.
func (s *Simulation) Food() Food {
	return s.food
}

// Obstacles returns the current obstacle set.
func (s *Simulation) Obstacles() ObstacleSet {
	return s.obstacles
}

// Alive reports whether the snake can still move.
func (s *Simulation) Alive() bool {
	return !s.dead
}

// Cause returns the death cause, or CauseNone while alive.
func (s *Simulation) Cause() DeathCause {
	return s.cause
}
