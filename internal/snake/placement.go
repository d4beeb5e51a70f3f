package snake

import (
	"errors"
	"slices"

	"github.com/vovakirdan/ag3/internal/core"
)

const (
	// maxRandomAttempts bounds reject-sampling before the exhaustive scan.
	maxRandomAttempts = 200

	// BonusChance is the probability that newly placed food is bonus food.
	BonusChance = 0.15

	// Score thresholds that add obstacle patterns.
	CrossThreshold  = 100
	CornerThreshold = 250

	crossArm  = 4
	cornerBar = 6
	cornerIn  = 2
)

// ErrNoSpaceAvailable is returned when every cell is taken by snake or obstacles.
var ErrNoSpaceAvailable = errors.New("snake: no space available for food")

// Rand is the subset of *math/rand.Rand used for placement.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Food is the single edible item on the board.
type Food struct {
	Pos   core.Point `json:"pos"`
	Bonus bool       `json:"bonus"`
}

// ObstacleSet is a set of impassable cells.
type ObstacleSet map[core.Point]struct{}

// Has reports whether p is an obstacle.
func (o ObstacleSet) Has(p core.Point) bool {
	_, ok := o[p]
	return ok
}

// Len returns the number of obstacle cells.
func (o ObstacleSet) Len() int {
	return len(o)
}

// Points returns the obstacle cells in row-major order.
func (o ObstacleSet) Points() []core.Point {
	pts := make([]core.Point, 0, len(o))
	for p := range o {
		pts = append(pts, p)
	}
	slices.SortFunc(pts, func(a, b core.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return pts
}

func (o ObstacleSet) add(g core.Grid, p core.Point) {
	if g.InBounds(p) {
		o[p] = struct{}{}
	}
}

// ComputeObstacles derives the obstacle layout from the score.
// It is a pure function of score and grid: past CrossThreshold a centered
// cross appears (the center cell stays open), past CornerThreshold four
// corner bars are added. Higher scores never remove cells.
func ComputeObstacles(score int, g core.Grid) ObstacleSet {
	obs := make(ObstacleSet)

	if score >= CrossThreshold {
		mid := g.Center()
		for i := -crossArm; i <= crossArm; i++ {
			if i == 0 {
				continue
			}
			obs.add(g, core.Point{X: mid.X + i, Y: mid.Y})
			obs.add(g, core.Point{X: mid.X, Y: mid.Y + i})
		}
	}

	if score >= CornerThreshold {
		top := cornerIn
		bottom := g.Height - cornerIn - 1
		for i := 0; i < cornerBar; i++ {
			left := i + cornerIn
			right := g.Width - i - cornerIn - 1
			obs.add(g, core.Point{X: left, Y: top})
			obs.add(g, core.Point{X: right, Y: top})
			obs.add(g, core.Point{X: left, Y: bottom})
			obs.add(g, core.Point{X: right, Y: bottom})
		}
	}

	return obs
}

// PlaceFood picks a free cell for the next food item.
// It tries uniform random cells first, then falls back to a uniform pick over
// an exhaustive list of free cells. The bonus flag is a separate draw.
func PlaceFood(body []core.Point, obstacles ObstacleSet, g core.Grid, rng Rand) (Food, error) {
	occupied := make(map[core.Point]struct{}, len(body))
	for _, p := range body {
		occupied[p] = struct{}{}
	}
	free := func(p core.Point) bool {
		if _, ok := occupied[p]; ok {
			return false
		}
		return !obstacles.Has(p)
	}

	if g.Width <= 0 || g.Height <= 0 {
		return Food{}, ErrNoSpaceAvailable
	}

	for i := 0; i < maxRandomAttempts; i++ {
		p := core.Point{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
		if free(p) {
			return Food{Pos: p, Bonus: rng.Float64() < BonusChance}, nil
		}
	}

	var available []core.Point
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			p := core.Point{X: x, Y: y}
			if free(p) {
				available = append(available, p)
			}
		}
	}

	if len(available) == 0 {
		return Food{}, ErrNoSpaceAvailable
	}

	p := available[rng.Intn(len(available))]
	return Food{Pos: p, Bonus: rng.Float64() < BonusChance}, nil
}
