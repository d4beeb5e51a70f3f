package snake

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/ag3/internal/core"
)

// stuckRand always proposes (0, 0) and a fixed bonus draw, forcing the
// exhaustive fallback whenever (0, 0) is occupied.
type stuckRand struct {
	f float64
}

func (r stuckRand) Intn(n int) int   { return 0 }
func (r stuckRand) Float64() float64 { return r.f }

func TestPlaceFoodAvoidsOccupiedCells(t *testing.T) {
	body := StartingBody(10, 10)
	obstacles := ComputeObstacles(CornerThreshold, defaultGrid)

	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		food, err := PlaceFood(body, obstacles, defaultGrid, rng)
		if err != nil {
			t.Fatalf("seed %d: PlaceFood() error: %v", seed, err)
		}
		if core.Contains(body, food.Pos) {
			t.Errorf("seed %d: food placed on snake at %v", seed, food.Pos)
		}
		if obstacles.Has(food.Pos) {
			t.Errorf("seed %d: food placed on obstacle at %v", seed, food.Pos)
		}
		if !defaultGrid.InBounds(food.Pos) {
			t.Errorf("seed %d: food out of bounds at %v", seed, food.Pos)
		}
	}
}

func TestPlaceFoodFallbackFindsLastCell(t *testing.T) {
	g := core.Grid{Width: 3, Height: 3}
	var body []core.Point
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 2 && y == 1 {
				continue
			}
			body = append(body, core.Point{X: x, Y: y})
		}
	}

	food, err := PlaceFood(body, nil, g, stuckRand{f: 0.9})
	if err != nil {
		t.Fatalf("PlaceFood() error: %v", err)
	}
	if food.Pos != (core.Point{X: 2, Y: 1}) {
		t.Errorf("Food = %v, expected the only free cell (2, 1)", food.Pos)
	}
}

func TestPlaceFoodBoardFull(t *testing.T) {
	g := core.Grid{Width: 2, Height: 2}
	body := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	obstacles := ObstacleSet{{X: 0, Y: 1}: {}}

	_, err := PlaceFood(body, obstacles, g, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoSpaceAvailable) {
		t.Errorf("Expected ErrNoSpaceAvailable, got %v", err)
	}
}

func TestPlaceFoodBonusDraw(t *testing.T) {
	g := core.Grid{Width: 5, Height: 5}

	food, err := PlaceFood(nil, nil, g, stuckRand{f: 0.10})
	if err != nil {
		t.Fatalf("PlaceFood() error: %v", err)
	}
	if !food.Bonus {
		t.Error("A draw below 0.15 should produce bonus food")
	}

	food, _ = PlaceFood(nil, nil, g, stuckRand{f: 0.15})
	if food.Bonus {
		t.Error("A draw of 0.15 or more should produce normal food")
	}
}

func TestPlaceFoodBonusRate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bonus := 0
	const n = 5000
	for i := 0; i < n; i++ {
		food, err := PlaceFood(nil, nil, defaultGrid, rng)
		if err != nil {
			t.Fatal(err)
		}
		if food.Bonus {
			bonus++
		}
	}
	rate := float64(bonus) / n
	if rate < 0.12 || rate > 0.18 {
		t.Errorf("Bonus rate = %.3f, expected about %.2f", rate, BonusChance)
	}
}

func TestComputeObstaclesThresholds(t *testing.T) {
	center := defaultGrid.Center()

	if obs := ComputeObstacles(0, defaultGrid); obs.Len() != 0 {
		t.Errorf("ComputeObstacles(0) should be empty, got %d cells", obs.Len())
	}
	if obs := ComputeObstacles(CrossThreshold-10, defaultGrid); obs.Len() != 0 {
		t.Errorf("Below the first threshold there should be no obstacles, got %d", obs.Len())
	}

	cross := ComputeObstacles(CrossThreshold, defaultGrid)
	if cross.Len() != 16 {
		t.Errorf("Cross should have 16 cells, got %d", cross.Len())
	}
	if cross.Has(center) {
		t.Error("Cross must leave the center cell open")
	}
	for _, p := range []core.Point{
		center.Add(4, 0), center.Add(-4, 0), center.Add(0, 4), center.Add(0, -4), center.Add(1, 0),
	} {
		if !cross.Has(p) {
			t.Errorf("Cross should contain %v", p)
		}
	}

	full := ComputeObstacles(CornerThreshold, defaultGrid)
	if full.Len() != 16+24 {
		t.Errorf("Cross plus corners should have 40 cells, got %d", full.Len())
	}
	corners := []core.Point{
		{X: 2, Y: 2}, {X: 7, Y: 2}, // top-left bar
		{X: 37, Y: 2}, {X: 32, Y: 2}, // top-right bar
		{X: 2, Y: 27}, {X: 37, Y: 27}, // bottom bars
	}
	for _, p := range corners {
		if !full.Has(p) {
			t.Errorf("Corner bars should contain %v", p)
		}
	}
}

func TestComputeObstaclesMonotonic(t *testing.T) {
	prev := ComputeObstacles(0, defaultGrid)
	for score := 10; score <= 500; score += 10 {
		cur := ComputeObstacles(score, defaultGrid)
		for p := range prev {
			if !cur.Has(p) {
				t.Fatalf("score %d dropped obstacle %v present at a lower score", score, p)
			}
		}
		prev = cur
	}
}

func TestComputeObstaclesDeterministic(t *testing.T) {
	a := ComputeObstacles(300, defaultGrid).Points()
	b := ComputeObstacles(300, defaultGrid).Points()
	if len(a) != len(b) {
		t.Fatalf("Lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestComputeObstaclesClipsSmallGrid(t *testing.T) {
	g := core.Grid{Width: 5, Height: 5}
	for p := range ComputeObstacles(CornerThreshold, g) {
		if !g.InBounds(p) {
			t.Errorf("Obstacle %v outside a 5x5 grid", p)
		}
	}
}
