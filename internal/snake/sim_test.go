package snake

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/ag3/internal/core"
)

var defaultGrid = core.Grid{Width: 40, Height: 30}

func newTestSim(body []core.Point, dir core.Direction) *Simulation {
	s := NewSimulation(defaultGrid, body, dir, CollideWithTail)
	s.SetFood(Food{Pos: core.Point{X: 30, Y: 20}})
	return s
}

func TestTickMoved(t *testing.T) {
	s := newTestSim(StartingBody(10, 10), core.DirRight)

	out, err := s.Tick(core.DirRight)
	if err != nil {
		t.Fatalf("Tick() error: %v", err)
	}
	if out.Kind != Moved {
		t.Fatalf("Expected Moved, got %v", out.Kind)
	}

	expected := []core.Point{{X: 11, Y: 10}, {X: 10, Y: 10}, {X: 9, Y: 10}}
	if !slices.Equal(s.Body(), expected) {
		t.Errorf("Body = %v, expected %v", s.Body(), expected)
	}
}

func TestTickAte(t *testing.T) {
	s := newTestSim(StartingBody(10, 10), core.DirRight)
	s.SetFood(Food{Pos: core.Point{X: 11, Y: 10}, Bonus: true})

	out, err := s.Tick(core.DirRight)
	if err != nil {
		t.Fatalf("Tick() error: %v", err)
	}
	if out.Kind != Ate || !out.Bonus {
		t.Fatalf("Expected Ate(bonus), got %+v", out)
	}

	expected := []core.Point{{X: 11, Y: 10}, {X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}
	if !slices.Equal(s.Body(), expected) {
		t.Errorf("Body = %v, expected %v", s.Body(), expected)
	}
}

func TestTickWallDeath(t *testing.T) {
	tests := []struct {
		name string
		body []core.Point
		dir  core.Direction
	}{
		{"left wall x=-1", []core.Point{{X: 0, Y: 10}, {X: 1, Y: 10}, {X: 2, Y: 10}}, core.DirLeft},
		{"right wall x=width", []core.Point{{X: 39, Y: 10}, {X: 38, Y: 10}, {X: 37, Y: 10}}, core.DirRight},
		{"top wall", []core.Point{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}}, core.DirUp},
		{"bottom wall", []core.Point{{X: 5, Y: 29}, {X: 5, Y: 28}, {X: 5, Y: 27}}, core.DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSim(tc.body, tc.dir)
			out, err := s.Tick(tc.dir)
			if err != nil {
				t.Fatalf("Tick() error: %v", err)
			}
			if out.Kind != Died || out.Cause != CauseWall {
				t.Errorf("Expected Died(wall), got %+v", out)
			}
			if s.Alive() {
				t.Error("Simulation should be dead")
			}
		})
	}
}

func TestTickObstacleDeath(t *testing.T) {
	s := newTestSim(StartingBody(10, 10), core.DirRight)
	s.SetObstacles(ObstacleSet{{X: 11, Y: 10}: {}})

	out, _ := s.Tick(core.DirRight)
	if out.Kind != Died || out.Cause != CauseObstacle {
		t.Errorf("Expected Died(obstacle), got %+v", out)
	}
}

func TestTickSelfCollision(t *testing.T) {
	// Head at (5,5) heading left; the body curls round so Down hits (5,6).
	body := []core.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 4, Y: 6}}
	s := newTestSim(body, core.DirLeft)

	out, _ := s.Tick(core.DirDown)
	if out.Kind != Died || out.Cause != CauseSelf {
		t.Errorf("Expected Died(self), got %+v", out)
	}
}

// The default rule treats the tail cell as occupied even though it would be
// vacated this tick. This is a known conservative choice.
func TestTickIntoTailIsConservative(t *testing.T) {
	body := []core.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}

	strict := newTestSim(body, core.DirLeft)
	out, _ := strict.Tick(core.DirDown)
	if out.Kind != Died || out.Cause != CauseSelf {
		t.Errorf("CollideWithTail: expected Died(self) moving into tail, got %+v", out)
	}

	relaxed := NewSimulation(defaultGrid, body, core.DirLeft, TailVacates)
	relaxed.SetFood(Food{Pos: core.Point{X: 30, Y: 20}})
	out, _ = relaxed.Tick(core.DirDown)
	if out.Kind != Moved {
		t.Fatalf("TailVacates: expected Moved into vacated tail, got %+v", out)
	}
	expected := []core.Point{{X: 5, Y: 6}, {X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}}
	if !slices.Equal(relaxed.Body(), expected) {
		t.Errorf("Body = %v, expected %v", relaxed.Body(), expected)
	}
}

func TestTailVacatesStillCollidesWhenGrowing(t *testing.T) {
	body := []core.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}
	s := NewSimulation(defaultGrid, body, core.DirLeft, TailVacates)
	// Food on the tail cell means the tail stays put.
	s.SetFood(Food{Pos: core.Point{X: 5, Y: 6}})

	out, _ := s.Tick(core.DirDown)
	if out.Kind != Died || out.Cause != CauseSelf {
		t.Errorf("Expected Died(self) when the tail does not move, got %+v", out)
	}
}

func TestDiedFreezesBody(t *testing.T) {
	body := []core.Point{{X: 39, Y: 10}, {X: 38, Y: 10}, {X: 37, Y: 10}}
	s := newTestSim(body, core.DirRight)

	if out, _ := s.Tick(core.DirRight); out.Kind != Died {
		t.Fatalf("Expected Died, got %v", out.Kind)
	}
	if !slices.Equal(s.Body(), body) {
		t.Errorf("Body changed on death: %v", s.Body())
	}

	out, err := s.Tick(core.DirUp)
	if !errors.Is(err, ErrDead) {
		t.Errorf("Expected ErrDead after death, got %v", err)
	}
	if out.Kind != Died || out.Cause != CauseWall {
		t.Errorf("Expected repeated Died(wall), got %+v", out)
	}
	if !slices.Equal(s.Body(), body) {
		t.Errorf("Body changed after terminal tick: %v", s.Body())
	}
}

func TestReversalIgnored(t *testing.T) {
	s := newTestSim(StartingBody(10, 10), core.DirRight)

	out, err := s.Tick(core.DirLeft)
	if err != nil || out.Kind != Moved {
		t.Fatalf("Reversal should be ignored and the snake keep moving, got %+v, %v", out, err)
	}
	if s.Head() != (core.Point{X: 11, Y: 10}) {
		t.Errorf("Head = %v, expected (11, 10)", s.Head())
	}
	if s.Direction() != core.DirRight {
		t.Errorf("Direction = %v, expected right", s.Direction())
	}
}

func TestLengthInvariantWhileMoving(t *testing.T) {
	s := newTestSim(StartingBody(10, 10), core.DirRight)
	route := []core.Direction{core.DirRight, core.DirDown, core.DirLeft, core.DirUp}

	for lap := 0; lap < 3; lap++ {
		for _, d := range route {
			for step := 0; step < 4; step++ {
				out, err := s.Tick(d)
				if err != nil || out.Kind != Moved {
					t.Fatalf("lap %d: expected Moved heading %v, got %+v, %v", lap, d, out, err)
				}
				if s.Len() != InitialLength {
					t.Fatalf("Length changed to %d on a Moved tick", s.Len())
				}
			}
		}
	}
}

func TestAteGrowsByOne(t *testing.T) {
	s := newTestSim(StartingBody(10, 10), core.DirRight)

	for i := 1; i <= 5; i++ {
		before := s.Len()
		next := s.Head().Add(1, 0)
		s.SetFood(Food{Pos: next})
		out, _ := s.Tick(core.DirRight)
		if out.Kind != Ate {
			t.Fatalf("Expected Ate, got %v", out.Kind)
		}
		if s.Len() != before+1 {
			t.Errorf("Length = %d, expected %d", s.Len(), before+1)
		}
	}
}

func TestKill(t *testing.T) {
	s := newTestSim(StartingBody(10, 10), core.DirRight)
	s.Kill(CauseBoardFull)

	if s.Alive() {
		t.Error("Kill should end the simulation")
	}
	if _, err := s.Tick(core.DirRight); !errors.Is(err, ErrDead) {
		t.Errorf("Expected ErrDead, got %v", err)
	}
	if s.Cause() != CauseBoardFull {
		t.Errorf("Cause = %q, expected %q", s.Cause(), CauseBoardFull)
	}
}
