package session

import (
	"testing"
	"time"
)

func TestAddPoints(t *testing.T) {
	tr := NewTracker(0)

	if got := tr.AddPoints(false); got != 10 {
		t.Errorf("AddPoints(false) = %d, expected 10", got)
	}
	if got := tr.AddPoints(true); got != 60 {
		t.Errorf("AddPoints(true) = %d, expected 60", got)
	}
	if tr.Score() != 60 {
		t.Errorf("Score() = %d, expected 60", tr.Score())
	}

	tr.Reset()
	if tr.Score() != 0 {
		t.Errorf("Score() after Reset = %d, expected 0", tr.Score())
	}
}

func TestRecordDeath(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		elapse time.Duration
		score  int
		length int
		want   Stats
	}{
		{"normal run", 20 * time.Second, 100, 13, Stats{DurationSeconds: 20, Growth: 10, Efficiency: 50}},
		{"fraction floors", 7*time.Second + 900*time.Millisecond, 30, 6, Stats{DurationSeconds: 7, Growth: 3, Efficiency: 42}},
		{"instant death", 300 * time.Millisecond, 0, 3, Stats{DurationSeconds: 0, Growth: 0, Efficiency: 0}},
		{"sub-second score uses one second", 500 * time.Millisecond, 10, 4, Stats{DurationSeconds: 0, Growth: 1, Efficiency: 100}},
	}

	tr := NewTracker(0)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tr.RecordDeath(start, start.Add(tc.elapse), tc.score, tc.length)
			if got != tc.want {
				t.Errorf("RecordDeath() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestCommitHighScore(t *testing.T) {
	tr := NewTracker(100)

	if tr.CommitHighScore(100) {
		t.Error("Equal score should not replace the high score")
	}
	if tr.CommitHighScore(90) {
		t.Error("Lower score should not replace the high score")
	}
	if !tr.CommitHighScore(150) {
		t.Error("Higher score should replace the high score")
	}
	if tr.HighScore() != 150 {
		t.Errorf("HighScore() = %d, expected 150", tr.HighScore())
	}
}

func TestSetHighScoreClampsNegative(t *testing.T) {
	tr := NewTracker(-5)
	if tr.HighScore() != 0 {
		t.Errorf("HighScore() = %d, expected 0", tr.HighScore())
	}
	tr.SetHighScore(40)
	if tr.HighScore() != 40 {
		t.Errorf("HighScore() = %d, expected 40", tr.HighScore())
	}
}
