// Package session tracks score, high score and end-of-run statistics.
package session

import (
	"math"
	"time"

	"github.com/vovakirdan/ag3/internal/snake"
)

// Points awarded per food item.
const (
	FoodPoints  = 10
	BonusPoints = 50
)

// Stats summarises a finished run. It is computed once at death.
type Stats struct {
	DurationSeconds int `json:"duration_seconds"`
	Growth          int `json:"growth"`
	Efficiency      int `json:"efficiency"`
}

// Tracker holds the score for the current run and the persisted high score.
type Tracker struct {
	score     int
	highScore int
}

// NewTracker creates a tracker seeded with a previously persisted high score.
func NewTracker(highScore int) *Tracker {
	return &Tracker{highScore: max(highScore, 0)}
}

// AddPoints credits one food item and returns the new score.
func (t *Tracker) AddPoints(bonus bool) int {
	if bonus {
		t.score += BonusPoints
	} else {
		t.score += FoodPoints
	}
	return t.score
}

// RecordDeath computes the stats for a run that started at start and ended
// at now. Durations under a second count as one second for efficiency.
func (t *Tracker) RecordDeath(start, now time.Time, score, length int) Stats {
	dur := int(now.Sub(start) / time.Second)
	if dur < 0 {
		dur = 0
	}
	return Stats{
		DurationSeconds: dur,
		Growth:          length - snake.InitialLength,
		Efficiency:      int(math.Floor(float64(score) / float64(max(dur, 1)) * 10)),
	}
}

// CommitHighScore raises the high score if score beats it and reports
// whether it did.
func (t *Tracker) CommitHighScore(score int) bool {
	if score > t.highScore {
		t.highScore = score
		return true
	}
	return false
}

// Reset clears the run score. The high score is kept.
func (t *Tracker) Reset() {
	t.score = 0
}

// SetHighScore replaces the high score, used when loading from storage.
func (t *Tracker) SetHighScore(v int) {
	t.highScore = max(v, 0)
}

// Score returns the current run score.
func (t *Tracker) Score() int { return t.score }

// HighScore returns the best score seen so far.
func (t *Tracker) HighScore() int { return t.highScore }
