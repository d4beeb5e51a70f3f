// Package audio defines the fire-and-forget sound cues the game emits.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Cue is a sound event.
type Cue int

const (
	Eat Cue = iota
	Death
	Tick
	Go
	MenuSelect
)

func (c Cue) String() string {
	switch c {
	case Eat:
		return "eat"
	case Death:
		return "death"
	case Tick:
		return "tick"
	case Go:
		return "go"
	case MenuSelect:
		return "menu-select"
	default:
		return "unknown"
	}
}

// Tone is one oscillator burst making up a cue.
type Tone struct {
	Hz       float64
	Wave     string
	Duration time.Duration
	Volume   float64
}

var tones = map[Cue][]Tone{
	Eat:        {{600, "square", 100 * time.Millisecond, 0.1}, {800, "square", 50 * time.Millisecond, 0.05}},
	Death:      {{150, "sawtooth", 500 * time.Millisecond, 0.2}, {100, "sine", 500 * time.Millisecond, 0.3}},
	Tick:       {{1000, "sine", 20 * time.Millisecond, 0.05}},
	Go:         {{1200, "square", 300 * time.Millisecond, 0.1}},
	MenuSelect: {{400, "sine", 100 * time.Millisecond, 0.05}},
}

// Tones returns the synth description of c.
func (c Cue) Tones() []Tone {
	return tones[c]
}

// Sink plays cues. Play must not block the caller.
type Sink interface {
	Play(Cue)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue) {}

// Bell rings the terminal bell for the cues that matter during play.
// Tick and menu cues are too frequent for a bell and are skipped.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell sink writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(c Cue) {
	switch c {
	case Eat, Death, Go:
	default:
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.w.Write([]byte{'\a'}) //nolint:errcheck
}

// Logger records each cue at debug level.
type Logger struct {
	log *log.Logger
}

// NewLogger creates a logging sink.
func NewLogger(l *log.Logger) *Logger {
	return &Logger{log: l}
}

func (l *Logger) Play(c Cue) {
	tones := c.Tones()
	if len(tones) == 0 {
		l.log.Debug("cue", "name", c)
		return
	}
	l.log.Debug("cue", "name", c, "hz", tones[0].Hz, "wave", tones[0].Wave, "tones", len(tones))
}

// Multi fans a cue out to several sinks.
type Multi []Sink

func (m Multi) Play(c Cue) {
	for _, s := range m {
		s.Play(c)
	}
}
