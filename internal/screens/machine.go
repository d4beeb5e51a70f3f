// Package screens holds the screen state machine that gates gameplay.
package screens

import "time"

// State is the active screen.
type State int

const (
	Splash State = iota
	Start
	LevelSelect
	Settings
	Countdown
	Playing
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Splash:
		return "SPLASH"
	case Start:
		return "START"
	case LevelSelect:
		return "LEVEL_SELECT"
	case Settings:
		return "SETTINGS"
	case Countdown:
		return "COUNTDOWN"
	case Playing:
		return "PLAYING"
	case Paused:
		return "PAUSED"
	case GameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Input is an event fed to the machine.
type Input int

const (
	Any Input = iota
	Launch
	OpenLevelSelect
	OpenSettings
	Back
	Retry
	TogglePause
	Cancel
	Died
)

func (i Input) String() string {
	switch i {
	case Any:
		return "any"
	case Launch:
		return "launch"
	case OpenLevelSelect:
		return "level-select"
	case OpenSettings:
		return "settings"
	case Back:
		return "back"
	case Retry:
		return "retry"
	case TogglePause:
		return "toggle-pause"
	case Cancel:
		return "cancel"
	case Died:
		return "died"
	default:
		return "unknown"
	}
}

const (
	// CountdownStart is the first value shown on entering COUNTDOWN.
	CountdownStart = 3
	// CountdownStep is the interval between countdown values.
	CountdownStep = 800 * time.Millisecond
)

// transitions lists every edge that changes state. Pairs not listed are
// no-ops. SPLASH is handled separately since it leaves on any input.
var transitions = map[State]map[Input]State{
	Start: {
		Launch:          Countdown,
		OpenLevelSelect: LevelSelect,
		OpenSettings:    Settings,
	},
	LevelSelect: {
		Back:   Start,
		Cancel: Start,
	},
	Settings: {
		Back:   Start,
		Cancel: Start,
	},
	Countdown: {
		Cancel: Start,
	},
	Playing: {
		TogglePause: Paused,
		Died:        GameOver,
		Cancel:      Start,
	},
	Paused: {
		TogglePause: Playing,
		Cancel:      Start,
	},
	GameOver: {
		Retry:           Countdown,
		Back:            Start,
		OpenLevelSelect: LevelSelect,
		OpenSettings:    Settings,
		Cancel:          Start,
	},
}

// Transition describes the effect of one input.
type Transition struct {
	From    State
	To      State
	Changed bool
}

// Entered reports whether the transition moved into s.
func (t Transition) Entered(s State) bool {
	return t.Changed && t.To == s
}

// Machine owns the active screen and the countdown.
//
// Every state change bumps the generation, so a countdown timer armed for
// an earlier visit to COUNTDOWN is recognisably stale.
type Machine struct {
	state      State
	countdown  int
	generation uint64
}

// NewMachine returns a machine in SPLASH.
func NewMachine() *Machine {
	return &Machine{state: Splash}
}

// State returns the active screen.
func (m *Machine) State() State { return m.state }

// Countdown returns the value currently displayed in COUNTDOWN.
func (m *Machine) Countdown() int { return m.countdown }

// Generation identifies the current visit to the active state.
func (m *Machine) Generation() uint64 { return m.generation }

// Fire applies an input. Undefined pairs leave the state untouched.
func (m *Machine) Fire(in Input) Transition {
	from := m.state
	to := from

	if from == Splash {
		if in != Died {
			to = Start
		}
	} else if next, ok := transitions[from][in]; ok {
		to = next
	}

	if to == from {
		return Transition{From: from, To: to}
	}
	m.enter(to)
	return Transition{From: from, To: to, Changed: true}
}

func (m *Machine) enter(s State) {
	m.state = s
	m.generation++
	if s == Countdown {
		m.countdown = CountdownStart
	} else {
		m.countdown = 0
	}
}

// StepCountdown advances the countdown armed under generation gen.
// It returns ok=false for a stale generation or when not counting down.
// The step after 1 enters PLAYING and reports playing=true.
func (m *Machine) StepCountdown(gen uint64) (value int, playing bool, ok bool) {
	if m.state != Countdown || gen != m.generation {
		return 0, false, false
	}
	if m.countdown > 1 {
		m.countdown--
		return m.countdown, false, true
	}
	m.enter(Playing)
	return 0, true, true
}
