package screens

import "testing"

var allInputs = []Input{Any, Launch, OpenLevelSelect, OpenSettings, Back, Retry, TogglePause, Cancel, Died}
var allStates = []State{Splash, Start, LevelSelect, Settings, Countdown, Playing, Paused, GameOver}

func machineIn(s State) *Machine {
	m := NewMachine()
	m.enter(s)
	return m
}

func TestInitialState(t *testing.T) {
	m := NewMachine()
	if m.State() != Splash {
		t.Errorf("State() = %v, expected SPLASH", m.State())
	}
}

func TestSplashLeavesOnAnyInput(t *testing.T) {
	for _, in := range []Input{Any, Launch, Back, Cancel, TogglePause} {
		m := NewMachine()
		tr := m.Fire(in)
		if !tr.Entered(Start) {
			t.Errorf("Fire(%v) from SPLASH = %+v, expected START", in, tr)
		}
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		from State
		in   Input
		to   State
	}{
		{Start, Launch, Countdown},
		{Start, OpenLevelSelect, LevelSelect},
		{Start, OpenSettings, Settings},
		{Start, Cancel, Start},
		{Start, TogglePause, Start},
		{LevelSelect, Back, Start},
		{Settings, Back, Start},
		{Settings, Launch, Settings},
		{Countdown, Cancel, Start},
		{Countdown, TogglePause, Countdown},
		{Playing, TogglePause, Paused},
		{Paused, TogglePause, Playing},
		{Playing, Died, GameOver},
		{Paused, Died, Paused},
		{Playing, Cancel, Start},
		{Paused, Cancel, Start},
		{GameOver, Retry, Countdown},
		{GameOver, Back, Start},
		{GameOver, OpenLevelSelect, LevelSelect},
		{GameOver, OpenSettings, Settings},
		{GameOver, Cancel, Start},
		{GameOver, TogglePause, GameOver},
	}

	for _, tc := range tests {
		t.Run(tc.from.String()+" "+tc.in.String(), func(t *testing.T) {
			m := machineIn(tc.from)
			tr := m.Fire(tc.in)
			if m.State() != tc.to {
				t.Errorf("Fire(%v) from %v = %v, expected %v", tc.in, tc.from, m.State(), tc.to)
			}
			if tr.Changed != (tc.from != tc.to) {
				t.Errorf("Changed = %v, expected %v", tr.Changed, tc.from != tc.to)
			}
		})
	}
}

func TestEveryPairIsDefined(t *testing.T) {
	for _, s := range allStates {
		for _, in := range allInputs {
			m := machineIn(s)
			tr := m.Fire(in)
			if tr.From != s {
				t.Errorf("Fire(%v) from %v reported From=%v", in, s, tr.From)
			}
			if tr.To != m.State() {
				t.Errorf("Fire(%v) from %v reported To=%v but state is %v", in, s, tr.To, m.State())
			}
		}
	}
}

func TestCountdownSequence(t *testing.T) {
	m := machineIn(Start)
	m.Fire(Launch)

	if m.Countdown() != 3 {
		t.Fatalf("Countdown() = %d, expected 3", m.Countdown())
	}

	var seen []int
	seen = append(seen, m.Countdown())
	for {
		v, playing, ok := m.StepCountdown(m.Generation())
		if !ok {
			t.Fatal("StepCountdown rejected the current generation")
		}
		if playing {
			break
		}
		seen = append(seen, v)
	}

	expected := []int{3, 2, 1}
	if len(seen) != len(expected) {
		t.Fatalf("Countdown values = %v, expected %v", seen, expected)
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("Countdown values = %v, expected %v", seen, expected)
		}
	}
	if m.State() != Playing {
		t.Errorf("State() = %v, expected PLAYING", m.State())
	}
}

func TestStaleCountdownIgnored(t *testing.T) {
	m := machineIn(Start)
	m.Fire(Launch)
	stale := m.Generation()

	m.Fire(Cancel)
	if _, _, ok := m.StepCountdown(stale); ok {
		t.Error("Countdown step after cancel should be ignored")
	}
	if m.State() != Start {
		t.Errorf("State() = %v, expected START", m.State())
	}

	// Relaunching arms a fresh generation; the old timer must stay dead.
	m.Fire(Launch)
	if _, _, ok := m.StepCountdown(stale); ok {
		t.Error("Old generation should not drive the new countdown")
	}
	if m.Countdown() != 3 {
		t.Errorf("Countdown() = %d, expected 3", m.Countdown())
	}
	if _, _, ok := m.StepCountdown(m.Generation()); !ok {
		t.Error("Current generation should be accepted")
	}
}

func TestStepCountdownOutsideCountdown(t *testing.T) {
	m := machineIn(Playing)
	if _, _, ok := m.StepCountdown(m.Generation()); ok {
		t.Error("StepCountdown outside COUNTDOWN should be rejected")
	}
}
