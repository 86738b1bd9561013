package board

import "time"

// State is the board's user-visible state.
type State struct {
	Selected    string
	SetAEnabled bool
	SetBEnabled bool
	PressedA    bool
	PressedB    bool
}

func (s State) Enabled(set Set) bool {
	if set == SetB {
		return s.SetBEnabled
	}
	return s.SetAEnabled
}

func (s State) Pressed(set Set) bool {
	if set == SetB {
		return s.PressedB
	}
	return s.PressedA
}

func (s *State) setEnabled(set Set, on bool) {
	if set == SetB {
		s.SetBEnabled = on
	} else {
		s.SetAEnabled = on
	}
}

func (s *State) setPressed(set Set, on bool) {
	if set == SetB {
		s.PressedB = on
	} else {
		s.PressedA = on
	}
}

// FireEvent reports one dispatched action.
type FireEvent struct {
	Slot     string
	Set      Set
	Action   Action
	Duration time.Duration
	Output   []byte
	Err      error
}
