package board

import (
	"errors"
	"fmt"
	"strings"
)

// Set selects the first (A) or second (B) binding of every slot.
type Set int

const (
	SetA Set = iota
	SetB
)

var Sets = [...]Set{SetA, SetB}

func (s Set) String() string {
	if s == SetB {
		return "B"
	}
	return "A"
}

var ErrUnknownSet = errors.New("unknown key set")

func ParseSet(s string) (Set, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "1", "first":
		return SetA, nil
	case "b", "2", "second":
		return SetB, nil
	}
	return SetA, fmt.Errorf("%w: %q", ErrUnknownSet, s)
}

// Slot is one named entry in the picker.
type Slot struct {
	ID     string
	Action Action
}

// Binding returns the recorder name of the slot's binding in set.
func (s Slot) Binding(set Set) string {
	if set == SetB {
		return "sc" + s.ID + "#2"
	}
	return "sc" + s.ID + "#1"
}
