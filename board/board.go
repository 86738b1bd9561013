// Package board implements the shortcut board: an ordered list of slots,
// the selected slot's live press state, and the two key sets that are
// enabled or disabled together across every slot.
package board

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"shortboard/recorder"
)

var (
	ErrNoSlots       = errors.New("board needs at least one slot")
	ErrEmptyID       = errors.New("slot id is empty")
	ErrDuplicateSlot = errors.New("duplicate slot id")
	ErrUnknownSlot   = errors.New("unknown slot")
	ErrUnsupported   = errors.New("not supported on this system")
)

type Subscription = recorder.Subscription

// Recorder is the binding engine the board drives.
type Recorder interface {
	Enable(name string) error
	Disable(name string)
	OnKeyDown(name string, fn func()) Subscription
	OnKeyUp(name string, fn func()) Subscription
}

// Launcher performs the OS side of an action.
type Launcher interface {
	OpenApplication(path string) error
	RunCommand(ctx context.Context, argv []string) ([]byte, error)
	OpenSystemPane(pane string) error
}

// Sink receives state changes and fire reports. Calls happen outside the
// board's lock, possibly from hotkey goroutines.
type Sink interface {
	StateChanged(State)
	Fired(FireEvent)
}

type nopSink struct{}

func (nopSink) StateChanged(State) {}
func (nopSink) Fired(FireEvent)    {}

type Option func(*Board)

func WithSink(s Sink) Option {
	return func(b *Board) { b.sink = s }
}

// WithInitialSets sets which key sets are enabled when Start runs.
func WithInitialSets(a, b bool) Option {
	return func(bd *Board) {
		bd.state.SetAEnabled = a
		bd.state.SetBEnabled = b
	}
}

type Board struct {
	rec      Recorder
	launcher Launcher
	sink     Sink
	slots    []Slot
	index    map[string]int

	// applyMu serializes set enablement so the recorder always ends up
	// matching the flags in state.
	applyMu sync.Mutex

	mu        sync.Mutex
	ctx       context.Context
	state     State
	gen       uint64
	pressSubs []Subscription
	fireSubs  []Subscription
}

func New(slots []Slot, rec Recorder, launcher Launcher, opts ...Option) (*Board, error) {
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	index := make(map[string]int, len(slots))
	for i, s := range slots {
		if s.ID == "" {
			return nil, fmt.Errorf("slot %d: %w", i, ErrEmptyID)
		}
		if _, dup := index[s.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlot, s.ID)
		}
		index[s.ID] = i
	}

	b := &Board{
		rec:      rec,
		launcher: launcher,
		sink:     nopSink{},
		slots:    slices.Clone(slots),
		index:    index,
		ctx:      context.Background(),
		state:    State{SetAEnabled: true, SetBEnabled: true},
	}
	for _, o := range opts {
		o(b)
	}
	return b, nil
}

// Start attaches the fire handler to both bindings of every slot, applies
// the initial key sets and selects the first slot. ctx bounds commands
// started by key presses. Enablement errors are returned joined; the board
// is usable regardless.
func (b *Board) Start(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = ctx
	a, bb := b.state.SetAEnabled, b.state.SetBEnabled
	b.mu.Unlock()

	var subs []Subscription
	for _, s := range b.slots {
		for _, set := range Sets {
			id, set := s.ID, set
			subs = append(subs, b.rec.OnKeyDown(s.Binding(set), func() {
				b.Fire(b.fireContext(), id, set)
			}))
		}
	}
	b.mu.Lock()
	b.fireSubs = subs
	b.mu.Unlock()

	err := errors.Join(b.SetEnabled(SetA, a), b.SetEnabled(SetB, bb))
	if selErr := b.SelectSlot(b.slots[0].ID); selErr != nil {
		err = errors.Join(err, selErr)
	}
	return err
}

func (b *Board) fireContext() context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx
}

// SelectSlot moves the selection to id, replacing the press/release
// subscriptions of the previous slot and clearing both pressed flags.
func (b *Board) SelectSlot(id string) error {
	i, ok := b.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, id)
	}

	b.mu.Lock()
	old := b.pressSubs
	b.pressSubs = nil
	b.gen++
	gen := b.gen
	b.state.Selected = id
	b.state.PressedA = false
	b.state.PressedB = false
	b.mu.Unlock()

	for _, s := range old {
		s.Unsubscribe()
	}

	slot := b.slots[i]
	subs := make([]Subscription, 0, 2*len(Sets))
	for _, set := range Sets {
		set := set
		name := slot.Binding(set)
		subs = append(subs,
			b.rec.OnKeyDown(name, func() { b.press(gen, set, true) }),
			b.rec.OnKeyUp(name, func() { b.press(gen, set, false) }),
		)
	}

	b.mu.Lock()
	stale := b.gen != gen
	if !stale {
		b.pressSubs = subs
	}
	st := b.state
	b.mu.Unlock()

	if stale {
		for _, s := range subs {
			s.Unsubscribe()
		}
		return nil
	}
	b.sink.StateChanged(st)
	return nil
}

// press records a press/release of the selected slot. Callbacks from an
// older selection are dropped even if they raced with the unsubscribe.
func (b *Board) press(gen uint64, set Set, down bool) {
	b.mu.Lock()
	if gen != b.gen || b.state.Pressed(set) == down || !b.state.Enabled(set) {
		b.mu.Unlock()
		return
	}
	b.state.setPressed(set, down)
	st := b.state
	b.mu.Unlock()
	b.sink.StateChanged(st)
}

// SetEnabled enables or disables the binding of set for every slot.
func (b *Board) SetEnabled(set Set, enabled bool) error {
	b.applyMu.Lock()
	defer b.applyMu.Unlock()
	return b.applyLocked(set, enabled)
}

// ToggleSet flips set and re-applies it, returning the new value.
func (b *Board) ToggleSet(set Set) (bool, error) {
	b.applyMu.Lock()
	defer b.applyMu.Unlock()
	b.mu.Lock()
	next := !b.state.Enabled(set)
	b.mu.Unlock()
	return next, b.applyLocked(set, next)
}

func (b *Board) applyLocked(set Set, enabled bool) error {
	b.mu.Lock()
	b.state.setEnabled(set, enabled)
	if !enabled {
		// a disabled binding never reports its release
		b.state.setPressed(set, false)
	}
	st := b.state
	b.mu.Unlock()

	var errs []error
	for _, s := range b.slots {
		name := s.Binding(set)
		if enabled {
			if err := b.rec.Enable(name); err != nil {
				errs = append(errs, err)
			}
		} else {
			b.rec.Disable(name)
		}
	}
	b.sink.StateChanged(st)
	return errors.Join(errs...)
}

// Fire dispatches the action of slot id as if its binding in set was
// pressed. RunCommand blocks until the child exits.
func (b *Board) Fire(ctx context.Context, id string, set Set) error {
	i, ok := b.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, id)
	}
	slot := b.slots[i]

	start := time.Now()
	ev := FireEvent{Slot: slot.ID, Set: set, Action: slot.Action}
	switch a := slot.Action; a.Kind {
	case ActionNone:
	case ActionLaunchApplication:
		ev.Err = b.launcher.OpenApplication(a.Path)
	case ActionRunCommand:
		ev.Output, ev.Err = b.launcher.RunCommand(ctx, a.Argv)
	case ActionToggleSetA:
		_, ev.Err = b.ToggleSet(SetA)
	case ActionOpenSystemPane:
		ev.Err = b.launcher.OpenSystemPane(a.Pane)
	default:
		ev.Err = fmt.Errorf("slot %q: unknown action %v", slot.ID, a.Kind)
	}
	ev.Duration = time.Since(start)

	b.sink.Fired(ev)
	return ev.Err
}

func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Board) Slots() []Slot {
	return slices.Clone(b.slots)
}

func (b *Board) Slot(id string) (Slot, bool) {
	i, ok := b.index[id]
	if !ok {
		return Slot{}, false
	}
	return b.slots[i], true
}

// Selected returns the currently selected slot.
func (b *Board) Selected() Slot {
	b.mu.Lock()
	id := b.state.Selected
	b.mu.Unlock()
	if s, ok := b.Slot(id); ok {
		return s
	}
	return b.slots[0]
}

// Close drops every subscription the board holds.
func (b *Board) Close() {
	b.mu.Lock()
	subs := append(b.pressSubs, b.fireSubs...)
	b.pressSubs, b.fireSubs = nil, nil
	b.gen++
	b.mu.Unlock()
	for _, s := range subs {
		s.Unsubscribe()
	}
}
