// Package recorder owns named key bindings: which combination each name is
// assigned, whether it is live as a global hotkey, and who listens to it.
package recorder

import (
	"errors"
	"fmt"
	"sync"

	"shortboard/binding"
	"shortboard/hotkey"
)

var ErrTaken = errors.New("key combination already assigned")

// Store persists assignments across runs.
type Store interface {
	LoadBindings() (map[string]string, error)
	SaveBinding(name, combo string) error
	DeleteBinding(name string) error
}

// Subscription is returned by OnKeyDown/OnKeyUp. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

type handler struct {
	id uint64
	fn func()
}

type entry struct {
	combo   binding.Combo
	enabled bool
	hk      hotkey.Hotkey
	stop    chan struct{}
	down    []handler
	up      []handler
}

type Recorder struct {
	factory hotkey.Factory
	store   Store

	mu       sync.Mutex
	entries  map[string]*entry
	nextID   uint64
	onChange []func(name string, c binding.Combo)
}

// New returns a Recorder building hotkeys with factory. store may be nil.
func New(factory hotkey.Factory, store Store) *Recorder {
	return &Recorder{
		factory: factory,
		store:   store,
		entries: make(map[string]*entry),
	}
}

func (r *Recorder) entryLocked(name string) *entry {
	e, ok := r.entries[name]
	if !ok {
		e = &entry{enabled: true}
		r.entries[name] = e
	}
	return e
}

func (r *Recorder) ownerLocked(c binding.Combo) string {
	for name, e := range r.entries {
		if e.combo == c {
			return name
		}
	}
	return ""
}

// Load reads persisted assignments. Unparseable or conflicting rows are
// skipped and reported together.
func (r *Recorder) Load() error {
	if r.store == nil {
		return nil
	}
	rows, err := r.store.LoadBindings()
	if err != nil {
		return fmt.Errorf("load bindings: %w", err)
	}

	var errs []error
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, s := range rows {
		c, err := binding.Parse(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %s: %w", name, err))
			continue
		}
		if owner := r.ownerLocked(c); owner != "" && owner != name {
			errs = append(errs, fmt.Errorf("binding %s: %w by %s", name, ErrTaken, owner))
			continue
		}
		e := r.entryLocked(name)
		r.unregisterLocked(e)
		e.combo = c
		if e.enabled {
			if err := r.registerLocked(name, e); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Seed assigns a default combination to name when it has none.
// Seeded assignments are not persisted; it reports whether c was applied.
func (r *Recorder) Seed(name string, c binding.Combo) bool {
	if c.IsZero() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(name)
	if !e.combo.IsZero() || r.ownerLocked(c) != "" {
		return false
	}
	e.combo = c
	return true
}

// Record assigns c to name. If name is enabled the new combination is
// registered right away; on failure the previous assignment is restored.
func (r *Recorder) Record(name string, c binding.Combo) error {
	if c.IsZero() {
		return binding.ErrEmpty
	}

	r.mu.Lock()
	if owner := r.ownerLocked(c); owner != "" && owner != name {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s is used by %s", ErrTaken, c, owner)
	}
	e := r.entryLocked(name)
	if e.combo == c {
		r.mu.Unlock()
		return nil
	}

	prev := e.combo
	r.unregisterLocked(e)
	e.combo = c
	if e.enabled {
		if err := r.registerLocked(name, e); err != nil {
			e.combo = prev
			if !prev.IsZero() {
				if rerr := r.registerLocked(name, e); rerr != nil {
					err = errors.Join(err, fmt.Errorf("restore %s: %w", name, rerr))
				}
			}
			r.mu.Unlock()
			return err
		}
	}
	listeners := r.onChange
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(name, c)
	}
	if r.store != nil {
		if err := r.store.SaveBinding(name, c.String()); err != nil {
			return fmt.Errorf("save binding %s: %w", name, err)
		}
	}
	return nil
}

// Clear removes name's assignment.
func (r *Recorder) Clear(name string) error {
	r.mu.Lock()
	e, ok := r.entries[name]
	if !ok || e.combo.IsZero() {
		r.mu.Unlock()
		return nil
	}
	r.unregisterLocked(e)
	e.combo = binding.Combo{}
	listeners := r.onChange
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(name, binding.Combo{})
	}
	if r.store != nil {
		if err := r.store.DeleteBinding(name); err != nil {
			return fmt.Errorf("delete binding %s: %w", name, err)
		}
	}
	return nil
}

func (r *Recorder) Combo(name string) (binding.Combo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok || e.combo.IsZero() {
		return binding.Combo{}, false
	}
	return e.combo, true
}

func (r *Recorder) Assignments() map[string]binding.Combo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]binding.Combo, len(r.entries))
	for name, e := range r.entries {
		if !e.combo.IsZero() {
			out[name] = e.combo
		}
	}
	return out
}

// Enable makes name live. A name without a combination stays enabled and
// goes live once one is recorded.
func (r *Recorder) Enable(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(name)
	e.enabled = true
	if e.combo.IsZero() || e.hk != nil {
		return nil
	}
	return r.registerLocked(name, e)
}

// Disable unregisters name. A binding disabled while held never reports
// its release.
func (r *Recorder) Disable(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(name)
	e.enabled = false
	r.unregisterLocked(e)
}

func (r *Recorder) IsEnabled(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	return !ok || e.enabled
}

// IsLive reports whether name is currently registered with the OS.
func (r *Recorder) IsLive(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	return ok && e.hk != nil
}

func (r *Recorder) OnKeyDown(name string, fn func()) Subscription {
	return r.subscribe(name, fn, true)
}

func (r *Recorder) OnKeyUp(name string, fn func()) Subscription {
	return r.subscribe(name, fn, false)
}

// OnChange registers fn to run after an assignment is recorded or cleared.
func (r *Recorder) OnChange(fn func(name string, c binding.Combo)) {
	r.mu.Lock()
	r.onChange = append(r.onChange, fn)
	r.mu.Unlock()
}

// Close unregisters every live hotkey.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		r.unregisterLocked(e)
	}
}

func (r *Recorder) registerLocked(name string, e *entry) error {
	hk, err := r.factory(e.combo)
	if err != nil {
		return fmt.Errorf("hotkey %s (%s): %w", name, e.combo, err)
	}
	if err := hk.Register(); err != nil {
		return fmt.Errorf("hotkey %s (%s): %w", name, e.combo, err)
	}
	e.hk = hk
	e.stop = make(chan struct{})
	go r.dispatch(name, hk, e.stop)
	return nil
}

func (r *Recorder) unregisterLocked(e *entry) {
	if e.hk == nil {
		return
	}
	close(e.stop)
	e.hk.Unregister()
	e.hk = nil
	e.stop = nil
}

func (r *Recorder) dispatch(name string, hk hotkey.Hotkey, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-hk.Keydown():
			r.emit(name, true, stop)
		case <-hk.Keyup():
			r.emit(name, false, stop)
		}
	}
}

func (r *Recorder) emit(name string, down bool, stop <-chan struct{}) {
	r.mu.Lock()
	select {
	case <-stop:
		r.mu.Unlock()
		return
	default:
	}
	e := r.entries[name]
	hs := e.up
	if down {
		hs = e.down
	}
	fns := make([]func(), len(hs))
	for i, h := range hs {
		fns[i] = h.fn
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
