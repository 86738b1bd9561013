package hotkey

import (
	"fmt"
	"sync"

	"shortboard/binding"
)

type FakeHotkey struct {
	Combo binding.Combo

	mu         sync.Mutex
	registered bool
	fail       error
	keydown    chan struct{}
	keyup      chan struct{}
}

func NewFake() *FakeHotkey {
	return &FakeHotkey{
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
	}
}

func (f *FakeHotkey) Register() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.registered = true
	return nil
}

func (f *FakeHotkey) Unregister() {
	f.mu.Lock()
	f.registered = false
	f.mu.Unlock()
}

func (f *FakeHotkey) Registered() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered
}

func (f *FakeHotkey) Keydown() <-chan struct{} { return f.keydown }
func (f *FakeHotkey) Keyup() <-chan struct{}   { return f.keyup }

func (f *FakeHotkey) SimKeydown() { f.keydown <- struct{}{} }
func (f *FakeHotkey) SimKeyup()   { f.keyup <- struct{}{} }

// FakeFactory hands out one FakeHotkey per combination and remembers them,
// so tests and the headless driver can press keys by combo.
type FakeFactory struct {
	mu    sync.Mutex
	keys  map[string]*FakeHotkey
	fails map[string]error
}

func NewFakeFactory() *FakeFactory {
	return &FakeFactory{
		keys:  make(map[string]*FakeHotkey),
		fails: make(map[string]error),
	}
}

func (ff *FakeFactory) New(c binding.Combo) (Hotkey, error) {
	if c.IsZero() {
		return nil, fmt.Errorf("fake hotkey: %w", binding.ErrEmpty)
	}
	ff.mu.Lock()
	defer ff.mu.Unlock()
	if hk, ok := ff.keys[c.String()]; ok {
		return hk, nil
	}
	hk := NewFake()
	hk.Combo = c
	hk.fail = ff.fails[c.String()]
	ff.keys[c.String()] = hk
	return hk, nil
}

// Get returns the fake for combo, or nil if none was built.
func (ff *FakeFactory) Get(c binding.Combo) *FakeHotkey {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return ff.keys[c.String()]
}

// FailRegister makes Register of combo return err, as when another
// application already owns the shortcut.
func (ff *FakeFactory) FailRegister(c binding.Combo, err error) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.fails[c.String()] = err
	if hk, ok := ff.keys[c.String()]; ok {
		hk.mu.Lock()
		hk.fail = err
		hk.mu.Unlock()
	}
}
