package hotkey

import (
	"errors"

	"shortboard/binding"
)

var ErrUnsupported = errors.New("global hotkeys are not supported on this platform")

// Hotkey is one global key combination with press/release events.
// Register may be called again after Unregister.
type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}

// Factory builds an unregistered Hotkey for a combination.
type Factory func(binding.Combo) (Hotkey, error)

// forward relays src into dst until stop closes.
func forward[T any](src <-chan T, dst chan<- struct{}, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-src:
		}
		select {
		case dst <- struct{}{}:
		case <-stop:
			return
		}
	}
}
