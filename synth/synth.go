// Package synth injects synthetic key presses so the doctor can verify a
// hotkey end to end without a human at the keyboard.
package synth

import "errors"

var (
	ErrUnsupported    = errors.New("synthetic key presses are not supported on this system")
	ErrUnsupportedKey = errors.New("key cannot be synthesized")
)
