//go:build !darwin && !windows && !linux

package hotkey

import "shortboard/binding"

func New(binding.Combo) (Hotkey, error) {
	return nil, ErrUnsupported
}

func Diagnose() (string, error) {
	return "", ErrUnsupported
}
