//go:build !darwin && !linux

package synth

import "shortboard/binding"

func Init() error                  { return ErrUnsupported }
func Press(binding.Combo) error    { return ErrUnsupported }
func Supported(binding.Combo) bool { return false }
