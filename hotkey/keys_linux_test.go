//go:build linux

package hotkey

import (
	"testing"

	"shortboard/binding"
)

func TestEvdevCoversAllKeys(t *testing.T) {
	for _, k := range binding.Keys() {
		if _, ok := evdevKeys[k]; !ok {
			t.Errorf("no evdev code for key %q", k)
		}
	}
}

func TestHeldMods(t *testing.T) {
	held := map[uint16]bool{29: true, 54: true}
	if got := heldMods(held); got != binding.ModCtrl|binding.ModShift {
		t.Errorf("heldMods = %v, want ctrl|shift", got)
	}
	if got := heldMods(nil); got != 0 {
		t.Errorf("heldMods(nil) = %v, want 0", got)
	}
}
