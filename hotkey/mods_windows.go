//go:build windows

package hotkey

import (
	"golang.design/x/hotkey"

	"shortboard/binding"
)

func modifiers(c binding.Combo) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if c.Has(binding.ModCtrl) {
		mods = append(mods, hotkey.ModCtrl)
	}
	if c.Has(binding.ModAlt) {
		mods = append(mods, hotkey.ModAlt)
	}
	if c.Has(binding.ModShift) {
		mods = append(mods, hotkey.ModShift)
	}
	if c.Has(binding.ModSuper) {
		mods = append(mods, hotkey.ModWin)
	}
	return mods
}
