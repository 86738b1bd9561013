package main

import (
	"shortboard/binding"
	"shortboard/board"
)

// EventSink abstracts the display layer so the Bubble Tea TUI, the Fyne
// GUI and the headless driver receive the same board events.
type EventSink interface {
	BoardChanged(st board.State)
	SlotFired(ev board.FireEvent, count int)
	BindingChanged(name string, c binding.Combo)
	Status(text string)
}
