//go:build gui

package main

import (
	"runtime"

	"shortboard/binding"
	"shortboard/board"
	"shortboard/gui"
)

var guiApp *gui.App

func initGUI() {
	guiMode = true

	// Fyne/GLFW needs the main OS thread
	runtime.LockOSThread()

	guiApp = gui.NewApp(run)
	if err := gui.Run(guiApp); err != nil {
		panic(err)
	}
	// the window's Quit ends Run; close the board like any other exit
	gracefulShutdown()
}

// attachGUI binds the window to a and subscribes it to board events.
func attachGUI(a *app) {
	if guiApp == nil {
		return
	}
	guiApp.Bind(guiController{a}, a.board.Slots(), a.rec.Assignments())
	a.addSink(guiApp)
}

type guiController struct{ a *app }

func (g guiController) SelectSlot(id string) error { return g.a.selectSlot(id) }

func (g guiController) SetEnabled(set board.Set, on bool) error {
	return g.a.board.SetEnabled(set, on)
}

func (g guiController) Record(id string, set board.Set, c binding.Combo) error {
	return g.a.record(id, set, c)
}

func (g guiController) Clear(id string, set board.Set) error { return g.a.clear(id, set) }

func (g guiController) Fire(id string, set board.Set) error { return g.a.fire(id, set) }
