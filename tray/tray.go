// Package tray shows the board in the system tray: one checkbox per key
// set, a Slots submenu that fires a slot on click, Start on Login and Quit.
package tray

import (
	"sync"
	"time"

	"shortboard/board"
)

const idleTooltip = "shortboard"

var (
	quitCh    = make(chan struct{})
	closeOnce sync.Once

	stateMu  sync.Mutex
	setA     = true
	setB     = true
	slotIDs  []string
	selected string

	toggleCb func(board.Set, bool)
	fireCb   func(string)

	loginOn bool
	loginCb func(bool) error
)

func OnToggle(fn func(set board.Set, enabled bool)) { toggleCb = fn }
func OnFire(fn func(id string))                     { fireCb = fn }
func SetLogin(on bool)                              { loginOn = on }
func OnLogin(fn func(bool) error)                   { loginCb = fn }

// SetSets mirrors the board's key set flags in the menu and icon.
func SetSets(a, b bool) {
	stateMu.Lock()
	setA, setB = a, b
	stateMu.Unlock()
	updateSets(a, b)
}

// SetSlots lists the board's slots; must be called before Init.
func SetSlots(ids []string, sel string) {
	stateMu.Lock()
	slotIDs = append([]string(nil), ids...)
	selected = sel
	stateMu.Unlock()
}

// SetSelected marks id as the selected slot.
func SetSelected(id string) {
	stateMu.Lock()
	selected = id
	ids := slotIDs
	stateMu.Unlock()
	updateSelected(ids, id)
}

func SetError(msg string) {
	updateTooltip(idleTooltip + " – " + msg)
	go func() {
		time.Sleep(10 * time.Second)
		updateTooltip(idleTooltip)
	}()
}

func Quit() {
	closeOnce.Do(func() { close(quitCh) })
}

func sets() (bool, bool) {
	stateMu.Lock()
	defer stateMu.Unlock()
	return setA, setB
}

func toggled(set board.Set, on bool) {
	stateMu.Lock()
	if set == board.SetA {
		setA = on
	} else {
		setB = on
	}
	stateMu.Unlock()
	if toggleCb != nil {
		toggleCb(set, on)
	}
}
