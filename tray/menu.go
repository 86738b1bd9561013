//go:build darwin || windows

package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"shortboard/board"
)

var (
	menuReady = make(chan struct{})
	readyOnce sync.Once

	mSetA   *systray.MenuItem
	mSetB   *systray.MenuItem
	mSlots  *systray.MenuItem
	mLogin  *systray.MenuItem
	slotMus []*systray.MenuItem
)

func onReady() {
	a, b := sets()
	setIcon(a, b)
	systray.SetTooltip(idleTooltip)

	mSetA = systray.AddMenuItemCheckbox("Use first set of keys", "Enable the first binding of every slot", a)
	mSetB = systray.AddMenuItemCheckbox("Use second set of keys", "Enable the second binding of every slot", b)

	systray.AddSeparator()
	mSlots = systray.AddMenuItem("Slots", "Fire a slot")
	stateMu.Lock()
	ids, sel := slotIDs, selected
	stateMu.Unlock()
	for _, id := range ids {
		item := mSlots.AddSubMenuItemCheckbox(id, "Fire "+id, id == sel)
		slotMus = append(slotMus, item)
		go watchSlot(item, id)
	}

	systray.AddSeparator()
	mLogin = systray.AddMenuItemCheckbox("Start on Login", "Launch shortboard when you log in", loginOn)
	mQuit := systray.AddMenuItem("Quit", "Quit shortboard")

	go watchSet(mSetA, board.SetA)
	go watchSet(mSetB, board.SetB)
	go func() {
		for range mLogin.ClickedCh {
			on := !mLogin.Checked()
			if loginCb != nil {
				if err := loginCb(on); err != nil {
					SetError(err.Error())
					continue
				}
			}
			check(mLogin, on)
		}
	}()
	go func() {
		<-mQuit.ClickedCh
		Quit()
	}()

	readyOnce.Do(func() { close(menuReady) })
}

func watchSet(item *systray.MenuItem, set board.Set) {
	for range item.ClickedCh {
		on := !item.Checked()
		check(item, on)
		toggled(set, on)
	}
}

func watchSlot(item *systray.MenuItem, id string) {
	for range item.ClickedCh {
		if fireCb != nil {
			fireCb(id)
		}
	}
}

func check(item *systray.MenuItem, on bool) {
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func ready() bool {
	select {
	case <-menuReady:
		return true
	default:
		return false
	}
}

func setIcon(a, b bool) {
	ic := iconFor(a, b)
	systray.SetTemplateIcon(ic.hi, ic.lo)
}

func updateSets(a, b bool) {
	if !ready() {
		return
	}
	check(mSetA, a)
	check(mSetB, b)
	setIcon(a, b)
}

func updateSelected(ids []string, sel string) {
	if !ready() {
		return
	}
	for i, item := range slotMus {
		check(item, i < len(ids) && ids[i] == sel)
	}
}

func updateTooltip(msg string) {
	if ready() {
		systray.SetTooltip(msg)
	}
}

func onExit() {
	Quit()
}
