//go:build gui

// Package gui is the optional Fyne front end: a "Dynamic Recorder" window
// with the key set toggles, the slot picker and one recorder row per set.
package gui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"shortboard/binding"
	"shortboard/board"
	"shortboard/tray"
)

// Controller is the board as seen by the window.
type Controller interface {
	SelectSlot(id string) error
	SetEnabled(set board.Set, on bool) error
	Record(id string, set board.Set, c binding.Combo) error
	Clear(id string, set board.Set) error
	Fire(id string, set board.Set) error
}

type recorderRow struct {
	entry   *widget.Entry
	pressed *widget.Label
}

type App struct {
	fyneApp fyne.App
	window  fyne.Window
	onReady func()

	ctl   Controller
	slots []board.Slot

	mu     sync.Mutex
	combos map[string]binding.Combo

	// fields below are touched on the Fyne goroutine only
	syncing  bool
	selected string
	checks   [2]*widget.Check
	picker   *widget.Select
	rows     [2]recorderRow
	action   *widget.Label
	status   *widget.Label
}

func NewApp(onReady func()) *App {
	return &App{onReady: onReady, combos: make(map[string]binding.Combo)}
}

func Run(a *App) error {
	a.fyneApp = app.NewWithID("dev.shortboard.gui")
	a.fyneApp.Settings().SetTheme(&darkTheme{})

	a.window = a.fyneApp.NewWindow("Dynamic Recorder")
	a.window.SetContent(widget.NewLabel("Loading shortcuts..."))
	a.window.Resize(fyne.NewSize(420, 260))
	a.window.SetCloseIntercept(a.window.Hide)

	if desk, ok := a.fyneApp.(desktop.App); ok {
		menu := fyne.NewMenu("shortboard",
			fyne.NewMenuItem("Show", a.window.Show),
			fyne.NewMenuItem("Quit", a.fyneApp.Quit),
		)
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(fyne.NewStaticResource("tray.png", tray.Icon(true, true)))
	}

	go a.onReady()

	a.window.ShowAndRun()
	return nil
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		fyne.Do(a.fyneApp.Quit)
	}
}

// Bind attaches the board and builds the window content.
func (a *App) Bind(ctl Controller, slots []board.Slot, combos map[string]binding.Combo) {
	a.mu.Lock()
	for k, v := range combos {
		a.combos[k] = v
	}
	a.mu.Unlock()
	a.ctl = ctl
	a.slots = slots
	fyne.Do(a.build)
}

func (a *App) build() {
	ids := make([]string, len(a.slots))
	for i, s := range a.slots {
		ids[i] = s.ID
	}

	for _, set := range board.Sets {
		set := set
		label := "Use first set of keys"
		if set == board.SetB {
			label = "Use second set of keys"
		}
		a.checks[set] = widget.NewCheck(label, func(on bool) {
			if a.syncing {
				return
			}
			a.do(func() error { return a.ctl.SetEnabled(set, on) })
		})
	}

	a.picker = widget.NewSelect(ids, func(id string) {
		if a.syncing || id == a.selected {
			return
		}
		a.selected = id
		a.refreshRows()
		a.do(func() error { return a.ctl.SelectSlot(id) })
	})

	form := container.NewVBox(a.checks[0], a.checks[1],
		container.NewBorder(nil, nil, widget.NewLabel("Select shortcut:"), nil, a.picker))

	for _, set := range board.Sets {
		set := set
		entry := widget.NewEntry()
		entry.SetPlaceHolder("ctrl+alt+f")
		entry.OnSubmitted = func(text string) { a.submit(set, text) }
		pressed := widget.NewLabel("Pressed? 👎")
		a.rows[set] = recorderRow{entry: entry, pressed: pressed}

		clearBtn := widget.NewButton("Clear", func() {
			id := a.selected
			a.do(func() error { return a.ctl.Clear(id, set) })
		})
		label := widget.NewLabel(fmt.Sprintf("Shortcut %d:", int(set)+1))
		form.Add(container.NewBorder(nil, nil, label, container.NewHBox(clearBtn, pressed), entry))
	}

	a.action = widget.NewLabel("")
	a.status = widget.NewLabel("")
	fire := widget.NewButton("Fire", func() {
		id := a.selected
		a.do(func() error { return a.ctl.Fire(id, board.SetA) })
	})
	form.Add(container.NewBorder(nil, nil, nil, fire, a.action))
	form.Add(a.status)

	a.window.SetContent(container.NewPadded(form))
	if len(ids) > 0 {
		a.syncing = true
		a.selected = ids[0]
		a.picker.SetSelected(ids[0])
		a.syncing = false
		a.refreshRows()
	}
}

// do runs a controller call off the UI goroutine; board events come back
// through the sink methods.
func (a *App) do(fn func() error) {
	go func() {
		if err := fn(); err != nil {
			a.Status("error: " + err.Error())
		}
	}()
}

func (a *App) submit(set board.Set, text string) {
	id := a.selected
	if text == "" {
		a.do(func() error { return a.ctl.Clear(id, set) })
		return
	}
	c, err := binding.Parse(text)
	if err != nil {
		a.status.SetText("error: " + err.Error())
		return
	}
	a.do(func() error { return a.ctl.Record(id, set, c) })
}

func (a *App) slot(id string) board.Slot {
	for _, s := range a.slots {
		if s.ID == id {
			return s
		}
	}
	return board.Slot{ID: id}
}

func (a *App) refreshRows() {
	if a.picker == nil {
		return
	}
	s := a.slot(a.selected)
	a.mu.Lock()
	for _, set := range board.Sets {
		a.rows[set].entry.SetText(a.combos[s.Binding(set)].String())
	}
	a.mu.Unlock()
	a.action.SetText(s.Action.Describe())
}

func pressedText(on bool) string {
	if on {
		return "Pressed? 👍"
	}
	return "Pressed? 👎"
}

func (a *App) BoardChanged(st board.State) {
	fyne.Do(func() {
		if a.picker == nil {
			return
		}
		a.syncing = true
		a.checks[board.SetA].SetChecked(st.SetAEnabled)
		a.checks[board.SetB].SetChecked(st.SetBEnabled)
		moved := st.Selected != a.selected
		if moved {
			a.selected = st.Selected
			a.picker.SetSelected(st.Selected)
		}
		a.syncing = false
		for _, set := range board.Sets {
			a.rows[set].pressed.SetText(pressedText(st.Pressed(set)))
		}
		// entries may hold a combination being typed
		if moved {
			a.refreshRows()
		}
	})
}

func (a *App) SlotFired(ev board.FireEvent, count int) {
	text := fmt.Sprintf("%s fired (%d×)", ev.Slot, count)
	if ev.Err != nil {
		text = fmt.Sprintf("%s: %v", ev.Slot, ev.Err)
	}
	a.Status(text)
}

func (a *App) BindingChanged(name string, c binding.Combo) {
	a.mu.Lock()
	if c.IsZero() {
		delete(a.combos, name)
	} else {
		a.combos[name] = c
	}
	a.mu.Unlock()
	fyne.Do(func() {
		if a.picker == nil {
			return
		}
		s := a.slot(a.selected)
		for _, set := range board.Sets {
			if s.Binding(set) == name {
				a.rows[set].entry.SetText(c.String())
			}
		}
	})
}

func (a *App) Status(text string) {
	fyne.Do(func() {
		if a.status != nil {
			a.status.SetText(text)
		}
	})
}
