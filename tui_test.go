package main

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shortboard/binding"
	"shortboard/board"
)

type fakeController struct {
	mu       sync.Mutex
	selected []string
	toggled  []board.Set
	recorded map[string]binding.Combo
	cleared  []string
	fired    []string
	copied   int
	err      error
}

func (f *fakeController) selectSlot(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = append(f.selected, id)
	return f.err
}

func (f *fakeController) toggleSet(set board.Set) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggled = append(f.toggled, set)
	return f.err
}

func (f *fakeController) record(id string, set board.Set, c binding.Combo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recorded == nil {
		f.recorded = make(map[string]binding.Combo)
	}
	f.recorded[board.Slot{ID: id}.Binding(set)] = c
	return f.err
}

func (f *fakeController) clear(id string, set board.Set) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, board.Slot{ID: id}.Binding(set))
	return f.err
}

func (f *fakeController) fire(id string, set board.Set) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fired = append(f.fired, id)
	return f.err
}

func (f *fakeController) copyCheatSheet() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copied++
	return f.err
}

func testTUISlots() []board.Slot {
	return []board.Slot{
		{ID: "Finder", Action: board.LaunchApplication("/System/Library/CoreServices/Finder.app")},
		{ID: "Mute Mic", Action: board.RunCommand("osascript", "-e", "set volume input volume 0")},
		{ID: "Spare", Action: board.Action{}},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and runs any returned action, feeding its result back.
// Commands from the text input (cursor blink) are skipped.
func send(t *testing.T, m tuiModel, msg tea.Msg) tuiModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(tuiModel)
	if cmd == nil || m.recording {
		return m
	}
	if out := cmd(); out != nil {
		if done, ok := out.(actionDoneMsg); ok {
			next, _ = m.Update(done)
			m = next.(tuiModel)
		}
	}
	return m
}

func TestTUICursorWrapsAndSelects(t *testing.T) {
	ctl := &fakeController{}
	m := newTUIModel(ctl, testTUISlots(), nil, nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, keyRunes("j"))
	m = send(t, m, keyRunes("j"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want wrap to 0", m.cursor)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}

	want := []string{"Mute Mic", "Spare", "Finder", "Spare"}
	if strings.Join(ctl.selected, ",") != strings.Join(want, ",") {
		t.Errorf("selected = %v, want %v", ctl.selected, want)
	}
}

func TestTUIStateMovesCursor(t *testing.T) {
	m := newTUIModel(&fakeController{}, testTUISlots(), nil, nil)
	m = send(t, m, BoardStateMsg{State: board.State{Selected: "Spare", SetAEnabled: true}})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	m = send(t, m, BoardStateMsg{State: board.State{Selected: "Unknown"}})
	if m.cursor != 2 {
		t.Errorf("unknown selection moved cursor to %d", m.cursor)
	}
}

func TestTUIToggleSets(t *testing.T) {
	ctl := &fakeController{}
	m := newTUIModel(ctl, testTUISlots(), nil, nil)
	m = send(t, m, keyRunes("1"))
	m = send(t, m, keyRunes("2"))
	if len(ctl.toggled) != 2 || ctl.toggled[0] != board.SetA || ctl.toggled[1] != board.SetB {
		t.Errorf("toggled = %v", ctl.toggled)
	}
}

func TestTUIRecordShortcut(t *testing.T) {
	ctl := &fakeController{}
	m := newTUIModel(ctl, testTUISlots(), nil, nil)

	m = send(t, m, keyRunes("b"))
	if !m.recording || m.recordSet != board.SetB {
		t.Fatalf("recording = %v set = %v", m.recording, m.recordSet)
	}
	// letters go to the input, not the key map
	m = send(t, m, keyRunes("ctrl+alt+q"))
	if !m.recording {
		t.Fatal("typing q should not quit while recording")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.recording {
		t.Error("enter should finish recording")
	}

	want := binding.MustParse("ctrl+alt+q")
	if got := ctl.recorded["scFinder#2"]; got != want {
		t.Errorf("recorded = %v, want %v", got, want)
	}
	if m.status != "recorded ctrl+alt+q" {
		t.Errorf("status = %q", m.status)
	}
}

func TestTUIRecordInvalidStaysOpen(t *testing.T) {
	ctl := &fakeController{}
	m := newTUIModel(ctl, testTUISlots(), nil, nil)
	m = send(t, m, keyRunes("a"))
	m = send(t, m, keyRunes("hyper"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.recording {
		t.Error("invalid combo should keep the input open")
	}
	if !strings.HasPrefix(m.status, "error:") {
		t.Errorf("status = %q", m.status)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.recording {
		t.Error("esc should cancel recording")
	}
	if len(ctl.recorded) != 0 {
		t.Errorf("recorded = %v", ctl.recorded)
	}
}

func TestTUIActionError(t *testing.T) {
	ctl := &fakeController{err: errors.New("combination in use")}
	m := newTUIModel(ctl, testTUISlots(), nil, nil)
	m = send(t, m, keyRunes("x"))
	if m.status != "error: combination in use" {
		t.Errorf("status = %q", m.status)
	}
	if len(ctl.cleared) != 1 || ctl.cleared[0] != "scFinder#1" {
		t.Errorf("cleared = %v", ctl.cleared)
	}
}

func TestTUIFireAndCopy(t *testing.T) {
	ctl := &fakeController{}
	m := newTUIModel(ctl, testTUISlots(), nil, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, keyRunes("y"))
	if len(ctl.fired) != 1 || ctl.fired[0] != "Finder" {
		t.Errorf("fired = %v", ctl.fired)
	}
	if ctl.copied != 1 {
		t.Errorf("copied = %d", ctl.copied)
	}
	if m.status != "cheat sheet copied" {
		t.Errorf("status = %q", m.status)
	}
}

func TestTUIView(t *testing.T) {
	combos := map[string]binding.Combo{"scFinder#1": binding.MustParse("ctrl+alt+f")}
	m := newTUIModel(&fakeController{}, testTUISlots(), combos, map[string]int{"Finder": 3})
	m = send(t, m, BoardStateMsg{State: board.State{Selected: "Finder", SetAEnabled: true, PressedA: true}})
	m = send(t, m, FiredMsg{Event: board.FireEvent{Slot: "Finder", Action: testTUISlots()[0].Action}, Count: 4})

	v := m.View()
	for _, want := range []string{
		"Dynamic Recorder",
		"[x] Use first set of keys",
		"[ ] Use second set of keys",
		"Shortcut 1:",
		"ctrl+alt+f",
		"Pressed?",
		"4×",
		"launch-application",
	} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}

func TestTUIBindingMsg(t *testing.T) {
	m := newTUIModel(&fakeController{}, testTUISlots(), nil, nil)
	c := binding.MustParse("ctrl+1")
	m = send(t, m, BindingMsg{Name: "scFinder#1", Combo: c})
	if m.combos["scFinder#1"] != c {
		t.Errorf("combo not stored")
	}
	m = send(t, m, BindingMsg{Name: "scFinder#1"})
	if _, ok := m.combos["scFinder#1"]; ok {
		t.Error("zero combo should clear the entry")
	}
}

func TestStartTUIDoesNotBlockOnFirstState(t *testing.T) {
	a, _, _, _ := startTestApp(t, testConfig(), nil)
	m := newTUIModel(a, a.board.Slots(), a.rec.Assignments(), nil)
	p := NewTUIProgram(m, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
	t.Cleanup(func() {
		tuiMu.Lock()
		tuiProgram = nil
		tuiMu.Unlock()
	})

	started := make(chan (<-chan struct{}), 1)
	go func() { started <- startTUI(a, p) }()

	var done <-chan struct{}
	select {
	case done = <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("startTUI blocked delivering the initial board state")
	}

	// events after startup reach the running program
	selected := make(chan error, 1)
	go func() { selected <- a.selectSlot("Spare") }()
	select {
	case err := <-selected:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("selectSlot blocked on the TUI sink")
	}

	p.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("program did not exit")
	}
}
