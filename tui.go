package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shortboard/binding"
	"shortboard/board"
	"shortboard/log"
)

// TUI message types
type BoardStateMsg struct{ State board.State }
type FiredMsg struct {
	Event board.FireEvent
	Count int
}
type BindingMsg struct {
	Name  string
	Combo binding.Combo
}
type StatusMsg struct{ Text string }
type actionDoneMsg struct {
	ok  string
	err error
}

// boardController is what the TUI drives. Calls run inside tea.Cmds,
// never on the update loop, since they feed events back via tuiSend.
type boardController interface {
	selectSlot(id string) error
	toggleSet(set board.Set) error
	record(id string, set board.Set, c binding.Combo) error
	clear(id string, set board.Set) error
	fire(id string, set board.Set) error
	copyCheatSheet() error
}

type tuiModel struct {
	ctl   boardController
	keys  keyMap
	help  help.Model
	input textinput.Model

	slots     []board.Slot
	cursor    int
	state     board.State
	combos    map[string]binding.Combo
	counts    map[string]int
	lastFire  string
	lastErr   bool
	status    string
	recording bool
	recordSet board.Set
	width     int
	height    int
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	comboStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	pressedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func newTUIModel(ctl boardController, slots []board.Slot, combos map[string]binding.Combo, counts map[string]int) tuiModel {
	in := textinput.New()
	in.Placeholder = "ctrl+alt+f"
	in.CharLimit = 40
	in.Width = 30

	if combos == nil {
		combos = make(map[string]binding.Combo)
	}
	if counts == nil {
		counts = make(map[string]int)
	}
	return tuiModel{
		ctl:    ctl,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  in,
		slots:  slots,
		combos: combos,
		counts: counts,
	}
}

func NewTUIProgram(m tuiModel, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
}

// startTUI runs p and subscribes it to a's events. Program.Send blocks
// until Run's event loop reads, so the sink is attached after Run starts.
// The returned channel closes when the program exits.
func startTUI(a *app, p *tea.Program) <-chan struct{} {
	tuiMu.Lock()
	tuiProgram = p
	tuiMu.Unlock()

	done := make(chan struct{})
	go func() {
		if _, err := p.Run(); err != nil {
			log.Errorf("TUI error: %v", err)
		}
		close(done)
	}()
	a.addSink(tuiSink{})
	return done
}

// tuiSend delivers msg to the running TUI, if any.
func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// tuiSink forwards app events into the TUI.
type tuiSink struct{}

func (tuiSink) BoardChanged(st board.State) { tuiSend(BoardStateMsg{State: st}) }
func (tuiSink) SlotFired(ev board.FireEvent, count int) {
	tuiSend(FiredMsg{Event: ev, Count: count})
}
func (tuiSink) BindingChanged(name string, c binding.Combo) {
	tuiSend(BindingMsg{Name: name, Combo: c})
}
func (tuiSink) Status(text string) { tuiSend(StatusMsg{Text: text}) }

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) selectedSlot() board.Slot {
	if m.cursor >= 0 && m.cursor < len(m.slots) {
		return m.slots[m.cursor]
	}
	return board.Slot{}
}

func (m tuiModel) indexOf(id string) int {
	for i, s := range m.slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// do runs fn off the update loop and reports the outcome.
func do(ok string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{ok: ok, err: fn()}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.recording {
			return m.updateRecording(msg)
		}
		return m.updateKeys(msg)

	case BoardStateMsg:
		m.state = msg.State
		if i := m.indexOf(msg.State.Selected); i >= 0 {
			m.cursor = i
		}

	case FiredMsg:
		m.counts[msg.Event.Slot] = msg.Count
		m.lastFire = describeFire(msg.Event)
		m.lastErr = msg.Event.Err != nil

	case BindingMsg:
		if msg.Combo.IsZero() {
			delete(m.combos, msg.Name)
		} else {
			m.combos[msg.Name] = msg.Combo
		}

	case StatusMsg:
		m.status = msg.Text

	case actionDoneMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
		} else if msg.ok != "" {
			m.status = msg.ok
		}
	}
	return m, nil
}

func (m tuiModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	slot := m.selectedSlot()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if len(m.slots) == 0 {
			return m, nil
		}
		next := m.cursor + 1
		if key.Matches(msg, m.keys.Up) {
			next = m.cursor - 1
		}
		next = (next + len(m.slots)) % len(m.slots)
		m.cursor = next
		id := m.slots[next].ID
		return m, do("", func() error { return m.ctl.selectSlot(id) })

	case key.Matches(msg, m.keys.ToggleA):
		return m, do("", func() error { return m.ctl.toggleSet(board.SetA) })

	case key.Matches(msg, m.keys.ToggleB):
		return m, do("", func() error { return m.ctl.toggleSet(board.SetB) })

	case key.Matches(msg, m.keys.RecordA), key.Matches(msg, m.keys.RecordB):
		m.recordSet = board.SetA
		if key.Matches(msg, m.keys.RecordB) {
			m.recordSet = board.SetB
		}
		m.recording = true
		m.input.SetValue(m.combos[slot.Binding(m.recordSet)].String())
		m.input.CursorEnd()
		m.status = fmt.Sprintf("recording shortcut %d for %s", int(m.recordSet)+1, slot.ID)
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ClearA), key.Matches(msg, m.keys.ClearB):
		set := board.SetA
		if key.Matches(msg, m.keys.ClearB) {
			set = board.SetB
		}
		return m, do("cleared "+slot.Binding(set), func() error { return m.ctl.clear(slot.ID, set) })

	case key.Matches(msg, m.keys.Fire):
		return m, do("", func() error { return m.ctl.fire(slot.ID, board.SetA) })

	case key.Matches(msg, m.keys.Copy):
		return m, do("cheat sheet copied", m.ctl.copyCheatSheet)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m tuiModel) updateRecording(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.recording = false
		m.input.Blur()
		m.status = "recording cancelled"
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		c, err := binding.Parse(m.input.Value())
		if err != nil {
			m.status = "error: " + err.Error()
			return m, nil
		}
		m.recording = false
		m.input.Blur()
		slot, set := m.selectedSlot(), m.recordSet
		return m, do("recorded "+c.String(), func() error { return m.ctl.record(slot.ID, set, c) })
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func describeFire(ev board.FireEvent) string {
	s := fmt.Sprintf("%s (%s) %s %dms", ev.Slot, ev.Set, ev.Action.Kind, ev.Duration.Milliseconds())
	if ev.Err != nil {
		return s + ": " + ev.Err.Error()
	}
	return s
}

func check(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func pressed(on bool) string {
	if on {
		return pressedStyle.Render("👍")
	}
	return dimStyle.Render("👎")
}

func (m tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dynamic Recorder"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s Use first set of keys\n", check(m.state.SetAEnabled))
	fmt.Fprintf(&b, "%s Use second set of keys\n\n", check(m.state.SetBEnabled))

	b.WriteString(dimStyle.Render("Select shortcut:"))
	b.WriteString("\n")
	for i, s := range m.slots {
		line := fmt.Sprintf("  %-26s", s.ID)
		if n := m.counts[s.ID]; n > 0 {
			line += dimStyle.Render(fmt.Sprintf(" %d×", n))
		}
		if i == m.cursor {
			line = cursorStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	slot := m.selectedSlot()
	for _, set := range board.Sets {
		label := fmt.Sprintf("Shortcut %d:", int(set)+1)
		combo := dimStyle.Render("none")
		if c, ok := m.combos[slot.Binding(set)]; ok {
			combo = comboStyle.Render(c.String())
		}
		if m.recording && m.recordSet == set {
			combo = m.input.View()
		}
		if !m.state.Enabled(set) {
			label = dimStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s %-24s Pressed? %s\n", label, combo, pressed(m.state.Pressed(set)))
	}
	if slot.Action.Kind != board.ActionNone {
		b.WriteString(dimStyle.Render(slot.Action.Describe()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.lastFire != "" {
		style := okStyle
		if m.lastErr {
			style = errorStyle
		}
		b.WriteString("last: " + style.Render(m.lastFire) + "\n")
	}
	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("shortboard " + version))
	return b.String()
}
