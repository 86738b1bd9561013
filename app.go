package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"shortboard/beep"
	"shortboard/binding"
	"shortboard/board"
	"shortboard/clipboard"
	"shortboard/config"
	"shortboard/hotkey"
	"shortboard/log"
	"shortboard/recorder"
	"shortboard/store"
	"shortboard/tray"
)

// app wires the configured board to its recorder, history store and
// front ends. It is the board's sink and fans every event out.
type app struct {
	cfg   *config.Config
	db    *store.DB
	rec   *recorder.Recorder
	board *board.Board
	ctx   context.Context

	mu     sync.Mutex
	last   board.State
	counts map[string]int
	fires  int
	sinks  []EventSink
}

// newApp builds the board from cfg. db may be nil, in which case nothing
// is persisted.
func newApp(cfg *config.Config, factory hotkey.Factory, db *store.DB, launcher board.Launcher) (*app, error) {
	slots, err := cfg.BoardSlots()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		db:     db,
		ctx:    context.Background(),
		counts: make(map[string]int),
		last:   board.State{SetAEnabled: cfg.Board.UseFirstSet, SetBEnabled: cfg.Board.UseSecondSet},
	}

	var st recorder.Store
	if db != nil {
		st = db
		if counts, err := db.FireCounts(); err == nil {
			a.counts = counts
		} else {
			log.Warnf("load fire counts: %v", err)
		}
	}
	a.rec = recorder.New(factory, st)
	a.rec.OnChange(a.bindingChanged)

	a.board, err = board.New(slots, a.rec, launcher,
		board.WithSink(a),
		board.WithInitialSets(cfg.Board.UseFirstSet, cfg.Board.UseSecondSet),
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// start loads stored bindings, seeds configured defaults and starts the
// board. Registration failures are logged and returned; the board keeps
// running with whatever could be registered.
func (a *app) start(ctx context.Context) error {
	a.ctx = ctx
	if err := a.rec.Load(); err != nil {
		log.Warnf("load bindings: %v", err)
	}
	seeds := a.cfg.Seeds()
	names := make([]string, 0, len(seeds))
	for name := range seeds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a.rec.Seed(name, seeds[name])
	}

	err := a.board.Start(ctx)
	if err != nil {
		log.Warnf("enable bindings: %v", err)
	}
	st := a.board.State()
	log.SessionStart(len(a.board.Slots()), st.SetAEnabled, st.SetBEnabled, hotkeyBackend())
	return err
}

func (a *app) close() {
	a.board.Close()
	a.rec.Close()
	a.mu.Lock()
	n := a.fires
	a.mu.Unlock()
	log.SessionEnd(n)
}

func (a *app) addSink(s EventSink) {
	a.mu.Lock()
	a.sinks = append(a.sinks, s)
	a.mu.Unlock()
	s.BoardChanged(a.board.State())
}

func (a *app) sinkList() []EventSink {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]EventSink(nil), a.sinks...)
}

func (a *app) status(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	for _, s := range a.sinkList() {
		s.Status(text)
	}
}

// StateChanged implements board.Sink.
func (a *app) StateChanged(st board.State) {
	a.mu.Lock()
	prev := a.last
	a.last = st
	a.mu.Unlock()

	if st.Selected != prev.Selected {
		log.Selection(st.Selected)
		tray.SetSelected(st.Selected)
	}
	if st.SetAEnabled != prev.SetAEnabled || st.SetBEnabled != prev.SetBEnabled {
		if st.SetAEnabled != prev.SetAEnabled {
			log.SetToggled(board.SetA.String(), st.SetAEnabled)
		}
		if st.SetBEnabled != prev.SetBEnabled {
			log.SetToggled(board.SetB.String(), st.SetBEnabled)
		}
		tray.SetSets(st.SetAEnabled, st.SetBEnabled)
	}
	for _, s := range a.sinkList() {
		s.BoardChanged(st)
	}
}

// Fired implements board.Sink.
func (a *app) Fired(ev board.FireEvent) {
	log.Fire(log.FireMetrics{
		Slot:       ev.Slot,
		Set:        ev.Set.String(),
		Action:     ev.Action.Kind.String(),
		DurationMs: float64(ev.Duration.Microseconds()) / 1000,
		OutputKB:   float64(len(ev.Output)) / 1024,
		Err:        ev.Err,
	})

	if a.db != nil {
		rec := store.FireRecord{
			Timestamp:  time.Now(),
			Slot:       ev.Slot,
			Set:        ev.Set.String(),
			Action:     ev.Action.Kind.String(),
			DurationMs: ev.Duration.Milliseconds(),
			Success:    ev.Err == nil,
		}
		if ev.Err != nil {
			rec.ErrorMessage = ev.Err.Error()
		}
		if _, err := a.db.RecordFire(rec); err != nil {
			log.Warnf("record fire: %v", err)
		}
	}

	a.mu.Lock()
	a.fires++
	a.counts[ev.Slot]++
	count := a.counts[ev.Slot]
	a.mu.Unlock()

	switch {
	case errors.Is(ev.Err, board.ErrUnsupported):
		log.Warnf("%s: %v", ev.Slot, ev.Err)
	case ev.Err != nil:
		go beep.PlayError()
		tray.SetError(ev.Err.Error())
	case ev.Action.Kind == board.ActionToggleSetA:
		go beep.PlayToggle(a.board.State().SetAEnabled)
	case ev.Action.Kind != board.ActionNone:
		go beep.PlayFire()
	}

	for _, s := range a.sinkList() {
		s.SlotFired(ev, count)
	}
}

func (a *app) bindingChanged(name string, c binding.Combo) {
	log.BindingChanged(name, c.String())
	for _, s := range a.sinkList() {
		s.BindingChanged(name, c)
	}
}

func (a *app) countsSnapshot() map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]int, len(a.counts))
	for k, v := range a.counts {
		out[k] = v
	}
	return out
}

// combo returns the combination assigned to slot id in set.
func (a *app) combo(id string, set board.Set) binding.Combo {
	c, _ := a.rec.Combo(board.Slot{ID: id}.Binding(set))
	return c
}

// record assigns c to slot id in set.
func (a *app) record(id string, set board.Set, c binding.Combo) error {
	if _, ok := a.board.Slot(id); !ok {
		return fmt.Errorf("%w: %q", board.ErrUnknownSlot, id)
	}
	return a.rec.Record(board.Slot{ID: id}.Binding(set), c)
}

func (a *app) clear(id string, set board.Set) error {
	if _, ok := a.board.Slot(id); !ok {
		return fmt.Errorf("%w: %q", board.ErrUnknownSlot, id)
	}
	return a.rec.Clear(board.Slot{ID: id}.Binding(set))
}

// lastFire describes the newest fire in the history store and reports
// whether it failed. It returns "" without history.
func (a *app) lastFire() (string, bool) {
	if a.db == nil {
		return "", false
	}
	recs, err := a.db.RecentFires(1)
	if err != nil {
		log.Warnf("load recent fires: %v", err)
		return "", false
	}
	if len(recs) == 0 {
		return "", false
	}
	r := recs[0]
	text := fmt.Sprintf("%s (%s) %s %dms at %s", r.Slot, r.Set, r.Action, r.DurationMs,
		r.Timestamp.Local().Format("Jan 2 15:04"))
	if !r.Success {
		text += ": " + r.ErrorMessage
	}
	return text, !r.Success
}

// cheatSheet renders every slot with its combinations, one per line.
func (a *app) cheatSheet() string {
	var b strings.Builder
	for _, s := range a.board.Slots() {
		first, second := a.combo(s.ID, board.SetA), a.combo(s.ID, board.SetB)
		if first.IsZero() && second.IsZero() {
			continue
		}
		fmt.Fprintf(&b, "%-24s %-20s %-20s %s\n", s.ID, orDash(first), orDash(second), s.Action.Describe())
	}
	return b.String()
}

func orDash(c binding.Combo) string {
	if c.IsZero() {
		return "-"
	}
	return c.String()
}

func hotkeyBackend() string {
	status, err := hotkey.Diagnose()
	if err != nil {
		return "unavailable"
	}
	return status
}

func (a *app) selectSlot(id string) error {
	return a.board.SelectSlot(id)
}

func (a *app) toggleSet(set board.Set) error {
	_, err := a.board.ToggleSet(set)
	return err
}

func (a *app) fire(id string, set board.Set) error {
	return a.board.Fire(a.ctx, id, set)
}

func (a *app) copyCheatSheet() error {
	sheet := a.cheatSheet()
	if sheet == "" {
		return errors.New("no shortcuts assigned")
	}
	return clipboard.Copy(sheet)
}
