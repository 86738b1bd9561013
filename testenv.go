package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"shortboard/beep"
	"shortboard/binding"
	"shortboard/board"
	"shortboard/config"
	"shortboard/hotkey"
	"shortboard/launch"
	"shortboard/log"
	"shortboard/store"
)

// printer is the headless EventSink: one line per event on out.
type printer struct {
	mu    sync.Mutex
	out   io.Writer
	fired chan struct{}
}

func stateLine(st board.State) string {
	return fmt.Sprintf("state selected=%q a=%s b=%s pressedA=%t pressedB=%t",
		st.Selected, onOff(st.SetAEnabled), onOff(st.SetBEnabled), st.PressedA, st.PressedB)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (p *printer) println(format string, args ...any) {
	p.mu.Lock()
	fmt.Fprintf(p.out, format+"\n", args...)
	p.mu.Unlock()
}

func (p *printer) BoardChanged(st board.State) { p.println("%s", stateLine(st)) }

func (p *printer) SlotFired(ev board.FireEvent, count int) {
	result := "ok"
	if ev.Err != nil {
		result = "error " + strconv.Quote(ev.Err.Error())
	}
	p.println("fired slot=%q set=%s action=%s count=%d %s", ev.Slot, ev.Set, ev.Action.Kind, count, result)
	if out := strings.TrimSpace(string(ev.Output)); out != "" {
		p.println("output %q", out)
	}
	select {
	case p.fired <- struct{}{}:
	default:
	}
}

func (p *printer) BindingChanged(name string, c binding.Combo) {
	p.println("binding %s=%s", name, orDash(c))
}

func (p *printer) Status(text string) { p.println("status %s", text) }

// runTestMode drives the board from a stdin script with fake hotkeys.
func runTestMode(cfg *config.Config, in io.Reader, out io.Writer) int {
	beep.Disable()

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	db, err := store.Open(cfg.Board.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		db = nil
	} else {
		defer db.Close()
	}

	ff := hotkey.NewFakeFactory()
	a, err := newApp(cfg, ff.New, db, launch.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	p := &printer{out: out, fired: make(chan struct{}, 16)}
	a.addSink(p)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := a.start(ctx); err != nil {
		p.println("error %q", err.Error())
	}
	defer a.close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "QUIT" {
			return 0
		}
		if err := runTestCommand(a, ff, p, line); err != nil {
			p.println("error %q", err.Error())
		}
	}
	return 0
}

func runTestCommand(a *app, ff *hotkey.FakeFactory, p *printer, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "SELECT":
		return a.selectSlot(rest)

	case "SET":
		// SET <A|B> <on|off>
		name, val, _ := strings.Cut(rest, " ")
		set, err := board.ParseSet(name)
		if err != nil {
			return err
		}
		return a.board.SetEnabled(set, strings.TrimSpace(val) == "on")

	case "RECORD":
		// RECORD <A|B> <combo> <slot id...>
		f := strings.SplitN(rest, " ", 3)
		if len(f) != 3 {
			return fmt.Errorf("usage: RECORD <A|B> <combo> <slot>")
		}
		set, err := board.ParseSet(f[0])
		if err != nil {
			return err
		}
		c, err := binding.Parse(f[1])
		if err != nil {
			return err
		}
		return a.record(f[2], set, c)

	case "CLEAR":
		// CLEAR <A|B> <slot id...>
		name, id, _ := strings.Cut(rest, " ")
		set, err := board.ParseSet(name)
		if err != nil {
			return err
		}
		return a.clear(strings.TrimSpace(id), set)

	case "DOWN", "UP":
		c, err := binding.Parse(rest)
		if err != nil {
			return err
		}
		hk := ff.Get(c)
		if hk == nil || !hk.Registered() {
			return fmt.Errorf("%s is not registered", c)
		}
		if cmd == "DOWN" {
			hk.SimKeydown()
		} else {
			hk.SimKeyup()
		}

	case "FIRE":
		// FIRE <A|B> <slot id...>
		name, id, _ := strings.Cut(rest, " ")
		set, err := board.ParseSet(name)
		if err != nil {
			return err
		}
		// action failures are reported by the sink
		if err := a.fire(strings.TrimSpace(id), set); errors.Is(err, board.ErrUnknownSlot) {
			return err
		}

	case "STATE":
		p.println("%s", stateLine(a.board.State()))

	case "WAIT":
		select {
		case <-p.fired:
		case <-time.After(5 * time.Second):
			return fmt.Errorf("timed out waiting for fire")
		}

	case "SLEEP":
		ms, err := strconv.Atoi(rest)
		if err != nil {
			return err
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
