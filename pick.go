package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"shortboard/binding"
	"shortboard/board"
)

var errPickCancelled = errors.New("cancelled")

// pickItem shows items in raw mode and returns the chosen index.
func pickItem(title string, items []string, cursor int) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("nothing to pick")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("setting raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	render := func() {
		fmt.Print("\r\x1b[J")
		fmt.Printf("%s (↑/↓, Enter to confirm, q to finish):\r\n\r\n", title)
		for i, it := range items {
			if i == cursor {
				fmt.Printf("  \x1b[1;36m▶ %s\x1b[0m\r\n", it)
			} else {
				fmt.Printf("    %s\r\n", it)
			}
		}
	}
	render()

	buf := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return 0, fmt.Errorf("reading input: %w", err)
		}

		if n == 1 {
			switch buf[0] {
			case 13:
				fmt.Print("\r\n")
				return cursor, nil
			case 3, 'q', 0x1b:
				fmt.Print("\r\n")
				return 0, errPickCancelled
			case 'j':
				cursor = (cursor + 1) % len(items)
			case 'k':
				cursor = (cursor - 1 + len(items)) % len(items)
			}
		} else if n == 3 && buf[0] == 0x1b && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				cursor = (cursor - 1 + len(items)) % len(items)
			case 'B':
				cursor = (cursor + 1) % len(items)
			}
		}

		fmt.Printf("\x1b[%dA", len(items)+2)
		render()
	}
}

func setupLabel(a *app, s board.Slot) string {
	return fmt.Sprintf("%-26s %-20s %-20s", s.ID, orDash(a.combo(s.ID, board.SetA)), orDash(a.combo(s.ID, board.SetB)))
}

// runSetup lets the user assign shortcuts slot by slot without the TUI.
// Combinations are typed, e.g. "ctrl+alt+f". An empty line keeps the
// current one and "-" clears it.
func runSetup(a *app) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("-setup needs an interactive terminal")
	}
	in := bufio.NewReader(os.Stdin)
	cursor := 0
	for {
		slots := a.board.Slots()
		items := make([]string, len(slots))
		for i, s := range slots {
			items[i] = setupLabel(a, s)
		}
		i, err := pickItem("Select shortcut", items, cursor)
		if errors.Is(err, errPickCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		cursor = i
		slot := slots[i]

		for _, set := range board.Sets {
			cur := a.combo(slot.ID, set)
			fmt.Printf("Shortcut %d for %s [%s]: ", int(set)+1, slot.ID, orDash(cur))
			line, err := in.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			line = strings.TrimSpace(line)
			switch {
			case line == "", line == cur.String():
				continue
			case line == "-":
				err = a.clear(slot.ID, set)
			default:
				var c binding.Combo
				if c, err = binding.Parse(line); err == nil {
					err = a.record(slot.ID, set, c)
				}
			}
			if err != nil {
				fmt.Printf("  error: %v\n", err)
				if errors.Is(err, binding.ErrUnknownKey) {
					fmt.Printf("  keys: %s\n", strings.Join(binding.Keys(), " "))
				}
			}
		}
		fmt.Println()
	}
}
