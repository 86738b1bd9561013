package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	ToggleA key.Binding
	ToggleB key.Binding
	RecordA key.Binding
	RecordB key.Binding
	ClearA  key.Binding
	ClearB  key.Binding
	Fire    key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous slot"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next slot"),
		),
		ToggleA: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "toggle first set"),
		),
		ToggleB: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "toggle second set"),
		),
		RecordA: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "record shortcut 1"),
		),
		RecordB: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "record shortcut 2"),
		),
		ClearA: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear shortcut 1"),
		),
		ClearB: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear shortcut 2"),
		),
		Fire: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "fire slot"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy cheat sheet"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.RecordA, k.RecordB, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Fire},
		{k.ToggleA, k.ToggleB},
		{k.RecordA, k.RecordB, k.ClearA, k.ClearB},
		{k.Copy, k.Help, k.Quit},
	}
}
