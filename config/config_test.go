package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"shortboard/binding"
	"shortboard/board"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !cfg.Board.UseFirstSet || !cfg.Board.UseSecondSet || !cfg.Board.Beep {
		t.Errorf("board defaults = %+v", cfg.Board)
	}
	if cfg.Board.DataDir != filepath.Dir(path) {
		t.Errorf("data dir = %q, want %q", cfg.Board.DataDir, filepath.Dir(path))
	}
	if len(cfg.Slots) != len(defaultSlots()) {
		t.Errorf("got %d slots, want %d", len(cfg.Slots), len(defaultSlots()))
	}

	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again.Slots, cfg.Slots) {
		t.Errorf("reloaded slots differ:\n%+v\n%+v", again.Slots, cfg.Slots)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	slots, err := cfg.BoardSlots()
	if err != nil {
		t.Fatal(err)
	}
	var toggles int
	for _, s := range slots {
		if s.Action.Kind == board.ActionToggleSetA {
			toggles++
		}
	}
	if toggles != 1 {
		t.Errorf("want exactly one toggle slot, got %d", toggles)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[board]
use_second_set = false
data_dir = "/tmp/shortboard-data"

[[slot]]
id = "Mail"
app = "/Applications/Mail.app"
first = "ctrl+alt+m"

[[slot]]
id = "Build"
command = ["make", "-C", "/src", "all"]
second = "cmd+shift+b"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Board.UseFirstSet || cfg.Board.UseSecondSet {
		t.Errorf("board = %+v", cfg.Board)
	}
	if cfg.Board.DataDir != "/tmp/shortboard-data" {
		t.Errorf("data dir = %q", cfg.Board.DataDir)
	}
	slots, err := cfg.BoardSlots()
	if err != nil {
		t.Fatal(err)
	}
	want := []board.Slot{
		{ID: "Mail", Action: board.LaunchApplication("/Applications/Mail.app")},
		{ID: "Build", Action: board.RunCommand("make", "-C", "/src", "all")},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %+v", slots)
	}

	seeds := cfg.Seeds()
	if seeds["scMail#1"] != binding.MustParse("ctrl+alt+m") {
		t.Errorf("Mail seed = %v", seeds["scMail#1"])
	}
	if seeds["scBuild#2"] != binding.MustParse("shift+super+b") {
		t.Errorf("Build seed = %v", seeds["scBuild#2"])
	}
	if len(seeds) != 2 {
		t.Errorf("seeds = %v", seeds)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[[slot]]
id = "Mail"
action = "teleport"

[[slot]]
id = "Mail"
first = "hyper+q"
`
	os.WriteFile(path, []byte(data), 0644)
	_, err := Load(path)
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("want ErrUnknownAction, got %v", err)
	}
	if !errors.Is(err, board.ErrDuplicateSlot) {
		t.Errorf("want ErrDuplicateSlot, got %v", err)
	}
	if !errors.Is(err, binding.ErrUnknownKey) {
		t.Errorf("want ErrUnknownKey, got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[board\nbeep = "), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected decode error")
	}
}

func TestBoardSlotInference(t *testing.T) {
	cases := []struct {
		in   SlotConfig
		want board.ActionKind
	}{
		{SlotConfig{ID: "a"}, board.ActionNone},
		{SlotConfig{ID: "a", App: "/x.app"}, board.ActionLaunchApplication},
		{SlotConfig{ID: "a", Command: []string{"true"}}, board.ActionRunCommand},
		{SlotConfig{ID: "a", Pane: "p"}, board.ActionOpenSystemPane},
		{SlotConfig{ID: "a", Action: "Toggle"}, board.ActionToggleSetA},
		{SlotConfig{ID: "a", Action: "open-pane"}, board.ActionOpenSystemPane},
		{SlotConfig{ID: "a", Action: "none", App: "/x.app"}, board.ActionNone},
	}
	for _, c := range cases {
		got, err := c.in.BoardSlot()
		if err != nil {
			t.Errorf("%+v: %v", c.in, err)
			continue
		}
		if got.Action.Kind != c.want {
			t.Errorf("%+v: kind = %v, want %v", c.in, got.Action.Kind, c.want)
		}
	}

	if _, err := (SlotConfig{ID: "a", Action: "run"}).BoardSlot(); !errors.Is(err, ErrMissingField) {
		t.Errorf("run without command: err = %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{
		Board: BoardConfig{UseFirstSet: false, UseSecondSet: true, DataDir: "/data"},
		Slots: []SlotConfig{{ID: "Only", Command: []string{"echo", "hi there"}, First: "ctrl+1"}},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
}
