package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db, dir
}

func TestOpenCreatesFile(t *testing.T) {
	_, dir := openTestDB(t)
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestBindingsRoundTrip(t *testing.T) {
	db, _ := openTestDB(t)

	if err := db.SaveBinding("scFinder#1", "ctrl+alt+f"); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveBinding("scFinder#1", "ctrl+alt+g"); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveBinding("scMail#2", "super+m"); err != nil {
		t.Fatal(err)
	}

	got, err := db.LoadBindings()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got["scFinder#1"] != "ctrl+alt+g" || got["scMail#2"] != "super+m" {
		t.Errorf("LoadBindings = %v", got)
	}

	if err := db.DeleteBinding("scFinder#1"); err != nil {
		t.Fatal(err)
	}
	got, _ = db.LoadBindings()
	if _, ok := got["scFinder#1"]; ok {
		t.Error("binding should be deleted")
	}
}

func TestBindingsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	db.SaveBinding("a", "ctrl+a")
	db.Close()

	db, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	got, _ := db.LoadBindings()
	if got["a"] != "ctrl+a" {
		t.Errorf("after reopen got %v", got)
	}
}

func TestFires(t *testing.T) {
	db, _ := openTestDB(t)
	now := time.Now()

	records := []FireRecord{
		{Timestamp: now, Slot: "Finder", Set: "A", Action: "launch-application", DurationMs: 3, Success: true},
		{Timestamp: now, Slot: "Finder", Set: "B", Action: "launch-application", DurationMs: 2, Success: true},
		{Timestamp: now, Slot: "Mute Mic", Set: "A", Action: "run-command", DurationMs: 40, Success: false, ErrorMessage: "exit status 1"},
	}
	for _, r := range records {
		if _, err := db.RecordFire(r); err != nil {
			t.Fatal(err)
		}
	}

	counts, err := db.FireCounts()
	if err != nil {
		t.Fatal(err)
	}
	if counts["Finder"] != 2 || counts["Mute Mic"] != 1 {
		t.Errorf("counts = %v", counts)
	}

	recent, err := db.RecentFires(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("len(recent) = %d, want 2", len(recent))
	}
	if recent[0].Slot != "Mute Mic" || recent[0].Success || recent[0].ErrorMessage != "exit status 1" {
		t.Errorf("newest fire = %+v", recent[0])
	}
	if recent[1].Set != "B" {
		t.Errorf("second fire = %+v", recent[1])
	}
}
