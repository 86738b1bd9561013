package tray

import (
	"bytes"
	"image/png"
	"testing"

	"shortboard/board"
)

func TestIconsDiffer(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			ic := Icon(a, b)
			img, err := png.Decode(bytes.NewReader(ic))
			if err != nil {
				t.Fatalf("icon(%v,%v): %v", a, b, err)
			}
			if img.Bounds().Dx() != 44 {
				t.Errorf("icon(%v,%v) width = %d", a, b, img.Bounds().Dx())
			}
			seen[string(ic)] = true
		}
	}
	if len(seen) != 4 {
		t.Errorf("want 4 distinct icons, got %d", len(seen))
	}
}

func TestToggleCallback(t *testing.T) {
	var gotSet board.Set
	var gotOn bool
	OnToggle(func(s board.Set, on bool) { gotSet, gotOn = s, on })
	t.Cleanup(func() { OnToggle(nil); SetSets(true, true) })

	toggled(board.SetB, false)
	if gotSet != board.SetB || gotOn {
		t.Errorf("callback got %v %v", gotSet, gotOn)
	}
	if a, b := sets(); !a || b {
		t.Errorf("sets = %v %v", a, b)
	}
}

func TestSetSlotsCopies(t *testing.T) {
	ids := []string{"one", "two"}
	SetSlots(ids, "one")
	ids[0] = "changed"
	stateMu.Lock()
	defer stateMu.Unlock()
	if slotIDs[0] != "one" || selected != "one" {
		t.Errorf("slots = %v selected %q", slotIDs, selected)
	}
}
