package beep

import "testing"

func TestToneLength(t *testing.T) {
	got := fireTone.mono(0)
	if want := int(sampleRate * fireTone.dur); len(got) != want {
		t.Errorf("len = %d, want %d", len(got), want)
	}
	padded := fireTone.mono(0.2)
	if want := int(sampleRate * 0.2); len(padded) != want {
		t.Errorf("padded len = %d, want %d", len(padded), want)
	}
	for _, s := range padded[len(got):] {
		if s != 0 {
			t.Fatal("padding must be silent")
		}
	}
}

func TestToneDecays(t *testing.T) {
	s := errTone.mono(0)
	peak := func(xs []int16) int16 {
		var m int16
		for _, x := range xs {
			if x < 0 {
				x = -x
			}
			m = max(m, x)
		}
		return m
	}
	q := len(s) / 4
	if peak(s[:q]) <= peak(s[len(s)-q:]) {
		t.Error("tone should fade out")
	}
}

func TestSequences(t *testing.T) {
	fire, on, off, fail := sequences(0)
	if len(on) != len(off) {
		t.Errorf("toggle sounds differ in length: %d vs %d", len(on), len(off))
	}
	if len(fail) <= 2*len(errTone.mono(0)) {
		t.Error("error sound should be two beeps with a gap")
	}
	if len(fire) == 0 {
		t.Error("empty fire sound")
	}
}
