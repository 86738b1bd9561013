// Package beep plays short feedback tones: a tick when a slot fires, a
// rising or falling pair when a key set is toggled, and a low double beep
// on failure.
package beep

import "math"

var disabled bool

func Disable() { disabled = true }

const sampleRate = 44100

type tone struct {
	freq   float64
	dur    float64
	volume float64
	decay  float64
}

var (
	fireTone = tone{freq: 1200, dur: 0.03, volume: 0.5, decay: 60}
	onTone   = tone{freq: 1000, dur: 0.04, volume: 0.45, decay: 45}
	offTone  = tone{freq: 700, dur: 0.04, volume: 0.45, decay: 45}
	errTone  = tone{freq: 350, dur: 0.08, volume: 0.6, decay: 30}
)

const (
	pairGap  = 0.03
	errorGap = 0.05
)

// mono renders t as signed 16-bit mono samples, padded with silence up to
// minDur seconds.
func (t tone) mono(minDur float64) []int16 {
	n := int(float64(sampleRate) * t.dur)
	total := max(n, int(float64(sampleRate)*minDur))
	out := make([]int16, total)
	for i := 0; i < n; i++ {
		ts := float64(i) / float64(sampleRate)
		env := math.Exp(-ts * t.decay)
		out[i] = int16(math.Sin(2*math.Pi*t.freq*ts) * 32767 * t.volume * env)
	}
	return out
}

func silence(dur float64) []int16 {
	return make([]int16, int(float64(sampleRate)*dur))
}

func join(parts ...[]int16) []int16 {
	var out []int16
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// sequences returns the fire, toggle-on, toggle-off and error sounds.
// minDur pads single tones for backends that need a fuller buffer.
func sequences(minDur float64) (fire, on, off, fail []int16) {
	fire = fireTone.mono(minDur)
	on = join(offTone.mono(0), silence(pairGap), onTone.mono(minDur))
	off = join(onTone.mono(0), silence(pairGap), offTone.mono(minDur))
	e := errTone.mono(0)
	fail = join(e, silence(errorGap), e)
	return fire, on, off, fail
}
