//go:build linux

package beep

import (
	"sync"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

// PulseAudio drops very short streams before the buffer fills.
const minPulseDur = 0.2

var (
	fireSamples  []int16
	onSamples    []int16
	offSamples   []int16
	errorSamples []int16
	soundOnce    sync.Once
)

func initSound() {
	fire, on, off, fail := sequences(minPulseDur)
	fireSamples = stereo(fire)
	onSamples = stereo(on)
	offSamples = stereo(off)
	errorSamples = stereo(fail)
}

func stereo(mono []int16) []int16 {
	out := make([]int16, len(mono)*2)
	for i, s := range mono {
		out[i*2] = s
		out[i*2+1] = s
	}
	return out
}

func play(samples []int16) {
	if len(samples) == 0 {
		return
	}
	c, err := pulse.NewClient()
	if err != nil {
		return
	}
	defer c.Close()

	pos := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if pos >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, samples[pos:])
		pos += n
		return n, nil
	})
	stream, err := c.NewPlayback(reader,
		pulse.PlaybackStereo,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.1),
		pulse.PlaybackRawOption(func(p *proto.CreatePlaybackStream) {
			p.ChannelVolumes = proto.ChannelVolumes{uint32(proto.VolumeNorm), uint32(proto.VolumeNorm)}
		}),
	)
	if err != nil {
		return
	}
	stream.Start()
	stream.Drain()
	stream.Stop()
	stream.Close()
}

func playAsync(samples *[]int16) {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	go play(*samples)
}

func Init() {
	soundOnce.Do(initSound)
}

func PlayFire() { playAsync(&fireSamples) }

func PlayToggle(enabled bool) {
	if enabled {
		playAsync(&onSamples)
	} else {
		playAsync(&offSamples)
	}
}

func PlayError() { playAsync(&errorSamples) }
