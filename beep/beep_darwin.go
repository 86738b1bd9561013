//go:build darwin

package beep

import (
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

var (
	malgoCtx    *malgo.AllocatedContext
	device      *malgo.Device
	fireBytes   []byte
	onBytes     []byte
	offBytes    []byte
	errorBytes  []byte
	soundOnce   sync.Once
	playSamples atomic.Pointer[[]byte]
	playPos     atomic.Uint32
	playMu      sync.Mutex
)

func initDevice() error {
	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatS16
	config.Playback.Channels = 1
	config.SampleRate = sampleRate

	var err error
	device, err = malgo.InitDevice(malgoCtx.Context, config, malgo.DeviceCallbacks{
		Data: dataCallback,
	})
	return err
}

func initSound() {
	var err error
	malgoCtx, err = malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return
	}

	fire, on, off, fail := sequences(0)
	fireBytes = toBytes(fire)
	onBytes = toBytes(on)
	offBytes = toBytes(off)
	errorBytes = toBytes(fail)

	if err := initDevice(); err != nil {
		malgoCtx.Uninit()
		malgoCtx = nil
	}
}

func toBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}

func dataCallback(pOutput, _ []byte, frameCount uint32) {
	clear(pOutput)
	samples := playSamples.Load()
	if samples == nil {
		return
	}

	pos := playPos.Load()
	remaining := uint32(len(*samples)) - pos
	if remaining == 0 {
		playSamples.Store(nil)
		return
	}
	n := min(frameCount*2, remaining)
	copy(pOutput[:n], (*samples)[pos:pos+n])
	playPos.Store(pos + n)
}

func playBytes(buf *[]byte) {
	if disabled {
		return
	}
	soundOnce.Do(initSound)
	samples := *buf
	if malgoCtx == nil || len(samples) == 0 {
		return
	}

	playMu.Lock()
	defer playMu.Unlock()
	if device == nil {
		return
	}

	device.Stop()
	playPos.Store(0)
	playSamples.Store(&samples)

	if err := device.Start(); err != nil {
		// device goes stale across sleep/wake; rebuild once
		device.Uninit()
		if err := initDevice(); err != nil {
			playSamples.Store(nil)
			return
		}
		if err := device.Start(); err != nil {
			playSamples.Store(nil)
		}
	}
}

func Init() {
	soundOnce.Do(initSound)
}

func PlayFire() { playBytes(&fireBytes) }

func PlayToggle(enabled bool) {
	if enabled {
		playBytes(&onBytes)
	} else {
		playBytes(&offBytes)
	}
}

func PlayError() { playBytes(&errorBytes) }
