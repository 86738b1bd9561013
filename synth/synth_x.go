//go:build darwin || linux

package synth

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"

	"shortboard/binding"
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
)

var vkCodes = map[string]int{
	"a": keybd_event.VK_A, "b": keybd_event.VK_B, "c": keybd_event.VK_C,
	"d": keybd_event.VK_D, "e": keybd_event.VK_E, "f": keybd_event.VK_F,
	"g": keybd_event.VK_G, "h": keybd_event.VK_H, "i": keybd_event.VK_I,
	"j": keybd_event.VK_J, "k": keybd_event.VK_K, "l": keybd_event.VK_L,
	"m": keybd_event.VK_M, "n": keybd_event.VK_N, "o": keybd_event.VK_O,
	"p": keybd_event.VK_P, "q": keybd_event.VK_Q, "r": keybd_event.VK_R,
	"s": keybd_event.VK_S, "t": keybd_event.VK_T, "u": keybd_event.VK_U,
	"v": keybd_event.VK_V, "w": keybd_event.VK_W, "x": keybd_event.VK_X,
	"y": keybd_event.VK_Y, "z": keybd_event.VK_Z,

	"0": keybd_event.VK_0, "1": keybd_event.VK_1, "2": keybd_event.VK_2,
	"3": keybd_event.VK_3, "4": keybd_event.VK_4, "5": keybd_event.VK_5,
	"6": keybd_event.VK_6, "7": keybd_event.VK_7, "8": keybd_event.VK_8,
	"9": keybd_event.VK_9,

	"f1": keybd_event.VK_F1, "f2": keybd_event.VK_F2, "f3": keybd_event.VK_F3,
	"f4": keybd_event.VK_F4, "f5": keybd_event.VK_F5, "f6": keybd_event.VK_F6,
	"f7": keybd_event.VK_F7, "f8": keybd_event.VK_F8, "f9": keybd_event.VK_F9,
	"f10": keybd_event.VK_F10, "f11": keybd_event.VK_F11, "f12": keybd_event.VK_F12,

	"space":  keybd_event.VK_SPACE,
	"enter":  keybd_event.VK_ENTER,
	"tab":    keybd_event.VK_TAB,
	"escape": keybd_event.VK_ESC,
}

func Init() error {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
		if kbErr == nil && runtime.GOOS == "linux" {
			// uinput devices take a moment to show up in /dev/input
			time.Sleep(2 * time.Second)
		}
	})
	return kbErr
}

// Press presses and releases c.
func Press(c binding.Combo) error {
	code, ok := vkCodes[c.Key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedKey, c.Key)
	}
	if err := Init(); err != nil {
		return err
	}
	kb.Clear()
	kb.SetKeys(code)
	kb.HasCTRL(c.Has(binding.ModCtrl))
	kb.HasALT(c.Has(binding.ModAlt))
	kb.HasSHIFT(c.Has(binding.ModShift))
	kb.HasSuper(c.Has(binding.ModSuper))
	return kb.Launching()
}

// Supported reports whether Press can produce c.
func Supported(c binding.Combo) bool {
	_, ok := vkCodes[c.Key]
	return ok
}
