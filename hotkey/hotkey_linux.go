//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"shortboard/binding"
)

const (
	evKey      = 1
	keyPress   = 1
	keyRelease = 0
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

var evdevMods = map[uint16]binding.Modifier{
	29:  binding.ModCtrl,  // KEY_LEFTCTRL
	97:  binding.ModCtrl,  // KEY_RIGHTCTRL
	42:  binding.ModShift, // KEY_LEFTSHIFT
	54:  binding.ModShift, // KEY_RIGHTSHIFT
	56:  binding.ModAlt,   // KEY_LEFTALT
	100: binding.ModAlt,   // KEY_RIGHTALT
	125: binding.ModSuper, // KEY_LEFTMETA
	126: binding.ModSuper, // KEY_RIGHTMETA
}

var evdevKeys = map[string]uint16{
	"escape": 1, "1": 2, "2": 3, "3": 4, "4": 5, "5": 6, "6": 7, "7": 8, "8": 9, "9": 10, "0": 11,
	"tab": 15, "q": 16, "w": 17, "e": 18, "r": 19, "t": 20, "y": 21, "u": 22, "i": 23, "o": 24, "p": 25,
	"enter": 28, "a": 30, "s": 31, "d": 32, "f": 33, "g": 34, "h": 35, "j": 36, "k": 37, "l": 38,
	"z": 44, "x": 45, "c": 46, "v": 47, "b": 48, "n": 49, "m": 50, "space": 57,
	"f1": 59, "f2": 60, "f3": 61, "f4": 62, "f5": 63, "f6": 64, "f7": 65, "f8": 66, "f9": 67, "f10": 68,
	"f11": 87, "f12": 88, "up": 103, "left": 105, "right": 106, "down": 108, "delete": 111,
}

type evdevHotkey struct {
	combo   binding.Combo
	code    uint16
	keydown chan struct{}
	keyup   chan struct{}

	mu    sync.Mutex
	files []*os.File
	stop  chan struct{}
}

// New creates a hotkey using evdev (reads /dev/input directly) so it also
// works under Wayland. Requires the user to be in the 'input' group.
func New(c binding.Combo) (Hotkey, error) {
	code, ok := evdevKeys[c.Key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", binding.ErrUnknownKey, c.Key)
	}
	return &evdevHotkey{
		combo:   c,
		code:    code,
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
	}, nil
}

func (h *evdevHotkey) Register() error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.stop = make(chan struct{})
	h.files = nil

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		h.files = append(h.files, f)
		go h.readEvents(f, h.stop)
	}

	if len(h.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	return nil
}

func (h *evdevHotkey) readEvents(f *os.File, stop <-chan struct{}) {
	buf := make([]byte, inputEventSize*16)
	held := make(map[uint16]bool)
	var down bool

	for {
		select {
		case <-stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}

			pressed := evValue == keyPress
			released := evValue == keyRelease

			if _, ok := evdevMods[evCode]; ok {
				if pressed {
					held[evCode] = true
				} else if released {
					delete(held, evCode)
				}
				continue
			}
			if evCode != h.code {
				continue
			}
			if pressed && !down && heldMods(held) == h.combo.Mods {
				down = true
				h.signal(h.keydown, stop)
			} else if released && down {
				down = false
				h.signal(h.keyup, stop)
			}
		}
	}
}

func (h *evdevHotkey) signal(ch chan struct{}, stop <-chan struct{}) {
	select {
	case ch <- struct{}{}:
	case <-stop:
	default:
	}
}

func heldMods(held map[uint16]bool) binding.Modifier {
	var m binding.Modifier
	for code := range held {
		m |= evdevMods[code]
	}
	return m
}

func (h *evdevHotkey) Unregister() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stop != nil {
		close(h.stop)
		h.stop = nil
	}
	for _, f := range h.files {
		f.Close()
	}
	h.files = nil
}

func (h *evdevHotkey) Keydown() <-chan struct{} {
	return h.keydown
}

func (h *evdevHotkey) Keyup() <-chan struct{} {
	return h.keyup
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join("/dev/input", e.Name())
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, path)
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	// Real keyboards have long key capability bitmaps
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

// Diagnose checks hotkey/evdev access and returns a status message.
func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}
