package binding

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModSuper
)

var (
	ErrEmpty        = errors.New("empty key combination")
	ErrNoModifier   = errors.New("key combination needs at least one modifier")
	ErrUnknownKey   = errors.New("unknown key")
	ErrDuplicateKey = errors.New("key combination has more than one key")
)

// Combo is one physical key combination, e.g. ctrl+shift+space.
type Combo struct {
	Mods Modifier
	Key  string
}

var modOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModShift, "shift"},
	{ModSuper, "super"},
}

var modAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"win":     ModSuper,
	"meta":    ModSuper,
}

var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
}

var keys = func() []string {
	var k []string
	for c := 'a'; c <= 'z'; c++ {
		k = append(k, string(c))
	}
	for c := '0'; c <= '9'; c++ {
		k = append(k, string(c))
	}
	for i := 1; i <= 12; i++ {
		k = append(k, fmt.Sprintf("f%d", i))
	}
	return append(k, "space", "enter", "tab", "escape", "delete", "left", "right", "up", "down")
}()

// Keys returns the supported key names.
func Keys() []string {
	return slices.Clone(keys)
}

func IsFunctionKey(key string) bool {
	return len(key) >= 2 && key[0] == 'f' && key[1] >= '1' && key[1] <= '9'
}

// Parse reads a combination like "ctrl+shift+space" or "cmd+option+f".
// Modifiers may appear in any order; exactly one key is required.
func Parse(s string) (Combo, error) {
	var c Combo
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return c, ErrEmpty
	}

	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Combo{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
		}
		if m, ok := modAliases[part]; ok {
			c.Mods |= m
			continue
		}
		if alias, ok := keyAliases[part]; ok {
			part = alias
		}
		if !slices.Contains(keys, part) {
			return Combo{}, fmt.Errorf("%w: %q", ErrUnknownKey, part)
		}
		if c.Key != "" {
			return Combo{}, fmt.Errorf("%w: %q", ErrDuplicateKey, s)
		}
		c.Key = part
	}

	if c.Key == "" {
		return Combo{}, fmt.Errorf("%w: %q has no key", ErrUnknownKey, s)
	}
	if c.Mods == 0 && !IsFunctionKey(c.Key) {
		return Combo{}, ErrNoModifier
	}
	return c, nil
}

// MustParse is Parse for static tables.
func MustParse(s string) Combo {
	c, err := Parse(s)
	if err != nil {
		panic("binding: " + err.Error())
	}
	return c
}

func (c Combo) IsZero() bool { return c.Key == "" }

func (c Combo) Has(m Modifier) bool { return c.Mods&m != 0 }

func (c Combo) String() string {
	if c.IsZero() {
		return ""
	}
	var parts []string
	for _, m := range modOrder {
		if c.Has(m.mod) {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, c.Key), "+")
}
