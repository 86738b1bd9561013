package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"shortboard/binding"
	"shortboard/board"
)

type Config struct {
	Board BoardConfig  `toml:"board"`
	Slots []SlotConfig `toml:"slot"`
}

type BoardConfig struct {
	UseFirstSet  bool   `toml:"use_first_set"`
	UseSecondSet bool   `toml:"use_second_set"`
	Beep         bool   `toml:"beep"`
	DataDir      string `toml:"data_dir,omitempty"`
}

// SlotConfig is one [[slot]] table. Action may be left empty; it is then
// inferred from whichever of App, Command or Pane is set.
type SlotConfig struct {
	ID      string   `toml:"id"`
	Action  string   `toml:"action,omitempty"`
	App     string   `toml:"app,omitempty"`
	Command []string `toml:"command,omitempty"`
	Pane    string   `toml:"pane,omitempty"`
	First   string   `toml:"first,omitempty"`
	Second  string   `toml:"second,omitempty"`
}

var (
	ErrNoSlots       = errors.New("config has no slots")
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingField  = errors.New("missing field")
)

func defaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			UseFirstSet:  true,
			UseSecondSet: true,
			Beep:         true,
		},
		Slots: defaultSlots(),
	}
}

// Default returns the configuration written on first run.
func Default() *Config {
	return defaultConfig()
}

// DefaultPath returns the path of the configuration file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shortboard", "config.toml"), nil
}

// Load loads the configuration from the TOML file at path.
// If the file doesn't exist, it creates it with default values.
func Load(path string) (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg = defaultConfig()
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		cfg = defaultConfig()
		cfg.Slots = nil
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
		if len(cfg.Slots) == 0 {
			cfg.Slots = defaultSlots()
		}
	}

	if cfg.Board.DataDir == "" {
		cfg.Board.DataDir = filepath.Dir(path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the TOML file
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

func (c *Config) Validate() error {
	if len(c.Slots) == 0 {
		return ErrNoSlots
	}
	var errs []error
	seen := make(map[string]bool, len(c.Slots))
	for i, s := range c.Slots {
		if strings.TrimSpace(s.ID) == "" {
			errs = append(errs, fmt.Errorf("slot %d: %w", i+1, board.ErrEmptyID))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("slot %q: %w", s.ID, board.ErrDuplicateSlot))
		}
		seen[s.ID] = true
		if _, err := s.BoardSlot(); err != nil {
			errs = append(errs, err)
		}
		for _, combo := range []string{s.First, s.Second} {
			if combo == "" {
				continue
			}
			if _, err := binding.Parse(combo); err != nil {
				errs = append(errs, fmt.Errorf("slot %q: %w", s.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

// BoardSlot converts the table into a board slot.
func (s SlotConfig) BoardSlot() (board.Slot, error) {
	slot := board.Slot{ID: s.ID}
	action := strings.ToLower(strings.TrimSpace(s.Action))
	if action == "" {
		switch {
		case s.App != "":
			action = "app"
		case len(s.Command) > 0:
			action = "command"
		case s.Pane != "":
			action = "pane"
		}
	}

	switch action {
	case "", "none":
	case "app", "launch", "launch-application":
		if s.App == "" {
			return slot, fmt.Errorf("slot %q: %w: app", s.ID, ErrMissingField)
		}
		slot.Action = board.LaunchApplication(s.App)
	case "command", "run", "run-command":
		if len(s.Command) == 0 {
			return slot, fmt.Errorf("slot %q: %w: command", s.ID, ErrMissingField)
		}
		slot.Action = board.RunCommand(s.Command...)
	case "toggle", "toggle-set-a":
		slot.Action = board.ToggleSetA()
	case "pane", "open-pane":
		slot.Action = board.OpenSystemPane(s.Pane)
	default:
		return slot, fmt.Errorf("slot %q: %w %q", s.ID, ErrUnknownAction, s.Action)
	}
	return slot, nil
}

// BoardSlots converts every slot, in order.
func (c *Config) BoardSlots() ([]board.Slot, error) {
	slots := make([]board.Slot, 0, len(c.Slots))
	for _, s := range c.Slots {
		slot, err := s.BoardSlot()
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// Seeds maps binding names to the default combinations configured for them.
func (c *Config) Seeds() map[string]binding.Combo {
	seeds := make(map[string]binding.Combo)
	for _, s := range c.Slots {
		slot := board.Slot{ID: s.ID}
		for set, combo := range map[board.Set]string{board.SetA: s.First, board.SetB: s.Second} {
			if combo == "" {
				continue
			}
			if cb, err := binding.Parse(combo); err == nil {
				seeds[slot.Binding(set)] = cb
			}
		}
	}
	return seeds
}
