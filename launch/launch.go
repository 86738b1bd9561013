// Package launch performs the OS side of board actions: opening
// applications, running commands and opening system settings panes.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"shortboard/board"
	"shortboard/log"
)

var ErrEmptyCommand = errors.New("empty command")

// Panes need the System Settings app introduced in macOS 13.
const minPaneMajor = 13

// DefaultPane is the settings pane used when a slot names none.
func DefaultPane() string {
	switch runtime.GOOS {
	case "darwin":
		return "/System/Library/PreferencePanes/Bluetooth.prefPane"
	case "windows":
		return "ms-settings:bluetooth"
	}
	return ""
}

type Launcher struct {
	goos      string
	start     func(*exec.Cmd) error
	output    func(*exec.Cmd) ([]byte, error)
	osVersion func() (string, error)
}

func New() *Launcher {
	return &Launcher{
		goos:      runtime.GOOS,
		start:     (*exec.Cmd).Start,
		output:    (*exec.Cmd).CombinedOutput,
		osVersion: macOSVersion,
	}
}

// OpenApplication starts the application at path without waiting for it.
// Failures are logged and otherwise ignored.
func (l *Launcher) OpenApplication(path string) error {
	cmd := l.appCommand(path)
	if cmd == nil {
		log.Warnf("open application %q: unsupported on %s", path, l.goos)
		return nil
	}
	if err := l.start(cmd); err != nil {
		log.Warnf("open application %q: %v", path, err)
		return nil
	}
	if cmd.Process != nil {
		go cmd.Wait()
	}
	return nil
}

func (l *Launcher) appCommand(path string) *exec.Cmd {
	switch l.goos {
	case "darwin":
		return exec.Command("open", "-a", path)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path)
	case "linux", "freebsd", "openbsd", "netbsd":
		if strings.HasSuffix(path, ".desktop") {
			return exec.Command("gtk-launch", strings.TrimSuffix(filepath.Base(path), ".desktop"))
		}
		return exec.Command(path)
	}
	return nil
}

// RunCommand runs argv to completion and returns its combined output.
func (l *Launcher) RunCommand(ctx context.Context, argv []string) ([]byte, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := l.output(cmd)
	if err != nil {
		return out, fmt.Errorf("run %s: %w", filepath.Base(argv[0]), err)
	}
	return out, nil
}

// OpenSystemPane opens a settings pane. Where that is not possible the
// error wraps board.ErrUnsupported.
func (l *Launcher) OpenSystemPane(pane string) error {
	if pane == "" {
		pane = DefaultPane()
	}
	var cmd *exec.Cmd
	switch l.goos {
	case "darwin":
		ok, err := l.panesAvailable()
		if err != nil {
			return fmt.Errorf("%w: system pane: %v", board.ErrUnsupported, err)
		}
		if !ok {
			return fmt.Errorf("%w: system pane needs macOS %d or later", board.ErrUnsupported, minPaneMajor)
		}
		cmd = exec.Command("open", pane)
	case "windows":
		if !strings.HasPrefix(pane, "ms-settings:") {
			return fmt.Errorf("%w: system pane %q", board.ErrUnsupported, pane)
		}
		cmd = exec.Command("cmd", "/c", "start", "", pane)
	default:
		return fmt.Errorf("%w: system pane on %s", board.ErrUnsupported, l.goos)
	}
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("open pane %q: %w", pane, err)
	}
	if cmd.Process != nil {
		go cmd.Wait()
	}
	return nil
}

func (l *Launcher) panesAvailable() (bool, error) {
	v, err := l.osVersion()
	if err != nil {
		return false, err
	}
	major, _, _ := strings.Cut(strings.TrimSpace(v), ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return false, fmt.Errorf("parse os version %q: %w", v, err)
	}
	return n >= minPaneMajor, nil
}

func macOSVersion() (string, error) {
	out, err := exec.Command("sw_vers", "-productVersion").Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Tools lists the external programs the launcher relies on for goos.
func Tools(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open", "sw_vers"}
	case "windows":
		return []string{"cmd"}
	case "linux":
		return []string{"gtk-launch"}
	}
	return nil
}
