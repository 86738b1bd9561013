package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	diagLog   zerolog.Logger
	diagFile  *os.File
	firesFile *os.File
	logMu     sync.Mutex
	logReady  bool
	pid       int
	dir       string
)

// FireMetrics describes one dispatched action.
type FireMetrics struct {
	Slot       string
	Set        string
	Action     string
	DurationMs float64
	OutputKB   float64
	Err        error
}

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		return absolute(flagPath)
	}

	// Priority 2: SHORTBOARD_LOG_PATH environment variable
	if envPath := os.Getenv("SHORTBOARD_LOG_PATH"); envPath != "" {
		return absolute(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absolute(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	firesPath := filepath.Join(dir, "fires_log.txt")
	firesFile, err = os.OpenFile(firesPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		diagFile.Close()
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	if firesFile != nil {
		firesFile.Close()
		firesFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	if logReady {
		diagLog.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

// Fire logs a dispatched action to the diagnostics log and appends a
// tab-separated line to fires_log.txt.
func Fire(m FireMetrics) {
	if !logReady {
		return
	}

	ev := diagLog.Info()
	status := "ok"
	if m.Err != nil {
		ev = diagLog.Error().Str("error", m.Err.Error())
		status = "error"
	}
	ev.Str("slot", m.Slot).
		Str("set", m.Set).
		Str("action", m.Action).
		Float64("duration_ms", m.DurationMs).
		Float64("output_kb", m.OutputKB).
		Msg("fire")

	logMu.Lock()
	defer logMu.Unlock()
	if firesFile == nil {
		return
	}
	line := fmt.Sprintf("%s\t[%d]\t%s\t%s\t%s\t%s\n",
		time.Now().Format("2006-01-02 15:04:05"), pid, m.Slot, m.Set, m.Action, status)
	firesFile.WriteString(line)
}

func Selection(slot string) {
	if !logReady {
		return
	}
	diagLog.Info().Str("slot", slot).Msg("select")
}

func SetToggled(set string, enabled bool) {
	if !logReady {
		return
	}
	diagLog.Info().Str("set", set).Bool("enabled", enabled).Msg("set_toggled")
}

func BindingChanged(name, combo string) {
	if !logReady {
		return
	}
	if combo == "" {
		combo = "none"
	}
	diagLog.Info().Str("binding", name).Str("combo", combo).Msg("binding_changed")
}

func SessionStart(slots int, setA, setB bool, backend string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("slots", slots).
		Bool("set_a", setA).
		Bool("set_b", setB).
		Str("hotkey", backend).
		Msg("session_start")
}

func SessionEnd(fires int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("fires", fires).
		Msg("session_end")
}
