package log

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupLogDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetDir(tmp)
	t.Cleanup(func() { Close(); SetDir("") })
	return tmp
}

func TestResolveDirFlag(t *testing.T) {
	got, err := ResolveDir("/tmp/mylog")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/mylog" {
		t.Errorf("got %q, want /tmp/mylog", got)
	}
}

func TestResolveDirFlagRelative(t *testing.T) {
	got, err := ResolveDir("logs")
	if err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "logs")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDirEnv(t *testing.T) {
	t.Setenv("SHORTBOARD_LOG_PATH", "/tmp/shortboard-env-log")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/shortboard-env-log" {
		t.Errorf("got %q, want /tmp/shortboard-env-log", got)
	}
}

func TestResolveDirFlagBeatsEnv(t *testing.T) {
	t.Setenv("SHORTBOARD_LOG_PATH", "/tmp/from-env")
	got, err := ResolveDir("/tmp/from-flag")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/from-flag" {
		t.Errorf("got %q, want /tmp/from-flag", got)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("SHORTBOARD_LOG_PATH", "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "shortboard") {
		t.Errorf("default dir %q should mention shortboard", got)
	}
}

func TestInitCreatesFiles(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"diagnostics_log.txt", "fires_log.txt"} {
		path := filepath.Join(tmp, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
}

func TestFireLine(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}

	Fire(FireMetrics{Slot: "Finder", Set: "A", Action: "launch-application"})
	Fire(FireMetrics{Slot: "Mute Mic", Set: "B", Action: "run-command", Err: errors.New("exit status 1")})

	data, err := os.ReadFile(filepath.Join(tmp, "fires_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), data)
	}
	// format: "2006-01-02 15:04:05\t[pid]\tslot\tset\taction\tstatus"
	fields := strings.Split(lines[0], "\t")
	if len(fields) != 6 || fields[2] != "Finder" || fields[5] != "ok" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "\terror") {
		t.Errorf("second line = %q", lines[1])
	}

	diag, err := os.ReadFile(filepath.Join(tmp, "diagnostics_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(diag), "exit status 1") {
		t.Errorf("diagnostics log missing error: %q", diag)
	}
}

func TestEventsBeforeInit(t *testing.T) {
	setupLogDir(t)
	// nothing is open yet; none of these may panic
	Fire(FireMetrics{Slot: "x"})
	Selection("x")
	SetToggled("A", false)
	BindingChanged("scx#1", "")
	Infof("%d", 1)
}

func TestCloseIdempotent(t *testing.T) {
	setupLogDir(t)

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	Close()
	Close() // should not panic
}
