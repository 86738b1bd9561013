//go:build integration

package test_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var testBinary string

const testConfig = `[board]
use_first_set = true
use_second_set = true
beep = false

[[slot]]
id = "Echo"
command = ["echo", "hello"]
first = "ctrl+alt+1"
second = "ctrl+alt+2"

[[slot]]
id = "Toggle"
action = "toggle"
first = "ctrl+alt+t"

[[slot]]
id = "Broken"
command = ["false"]
first = "ctrl+alt+b"

[[slot]]
id = "Spare"
action = "none"
`

func TestMain(m *testing.M) {
	testBinary = os.Getenv("SHORTBOARD_TEST_BIN")
	if testBinary == "" {
		fmt.Fprintln(os.Stderr, "SHORTBOARD_TEST_BIN not set; build the binary and point SHORTBOARD_TEST_BIN at it")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func cmds(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

// workspace writes the test config into a fresh directory, which also
// holds the binding store.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(testConfig), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func runBoard(t *testing.T, dir, stdin string) (stdout, logDir string) {
	t.Helper()
	logDir = t.TempDir()
	cmd := exec.Command(testBinary, "-test", "-logpath", logDir, "-config", filepath.Join(dir, "config.toml"))
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = os.Environ()

	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("shortboard exited with error: %v\noutput: %s", err, out)
	}
	return string(out), logDir
}

func readLog(t *testing.T, logDir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("failed to read %s: %v", filename, err)
	}
	return string(data)
}

func requireLine(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestStartSelectsFirstSlot(t *testing.T) {
	out, _ := runBoard(t, workspace(t), cmds("STATE", "QUIT"))
	requireLine(t, out, `state selected="Echo" a=on b=on pressedA=false pressedB=false`)
}

func TestPressFiresAndTracksState(t *testing.T) {
	out, logDir := runBoard(t, workspace(t), cmds(
		"DOWN ctrl+alt+1", "WAIT", "SLEEP 100", "STATE",
		"UP ctrl+alt+1", "SLEEP 100", "STATE",
		"QUIT"))
	requireLine(t, out, `fired slot="Echo" set=A action=run-command count=1 ok`)
	requireLine(t, out, `output "hello"`)
	requireLine(t, out, `pressedA=true`)

	fires := readLog(t, logDir, "fires_log.txt")
	if !strings.Contains(fires, "Echo\tA\trun-command\tok") {
		t.Errorf("fires_log.txt missing Echo line:\n%s", fires)
	}
}

func TestSecondSetFires(t *testing.T) {
	out, _ := runBoard(t, workspace(t), cmds("DOWN ctrl+alt+2", "WAIT", "QUIT"))
	requireLine(t, out, `fired slot="Echo" set=B action=run-command count=1 ok`)
}

func TestToggleDisablesFirstSet(t *testing.T) {
	out, _ := runBoard(t, workspace(t), cmds(
		"DOWN ctrl+alt+t", "WAIT", "SLEEP 100", "STATE",
		"DOWN ctrl+alt+1",
		"QUIT"))
	requireLine(t, out, `fired slot="Toggle" set=A action=toggle-set-a count=1 ok`)
	requireLine(t, out, `a=off b=on`)
	requireLine(t, out, `error "ctrl+alt+1 is not registered"`)
}

func TestSetFlagsAndUnknownSlot(t *testing.T) {
	out, _ := runBoard(t, workspace(t), cmds(
		"SELECT Spare", "SET B off", "SET B on", "STATE",
		"SELECT Nope",
		"QUIT"))
	requireLine(t, out, `state selected="Spare" a=on b=off`)
	requireLine(t, out, `state selected="Spare" a=on b=on`)
	requireLine(t, out, `unknown slot`)
}

func TestSelectMovesPressTracking(t *testing.T) {
	out, _ := runBoard(t, workspace(t), cmds(
		"RECORD A ctrl+alt+s Spare",
		"SELECT Spare",
		"DOWN ctrl+alt+1", "WAIT", "SLEEP 100", "STATE", "UP ctrl+alt+1", "SLEEP 100",
		"DOWN ctrl+alt+s", "WAIT", "SLEEP 100", "STATE", "UP ctrl+alt+s", "SLEEP 100",
		"SELECT Echo", "STATE",
		"QUIT"))

	before, after, ok := strings.Cut(out, `fired slot="Spare"`)
	if !ok {
		t.Fatalf("Spare never fired:\n%s", out)
	}
	requireLine(t, before, `fired slot="Echo" set=A`)
	if strings.Contains(before, "pressedA=true") {
		t.Errorf("pressing another slot's combo set a pressed flag:\n%s", before)
	}
	requireLine(t, after, `state selected="Spare" a=on b=on pressedA=true`)
	requireLine(t, after, `state selected="Echo" a=on b=on pressedA=false pressedB=false`)
}

func TestFailingCommandIsReported(t *testing.T) {
	out, logDir := runBoard(t, workspace(t), cmds("FIRE A Broken", "QUIT"))
	requireLine(t, out, `fired slot="Broken" set=A action=run-command count=1 error`)

	fires := readLog(t, logDir, "fires_log.txt")
	if !strings.Contains(fires, "Broken\tA\trun-command\terror") {
		t.Errorf("fires_log.txt missing Broken error line:\n%s", fires)
	}
	diag := readLog(t, logDir, "diagnostics_log.txt")
	if !strings.Contains(diag, "session_start") {
		t.Error("expected session_start in diagnostics")
	}
}

func TestRecordedBindingPersists(t *testing.T) {
	dir := workspace(t)
	out, _ := runBoard(t, dir, cmds("RECORD B ctrl+shift+9 Spare", "QUIT"))
	requireLine(t, out, `binding scSpare#2=ctrl+shift+9`)

	out, _ = runBoard(t, dir, cmds("DOWN ctrl+shift+9", "WAIT", "QUIT"))
	requireLine(t, out, `fired slot="Spare" set=B action=none count=1 ok`)
}

func TestRecordRejectsTakenCombo(t *testing.T) {
	out, _ := runBoard(t, workspace(t), cmds("RECORD A ctrl+alt+2 Spare", "QUIT"))
	requireLine(t, out, `error "`)
	if strings.Contains(out, "binding scSpare#1=") {
		t.Errorf("taken combo was assigned:\n%s", out)
	}
}
