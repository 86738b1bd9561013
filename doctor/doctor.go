package doctor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/term"

	"shortboard/binding"
	"shortboard/clipboard"
	"shortboard/hotkey"
	"shortboard/launch"
	"shortboard/store"
)

type Options struct {
	// Combo is registered for the hotkey check.
	Combo   binding.Combo
	Factory hotkey.Factory
	// Press, when set, synthesizes the key press instead of asking the user.
	Press   func(binding.Combo) error
	DataDir string
	Timeout time.Duration
	Out     io.Writer
}

type check struct {
	name string
	run  func(Options) bool
}

var checks = []check{
	{"Terminal", checkTerminal},
	{"Hotkey detection", checkHotkey},
	{"Launcher tools", checkLauncher},
	{"Clipboard", checkClipboard},
	{"Binding store", checkStore},
}

// Run executes diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(opts Options) int {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Factory == nil {
		opts.Factory = hotkey.New
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Combo.IsZero() {
		opts.Combo = binding.MustParse("ctrl+shift+f9")
	}
	w := opts.Out

	fmt.Fprintln(w, "shortboard doctor - system diagnostics")
	fmt.Fprintln(w, "======================================")

	allPass := true
	for i, c := range checks {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(checks), c.name)
		if !c.run(opts) {
			allPass = false
		}
	}

	fmt.Fprintln(w)
	if allPass {
		fmt.Fprintln(w, "All checks passed!")
		return 0
	}
	fmt.Fprintln(w, "Some checks failed. See details above.")
	return 1
}

// HandleInterrupt exits with status 1 on Ctrl+C so a pending hotkey wait
// does not hang the terminal.
func HandleInterrupt() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted")
		os.Exit(1)
	}()
}

func checkTerminal(o Options) bool {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(o.Out, "  WARN: stdin is not a terminal; -tui and -setup need one")
		return true
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		fmt.Fprintf(o.Out, "  WARN: cannot read terminal size: %v\n", err)
		return true
	}
	fmt.Fprintf(o.Out, "  PASS: terminal %dx%d\n", w, h)
	return true
}

func checkHotkey(o Options) bool {
	if status, err := hotkey.Diagnose(); err != nil {
		fmt.Fprintf(o.Out, "  WARN: %v\n", err)
	} else {
		fmt.Fprintf(o.Out, "  backend: %s\n", status)
	}

	hk, err := o.Factory(o.Combo)
	if err != nil {
		fmt.Fprintf(o.Out, "  FAIL: %v\n", err)
		return false
	}
	if err := hk.Register(); err != nil {
		fmt.Fprintf(o.Out, "  FAIL: could not register %s: %v\n", o.Combo, err)
		return false
	}
	defer hk.Unregister()

	if o.Press != nil {
		fmt.Fprintf(o.Out, "  Synthesizing %s...\n", o.Combo)
		go func() {
			time.Sleep(200 * time.Millisecond)
			if err := o.Press(o.Combo); err != nil {
				fmt.Fprintf(o.Out, "  synthetic press failed: %v\n", err)
			}
		}()
	} else {
		fmt.Fprintf(o.Out, "  Press %s...\n", o.Combo)
	}

	select {
	case <-hk.Keydown():
		fmt.Fprintln(o.Out, "  PASS: hotkey detected")
	case <-time.After(o.Timeout):
		fmt.Fprintln(o.Out, "  FAIL: timeout waiting for hotkey")
		return false
	}

	select {
	case <-hk.Keyup():
		fmt.Fprintln(o.Out, "  PASS: release detected")
	case <-time.After(o.Timeout):
		fmt.Fprintln(o.Out, "  WARN: no release seen")
	}
	return true
}

func checkLauncher(o Options) bool {
	tools := launch.Tools(runtime.GOOS)
	if len(tools) == 0 {
		fmt.Fprintf(o.Out, "  WARN: no launcher support on %s\n", runtime.GOOS)
		return true
	}
	ok := true
	for _, t := range tools {
		path, err := exec.LookPath(t)
		if err != nil {
			fmt.Fprintf(o.Out, "  FAIL: %s not found\n", t)
			ok = false
			continue
		}
		fmt.Fprintf(o.Out, "  PASS: %s (%s)\n", t, path)
	}
	return ok
}

func checkClipboard(o Options) bool {
	if !clipboard.Available() {
		fmt.Fprintln(o.Out, "  WARN: no clipboard utility; cheat sheet copy disabled")
		return true
	}
	prev, _ := clipboard.Read()
	defer clipboard.Copy(prev)

	const sentinel = "shortboard-doctor-test"
	if err := clipboard.Copy(sentinel); err != nil {
		fmt.Fprintf(o.Out, "  FAIL: copy: %v\n", err)
		return false
	}
	got, err := clipboard.Read()
	if err != nil {
		fmt.Fprintf(o.Out, "  FAIL: read: %v\n", err)
		return false
	}
	if got != sentinel {
		fmt.Fprintf(o.Out, "  FAIL: clipboard round trip (got %q, want %q)\n", got, sentinel)
		return false
	}
	fmt.Fprintln(o.Out, "  PASS: clipboard round trip")
	return true
}

func checkStore(o Options) bool {
	dir := o.DataDir
	if dir == "" {
		fmt.Fprintln(o.Out, "  WARN: no data directory configured")
		return true
	}
	db, err := store.Open(dir)
	if err != nil {
		fmt.Fprintf(o.Out, "  FAIL: %v\n", err)
		return false
	}
	defer db.Close()

	rows, err := db.LoadBindings()
	if err != nil {
		fmt.Fprintf(o.Out, "  FAIL: read bindings: %v\n", err)
		return false
	}
	counts, err := db.FireCounts()
	if err != nil {
		fmt.Fprintf(o.Out, "  FAIL: read history: %v\n", err)
		return false
	}
	var fires int
	for _, n := range counts {
		fires += n
	}
	fmt.Fprintf(o.Out, "  PASS: %s (%d bindings, %d fires)\n",
		filepath.Join(dir, store.FileName), len(rows), fires)
	return true
}
