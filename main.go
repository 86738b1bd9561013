package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"shortboard/beep"
	"shortboard/board"
	"shortboard/config"
	"shortboard/doctor"
	"shortboard/hotkey"
	"shortboard/launch"
	"shortboard/log"
	"shortboard/login"
	"shortboard/shutdown"
	"shortboard/store"
	"shortboard/synth"
	"shortboard/tray"
)

var version = "dev"

var guiMode bool

var (
	shutdownOnce sync.Once
	cleanupMu    sync.Mutex
	cleanupFn    func()

	exit = os.Exit
)

// onShutdown sets the cleanup gracefulShutdown runs before exiting.
func onShutdown(fn func()) {
	cleanupMu.Lock()
	cleanupFn = fn
	cleanupMu.Unlock()
}

// gracefulShutdown runs the cleanup once and exits. It is reachable from
// the signal handler, the tray Quit item, the TUI and the GUI window.
func gracefulShutdown() {
	shutdownOnce.Do(func() {
		cleanupMu.Lock()
		cleanup := cleanupFn
		cleanupMu.Unlock()
		if cleanup != nil {
			cleanup()
		}
		log.Close()
		tray.Quit()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		exit(0)
	})
}

// argValue returns the value of -name from os.Args before flag.Parse runs.
func argValue(name string) string {
	args := os.Args[1:]
	for i, arg := range args {
		arg = strings.TrimLeft(arg, "-")
		if v, ok := strings.CutPrefix(arg, name+"="); ok {
			return v
		}
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasArg(name string) bool {
	for _, arg := range os.Args[1:] {
		if strings.TrimLeft(arg, "-") == name {
			return true
		}
	}
	return false
}

// initCrashLog routes runtime crash output to crash_log.txt in the log
// directory. It runs before any cgo code.
func initCrashLog() {
	dir, err := log.ResolveDir(argValue("logpath"))
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	crashFile, err := os.OpenFile(filepath.Join(dir, "crash_log.txt"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
	debug.SetCrashOutput(crashFile, debug.CrashOptions{})
}

func run() {
	configFlag := flag.String("config", "", "config file path (default: OS-specific location)")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	flag.Bool("gui", false, "Run with desktop window (needs a build with -tags gui)")
	setupFlag := flag.Bool("setup", false, "Assign shortcuts slot by slot before starting")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	syntheticFlag := flag.Bool("synthetic", false, "With -doctor, press the test hotkey automatically")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven)")
	beepFlag := flag.Bool("beep", true, "Play a sound when a slot fires")
	flag.Parse()

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	if *versionFlag {
		fmt.Printf("shortboard %s\n", version)
		os.Exit(0)
	}

	cfgPath := *configFlag
	if cfgPath == "" {
		if cfgPath, err = config.DefaultPath(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *doctorFlag {
		doctor.HandleInterrupt()
		opts := doctor.Options{DataDir: cfg.Board.DataDir}
		if *syntheticFlag {
			if err := synth.Init(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: synthetic keys unavailable: %v\n", err)
			} else {
				opts.Press = synth.Press
			}
		}
		os.Exit(doctor.Run(opts))
	}

	if !*beepFlag || !cfg.Board.Beep {
		beep.Disable()
	}

	if *testFlag {
		os.Exit(runTestMode(cfg, os.Stdin, os.Stdout))
	}

	// Daemonize in tray-only mode: re-exec in background, return shell prompt
	if !*tuiFlag && !guiMode && !*setupFlag && os.Getenv("_SHORTBOARD_BG") == "" {
		exe, _ := os.Executable()
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Env = append(os.Environ(), "_SHORTBOARD_BG=1")
		devnull, _ := os.Open(os.DevNull)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = devnull, devnull, devnull
		if err := cmd.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	db, err := store.Open(cfg.Board.DataDir)
	if err != nil {
		log.Warnf("open store: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: bindings will not be saved: %v\n", err)
		db = nil
	}

	a, err := newApp(cfg, hotkey.New, db, launch.New())
	if err != nil {
		log.Errorf("build board: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	onShutdown(func() {
		cancel()
		a.close()
		if db != nil {
			db.Close()
		}
	})

	startErr := a.start(ctx)
	if startErr != nil && !*tuiFlag && !guiMode {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", startErr)
	}

	if *setupFlag {
		if err := runSetup(a); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	slots := a.board.Slots()
	ids := make([]string, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}
	st := a.board.State()
	tray.SetSlots(ids, st.Selected)
	tray.SetSets(st.SetAEnabled, st.SetBEnabled)
	tray.OnToggle(func(set board.Set, on bool) {
		if err := a.board.SetEnabled(set, on); err != nil {
			log.Warnf("tray toggle %s: %v", set, err)
			tray.SetError(err.Error())
		}
	})
	tray.OnFire(func(id string) {
		go a.fire(id, board.SetA)
	})
	tray.SetLogin(login.Enabled())
	tray.OnLogin(func(on bool) error {
		if on {
			return login.Enable("-tui=false", "-config", cfgPath)
		}
		return login.Disable()
	})

	var tuiDone <-chan struct{}
	if *tuiFlag && !guiMode {
		m := newTUIModel(a, slots, a.rec.Assignments(), a.countsSnapshot())
		m.state = st
		m.lastFire, m.lastErr = a.lastFire()
		if startErr != nil {
			m.status = "error: " + startErr.Error()
		}
		tuiDone = startTUI(a, NewTUIProgram(m))
	}

	var trayQuit <-chan struct{}
	if guiMode {
		attachGUI(a)
	} else {
		trayQuit = tray.Init()
	}

	go beep.Init()

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	select {
	case <-sigChan:
	case <-trayQuit:
	case <-tuiDone:
	}
	gracefulShutdown()
}
