//go:build !linux

package main

import (
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	initCrashLog()

	// The GUI takes the main thread and calls run() in a goroutine.
	if hasArg("gui") {
		initGUI()
		return
	}
	mainthread.Init(run)
}
