//go:build linux

package main

func main() {
	initCrashLog()

	if hasArg("gui") {
		initGUI()
		return
	}
	run()
}
