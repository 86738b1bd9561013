//go:build windows

package tray

import (
	"runtime"

	"github.com/getlantern/systray"
)

// Init runs the tray message loop on its own locked thread.
func Init() <-chan struct{} {
	go func() {
		runtime.LockOSThread()
		systray.Run(onReady, onExit)
	}()
	<-menuReady
	return quitCh
}
