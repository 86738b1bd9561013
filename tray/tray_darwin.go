//go:build darwin

package tray

import (
	"github.com/getlantern/systray"
	"golang.design/x/hotkey/mainthread"
)

// Init registers the tray on the main thread, whose run loop is already
// owned by mainthread.Init.
func Init() <-chan struct{} {
	mainthread.Call(func() {
		systray.Register(onReady, onExit)
	})
	<-menuReady
	return quitCh
}
