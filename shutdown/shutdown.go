// Package shutdown delivers the signals that should stop the board.
package shutdown

import (
	"os"
	"os/signal"
)

// Notify relays interrupt and terminate signals to ch.
func Notify(ch chan<- os.Signal) {
	signal.Notify(ch, signals...)
}

// Stop undoes Notify for ch.
func Stop(ch chan<- os.Signal) {
	signal.Stop(ch)
}
