//go:build !darwin && !windows

package tray

func Init() <-chan struct{}           { return quitCh }
func updateSets(bool, bool)           {}
func updateSelected([]string, string) {}
func updateTooltip(string)            {}
