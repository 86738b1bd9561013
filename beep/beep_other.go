//go:build !darwin && !linux

package beep

// No audio playback here; beeps are silent.

func Init()           {}
func PlayFire()       {}
func PlayToggle(bool) {}
func PlayError()      {}
