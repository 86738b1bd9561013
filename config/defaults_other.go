//go:build !darwin && !windows

package config

func defaultSlots() []SlotConfig {
	return []SlotConfig{
		{ID: "Files", App: "/usr/share/applications/org.gnome.Nautilus.desktop"},
		{ID: "Terminal", App: "/usr/bin/x-terminal-emulator"},
		{ID: "Firefox", App: "/usr/share/applications/firefox.desktop"},
		{ID: "Mute Mic", Command: []string{"pactl", "set-source-mute", "@DEFAULT_SOURCE@", "toggle"}},
		{ID: "Toggle first set of keys", Action: "toggle-set-a"},
		{ID: "Open Bluetooth Settings", Action: "open-pane"},
	}
}
