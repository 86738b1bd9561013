//go:build darwin

package config

func defaultSlots() []SlotConfig {
	return []SlotConfig{
		{ID: "Finder", App: "/System/Library/CoreServices/Finder.app"},
		{ID: "Chrome", App: "/Applications/Google Chrome.app"},
		{ID: "Terminal", App: "/System/Applications/Utilities/Terminal.app"},
		{ID: "Notes", App: "/System/Applications/Notes.app"},
		{ID: "Code", App: "/Applications/Visual Studio Code.app"},
		{ID: "Slack", App: "/Applications/Slack.app"},
		{ID: "Timer", App: "/System/Applications/Clock.app"},
		{ID: "Xcode", App: "/Applications/Xcode.app"},
		{ID: "Activity Monitor", App: "/System/Applications/Utilities/Activity Monitor.app"},
		{ID: "Mute Mic", Command: []string{"/usr/bin/osascript", "-e", "set volume input volume 0"}},
		{ID: "Toggle first set of keys", Action: "toggle-set-a"},
		{ID: "Open Bluetooth Settings", Action: "open-pane", Pane: "/System/Library/PreferencePanes/Bluetooth.prefPane"},
	}
}
