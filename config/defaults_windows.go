//go:build windows

package config

func defaultSlots() []SlotConfig {
	return []SlotConfig{
		{ID: "Explorer", App: `C:\Windows\explorer.exe`},
		{ID: "Notepad", App: `C:\Windows\System32\notepad.exe`},
		{ID: "Terminal", App: "wt.exe"},
		{ID: "Task Manager", App: `C:\Windows\System32\Taskmgr.exe`},
		{ID: "Toggle first set of keys", Action: "toggle-set-a"},
		{ID: "Open Bluetooth Settings", Action: "open-pane", Pane: "ms-settings:bluetooth"},
	}
}
