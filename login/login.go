// Package login manages starting shortboard when the user logs in.
package login

import (
	"errors"
	"fmt"
	"html"
	"strings"
)

var ErrUnsupported = errors.New("start on login is not supported on this system")

const agentLabel = "dev.shortboard.agent"

// plist renders a LaunchAgent running exe with args at login.
func plist(exe string, args []string) string {
	var argv strings.Builder
	for _, a := range append([]string{exe}, args...) {
		fmt.Fprintf(&argv, "\t\t<string>%s</string>\n", html.EscapeString(a))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
%s	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>LimitLoadToSessionType</key>
	<string>Aqua</string>
</dict>
</plist>
`, agentLabel, argv.String())
}
