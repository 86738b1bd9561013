package login

import (
	"strings"
	"testing"
)

func TestPlistArguments(t *testing.T) {
	p := plist("/Applications/shortboard", []string{"-config", "/Users/me/a&b.toml"})
	for _, want := range []string{
		"<string>" + agentLabel + "</string>",
		"<string>/Applications/shortboard</string>",
		"<string>-config</string>",
		"<string>/Users/me/a&amp;b.toml</string>",
		"<key>RunAtLoad</key>",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("plist missing %q:\n%s", want, p)
		}
	}
	if strings.Index(p, "-config") > strings.Index(p, "a&amp;b") {
		t.Error("arguments out of order")
	}
}
