package ui

import (
	"regexp"
	"strings"
)

var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI drops SGR color sequences so rendered output can be compared
// as text.
func stripANSI(s string) string {
	return sgrPattern.ReplaceAllString(s, "")
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
