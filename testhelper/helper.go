package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var (
	whiteSpaces = regexp.MustCompile(`^(\s+)`)
	leadingTabs = regexp.MustCompile(`(?m)^(\t+)`)
)

func replaceTab(match string) string {
	return strings.Repeat("    ", len(match)) // タブ1つを4スペースに
}

// ExpandTabs replaces leading tabs of every line with four spaces, the way
// gofmt indented source is compared against TrimIndent output.
func ExpandTabs(src string) string {
	return leadingTabs.ReplaceAllStringFunc(src, replaceTab)
}

// TrimIndent removes the indentation of the first content line from every line
// of a raw string literal and drops the leading newline.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := whiteSpaces.FindString(lines[1])

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}

	// closing backquote line
	if last := len(lines) - 1; strings.TrimSpace(lines[last]) == "" {
		lines[last] = ""
	}

	return ExpandTabs(strings.Join(lines[1:], "\n"))
}
