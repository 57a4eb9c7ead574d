package pipeline

import (
	"regexp"
	"strings"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// SourceLine is one physical line of input. Index is 1-based and Text keeps
// its trailing "\n" (absent only on a final unterminated line).
type SourceLine struct {
	Index int
	Text  string
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(src string) string {
	if !strings.ContainsRune(src, '\r') {
		return src
	}
	return crlfOrCR.ReplaceAllString(src, "\n")
}

// SplitLines cuts normalized source into lines. Empty input has no lines.
func SplitLines(src string) []SourceLine {
	lines := make([]SourceLine, 0, strings.Count(src, "\n")+1)
	for i := 1; src != ""; i++ {
		n := strings.IndexByte(src, '\n') + 1
		if n == 0 {
			n = len(src)
		}
		lines = append(lines, SourceLine{Index: i, Text: src[:n]})
		src = src[n:]
	}
	return lines
}

// isBlank reports whether text holds only whitespace.
func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// indentWidth returns the byte offset of the first non-whitespace byte.
func indentWidth(text string) int {
	return len(text) - len(strings.TrimLeft(text, " \t\f"))
}
