package textutil

import (
	"strings"
	"unicode"
)

// SplitLines splits text into lines on "\n", dropping a trailing "\r" from each
// line. A final newline does not produce an empty trailing line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// JoinLines joins lines with "\n" and terminates a non-empty result with a newline.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// IsBlank reports whether a line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsComment reports whether a line opens a block (/*) or line (//) comment.
func IsComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "//")
}

// IsContinued reports whether a line ends with the continuation marker.
func IsContinued(line string) bool {
	return strings.HasSuffix(strings.TrimRightFunc(line, unicode.IsSpace), `\`)
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

