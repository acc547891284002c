package parser

import (
	"strings"
)

// ExtractKey reads the quoted key literal at the start of text.
//
// An escaped character is kept in its literal form (\" yields ", \\ yields \,
// \n yields n); no other unescaping is done. It returns false when text does
// not start with a quote or the literal is never closed.
func ExtractKey(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, `"`) {
		return "", false
	}

	var key strings.Builder
	escape := false

	for _, ch := range trimmed[1:] {
		switch {
		case escape:
			key.WriteRune(ch)
			escape = false
		case ch == '\\':
			escape = true
		case ch == '"':
			return key.String(), true
		default:
			key.WriteRune(ch)
		}
	}

	return "", false
}
