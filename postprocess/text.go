package postprocess

import (
	"context"
	"strings"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeLineEndings converts CRLF and lone CR to LF so each line break
// becomes exactly one Enter
func NormalizeLineEndings(ctx context.Context, text string) (string, error) {
	if !strings.ContainsRune(text, '\r') {
		return text, nil
	}
	return lineEndings.Replace(text), nil
}

// StripControl drops control characters that have no keystroke, keeping
// newline and tab
func StripControl(ctx context.Context, text string) (string, error) {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n', r == '\t':
			return r
		case r < 0x20, r == 0x7F:
			return -1
		}
		return r
	}, text), nil
}

// TrimTrailingNewline removes line breaks at the end of the text, so a
// copied line does not submit a prompt on its own
func TrimTrailingNewline(ctx context.Context, text string) (string, error) {
	return strings.TrimRight(text, "\r\n"), nil
}
