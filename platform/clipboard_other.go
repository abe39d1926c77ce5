//go:build !windows

package platform

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard reads text through the host's clipboard tools
type SystemClipboard struct{}

// NewClipboard creates a clipboard reader
func NewClipboard() Clipboard {
	return &SystemClipboard{}
}

// Get retrieves text from the clipboard
func (c *SystemClipboard) Get() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("no clipboard utility available")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}
