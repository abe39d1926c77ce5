package hotkey

import (
	"fmt"
	"strings"
)

// Chord represents a parsed keyboard combination
type Chord struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   string
}

// ParseChord parses a combo string like "ctrl+shift+v"
func ParseChord(combo string) (Chord, error) {
	var c Chord
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return c, fmt.Errorf("empty hotkey combo")
	}

	parts := strings.Split(strings.ToLower(combo), "+")
	for i, part := range parts {
		part = strings.TrimSpace(part)

		switch part {
		case "ctrl", "control":
			c.Ctrl = true
		case "shift":
			c.Shift = true
		case "alt", "option":
			c.Alt = true
		case "win", "windows", "cmd", "super":
			c.Win = true
		default:
			// Only the last part may be a non-modifier key
			if i != len(parts)-1 || part == "" {
				return c, fmt.Errorf("unknown modifier: %q", part)
			}
			c.Key = part
		}
	}

	if !c.Ctrl && !c.Shift && !c.Alt && !c.Win {
		return c, fmt.Errorf("no modifiers in combo %q", combo)
	}

	return c, nil
}

// Letter returns the chord's key as a single lowercase letter
func (c Chord) Letter() (rune, bool) {
	r := []rune(c.Key)
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return 0, false
	}
	return r[0], true
}

// String formats the chord for menus, e.g. "Ctrl+Shift+V"
func (c Chord) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	if c.Win {
		parts = append(parts, "Win")
	}
	if c.Key != "" {
		parts = append(parts, strings.ToUpper(c.Key))
	}
	return strings.Join(parts, "+")
}
