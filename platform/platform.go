// Package platform adapts the host OS to the interfaces the typing and
// hotkey packages consume: clipboard reading, keystroke injection, global
// key observation and the startup permission check.
package platform

import (
	"context"

	"markestedt/rawpaste/hotkey"
	"markestedt/rawpaste/typing"
)

// Clipboard provides clipboard access
type Clipboard interface {
	Get() (string, error)
}

// Injector synthesizes keystrokes
type Injector interface {
	PressRelease(k typing.Key) error
	TypeRune(r rune) error
}

// KeyListener reports system-wide key presses and releases
type KeyListener interface {
	Start(ctx context.Context) (<-chan hotkey.KeyEvent, error)
	Stop()
}

var (
	_ typing.Clipboard = Clipboard(nil)
	_ typing.Injector  = Injector(nil)
)
