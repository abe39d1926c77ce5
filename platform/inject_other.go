//go:build !windows

package platform

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"markestedt/rawpaste/typing"
)

// RobotInjector types through robotgo (CGEvent on macOS, XTest on X11)
type RobotInjector struct{}

// NewInjector creates a keystroke injector
func NewInjector() Injector {
	return &RobotInjector{}
}

// PressRelease taps Enter or Tab
func (p *RobotInjector) PressRelease(k typing.Key) (err error) {
	defer recoverInto(&err)

	switch k {
	case typing.KeyEnter:
		return robotgo.KeyTap("enter")
	case typing.KeyTab:
		return robotgo.KeyTap("tab")
	default:
		return fmt.Errorf("unsupported key: %s", k)
	}
}

// TypeRune types one character as unicode input
func (p *RobotInjector) TypeRune(r rune) (err error) {
	defer recoverInto(&err)

	robotgo.TypeStr(string(r))
	return nil
}

func recoverInto(err *error) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("injection panicked: %v", p)
	}
}
