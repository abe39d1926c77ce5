//go:build linux

package platform

import (
	"errors"
	"os"
)

// CheckAccess verifies an X11 display is reachable. The input hook and
// XTest injection do not work on a bare Wayland session.
func CheckAccess() error {
	if os.Getenv("DISPLAY") == "" {
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			return errors.New("no X11 display: run under XWayland or an X11 session")
		}
		return errors.New("no X11 display: DISPLAY is not set")
	}
	return nil
}
