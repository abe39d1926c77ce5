//go:build !darwin && !linux && !windows

package platform

import (
	"fmt"
	"runtime"
)

// CheckAccess reports the platform as unsupported
func CheckAccess() error {
	return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
}
