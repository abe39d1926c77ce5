//go:build windows

package platform

// CheckAccess always succeeds; low-level hooks and SendInput need no grant
func CheckAccess() error {
	return nil
}
