//go:build !windows

package winshell

// Install registers the entry to launch at login.
func (a *AutoStart) Install() error { return ErrUnsupported }

// Uninstall removes the entry.
func (a *AutoStart) Uninstall() error { return ErrUnsupported }

// IsInstalled reports whether the entry exists.
func (a *AutoStart) IsInstalled() (bool, error) { return false, ErrUnsupported }
