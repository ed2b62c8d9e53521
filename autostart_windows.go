//go:build windows

package winshell

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const autoStartKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// Install registers the entry under the current user's Run key so the
// executable launches at login.
func (a *AutoStart) Install() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, autoStartKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open run key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(a.Name, a.commandLine()); err != nil {
		return fmt.Errorf("set run entry %q: %w", a.Name, err)
	}
	return nil
}

// Uninstall removes the entry. Removing an entry that does not exist is
// not an error.
func (a *AutoStart) Uninstall() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, autoStartKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open run key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(a.Name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("delete run entry %q: %w", a.Name, err)
	}
	return nil
}

// IsInstalled reports whether the entry exists with exactly the command
// line Install would write.
func (a *AutoStart) IsInstalled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, autoStartKey, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("open run key: %w", err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue(a.Name)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read run entry %q: %w", a.Name, err)
	}
	return value == a.commandLine(), nil
}
