//go:build windows

package winshell

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// NamedMutex is a system-wide mutex used as a single-instance guard.
type NamedMutex struct {
	handle windows.Handle
}

// CreateAcquiredMutex creates and acquires the named mutex. acquired is
// false when another process already holds a mutex with that name; no
// handle is kept in that case.
func CreateAcquiredMutex(name string) (m *NamedMutex, acquired bool, err error) {
	nameW, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, false, err
	}
	h, err := windows.CreateMutex(nil, true, nameW)
	if h == 0 {
		return nil, false, fmt.Errorf("create mutex %q: %w", name, err)
	}
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		windows.CloseHandle(h)
		return nil, false, nil
	}
	return &NamedMutex{handle: h}, true, nil
}

// Release drops the mutex so another process can acquire it.
func (m *NamedMutex) Release() error {
	if m.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(m.handle)
	m.handle = 0
	return err
}
