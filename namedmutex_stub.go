//go:build !windows

package winshell

// NamedMutex is a system-wide mutex used as a single-instance guard.
type NamedMutex struct{}

// CreateAcquiredMutex creates and acquires the named mutex.
func CreateAcquiredMutex(string) (*NamedMutex, bool, error) {
	return nil, false, ErrUnsupported
}

// Release drops the mutex so another process can acquire it.
func (m *NamedMutex) Release() error { return nil }
