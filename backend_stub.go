//go:build !windows

package winshell

// stubBackend makes the package compile everywhere. Build fails with
// ErrUnsupported before any other method can be reached.
type stubBackend struct{}

func newPlatformBackend() backend {
	return stubBackend{}
}

func (stubBackend) start(windowConfig) error { return ErrUnsupported }
func (stubBackend) wake()                    {}
func (stubBackend) getMessage() (message, bool) {
	return message{}, false
}
func (stubBackend) destroy() error { return nil }

func (stubBackend) createMenu() (uintptr, error) { return 0, ErrUnsupported }
func (stubBackend) addMenuEntry(uintptr, uint32, string, bool, bool, bool) error {
	return ErrUnsupported
}
func (stubBackend) addMenuSeparator(uintptr, uint32) error { return ErrUnsupported }
func (stubBackend) addSubmenu(uintptr, uint32, string, uintptr, bool) error {
	return ErrUnsupported
}
func (stubBackend) updateMenuItem(uintptr, uint32, itemModify) error { return ErrUnsupported }
func (stubBackend) destroyMenu(uintptr) error                        { return ErrUnsupported }
func (stubBackend) showMenu(uintptr) error                           { return ErrUnsupported }

func (stubBackend) createIcon(iconBuffer) (uintptr, error)      { return 0, ErrUnsupported }
func (stubBackend) destroyIcon(uintptr) error                   { return ErrUnsupported }
func (stubBackend) addTrayIcon(uint32, uintptr, string) error   { return ErrUnsupported }
func (stubBackend) setTrayIcon(uint32, uintptr) error           { return ErrUnsupported }
func (stubBackend) setTrayTooltip(uint32, string) error         { return ErrUnsupported }
func (stubBackend) removeTrayIcon(uint32) error                 { return ErrUnsupported }
func (stubBackend) showNotification(uint32, Notification) error { return ErrUnsupported }
func (stubBackend) writeClipboardText([]byte) error             { return ErrUnsupported }
func (stubBackend) sendCopyData(string, uint64, []byte) error   { return ErrUnsupported }
