//go:build !windows

package winshell

// TargetWindow is another process's window, found by class name.
type TargetWindow struct{}

// FindWindowByClass locates the first window with the given class name.
func FindWindowByClass(string) (TargetWindow, bool) {
	return TargetWindow{}, false
}

// CopyData synchronously delivers a WM_COPYDATA payload to the window.
func (TargetWindow) CopyData(uint64, []byte) error {
	return ErrUnsupported
}
