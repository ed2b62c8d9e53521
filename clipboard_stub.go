//go:build !windows

package winshell

// ReadClipboardText returns the clipboard's text contents.
func ReadClipboardText() (string, bool, error) {
	return "", false, ErrUnsupported
}

// ReadClipboardBitmap returns the clipboard's image as a raw DIB buffer.
func ReadClipboardBitmap() ([]byte, bool, error) {
	return nil, false, ErrUnsupported
}
