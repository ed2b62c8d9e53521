//go:build windows

package winshell

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/example/winshell/internal/winapi"
)

// ReadClipboardText returns the clipboard's text contents. ok is false
// when the clipboard holds no text; that is not an error. Callable from
// any goroutine, typically in response to a ClipboardChanged event.
func ReadClipboardText() (s string, ok bool, err error) {
	if err := winapi.OpenClipboard(0); err != nil {
		return "", false, fmt.Errorf("open clipboard: %w", err)
	}
	defer winapi.CloseClipboard()

	mem, err := winapi.GetClipboardData(winapi.CF_UNICODETEXT)
	if err != nil {
		return "", false, nil
	}
	ptr, err := winapi.GlobalLock(mem)
	if err != nil {
		return "", false, fmt.Errorf("lock clipboard memory: %w", err)
	}
	defer winapi.GlobalUnlock(mem)

	size := winapi.GlobalSize(mem)
	if size < 2 {
		return "", true, nil
	}
	u16 := unsafe.Slice((*uint16)(ptr), size/2)
	return windows.UTF16ToString(u16), true, nil
}

// ReadClipboardBitmap returns the clipboard's image as a raw DIB buffer.
// ok is false when the clipboard holds no image.
func ReadClipboardBitmap() (data []byte, ok bool, err error) {
	if err := winapi.OpenClipboard(0); err != nil {
		return nil, false, fmt.Errorf("open clipboard: %w", err)
	}
	defer winapi.CloseClipboard()

	mem, err := winapi.GetClipboardData(winapi.CF_DIB)
	if err != nil {
		return nil, false, nil
	}
	ptr, err := winapi.GlobalLock(mem)
	if err != nil {
		return nil, false, fmt.Errorf("lock clipboard memory: %w", err)
	}
	defer winapi.GlobalUnlock(mem)

	size := winapi.GlobalSize(mem)
	if size == 0 {
		return nil, true, nil
	}
	src := unsafe.Slice((*byte)(ptr), size)
	return append([]byte(nil), src...), true, nil
}
