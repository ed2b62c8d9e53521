//go:build windows

package winshell

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/example/winshell/internal/winapi"
)

// TargetWindow is another process's window, found by class name, that
// copy-data payloads can be sent to without building a full context.
type TargetWindow struct {
	hwnd windows.Handle
}

// FindWindowByClass locates the first window with the given class name.
// ok is false when no such window exists.
func FindWindowByClass(class string) (TargetWindow, bool) {
	name, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return TargetWindow{}, false
	}
	hwnd, ok := winapi.FindWindow(name)
	if !ok {
		return TargetWindow{}, false
	}
	return TargetWindow{hwnd: hwnd}, true
}

// CopyData synchronously delivers a WM_COPYDATA payload to the window.
// ty is an application-defined discriminator the receiver sees as
// CopyDataReceived.Type.
func (w TargetWindow) CopyData(ty uint64, data []byte) error {
	cds := winapi.CopyDataStruct{
		DwData: uintptr(ty),
		CbData: uint32(len(data)),
	}
	if len(data) > 0 {
		cds.LpData = uintptr(unsafe.Pointer(&data[0]))
	}
	res := winapi.SendMessage(w.hwnd, winapi.WM_COPYDATA, 0, uintptr(unsafe.Pointer(&cds)))
	if res == 0 {
		return fmt.Errorf("winshell: target window did not accept the message")
	}
	return nil
}
