//go:build windows

package winshell

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/example/winshell/internal/logging"
	"github.com/example/winshell/internal/winapi"
)

// Window messages private to this backend. Tray callbacks and wakes are
// posted to the hidden window so the structured message loop sees them;
// menu selections and copy-data arrive inside the window procedure and
// are re-posted the same way.
const (
	wmTrayCallback = winapi.WM_USER + 1
	wmWake         = winapi.WM_USER + 2
	wmMenuItem     = winapi.WM_USER + 3
	wmCopyData     = winapi.WM_USER + 4
)

type copyPayload struct {
	sender uint64
	ty     uint64
	data   []byte
}

// winBackend drives the real Windows shell. All methods except wake run
// on the pump thread.
type winBackend struct {
	hwnd      windows.Handle
	instance  windows.Handle
	className *uint16
	classAtom uint16
	clipboard bool

	// copy-data payloads are captured in the window procedure and handed
	// to getMessage via this queue.
	mu       sync.Mutex
	payloads []copyPayload
}

func newPlatformBackend() backend {
	return &winBackend{}
}

func (b *winBackend) start(cfg windowConfig) error {
	instance, err := winapi.GetModuleHandle()
	if err != nil {
		return fmt.Errorf("get module handle: %w", err)
	}
	b.instance = instance

	className, err := windows.UTF16PtrFromString(cfg.className)
	if err != nil {
		return fmt.Errorf("class name: %w", err)
	}
	b.className = className

	windowName, err := windows.UTF16PtrFromString(cfg.windowName)
	if err != nil {
		return fmt.Errorf("window name: %w", err)
	}

	wc := winapi.WndClassEx{
		WndProc:   syscall.NewCallback(b.wndProc),
		Instance:  instance,
		ClassName: className,
	}
	wc.Size = uint32(unsafe.Sizeof(wc))
	atom, err := winapi.RegisterClassEx(&wc)
	if err != nil {
		return fmt.Errorf("register class: %w", err)
	}
	b.classAtom = atom

	hwnd, err := winapi.CreateWindowEx(className, windowName, 0, instance)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	b.hwnd = hwnd

	if cfg.clipboard {
		if err := winapi.AddClipboardFormatListener(hwnd); err != nil {
			return fmt.Errorf("add clipboard listener: %w", err)
		}
		b.clipboard = true
	}
	return nil
}

// wndProc handles the messages that never reach GetMessage directly:
// menu selections delivered inside TrackPopupMenu's modal loop and sent
// WM_COPYDATA. Both are re-posted to the thread queue.
func (b *winBackend) wndProc(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case winapi.WM_MENUCOMMAND:
		// wParam is the positional index, lParam the menu handle.
		id := winapi.GetMenuItemID(lParam, uint32(wParam))
		if id != 0xFFFFFFFF {
			_ = winapi.PostMessage(windows.Handle(hwnd), wmMenuItem, uintptr(id), 0)
		}
		return 0

	case winapi.WM_COPYDATA:
		cds := (*winapi.CopyDataStruct)(unsafe.Pointer(lParam))
		var data []byte
		if cds.CbData > 0 && cds.LpData != 0 {
			src := unsafe.Slice((*byte)(unsafe.Pointer(cds.LpData)), cds.CbData)
			data = append(data, src...)
		}
		b.mu.Lock()
		b.payloads = append(b.payloads, copyPayload{
			sender: uint64(wParam),
			ty:     uint64(cds.DwData),
			data:   data,
		})
		b.mu.Unlock()
		_ = winapi.PostMessage(windows.Handle(hwnd), wmCopyData, 0, 0)
		return 1

	case winapi.WM_ENDSESSION:
		// Logoff or shutdown is committed; run the orderly teardown.
		if wParam != 0 {
			winapi.PostQuitMessage(0)
		}
		return 0

	case winapi.WM_DESTROY:
		winapi.PostQuitMessage(0)
		return 0
	}
	return winapi.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (b *winBackend) wake() {
	_ = winapi.PostMessage(b.hwnd, wmWake, 0, 0)
}

func (b *winBackend) getMessage() (message, bool) {
	for {
		var m winapi.Msg
		ret, err := winapi.GetMessage(&m)
		if ret == 0 {
			return message{}, false
		}
		if ret == -1 {
			logging.Debugf("message retrieval failed: %v", err)
			return message{}, false
		}

		if m.HWnd == uintptr(b.hwnd) {
			switch m.Message {
			case wmWake:
				return message{kind: msgWake}, true

			case wmMenuItem:
				return message{kind: msgMenuCommand, item: uint32(m.WParam)}, true

			case wmTrayCallback:
				icon := uint32(m.WParam)
				switch m.LParam {
				case winapi.WM_LBUTTONUP, winapi.WM_LBUTTONDBLCLK:
					return message{kind: msgIconLeftClick, icon: icon}, true
				case winapi.WM_RBUTTONUP, winapi.WM_CONTEXTMENU:
					return message{kind: msgIconRightClick, icon: icon}, true
				case winapi.NIN_BALLOONUSERCLICK:
					return message{kind: msgBalloonClicked, icon: icon}, true
				case winapi.NIN_BALLOONTIMEOUT, winapi.NIN_BALLOONHIDE:
					return message{kind: msgBalloonDismissed, icon: icon}, true
				}
				continue

			case wmCopyData:
				b.mu.Lock()
				if len(b.payloads) == 0 {
					b.mu.Unlock()
					continue
				}
				p := b.payloads[0]
				b.payloads = b.payloads[1:]
				b.mu.Unlock()
				return message{kind: msgCopyData, sender: p.sender, ty: p.ty, data: p.data}, true

			case winapi.WM_CLIPBOARDUPDATE:
				return message{kind: msgClipboardUpdated}, true
			}
		}

		winapi.TranslateMessage(&m)
		winapi.DispatchMessage(&m)
	}
}

func (b *winBackend) destroy() error {
	var first error
	if b.clipboard && b.hwnd != 0 {
		if err := winapi.RemoveClipboardFormatListener(b.hwnd); err != nil && first == nil {
			first = err
		}
		b.clipboard = false
	}
	if b.hwnd != 0 {
		if err := winapi.DestroyWindow(b.hwnd); err != nil && first == nil {
			first = err
		}
		b.hwnd = 0
	}
	if b.classAtom != 0 {
		if err := winapi.UnregisterClass(b.className, b.instance); err != nil && first == nil {
			first = err
		}
		b.classAtom = 0
	}
	return first
}

func (b *winBackend) createMenu() (uintptr, error) {
	menu, err := winapi.CreatePopupMenu()
	if err != nil {
		return 0, err
	}
	// Selections are reported by position so separators and submenus can
	// carry IDs too.
	mi := winapi.MenuInfo{
		Mask:  winapi.MIM_STYLE,
		Style: winapi.MNS_NOTIFYBYPOS,
	}
	mi.Size = uint32(unsafe.Sizeof(mi))
	if err := winapi.SetMenuInfo(menu, &mi); err != nil {
		_ = winapi.DestroyMenu(menu)
		return 0, err
	}
	return uintptr(menu), nil
}

func (b *winBackend) addMenuEntry(menu uintptr, native uint32, label string, checked, disabled, def bool) error {
	text, err := windows.UTF16PtrFromString(label)
	if err != nil {
		return err
	}
	var state uint32
	if checked {
		state |= winapi.MFS_CHECKED
	}
	if disabled {
		state |= winapi.MFS_DISABLED
	}
	if def {
		state |= winapi.MFS_DEFAULT
	}
	mi := winapi.MenuItemInfo{
		Mask:     winapi.MIIM_ID | winapi.MIIM_FTYPE | winapi.MIIM_STRING | winapi.MIIM_STATE,
		Type:     winapi.MFT_STRING,
		State:    state,
		ID:       native,
		TypeData: text,
	}
	mi.Size = uint32(unsafe.Sizeof(mi))
	return winapi.InsertMenuItem(windows.Handle(menu), winapi.MenuAppend, true, &mi)
}

func (b *winBackend) addMenuSeparator(menu uintptr, native uint32) error {
	mi := winapi.MenuItemInfo{
		Mask: winapi.MIIM_ID | winapi.MIIM_FTYPE,
		Type: winapi.MFT_SEPARATOR,
		ID:   native,
	}
	mi.Size = uint32(unsafe.Sizeof(mi))
	return winapi.InsertMenuItem(windows.Handle(menu), winapi.MenuAppend, true, &mi)
}

func (b *winBackend) addSubmenu(menu uintptr, native uint32, label string, sub uintptr, disabled bool) error {
	text, err := windows.UTF16PtrFromString(label)
	if err != nil {
		return err
	}
	var state uint32
	if disabled {
		state |= winapi.MFS_DISABLED
	}
	mi := winapi.MenuItemInfo{
		Mask:     winapi.MIIM_ID | winapi.MIIM_STRING | winapi.MIIM_SUBMENU | winapi.MIIM_STATE,
		State:    state,
		ID:       native,
		SubMenu:  windows.Handle(sub),
		TypeData: text,
	}
	mi.Size = uint32(unsafe.Sizeof(mi))
	return winapi.InsertMenuItem(windows.Handle(menu), winapi.MenuAppend, true, &mi)
}

func (b *winBackend) updateMenuItem(menu uintptr, native uint32, mod itemModify) error {
	if mod.label != nil {
		text, err := windows.UTF16PtrFromString(*mod.label)
		if err != nil {
			return err
		}
		mi := winapi.MenuItemInfo{
			Mask:     winapi.MIIM_STRING,
			TypeData: text,
		}
		mi.Size = uint32(unsafe.Sizeof(mi))
		if err := winapi.SetMenuItemInfo(windows.Handle(menu), native, false, &mi); err != nil {
			return err
		}
	}

	if mod.checked != nil || mod.enabled != nil {
		mi := winapi.MenuItemInfo{Mask: winapi.MIIM_STATE}
		mi.Size = uint32(unsafe.Sizeof(mi))
		if err := winapi.GetMenuItemInfo(windows.Handle(menu), native, false, &mi); err != nil {
			return err
		}
		if mod.checked != nil {
			if *mod.checked {
				mi.State |= winapi.MFS_CHECKED
			} else {
				mi.State &^= winapi.MFS_CHECKED
			}
		}
		if mod.enabled != nil {
			if *mod.enabled {
				mi.State &^= winapi.MFS_DISABLED
			} else {
				mi.State |= winapi.MFS_DISABLED
			}
		}
		if err := winapi.SetMenuItemInfo(windows.Handle(menu), native, false, &mi); err != nil {
			return err
		}
	}
	return nil
}

func (b *winBackend) destroyMenu(menu uintptr) error {
	return winapi.DestroyMenu(windows.Handle(menu))
}

func (b *winBackend) showMenu(menu uintptr) error {
	var pt winapi.Point
	if err := winapi.GetCursorPos(&pt); err != nil {
		return err
	}
	// Required for the menu to close when focus moves elsewhere.
	winapi.SetForegroundWindow(b.hwnd)
	return winapi.TrackPopupMenu(
		windows.Handle(menu),
		winapi.TPM_LEFTALIGN|winapi.TPM_BOTTOMALIGN|winapi.TPM_RIGHTBUTTON,
		pt.X, pt.Y,
		b.hwnd,
	)
}

func (b *winBackend) createIcon(buf iconBuffer) (uintptr, error) {
	if len(buf.data) == 0 {
		return 0, errors.New("empty icon buffer")
	}
	offset, err := winapi.LookupIconID(&buf.data[0], int32(buf.width), int32(buf.height))
	if err != nil {
		return 0, fmt.Errorf("locate icon image: %w", err)
	}
	if int(offset) >= len(buf.data) {
		return 0, errors.New("icon directory offset out of range")
	}
	h, err := winapi.CreateIconFromResourceEx(
		&buf.data[offset],
		uint32(len(buf.data)-int(offset)),
		int32(buf.width), int32(buf.height),
	)
	if err != nil {
		return 0, fmt.Errorf("create icon: %w", err)
	}
	return uintptr(h), nil
}

func (b *winBackend) destroyIcon(h uintptr) error {
	return winapi.DestroyIcon(windows.Handle(h))
}

func (b *winBackend) addTrayIcon(native uint32, icon uintptr, tooltip string) error {
	d := b.notifyData(native)
	d.Flags = winapi.NIF_MESSAGE
	d.CallbackMessage = wmTrayCallback
	if icon != 0 {
		d.Flags |= winapi.NIF_ICON
		d.Icon = windows.Handle(icon)
	}
	if tooltip != "" {
		d.Flags |= winapi.NIF_TIP
		copyUTF16(d.Tip[:], tooltip)
	}
	return winapi.ShellNotifyIcon(winapi.NIM_ADD, d)
}

func (b *winBackend) setTrayIcon(native uint32, icon uintptr) error {
	d := b.notifyData(native)
	d.Flags = winapi.NIF_ICON
	d.Icon = windows.Handle(icon)
	return winapi.ShellNotifyIcon(winapi.NIM_MODIFY, d)
}

func (b *winBackend) setTrayTooltip(native uint32, tooltip string) error {
	d := b.notifyData(native)
	d.Flags = winapi.NIF_TIP
	copyUTF16(d.Tip[:], tooltip)
	return winapi.ShellNotifyIcon(winapi.NIM_MODIFY, d)
}

func (b *winBackend) removeTrayIcon(native uint32) error {
	return winapi.ShellNotifyIcon(winapi.NIM_DELETE, b.notifyData(native))
}

func (b *winBackend) showNotification(native uint32, n Notification) error {
	d := b.notifyData(native)
	d.Flags = winapi.NIF_INFO
	copyUTF16(d.Info[:], n.Body)
	copyUTF16(d.InfoTitle[:], n.Title)
	switch n.Kind {
	case NotificationWarning:
		d.InfoFlags = winapi.NIIF_WARNING
	case NotificationError:
		d.InfoFlags = winapi.NIIF_ERROR
	default:
		d.InfoFlags = winapi.NIIF_INFO
	}
	if n.NoSound {
		d.InfoFlags |= winapi.NIIF_NOSOUND
	}
	if n.Timeout > 0 {
		d.Timeout = uint32(n.Timeout / time.Millisecond)
	}
	return winapi.ShellNotifyIcon(winapi.NIM_MODIFY, d)
}

func (b *winBackend) notifyData(native uint32) *winapi.NotifyIconData {
	d := &winapi.NotifyIconData{
		Wnd: b.hwnd,
		ID:  native,
	}
	d.Size = uint32(unsafe.Sizeof(*d))
	return d
}

func (b *winBackend) writeClipboardText(data []byte) error {
	u16, err := windows.UTF16FromString(string(data))
	if err != nil {
		return err
	}

	if err := openClipboardRetry(b.hwnd); err != nil {
		return fmt.Errorf("open clipboard: %w", err)
	}
	defer winapi.CloseClipboard()

	if err := winapi.EmptyClipboard(); err != nil {
		return fmt.Errorf("empty clipboard: %w", err)
	}

	size := uintptr(len(u16)) * unsafe.Sizeof(uint16(0))
	mem, err := winapi.GlobalAlloc(winapi.GMEM_MOVEABLE, size)
	if err != nil {
		return fmt.Errorf("allocate clipboard memory: %w", err)
	}
	ptr, err := winapi.GlobalLock(mem)
	if err != nil {
		winapi.GlobalFree(mem)
		return fmt.Errorf("lock clipboard memory: %w", err)
	}
	copy(unsafe.Slice((*uint16)(ptr), len(u16)), u16)
	winapi.GlobalUnlock(mem)

	if err := winapi.SetClipboardData(winapi.CF_UNICODETEXT, mem); err != nil {
		winapi.GlobalFree(mem)
		return fmt.Errorf("set clipboard data: %w", err)
	}
	// Ownership of mem passed to the system.
	return nil
}

func (b *winBackend) sendCopyData(targetClass string, ty uint64, data []byte) error {
	class, err := windows.UTF16PtrFromString(targetClass)
	if err != nil {
		return err
	}
	target, ok := winapi.FindWindow(class)
	if !ok {
		return fmt.Errorf("no window with class %q", targetClass)
	}
	cds := winapi.CopyDataStruct{
		DwData: uintptr(ty),
		CbData: uint32(len(data)),
	}
	if len(data) > 0 {
		cds.LpData = uintptr(unsafe.Pointer(&data[0]))
	}
	res := winapi.SendMessage(target, winapi.WM_COPYDATA, uintptr(b.hwnd), uintptr(unsafe.Pointer(&cds)))
	if res == 0 {
		return fmt.Errorf("window with class %q did not accept the message", targetClass)
	}
	return nil
}

// openClipboardRetry works around the clipboard being briefly held by
// other processes.
func openClipboardRetry(owner windows.Handle) error {
	var err error
	for i := 0; i < 10; i++ {
		if err = winapi.OpenClipboard(owner); err == nil {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return err
}

func copyUTF16(dst []uint16, s string) {
	u16, err := windows.UTF16FromString(s)
	if err != nil {
		return
	}
	if len(u16) > len(dst) {
		u16 = u16[:len(dst)-1]
		u16 = append(u16, 0)
	}
	copy(dst, u16)
}
