//go:build windows

// Package winapi wraps the small slice of user32/shell32/kernel32 needed
// for notification-area integration: window class and message loop, popup
// menus, Shell_NotifyIconW, clipboard access and WM_COPYDATA.
package winapi

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	k32 = windows.NewLazySystemDLL("Kernel32.dll")
	u32 = windows.NewLazySystemDLL("User32.dll")
	s32 = windows.NewLazySystemDLL("Shell32.dll")

	pAddClipboardFormatListener    = u32.NewProc("AddClipboardFormatListener")
	pCloseClipboard                = u32.NewProc("CloseClipboard")
	pCreateIconFromResourceEx      = u32.NewProc("CreateIconFromResourceEx")
	pCreatePopupMenu               = u32.NewProc("CreatePopupMenu")
	pCreateWindowEx                = u32.NewProc("CreateWindowExW")
	pDefWindowProc                 = u32.NewProc("DefWindowProcW")
	pDestroyIcon                   = u32.NewProc("DestroyIcon")
	pDestroyMenu                   = u32.NewProc("DestroyMenu")
	pDestroyWindow                 = u32.NewProc("DestroyWindow")
	pDispatchMessage               = u32.NewProc("DispatchMessageW")
	pEmptyClipboard                = u32.NewProc("EmptyClipboard")
	pFindWindow                    = u32.NewProc("FindWindowW")
	pGetClipboardData              = u32.NewProc("GetClipboardData")
	pGetCursorPos                  = u32.NewProc("GetCursorPos")
	pGetMenuItemID                 = u32.NewProc("GetMenuItemID")
	pGetMenuItemInfo               = u32.NewProc("GetMenuItemInfoW")
	pGetMessage                    = u32.NewProc("GetMessageW")
	pGetModuleHandle               = k32.NewProc("GetModuleHandleW")
	pGlobalAlloc                   = k32.NewProc("GlobalAlloc")
	pGlobalFree                    = k32.NewProc("GlobalFree")
	pGlobalLock                    = k32.NewProc("GlobalLock")
	pGlobalSize                    = k32.NewProc("GlobalSize")
	pGlobalUnlock                  = k32.NewProc("GlobalUnlock")
	pInsertMenuItem                = u32.NewProc("InsertMenuItemW")
	pLookupIconIdFromDirectoryEx   = u32.NewProc("LookupIconIdFromDirectoryEx")
	pOpenClipboard                 = u32.NewProc("OpenClipboard")
	pPostMessage                   = u32.NewProc("PostMessageW")
	pPostQuitMessage               = u32.NewProc("PostQuitMessage")
	pRegisterClass                 = u32.NewProc("RegisterClassExW")
	pRemoveClipboardFormatListener = u32.NewProc("RemoveClipboardFormatListener")
	pSendMessage                   = u32.NewProc("SendMessageW")
	pSetClipboardData              = u32.NewProc("SetClipboardData")
	pSetForegroundWindow           = u32.NewProc("SetForegroundWindow")
	pSetMenuInfo                   = u32.NewProc("SetMenuInfo")
	pSetMenuItemInfo               = u32.NewProc("SetMenuItemInfoW")
	pShellNotifyIcon               = s32.NewProc("Shell_NotifyIconW")
	pTrackPopupMenu                = u32.NewProc("TrackPopupMenu")
	pTranslateMessage              = u32.NewProc("TranslateMessage")
	pUnregisterClass               = u32.NewProc("UnregisterClassW")
)

const (
	WM_DESTROY         = 0x0002
	WM_CLOSE           = 0x0010
	WM_QUERYENDSESSION = 0x0011
	WM_ENDSESSION      = 0x0016
	WM_COPYDATA        = 0x004A
	WM_COMMAND         = 0x0111
	WM_MENUCOMMAND     = 0x0126
	WM_LBUTTONUP       = 0x0202
	WM_LBUTTONDBLCLK   = 0x0203
	WM_RBUTTONUP       = 0x0205
	WM_CONTEXTMENU     = 0x007B
	WM_CLIPBOARDUPDATE = 0x031D
	WM_USER            = 0x0400

	NIN_BALLOONSHOW      = 0x0402
	NIN_BALLOONHIDE      = 0x0403
	NIN_BALLOONTIMEOUT   = 0x0404
	NIN_BALLOONUSERCLICK = 0x0405

	NIM_ADD    = 0x00000000
	NIM_MODIFY = 0x00000001
	NIM_DELETE = 0x00000002

	NIF_MESSAGE = 0x00000001
	NIF_ICON    = 0x00000002
	NIF_TIP     = 0x00000004
	NIF_INFO    = 0x00000010

	NIIF_NONE    = 0x00000000
	NIIF_INFO    = 0x00000001
	NIIF_WARNING = 0x00000002
	NIIF_ERROR   = 0x00000003
	NIIF_NOSOUND = 0x00000010

	MIIM_STATE   = 0x00000001
	MIIM_ID      = 0x00000002
	MIIM_SUBMENU = 0x00000004
	MIIM_STRING  = 0x00000040
	MIIM_FTYPE   = 0x00000100

	MFT_STRING    = 0x00000000
	MFT_SEPARATOR = 0x00000800

	MFS_ENABLED  = 0x00000000
	MFS_DISABLED = 0x00000003
	MFS_CHECKED  = 0x00000008
	MFS_DEFAULT  = 0x00001000

	MIM_STYLE           = 0x00000010
	MIM_APPLYTOSUBMENUS = 0x80000000
	MNS_NOTIFYBYPOS     = 0x08000000

	TPM_LEFTALIGN   = 0x0000
	TPM_RIGHTBUTTON = 0x0002
	TPM_BOTTOMALIGN = 0x0020

	CF_UNICODETEXT = 13
	CF_DIB         = 8

	GMEM_MOVEABLE = 0x0002

	// Append position for InsertMenuItemW with fByPosition=TRUE.
	MenuAppend = 0xFFFFFFFF
)

type WndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

type Point struct {
	X, Y int32
}

type Msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      Point
}

type NotifyIconData struct {
	Size            uint32
	Wnd             windows.Handle
	ID              uint32
	Flags           uint32
	CallbackMessage uint32
	Icon            windows.Handle
	Tip             [128]uint16
	State           uint32
	StateMask       uint32
	Info            [256]uint16
	Timeout         uint32
	InfoTitle       [64]uint16
	InfoFlags       uint32
	GuidItem        windows.GUID
	BalloonIcon     windows.Handle
}

type MenuItemInfo struct {
	Size      uint32
	Mask      uint32
	Type      uint32
	State     uint32
	ID        uint32
	SubMenu   windows.Handle
	Checked   windows.Handle
	Unchecked windows.Handle
	ItemData  uintptr
	TypeData  *uint16
	CCH       uint32
	BMPItem   windows.Handle
}

type MenuInfo struct {
	Size          uint32
	Mask          uint32
	Style         uint32
	YMax          uint32
	Back          windows.Handle
	ContextHelpID uint32
	MenuData      uintptr
}

type CopyDataStruct struct {
	DwData uintptr
	CbData uint32
	LpData uintptr
}

func GetModuleHandle() (windows.Handle, error) {
	res, _, err := pGetModuleHandle.Call(0)
	if res == 0 {
		return 0, err
	}
	return windows.Handle(res), nil
}

func RegisterClassEx(wc *WndClassEx) (uint16, error) {
	res, _, err := pRegisterClass.Call(uintptr(unsafe.Pointer(wc)))
	if res == 0 {
		return 0, err
	}
	return uint16(res), nil
}

func UnregisterClass(className *uint16, instance windows.Handle) error {
	res, _, err := pUnregisterClass.Call(uintptr(unsafe.Pointer(className)), uintptr(instance))
	if res == 0 {
		return err
	}
	return nil
}

func CreateWindowEx(className, windowName *uint16, style uint32, instance windows.Handle) (windows.Handle, error) {
	res, _, err := pCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(windowName)),
		uintptr(style),
		0, 0, 0, 0,
		0, 0,
		uintptr(instance),
		0,
	)
	if res == 0 {
		return 0, err
	}
	return windows.Handle(res), nil
}

func DestroyWindow(h windows.Handle) error {
	res, _, err := pDestroyWindow.Call(uintptr(h))
	if res == 0 {
		return err
	}
	return nil
}

func DefWindowProc(h uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	res, _, _ := pDefWindowProc.Call(h, uintptr(msg), wParam, lParam)
	return res
}

// GetMessage returns 1 for a message, 0 for WM_QUIT and -1 on error.
func GetMessage(m *Msg) (int32, error) {
	res, _, err := pGetMessage.Call(uintptr(unsafe.Pointer(m)), 0, 0, 0)
	if int32(res) == -1 {
		return -1, err
	}
	return int32(res), nil
}

func TranslateMessage(m *Msg) {
	pTranslateMessage.Call(uintptr(unsafe.Pointer(m)))
}

func DispatchMessage(m *Msg) {
	pDispatchMessage.Call(uintptr(unsafe.Pointer(m)))
}

func PostMessage(h windows.Handle, msg uint32, wParam, lParam uintptr) error {
	res, _, err := pPostMessage.Call(uintptr(h), uintptr(msg), wParam, lParam)
	if res == 0 {
		return err
	}
	return nil
}

func PostQuitMessage(code int32) {
	pPostQuitMessage.Call(uintptr(code))
}

func SendMessage(h windows.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	res, _, _ := pSendMessage.Call(uintptr(h), uintptr(msg), wParam, lParam)
	return res
}

func FindWindow(className *uint16) (windows.Handle, bool) {
	res, _, _ := pFindWindow.Call(uintptr(unsafe.Pointer(className)), 0)
	return windows.Handle(res), res != 0
}

func GetCursorPos(p *Point) error {
	res, _, err := pGetCursorPos.Call(uintptr(unsafe.Pointer(p)))
	if res == 0 {
		return err
	}
	return nil
}

func SetForegroundWindow(h windows.Handle) {
	pSetForegroundWindow.Call(uintptr(h))
}

func CreatePopupMenu() (windows.Handle, error) {
	res, _, err := pCreatePopupMenu.Call()
	if res == 0 {
		return 0, err
	}
	return windows.Handle(res), nil
}

func DestroyMenu(h windows.Handle) error {
	res, _, err := pDestroyMenu.Call(uintptr(h))
	if res == 0 {
		return err
	}
	return nil
}

func SetMenuInfo(h windows.Handle, mi *MenuInfo) error {
	res, _, err := pSetMenuInfo.Call(uintptr(h), uintptr(unsafe.Pointer(mi)))
	if res == 0 {
		return err
	}
	return nil
}

func InsertMenuItem(menu windows.Handle, pos uint32, byPos bool, mi *MenuItemInfo) error {
	res, _, err := pInsertMenuItem.Call(uintptr(menu), uintptr(pos), boolArg(byPos), uintptr(unsafe.Pointer(mi)))
	if res == 0 {
		return err
	}
	return nil
}

func SetMenuItemInfo(menu windows.Handle, item uint32, byPos bool, mi *MenuItemInfo) error {
	res, _, err := pSetMenuItemInfo.Call(uintptr(menu), uintptr(item), boolArg(byPos), uintptr(unsafe.Pointer(mi)))
	if res == 0 {
		return err
	}
	return nil
}

func GetMenuItemInfo(menu windows.Handle, item uint32, byPos bool, mi *MenuItemInfo) error {
	res, _, err := pGetMenuItemInfo.Call(uintptr(menu), uintptr(item), boolArg(byPos), uintptr(unsafe.Pointer(mi)))
	if res == 0 {
		return err
	}
	return nil
}

// GetMenuItemID resolves a positional index to the item's command ID.
func GetMenuItemID(menu uintptr, pos uint32) uint32 {
	res, _, _ := pGetMenuItemID.Call(menu, uintptr(pos))
	return uint32(res)
}

func TrackPopupMenu(menu windows.Handle, flags uint32, x, y int32, owner windows.Handle) error {
	res, _, err := pTrackPopupMenu.Call(
		uintptr(menu),
		uintptr(flags),
		uintptr(x),
		uintptr(y),
		0,
		uintptr(owner),
		0,
	)
	if res == 0 {
		return err
	}
	return nil
}

func ShellNotifyIcon(op uint32, d *NotifyIconData) error {
	res, _, err := pShellNotifyIcon.Call(uintptr(op), uintptr(unsafe.Pointer(d)))
	if res == 0 {
		return err
	}
	return nil
}

// LookupIconID finds the offset of the best-matching image inside an ICO
// directory held in memory.
func LookupIconID(data *byte, cx, cy int32) (int32, error) {
	res, _, err := pLookupIconIdFromDirectoryEx.Call(uintptr(unsafe.Pointer(data)), 1, uintptr(cx), uintptr(cy), 0)
	if res == 0 {
		return 0, err
	}
	return int32(res), nil
}

func CreateIconFromResourceEx(data *byte, size uint32, cx, cy int32) (windows.Handle, error) {
	res, _, err := pCreateIconFromResourceEx.Call(
		uintptr(unsafe.Pointer(data)),
		uintptr(size),
		1,
		0x00030000,
		uintptr(cx),
		uintptr(cy),
		0,
	)
	if res == 0 {
		return 0, err
	}
	return windows.Handle(res), nil
}

func DestroyIcon(h windows.Handle) error {
	res, _, err := pDestroyIcon.Call(uintptr(h))
	if res == 0 {
		return err
	}
	return nil
}

func AddClipboardFormatListener(h windows.Handle) error {
	res, _, err := pAddClipboardFormatListener.Call(uintptr(h))
	if res == 0 {
		return err
	}
	return nil
}

func RemoveClipboardFormatListener(h windows.Handle) error {
	res, _, err := pRemoveClipboardFormatListener.Call(uintptr(h))
	if res == 0 {
		return err
	}
	return nil
}

func OpenClipboard(owner windows.Handle) error {
	res, _, err := pOpenClipboard.Call(uintptr(owner))
	if res == 0 {
		return err
	}
	return nil
}

func CloseClipboard() {
	pCloseClipboard.Call()
}

func EmptyClipboard() error {
	res, _, err := pEmptyClipboard.Call()
	if res == 0 {
		return err
	}
	return nil
}

func GetClipboardData(format uint32) (windows.Handle, error) {
	res, _, err := pGetClipboardData.Call(uintptr(format))
	if res == 0 {
		return 0, err
	}
	return windows.Handle(res), nil
}

func SetClipboardData(format uint32, mem windows.Handle) error {
	res, _, err := pSetClipboardData.Call(uintptr(format), uintptr(mem))
	if res == 0 {
		return err
	}
	return nil
}

func GlobalAlloc(flags uint32, size uintptr) (windows.Handle, error) {
	res, _, err := pGlobalAlloc.Call(uintptr(flags), size)
	if res == 0 {
		return 0, err
	}
	return windows.Handle(res), nil
}

func GlobalFree(mem windows.Handle) {
	pGlobalFree.Call(uintptr(mem))
}

func GlobalLock(mem windows.Handle) (unsafe.Pointer, error) {
	res, _, err := pGlobalLock.Call(uintptr(mem))
	if res == 0 {
		return nil, err
	}
	return unsafe.Pointer(res), nil
}

func GlobalUnlock(mem windows.Handle) {
	pGlobalUnlock.Call(uintptr(mem))
}

func GlobalSize(mem windows.Handle) uintptr {
	res, _, _ := pGlobalSize.Call(uintptr(mem))
	return res
}

func boolArg(v bool) uintptr {
	if v {
		return 1
	}
	return 0
}
