package winshell

// backend is the native surface the pump drives. The real implementation
// wraps Win32; tests substitute an in-process fake. All methods except
// wake are called from the pump thread only.
type backend interface {
	// start creates the hidden window (and clipboard listener when
	// configured). Called first, on the pump thread.
	start(cfg windowConfig) error
	// wake nudges a blocked getMessage so queued commands get drained.
	// Safe from any goroutine.
	wake()
	// getMessage blocks for the next translated message. ok=false means
	// the window is gone and the pump must shut down.
	getMessage() (message, bool)
	// destroy tears down the window and class. Safe after partial start.
	destroy() error

	createMenu() (uintptr, error)
	addMenuEntry(menu uintptr, native uint32, label string, checked, disabled, def bool) error
	addMenuSeparator(menu uintptr, native uint32) error
	addSubmenu(menu uintptr, native uint32, label string, sub uintptr, disabled bool) error
	updateMenuItem(menu uintptr, native uint32, mod itemModify) error
	destroyMenu(menu uintptr) error
	showMenu(menu uintptr) error

	createIcon(buf iconBuffer) (uintptr, error)
	destroyIcon(h uintptr) error
	addTrayIcon(native uint32, icon uintptr, tooltip string) error
	setTrayIcon(native uint32, icon uintptr) error
	setTrayTooltip(native uint32, tooltip string) error
	removeTrayIcon(native uint32) error
	showNotification(native uint32, n Notification) error

	writeClipboardText(data []byte) error
	sendCopyData(targetClass string, ty uint64, data []byte) error
}

// windowConfig is the window-level part of the builder, handed to
// backend.start.
type windowConfig struct {
	className  string
	windowName string
	clipboard  bool
}

type msgKind int

const (
	msgWake msgKind = iota
	msgMenuCommand
	msgIconLeftClick
	msgIconRightClick
	msgBalloonClicked
	msgBalloonDismissed
	msgClipboardUpdated
	msgCopyData
)

// message is one translated native message. Which fields are meaningful
// depends on kind: item for menu commands, icon for tray callbacks,
// sender/ty/data for copy-data.
type message struct {
	kind   msgKind
	item   uint32
	icon   uint32
	sender uint64
	ty     uint64
	data   []byte
}
