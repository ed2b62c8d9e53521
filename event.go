package winshell

// Event is something observed by the pump thread. The set of variants is
// closed; switch on the concrete type.
//
// Events arrive on the channel returned by Build in observation order.
// The channel is buffered; if the consumer falls behind, the oldest
// pending event is dropped to make room. ShutdownComplete is never
// dropped, is always the final event, and the channel is closed after it.
type Event interface {
	isEvent()
}

// MenuItemClicked reports activation of a menu entry.
type MenuItemClicked struct {
	Item Token
}

// IconClicked reports a primary-button click on a tray icon.
type IconClicked struct {
	Area Token
}

// NotificationShown reports that a queued notification became visible.
type NotificationShown struct {
	Area Token
	ID   Token
}

// NotificationClicked reports that the user clicked a visible balloon.
type NotificationClicked struct {
	Area Token
	ID   Token
}

// NotificationDismissed reports that a balloon timed out or was closed
// without being clicked.
type NotificationDismissed struct {
	Area Token
	ID   Token
}

// ClipboardChanged reports that some process changed the clipboard
// contents. The payload is not carried; read it with ReadClipboardText
// if wanted.
type ClipboardChanged struct{}

// CopyDataReceived carries a WM_COPYDATA payload sent to this window.
// Sender is the native handle of the sending window, Type the
// application-defined discriminator.
type CopyDataReceived struct {
	Sender uint64
	Type   uint64
	Data   []byte
}

// OperationFailed reports a command or native call that failed while the
// pump kept running. Op names the operation, Err the cause.
type OperationFailed struct {
	Op  string
	Err error
}

// ShutdownComplete is the terminal event: all shell state has been torn
// down and the pump thread has exited.
type ShutdownComplete struct{}

func (MenuItemClicked) isEvent()       {}
func (IconClicked) isEvent()           {}
func (NotificationShown) isEvent()     {}
func (NotificationClicked) isEvent()   {}
func (NotificationDismissed) isEvent() {}
func (ClipboardChanged) isEvent()      {}
func (CopyDataReceived) isEvent()      {}
func (OperationFailed) isEvent()       {}
func (ShutdownComplete) isEvent()      {}
