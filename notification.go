package winshell

import "time"

// NotificationKind selects the stock severity icon shown in a balloon.
type NotificationKind int

const (
	NotificationInfo NotificationKind = iota
	NotificationWarning
	NotificationError
)

// Notification describes one balloon request. Every field is optional;
// the zero value shows an empty info balloon.
type Notification struct {
	Title   string
	Body    string
	Kind    NotificationKind
	NoSound bool
	// Timeout is a hint only. The shell may clamp or ignore it.
	Timeout time.Duration
}
