package winshell

import (
	"errors"
	"sync/atomic"

	"github.com/example/winshell/internal/idreg"
)

// Sender queues commands for the pump thread. It is safe for concurrent
// use from any goroutine; commands from a single goroutine are executed
// in the order they were queued. Commands are asynchronous: failures that
// happen during execution surface as OperationFailed events.
type Sender struct {
	mail     *mailbox
	tokens   *idreg.TokenSource
	shutdown atomic.Bool
}

// NewArea creates an area that can later be installed with AddArea.
func (s *Sender) NewArea() *Area {
	return newArea(s.tokens)
}

// AddArea installs a runtime-created area in the notification area. The
// area must come from NewArea and may be added once.
func (s *Sender) AddArea(a *Area) error {
	if a == nil {
		return errors.New("winshell: nil area")
	}
	if a.tokens != s.tokens {
		return errors.New("winshell: area was not created by this sender")
	}
	if a.menu != nil {
		if err := a.menu.validate(); err != nil {
			return err
		}
	}
	s.mail.push(addAreaCmd{area: a})
	return nil
}

// UpdateIcon swaps the image of an existing area.
func (s *Sender) UpdateIcon(area Token, icon IconID) {
	s.mail.push(updateIconCmd{area: area, icon: icon})
}

// UpdateTooltip replaces the hover text of an existing area.
func (s *Sender) UpdateTooltip(area Token, tooltip string) {
	s.mail.push(updateTooltipCmd{area: area, tooltip: tooltip})
}

// RemoveArea removes an area, its menu and any queued notifications.
func (s *Sender) RemoveArea(area Token) {
	s.mail.push(removeAreaCmd{area: area})
}

// UpdateMenuItem changes the label, check mark or enabled state of a menu
// item.
func (s *Sender) UpdateMenuItem(item Token, mods ...ItemModifier) {
	var m itemModify
	for _, mod := range mods {
		mod(&m)
	}
	s.mail.push(updateMenuItemCmd{item: item, mod: m})
}

// Notify queues a balloon notification for the area and returns the token
// that later NotificationShown/Clicked/Dismissed events carry. Balloons
// are serialized per area: one visible at a time, the rest FIFO.
func (s *Sender) Notify(area Token, n Notification) Token {
	id := Token(s.tokens.Next())
	s.mail.push(notifyCmd{area: area, id: id, n: n})
	return id
}

// WriteClipboard puts UTF-8 text on the system clipboard.
func (s *Sender) WriteClipboard(data []byte) {
	s.mail.push(writeClipboardCmd{data: data})
}

// SendCopyData delivers a WM_COPYDATA payload to the first window with
// the given class name.
func (s *Sender) SendCopyData(targetClass string, ty uint64, data []byte) {
	s.mail.push(sendCopyDataCmd{targetClass: targetClass, ty: ty, data: data})
}

// Shutdown asks the pump to tear everything down. Idempotent: only the
// first call has an effect, and exactly one ShutdownComplete is emitted.
func (s *Sender) Shutdown() {
	if !s.shutdown.CompareAndSwap(false, true) {
		return
	}
	s.mail.push(shutdownCmd{})
}
