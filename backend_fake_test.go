package winshell

import (
	"sync"
	"testing"
)

// fakeBackend replaces the Win32 surface in tests. Native calls are
// recorded synchronously; shell messages are injected through a channel
// that getMessage blocks on, mirroring the real message queue.
type fakeBackend struct {
	msgs chan message

	startErr error

	mu         sync.Mutex
	notifyErr  error
	entryErr   error
	ops        []string
	nextMenu   uintptr
	entries    map[string]uint32
	trayIcons  []uint32
	tooltips   map[uint32]string
	balloons   []uint32
	menusShown int
	destroyed  bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		msgs:     make(chan message, 128),
		entries:  make(map[string]uint32),
		tooltips: make(map[uint32]string),
	}
}

func (f *fakeBackend) inject(m message) {
	f.msgs <- m
}

func (f *fakeBackend) record(op string) {
	f.mu.Lock()
	f.ops = append(f.ops, op)
	f.mu.Unlock()
}

func (f *fakeBackend) start(windowConfig) error { return f.startErr }

func (f *fakeBackend) wake() {
	select {
	case f.msgs <- message{kind: msgWake}:
	default:
	}
}

func (f *fakeBackend) getMessage() (message, bool) {
	m, ok := <-f.msgs
	return m, ok
}

func (f *fakeBackend) destroy() error {
	f.mu.Lock()
	f.destroyed = true
	f.mu.Unlock()
	f.record("destroy window")
	return nil
}

func (f *fakeBackend) createMenu() (uintptr, error) {
	f.mu.Lock()
	f.nextMenu++
	h := f.nextMenu
	f.mu.Unlock()
	return h, nil
}

func (f *fakeBackend) setEntryErr(err error) {
	f.mu.Lock()
	f.entryErr = err
	f.mu.Unlock()
}

func (f *fakeBackend) addMenuEntry(menu uintptr, native uint32, label string, checked, disabled, def bool) error {
	f.mu.Lock()
	if err := f.entryErr; err != nil {
		f.mu.Unlock()
		return err
	}
	f.entries[label] = native
	f.mu.Unlock()
	f.record("entry " + label)
	return nil
}

func (f *fakeBackend) addMenuSeparator(uintptr, uint32) error {
	f.record("separator")
	return nil
}

func (f *fakeBackend) addSubmenu(menu uintptr, native uint32, label string, sub uintptr, disabled bool) error {
	f.mu.Lock()
	f.entries[label] = native
	f.mu.Unlock()
	f.record("submenu " + label)
	return nil
}

func (f *fakeBackend) updateMenuItem(menu uintptr, native uint32, mod itemModify) error {
	op := "update item"
	if mod.label != nil {
		op += " label=" + *mod.label
	}
	f.record(op)
	return nil
}

func (f *fakeBackend) destroyMenu(uintptr) error {
	f.record("destroy menu")
	return nil
}

func (f *fakeBackend) showMenu(uintptr) error {
	f.mu.Lock()
	f.menusShown++
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) createIcon(iconBuffer) (uintptr, error) {
	return 1, nil
}

func (f *fakeBackend) destroyIcon(uintptr) error {
	f.record("destroy icon")
	return nil
}

func (f *fakeBackend) addTrayIcon(native uint32, icon uintptr, tooltip string) error {
	f.mu.Lock()
	f.trayIcons = append(f.trayIcons, native)
	f.tooltips[native] = tooltip
	f.mu.Unlock()
	f.record("add tray icon")
	return nil
}

func (f *fakeBackend) setTrayIcon(uint32, uintptr) error {
	f.record("set tray icon")
	return nil
}

func (f *fakeBackend) setTrayTooltip(native uint32, tooltip string) error {
	f.mu.Lock()
	f.tooltips[native] = tooltip
	f.mu.Unlock()
	f.record("tooltip " + tooltip)
	return nil
}

func (f *fakeBackend) removeTrayIcon(native uint32) error {
	f.record("remove tray icon")
	return nil
}

func (f *fakeBackend) setNotifyErr(err error) {
	f.mu.Lock()
	f.notifyErr = err
	f.mu.Unlock()
}

func (f *fakeBackend) showNotification(native uint32, n Notification) error {
	f.mu.Lock()
	err := f.notifyErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.balloons = append(f.balloons, native)
	f.mu.Unlock()
	f.record("balloon " + n.Title)
	return nil
}

func (f *fakeBackend) writeClipboardText(data []byte) error {
	f.record("clipboard " + string(data))
	return nil
}

func (f *fakeBackend) sendCopyData(targetClass string, ty uint64, data []byte) error {
	f.record("copydata " + targetClass)
	return nil
}

// nativeOf returns the native ID bound to a menu label during setup.
func (f *fakeBackend) nativeOf(t *testing.T, label string) uint32 {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	native, ok := f.entries[label]
	if !ok {
		t.Fatalf("no menu entry labelled %q", label)
	}
	return native
}

// trayNative returns the native ID of the n-th installed tray icon.
func (f *fakeBackend) trayNative(t *testing.T, n int) uint32 {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if n >= len(f.trayIcons) {
		t.Fatalf("only %d tray icons installed", len(f.trayIcons))
	}
	return f.trayIcons[n]
}

func (f *fakeBackend) tooltip(native uint32) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tooltips[native]
}

func (f *fakeBackend) opList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}
