package winshell

import (
	"errors"
	"testing"
	"time"
)

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-events:
		if !ok {
			t.Fatal("event channel closed")
		}
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return nil
}

// drainToShutdown reads until the channel closes and returns everything
// observed, asserting that ShutdownComplete arrives exactly once, last.
func drainToShutdown(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var all []Event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				if len(all) == 0 {
					t.Fatal("channel closed without ShutdownComplete")
				}
				if _, isTerminal := all[len(all)-1].(ShutdownComplete); !isTerminal {
					t.Fatalf("last event is %T, want ShutdownComplete", all[len(all)-1])
				}
				for _, e := range all[:len(all)-1] {
					if _, isTerminal := e.(ShutdownComplete); isTerminal {
						t.Fatal("ShutdownComplete emitted more than once")
					}
				}
				return all
			}
			all = append(all, e)
		case <-deadline:
			t.Fatal("timed out waiting for shutdown")
		}
	}
}

func buildWithFake(t *testing.T, f *fakeBackend, configure func(*Builder) *Area) (*Sender, <-chan Event, *Area) {
	t.Helper()
	b := CreateWindow("winshell.test")
	b.backend = f
	area := configure(b)
	s, events, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return s, events, area
}

func TestMenuClickRoundTrip(t *testing.T) {
	f := newFakeBackend()
	var quit *MenuItem
	s, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		area := b.NewArea().Tooltip("testing")
		menu := area.PopupMenu()
		menu.AddEntry("Status").Disabled(true)
		menu.AddSeparator()
		quit = menu.AddEntry("Quit")
		return area
	})

	f.inject(message{kind: msgMenuCommand, item: f.nativeOf(t, "Quit")})

	e := nextEvent(t, events)
	clicked, ok := e.(MenuItemClicked)
	if !ok {
		t.Fatalf("expected MenuItemClicked, got %T", e)
	}
	if clicked.Item != quit.Token() {
		t.Fatalf("clicked token %d, want %d", clicked.Item, quit.Token())
	}

	s.Shutdown()
	drainToShutdown(t, events)
}

func TestMenuClickUnknownIDIgnored(t *testing.T) {
	f := newFakeBackend()
	s, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		area := b.NewArea()
		area.PopupMenu().AddEntry("Quit")
		return area
	})

	f.inject(message{kind: msgMenuCommand, item: 9999})
	s.Shutdown()

	for _, e := range drainToShutdown(t, events) {
		if _, ok := e.(MenuItemClicked); ok {
			t.Fatal("unknown menu id produced a click event")
		}
	}
}

func TestIconClicks(t *testing.T) {
	f := newFakeBackend()
	s, events, area := buildWithFake(t, f, func(b *Builder) *Area {
		area := b.NewArea()
		area.PopupMenu().AddEntry("Quit")
		return area
	})
	native := f.trayNative(t, 0)

	f.inject(message{kind: msgIconLeftClick, icon: native})
	e := nextEvent(t, events)
	if clicked, ok := e.(IconClicked); !ok || clicked.Area != area.Token() {
		t.Fatalf("expected IconClicked for area %d, got %#v", area.Token(), e)
	}

	f.inject(message{kind: msgIconRightClick, icon: native})
	s.Shutdown()
	drainToShutdown(t, events)

	f.mu.Lock()
	shown := f.menusShown
	f.mu.Unlock()
	if shown != 1 {
		t.Fatalf("popup menu shown %d times, want 1", shown)
	}
}

func TestNotificationsSerializedPerArea(t *testing.T) {
	f := newFakeBackend()
	s, events, area := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})
	native := f.trayNative(t, 0)

	first := s.Notify(area.Token(), Notification{Title: "one"})
	second := s.Notify(area.Token(), Notification{Title: "two"})

	e := nextEvent(t, events)
	if shown, ok := e.(NotificationShown); !ok || shown.ID != first {
		t.Fatalf("expected NotificationShown for %d, got %#v", first, e)
	}

	// While the first balloon is visible the second must not display.
	f.inject(message{kind: msgBalloonDismissed, icon: native})

	e = nextEvent(t, events)
	if dismissed, ok := e.(NotificationDismissed); !ok || dismissed.ID != first {
		t.Fatalf("expected NotificationDismissed for %d, got %#v", first, e)
	}
	e = nextEvent(t, events)
	if shown, ok := e.(NotificationShown); !ok || shown.ID != second {
		t.Fatalf("expected NotificationShown for %d, got %#v", second, e)
	}

	f.inject(message{kind: msgBalloonClicked, icon: native})
	e = nextEvent(t, events)
	if clicked, ok := e.(NotificationClicked); !ok || clicked.ID != second {
		t.Fatalf("expected NotificationClicked for %d, got %#v", second, e)
	}

	s.Shutdown()
	drainToShutdown(t, events)
}

func TestStaleBalloonCallbackIgnored(t *testing.T) {
	f := newFakeBackend()
	s, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})

	f.inject(message{kind: msgBalloonDismissed, icon: f.trayNative(t, 0)})
	s.Shutdown()

	for _, e := range drainToShutdown(t, events) {
		switch e.(type) {
		case NotificationDismissed, NotificationClicked:
			t.Fatalf("stale balloon callback produced %T", e)
		}
	}
}

func TestCommandsExecuteInOrder(t *testing.T) {
	f := newFakeBackend()
	s, events, area := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea().Tooltip("start")
	})
	native := f.trayNative(t, 0)

	s.UpdateTooltip(area.Token(), "A")
	s.UpdateTooltip(area.Token(), "B")
	s.Shutdown()
	drainToShutdown(t, events)

	if got := f.tooltip(native); got != "B" {
		t.Fatalf("final tooltip %q, want %q", got, "B")
	}
	var saw []string
	for _, op := range f.opList() {
		if op == "tooltip A" || op == "tooltip B" {
			saw = append(saw, op)
		}
	}
	if len(saw) != 2 || saw[0] != "tooltip A" || saw[1] != "tooltip B" {
		t.Fatalf("tooltip updates out of order: %v", saw)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	f := newFakeBackend()
	s, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})

	s.Shutdown()
	s.Shutdown()
	s.Shutdown()
	drainToShutdown(t, events)
}

func TestCommandsAfterShutdownDiscarded(t *testing.T) {
	f := newFakeBackend()
	s, events, area := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea().Tooltip("start")
	})
	native := f.trayNative(t, 0)

	s.Shutdown()
	s.UpdateTooltip(area.Token(), "late")
	drainToShutdown(t, events)

	if got := f.tooltip(native); got == "late" {
		t.Fatal("command queued after shutdown was executed")
	}
}

func TestUnknownTokenBecomesOperationFailed(t *testing.T) {
	f := newFakeBackend()
	s, events, area := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})

	s.Notify(Token(9999), Notification{Title: "nope"})

	e := nextEvent(t, events)
	failed, ok := e.(OperationFailed)
	if !ok {
		t.Fatalf("expected OperationFailed, got %#v", e)
	}
	if !errors.Is(failed.Err, ErrUnknownToken) {
		t.Fatalf("error = %v, want ErrUnknownToken", failed.Err)
	}

	// The pump must still be operational.
	s.UpdateTooltip(area.Token(), "alive")
	s.Shutdown()
	drainToShutdown(t, events)
	if got := f.tooltip(f.trayNative(t, 0)); got != "alive" {
		t.Fatalf("tooltip %q, want %q", got, "alive")
	}
}

func TestRemoveAreaDropsPendingNotifications(t *testing.T) {
	f := newFakeBackend()
	s, events, area := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})
	native := f.trayNative(t, 0)

	first := s.Notify(area.Token(), Notification{Title: "one"})
	s.Notify(area.Token(), Notification{Title: "two"})

	e := nextEvent(t, events)
	if shown, ok := e.(NotificationShown); !ok || shown.ID != first {
		t.Fatalf("expected NotificationShown for %d, got %#v", first, e)
	}

	s.RemoveArea(area.Token())
	// A balloon callback arriving after removal is stale.
	f.inject(message{kind: msgBalloonDismissed, icon: native})

	s.Shutdown()
	for _, e := range drainToShutdown(t, events) {
		switch e.(type) {
		case NotificationShown, NotificationDismissed, NotificationClicked:
			t.Fatalf("notification event %T after area removal", e)
		}
	}
}

func TestRuntimeAreaAddition(t *testing.T) {
	f := newFakeBackend()
	s, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})

	area := s.NewArea().Tooltip("runtime")
	extra := area.PopupMenu().AddEntry("Extra")
	if err := s.AddArea(area); err != nil {
		t.Fatalf("add area: %v", err)
	}

	// Wait for the command to land, then click the new entry.
	deadline := time.After(5 * time.Second)
	for {
		f.mu.Lock()
		installed := len(f.trayIcons) == 2
		f.mu.Unlock()
		if installed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("runtime area never installed")
		case <-time.After(time.Millisecond):
		}
	}

	f.inject(message{kind: msgMenuCommand, item: f.nativeOf(t, "Extra")})
	e := nextEvent(t, events)
	if clicked, ok := e.(MenuItemClicked); !ok || clicked.Item != extra.Token() {
		t.Fatalf("expected click on %d, got %#v", extra.Token(), e)
	}

	s.Shutdown()
	drainToShutdown(t, events)
}

func TestRuntimeAreaUnknownIconFails(t *testing.T) {
	f := newFakeBackend()
	s, events, area := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})

	s.AddArea(s.NewArea().Icon(IconID(-1)))
	e := nextEvent(t, events)
	if failed, ok := e.(OperationFailed); !ok || failed.Op != "add area" {
		t.Fatalf("expected OperationFailed for add area, got %#v", e)
	}

	s.AddArea(s.NewArea().Icon(IconID(7)))
	e = nextEvent(t, events)
	if failed, ok := e.(OperationFailed); !ok || failed.Op != "add area" {
		t.Fatalf("expected OperationFailed for add area, got %#v", e)
	}

	// The pump must survive both.
	s.UpdateTooltip(area.Token(), "alive")
	s.Shutdown()
	drainToShutdown(t, events)
	if got := f.tooltip(f.trayNative(t, 0)); got != "alive" {
		t.Fatalf("tooltip %q, want %q", got, "alive")
	}
}

func TestAddAreaMenuFailureDestroysPartialMenus(t *testing.T) {
	f := newFakeBackend()
	s, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})

	f.setEntryErr(errors.New("no more entries"))
	area := s.NewArea()
	area.PopupMenu().AddEntry("doomed")
	if err := s.AddArea(area); err != nil {
		t.Fatalf("add area: %v", err)
	}

	e := nextEvent(t, events)
	if failed, ok := e.(OperationFailed); !ok || failed.Op != "add area" {
		t.Fatalf("expected OperationFailed for add area, got %#v", e)
	}

	s.Shutdown()
	drainToShutdown(t, events)

	destroyed := 0
	for _, op := range f.opList() {
		if op == "destroy menu" {
			destroyed++
		}
	}
	if destroyed != 1 {
		t.Fatalf("partially built menu destroyed %d times, want 1: %v", destroyed, f.opList())
	}
}

func TestWindowDestroyedTriggersShutdown(t *testing.T) {
	f := newFakeBackend()
	_, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})

	// The OS tearing the window down ends message retrieval.
	close(f.msgs)
	drainToShutdown(t, events)

	f.mu.Lock()
	destroyed := f.destroyed
	f.mu.Unlock()
	if !destroyed {
		t.Fatal("window teardown did not run")
	}
}

func TestUpdateMenuItem(t *testing.T) {
	f := newFakeBackend()
	var item *MenuItem
	s, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		area := b.NewArea()
		item = area.PopupMenu().AddEntry("Toggle")
		return area
	})

	s.UpdateMenuItem(item.Token(), WithLabel("Toggled"), WithChecked(true))
	s.UpdateMenuItem(Token(9999), WithEnabled(false))

	e := nextEvent(t, events)
	failed, ok := e.(OperationFailed)
	if !ok || !errors.Is(failed.Err, ErrUnknownToken) {
		t.Fatalf("expected OperationFailed(ErrUnknownToken), got %#v", e)
	}

	s.Shutdown()
	drainToShutdown(t, events)

	found := false
	for _, op := range f.opList() {
		if op == "update item label=Toggled" {
			found = true
		}
	}
	if !found {
		t.Fatalf("menu item update not applied: %v", f.opList())
	}
}

func TestNotifyFailureAdvancesQueue(t *testing.T) {
	f := newFakeBackend()
	f.setNotifyErr(errors.New("balloon rejected"))
	s, events, area := buildWithFake(t, f, func(b *Builder) *Area {
		return b.NewArea()
	})

	s.Notify(area.Token(), Notification{Title: "doomed"})

	e := nextEvent(t, events)
	if _, ok := e.(OperationFailed); !ok {
		t.Fatalf("expected OperationFailed, got %#v", e)
	}

	// The failed balloon must not leave the area blocked.
	f.setNotifyErr(nil)
	second := s.Notify(area.Token(), Notification{Title: "fine"})
	e = nextEvent(t, events)
	if shown, ok := e.(NotificationShown); !ok || shown.ID != second {
		t.Fatalf("expected NotificationShown for %d, got %#v", second, e)
	}

	s.Shutdown()
	drainToShutdown(t, events)
}

func TestBuildValidatesForeignDefault(t *testing.T) {
	f := newFakeBackend()
	b := CreateWindow("winshell.test")
	b.backend = f
	area := b.NewArea()
	menu := area.PopupMenu()
	menu.AddEntry("a")
	menu.SetDefault(Token(9999))

	if _, _, err := b.Build(); err == nil {
		t.Fatal("expected build error for foreign default token")
	}
}

func TestBuildEmptyClassName(t *testing.T) {
	b := CreateWindow("")
	b.backend = newFakeBackend()
	if _, _, err := b.Build(); err == nil {
		t.Fatal("expected build error for empty class name")
	}
}

func TestBuildSetupFailure(t *testing.T) {
	f := newFakeBackend()
	f.startErr = errors.New("no desktop")
	b := CreateWindow("winshell.test")
	b.backend = f

	if _, _, err := b.Build(); err == nil || !errors.Is(err, f.startErr) {
		t.Fatalf("build error = %v, want wrapped setup failure", err)
	}

	f.mu.Lock()
	destroyed := f.destroyed
	f.mu.Unlock()
	if !destroyed {
		t.Fatal("failed setup must still tear the window down")
	}
}

func TestClipboardAndCopyDataEvents(t *testing.T) {
	f := newFakeBackend()
	s, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		b.ClipboardEvents(true)
		return b.NewArea()
	})

	f.inject(message{kind: msgClipboardUpdated})
	if _, ok := nextEvent(t, events).(ClipboardChanged); !ok {
		t.Fatal("expected ClipboardChanged")
	}

	f.inject(message{kind: msgCopyData, sender: 7, ty: 42, data: []byte("hello")})
	e := nextEvent(t, events)
	cd, ok := e.(CopyDataReceived)
	if !ok {
		t.Fatalf("expected CopyDataReceived, got %#v", e)
	}
	if cd.Sender != 7 || cd.Type != 42 || string(cd.Data) != "hello" {
		t.Fatalf("unexpected copy-data payload: %#v", cd)
	}

	s.WriteClipboard([]byte("out"))
	s.SendCopyData("other.class", 1, []byte("ping"))
	s.Shutdown()
	drainToShutdown(t, events)

	var sawClip, sawCopy bool
	for _, op := range f.opList() {
		if op == "clipboard out" {
			sawClip = true
		}
		if op == "copydata other.class" {
			sawCopy = true
		}
	}
	if !sawClip || !sawCopy {
		t.Fatalf("clipboard/copy-data commands not executed: %v", f.opList())
	}
}

func TestTeardownOrder(t *testing.T) {
	f := newFakeBackend()
	s, events, _ := buildWithFake(t, f, func(b *Builder) *Area {
		area := b.NewArea()
		menu := area.PopupMenu()
		menu.AddEntry("a")
		_, sub := menu.AddSubmenu("more")
		sub.AddEntry("b")
		return area
	})

	s.Shutdown()
	drainToShutdown(t, events)

	ops := f.opList()
	last := len(ops) - 1
	if ops[last] != "destroy window" {
		t.Fatalf("window must be destroyed last, got %v", ops)
	}
	idxRemove, idxDestroyMenu := -1, -1
	for i, op := range ops {
		if op == "remove tray icon" && idxRemove == -1 {
			idxRemove = i
		}
		if op == "destroy menu" && idxDestroyMenu == -1 {
			idxDestroyMenu = i
		}
	}
	if idxRemove == -1 || idxDestroyMenu == -1 || idxRemove > idxDestroyMenu {
		t.Fatalf("expected tray icon removal before menu destruction, got %v", ops)
	}
}
