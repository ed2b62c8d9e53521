package winshell

import "testing"

func TestSinkDropsOldestWhenFull(t *testing.T) {
	s := newEventSink(2)

	s.publish(MenuItemClicked{Item: 1})
	s.publish(MenuItemClicked{Item: 2})
	s.publish(MenuItemClicked{Item: 3})

	first := <-s.ch
	if got := first.(MenuItemClicked).Item; got != 2 {
		t.Fatalf("expected oldest event dropped, first remaining is %d", got)
	}
	second := <-s.ch
	if got := second.(MenuItemClicked).Item; got != 3 {
		t.Fatalf("expected event 3 preserved, got %d", got)
	}
}

func TestSinkTerminalAlwaysDelivered(t *testing.T) {
	s := newEventSink(1)

	s.publish(MenuItemClicked{Item: 1})
	s.terminal(ShutdownComplete{})

	e, ok := <-s.ch
	if !ok {
		t.Fatal("channel closed before terminal event")
	}
	if _, isTerminal := e.(ShutdownComplete); !isTerminal {
		t.Fatalf("expected ShutdownComplete, got %T", e)
	}
	if _, ok := <-s.ch; ok {
		t.Fatal("channel should be closed after the terminal event")
	}
}
