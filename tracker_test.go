package winshell

import "testing"

func TestTrackerSingleInFlight(t *testing.T) {
	tr := newNotifyTracker()
	area := Token(1)

	if !tr.enqueue(area, 10, Notification{}) {
		t.Fatal("first notification should display immediately")
	}
	if tr.enqueue(area, 11, Notification{}) {
		t.Fatal("second notification should queue behind the first")
	}
	if tr.enqueue(area, 12, Notification{}) {
		t.Fatal("third notification should queue behind the first")
	}
}

func TestTrackerResolveFIFO(t *testing.T) {
	tr := newNotifyTracker()
	area := Token(1)

	tr.enqueue(area, 10, Notification{Title: "a"})
	tr.enqueue(area, 11, Notification{Title: "b"})
	tr.enqueue(area, 12, Notification{Title: "c"})

	id, next, ok := tr.resolve(area)
	if !ok || id != 10 {
		t.Fatalf("resolve = %d, %v; want 10", id, ok)
	}
	if next == nil || next.id != 11 {
		t.Fatalf("expected 11 promoted, got %+v", next)
	}

	id, next, ok = tr.resolve(area)
	if !ok || id != 11 || next == nil || next.id != 12 {
		t.Fatalf("resolve = %d next %+v, want 11 then 12", id, next)
	}

	id, next, ok = tr.resolve(area)
	if !ok || id != 12 || next != nil {
		t.Fatalf("resolve = %d next %+v, want 12 and empty queue", id, next)
	}
}

func TestTrackerStaleCallback(t *testing.T) {
	tr := newNotifyTracker()

	if _, _, ok := tr.resolve(Token(1)); ok {
		t.Fatal("resolve with nothing in flight should report stale")
	}
}

func TestTrackerAreasIndependent(t *testing.T) {
	tr := newNotifyTracker()

	if !tr.enqueue(1, 10, Notification{}) {
		t.Fatal("area 1 should display immediately")
	}
	if !tr.enqueue(2, 20, Notification{}) {
		t.Fatal("area 2 should display immediately despite area 1 being busy")
	}
}

func TestTrackerDrop(t *testing.T) {
	tr := newNotifyTracker()
	area := Token(1)

	tr.enqueue(area, 10, Notification{})
	tr.enqueue(area, 11, Notification{})

	ids := tr.drop(area)
	if len(ids) != 2 {
		t.Fatalf("drop returned %d ids, want 2", len(ids))
	}
	if _, _, ok := tr.resolve(area); ok {
		t.Fatal("resolve after drop should report stale")
	}
	if !tr.enqueue(area, 12, Notification{}) {
		t.Fatal("area should be free again after drop")
	}
}
