package winshell

// pendingNotification is a queued balloon request waiting for the area's
// in-flight slot.
type pendingNotification struct {
	id Token
	n  Notification
}

// notifyTracker serializes balloons per tray area: at most one in flight,
// the rest queued FIFO. Only the pump thread touches it.
type notifyTracker struct {
	visible map[Token]Token
	pending map[Token][]pendingNotification
}

func newNotifyTracker() *notifyTracker {
	return &notifyTracker{
		visible: make(map[Token]Token),
		pending: make(map[Token][]pendingNotification),
	}
}

// enqueue records a request and reports whether it should be displayed
// immediately. When false it waits behind the in-flight balloon.
func (t *notifyTracker) enqueue(area, id Token, n Notification) bool {
	if _, busy := t.visible[area]; busy {
		t.pending[area] = append(t.pending[area], pendingNotification{id: id, n: n})
		return false
	}
	t.visible[area] = id
	return true
}

// resolve clears the area's in-flight slot and promotes the next queued
// request, if any, into it. ok is false when nothing was in flight, which
// marks the triggering callback as stale.
func (t *notifyTracker) resolve(area Token) (id Token, next *pendingNotification, ok bool) {
	id, ok = t.visible[area]
	if !ok {
		return NoToken, nil, false
	}
	delete(t.visible, area)

	queue := t.pending[area]
	if len(queue) == 0 {
		delete(t.pending, area)
		return id, nil, true
	}

	head := queue[0]
	t.pending[area] = queue[1:]
	t.visible[area] = head.id
	return id, &head, true
}

// drop discards all state for an area and returns the tokens of every
// request that will now never resolve.
func (t *notifyTracker) drop(area Token) []Token {
	var ids []Token
	if id, ok := t.visible[area]; ok {
		ids = append(ids, id)
		delete(t.visible, area)
	}
	for _, p := range t.pending[area] {
		ids = append(ids, p.id)
	}
	delete(t.pending, area)
	return ids
}
