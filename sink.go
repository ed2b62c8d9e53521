package winshell

// eventSink owns the outbound event channel. There is exactly one
// producer, the pump thread.
type eventSink struct {
	ch chan Event
}

func newEventSink(buf int) *eventSink {
	if buf < 1 {
		buf = 1
	}
	return &eventSink{ch: make(chan Event, buf)}
}

// publish delivers e without blocking. When the buffer is full the oldest
// pending event is discarded to make room; if the consumer races us and
// fills the freed slot, the new event is dropped instead.
func (s *eventSink) publish(e Event) {
	select {
	case s.ch <- e:
		return
	default:
	}

	select {
	case <-s.ch:
	default:
	}

	select {
	case s.ch <- e:
	default:
	}
}

// terminal delivers e unconditionally, discarding older events until it
// fits, then closes the channel. Called exactly once, as the last act of
// the pump thread.
func (s *eventSink) terminal(e Event) {
	for {
		select {
		case s.ch <- e:
			close(s.ch)
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}
