package winshell

import "sync"

// mailbox is the unbounded command queue between caller goroutines and
// the pump thread. Pushes never block; the pump drains the whole queue
// between message retrievals. Per-producer FIFO order is preserved.
type mailbox struct {
	mu    sync.Mutex
	queue []command
	wake  func()
}

func (m *mailbox) push(c command) {
	m.mu.Lock()
	m.queue = append(m.queue, c)
	m.mu.Unlock()
	if m.wake != nil {
		m.wake()
	}
}

func (m *mailbox) drain() []command {
	m.mu.Lock()
	q := m.queue
	m.queue = nil
	m.mu.Unlock()
	return q
}
