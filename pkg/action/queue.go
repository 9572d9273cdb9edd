package action

import "sync"

// Sender is the write side of the action queue. It is safe to clone and
// hold from any goroutine; it is the only resource shared across threads.
type Sender interface {
	Send(Action)
}

// Queue is an unbounded multi-producer, single-consumer action queue.
// Send never blocks and never fails; after Close, sends are silently
// dropped so late background tasks cannot panic a shutting-down process.
// The single consumer drains with TryRecv until it reports empty.
type Queue struct {
	mu     sync.Mutex
	items  []Action
	closed bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Send enqueues an action, preserving send order.
func (q *Queue) Send(a Action) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, a)
}

// TryRecv pops the oldest action. The second return is false when the
// queue is empty.
func (q *Queue) TryRecv() (Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}

// Len returns the number of queued actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close drops the queue contents and turns further sends into no-ops.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items = nil
}
