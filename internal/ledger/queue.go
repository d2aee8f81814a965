package ledger

import (
	"sync"

	"github.com/highwayhustle/backend/internal/model"
)

// queue is an unbounded FIFO of mirror events. Pushes never block, so
// a stalled or slow chain can never apply backpressure to the request
// path that produced the events.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	events []model.MirrorEvent
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends an event. Events pushed after close are dropped.
func (q *queue) push(event model.MirrorEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.events = append(q.events, event)
	q.cond.Signal()
}

// pop blocks until an event is available or the queue is closed and
// drained. The second return is false once the queue is exhausted.
func (q *queue) pop() (model.MirrorEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.events) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.events) == 0 {
		return model.MirrorEvent{}, false
	}

	event := q.events[0]
	q.events = q.events[1:]
	return event, true
}

// close stops accepting events; queued events remain poppable
func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// depth reports the number of queued events
func (q *queue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
