package engine

import (
	"sync"

	"github.com/destel/rx/internal/ringbuffer"
)

// serialQueue runs actions one at a time, in submission order.
// The goroutine that finds the queue idle drains it; concurrent and reentrant
// submissions are queued and run by that goroutine, so no lock is held while an action runs.
type serialQueue struct {
	mu       sync.Mutex
	pending  ringbuffer.Buffer[func()]
	draining bool
}

func (q *serialQueue) do(action func()) {
	if q.enqueue(action) {
		q.drain()
	}
}

// enqueue adds action to the queue. When it returns true, the caller has become the
// drainer and must call drain.
func (q *serialQueue) enqueue(action func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending.Push(action)
	if q.draining {
		return false
	}
	q.draining = true
	return true
}

func (q *serialQueue) drain() {
	defer func() {
		if r := recover(); r != nil {
			q.mu.Lock()
			q.pending.Reset()
			q.draining = false
			q.mu.Unlock()
			panic(r)
		}
	}()

	for {
		q.mu.Lock()
		action, ok := q.pending.Pop()
		if !ok {
			q.draining = false
			q.mu.Unlock()
			return
		}
		q.mu.Unlock()

		action()
	}
}

// serialSubscriber serializes the events of a subscriber that is fed by several upstreams.
type serialSubscriber struct {
	target Subscriber
	queue  serialQueue
}

func serialize(sub Subscriber) *serialSubscriber {
	return &serialSubscriber{target: sub}
}

func (s *serialSubscriber) SendNext(v any) {
	s.queue.do(func() { s.target.SendNext(v) })
}

func (s *serialSubscriber) SendError(err error) {
	s.queue.do(func() { s.target.SendError(err) })
}

func (s *serialSubscriber) SendCompleted() {
	s.queue.do(s.target.SendCompleted)
}

// enqueueNext and its siblings queue an event without draining. Operators that derive events
// from shared state call them while still holding their state lock, so queue order follows
// state order. When one returns true, the caller must call drain after releasing the lock.
func (s *serialSubscriber) enqueueNext(v any) bool {
	return s.queue.enqueue(func() { s.target.SendNext(v) })
}

func (s *serialSubscriber) enqueueError(err error) bool {
	return s.queue.enqueue(func() { s.target.SendError(err) })
}

func (s *serialSubscriber) enqueueCompleted() bool {
	return s.queue.enqueue(s.target.SendCompleted)
}

func (s *serialSubscriber) drain() {
	s.queue.drain()
}

func (s *serialSubscriber) IsDisposed() bool {
	return s.target.IsDisposed()
}
