package engine

import (
	"slices"
	"sync"

	"github.com/destel/rx/internal/ringbuffer"
)

// Subject is a hot stream driven by explicit sends. Every event is delivered to all
// observers subscribed at the time of sending. Sends are serialized: concurrent and
// reentrant senders are queued, so every observer sees events in send order.
//
// Once a terminal event has been sent, later sends are ignored and new subscribers
// receive the terminal event right away.
type Subject struct {
	queue serialQueue

	mu        sync.Mutex
	observers []*subjectObserver
	terminal  *Event
	replay    *ringbuffer.Buffer[any]
	stream    *Stream
}

type subjectObserver struct {
	sub Subscriber
}

// NewSubject returns a subject that only broadcasts.
func NewSubject() *Subject {
	s := &Subject{}
	s.stream = Create(s.subscribe)
	return s
}

// NewReplaySubject returns a subject that also replays up to capacity past values to new
// subscribers before any live event. A capacity <= 0 replays every value.
func NewReplaySubject(capacity int) *Subject {
	s := NewSubject()
	s.replay = ringbuffer.New[any](capacity)
	return s
}

// Stream returns the read side of the subject. All calls return the same stream.
func (s *Subject) Stream() *Stream {
	return s.stream
}

// SendNext broadcasts v to every current observer.
func (s *Subject) SendNext(v any) {
	s.queue.do(func() { s.publish(NextEvent(v)) })
}

// SendError ends the subject with err.
func (s *Subject) SendError(err error) {
	s.queue.do(func() { s.publish(ErrorEvent(err)) })
}

// SendCompleted ends the subject.
func (s *Subject) SendCompleted() {
	s.queue.do(func() { s.publish(CompletedEvent()) })
}

// HasObservers reports whether the subject currently has subscribers.
func (s *Subject) HasObservers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers) > 0
}

// publish runs on the queue.
func (s *Subject) publish(e Event) {
	s.mu.Lock()
	if s.terminal != nil {
		s.mu.Unlock()
		return
	}

	observers := s.observers
	if e.IsTerminal() {
		s.terminal = &e
		s.observers = nil
	} else {
		if s.replay != nil {
			s.replay.Push(e.Value)
		}
		observers = slices.Clone(observers)
	}
	s.mu.Unlock()

	for _, o := range observers {
		e.Accept(o.sub)
	}
}

func (s *Subject) subscribe(sub Subscriber) Disposable {
	entry := &subjectObserver{sub: sub}

	// Registration goes through the queue so a replaying subscriber can't interleave
	// with events sent concurrently.
	s.queue.do(func() {
		if sub.IsDisposed() {
			return
		}

		s.mu.Lock()
		var past []any
		if s.replay != nil {
			past = s.replay.Values()
		}
		terminal := s.terminal
		if terminal == nil {
			s.observers = append(s.observers, entry)
		}
		s.mu.Unlock()

		for _, v := range past {
			sub.SendNext(v)
		}
		if terminal != nil {
			terminal.Accept(sub)
		}
	})

	return NewDisposable(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, o := range s.observers {
			if o == entry {
				s.observers = slices.Delete(s.observers, i, i+1)
				return
			}
		}
	})
}

// ReplayLast connects to s immediately and shares that single subscription. New subscribers
// first receive the most recent value, followed by the terminal event if s has already
// ended, then the live events.
func ReplayLast(s *Stream) *Stream {
	subject := NewReplaySubject(1)
	s.Subscribe(subject)
	return subject.Stream()
}
