package rx

import "github.com/destel/rx/engine"

// Subject is a [Signal] that can also be driven by hand. Events are broadcast to the
// subscribers present at the time of sending; late subscribers miss earlier values
// unless the subject replays (see [NewReplaySubject]).
//
// All copies of the embedded Signal share the one underlying subject.
type Subject[T any] struct {
	Signal[T]
	subject *engine.Subject
}

// NewSubject returns a subject that broadcasts to its current subscribers without replaying.
func NewSubject[T any]() *Subject[T] {
	return wrapSubject[T](engine.NewSubject())
}

// NewReplaySubject returns a subject that replays up to capacity past values to each new
// subscriber. A capacity <= 0 replays everything.
func NewReplaySubject[T any](capacity int) *Subject[T] {
	return wrapSubject[T](engine.NewReplaySubject(capacity))
}

func wrapSubject[T any](s *engine.Subject) *Subject[T] {
	return &Subject[T]{
		Signal:  FromStream[T](s.Stream()),
		subject: s,
	}
}

// SendNext broadcasts v to every current subscriber.
func (s *Subject[T]) SendNext(v T) {
	s.subject.SendNext(v)
}

// SendError ends the subject with err. Later sends are ignored.
func (s *Subject[T]) SendError(err error) {
	s.subject.SendError(err)
}

// SendCompleted ends the subject. Later sends are ignored.
func (s *Subject[T]) SendCompleted() {
	s.subject.SendCompleted()
}

// ReplayLast subscribes to s once, immediately, and shares that subscription.
// A subscriber joining after a value was delivered first receives the most recent value,
// then the live events. If s has already ended, the terminal event follows right away.
func ReplayLast[T any](s Signal[T]) Signal[T] {
	return FromStream[T](engine.ReplayLast(checked[T](s.stream)))
}
