package rx

import "github.com/destel/rx/engine"

// Subscriber is the typed sink handed to the producer of a [Create] signal.
// Sends are forwarded unchanged; events sent after a terminal event are ignored.
type Subscriber[T any] struct {
	sink engine.Subscriber
}

// SendNext delivers v to the subscription.
func (s Subscriber[T]) SendNext(v T) {
	s.sink.SendNext(v)
}

// SendError fails the subscription. Nothing may be sent afterwards.
func (s Subscriber[T]) SendError(err error) {
	s.sink.SendError(err)
}

// SendCompleted completes the subscription. Nothing may be sent afterwards.
func (s Subscriber[T]) SendCompleted() {
	s.sink.SendCompleted()
}

// IsDisposed reports whether the subscriber stopped listening.
// Producers emitting in a loop should check it and return early.
func (s Subscriber[T]) IsDisposed() bool {
	return s.sink.IsDisposed()
}
