package rx

import (
	"github.com/destel/rx/engine"
	"github.com/destel/rx/internal/typecheck"
)

// Disposable cancels a subscription. See [engine.Disposable].
type Disposable = engine.Disposable

// Kind identifies the variant of an [Event].
type Kind = engine.Kind

const (
	KindNext      = engine.KindNext
	KindError     = engine.KindError
	KindCompleted = engine.KindCompleted
)

// Event is a typed notification: a value, an error, or completion.
type Event[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// TypeMismatchError is the fault raised when an untyped payload does not have the type a
// [Signal] declares. It is a programming error: by default the process panics with it.
type TypeMismatchError = typecheck.MismatchError

// NewDisposable returns a disposable that runs action once, when disposed.
func NewDisposable(action func()) Disposable {
	return engine.NewDisposable(action)
}

// Signal is a typed, read-only stream of T. Signal values are immutable handles;
// copying one is cheap and every copy refers to the same underlying stream.
// The zero Signal completes immediately.
type Signal[T any] struct {
	stream *engine.Stream
}

// FromStream wraps an untyped stream. Every value later read from the returned signal is
// checked against T; a value of another type is a [TypeMismatchError].
func FromStream[T any](s *engine.Stream) Signal[T] {
	return Signal[T]{stream: s}
}

// Stream returns the untyped stream behind s.
func (s Signal[T]) Stream() *engine.Stream {
	return s.stream
}

// Create returns a signal that calls producer on every subscription.
// The disposable returned by producer (nil is allowed) is disposed when the subscription ends.
func Create[T any](producer func(sub Subscriber[T]) Disposable) Signal[T] {
	return FromStream[T](engine.Create(func(sub engine.Subscriber) engine.Disposable {
		return producer(Subscriber[T]{sink: sub})
	}))
}

// Empty returns a signal that completes immediately.
func Empty[T any]() Signal[T] {
	return FromStream[T](engine.Empty())
}

// Never returns a signal that sends nothing.
func Never[T any]() Signal[T] {
	return FromStream[T](engine.Never())
}

// Fail returns a signal that fails immediately with err.
func Fail[T any](err error) Signal[T] {
	return FromStream[T](engine.Fail(err))
}

// Of returns a signal that sends values in order and then completes.
func Of[T any](values ...T) Signal[T] {
	return Create(func(sub Subscriber[T]) Disposable {
		for _, v := range values {
			if sub.IsDisposed() {
				return nil
			}
			sub.SendNext(v)
		}
		sub.SendCompleted()
		return nil
	})
}

// Subscribe attaches the given callbacks; any of them may be nil.
// Values are checked against T before next is called; see [TypeMismatchError].
func (s Signal[T]) Subscribe(next func(T), err func(error), completed func()) Disposable {
	return s.stream.Subscribe(engine.ObserverFuncs{
		Next: func(v any) {
			t, ok := cast[T](v)
			if ok && next != nil {
				next(t)
			}
		},
		Error:     err,
		Completed: completed,
	})
}

// SubscribeNext calls next for every value of s.
func (s Signal[T]) SubscribeNext(next func(T)) Disposable {
	return s.Subscribe(next, nil, nil)
}

// SubscribeError calls f if s fails.
func (s Signal[T]) SubscribeError(f func(error)) Disposable {
	return s.Subscribe(nil, f, nil)
}

// SubscribeCompleted calls f when s completes.
func (s Signal[T]) SubscribeCompleted(f func()) Disposable {
	return s.Subscribe(nil, nil, f)
}

// SubscribeEvents calls f for every event of s, including the terminal one.
func (s Signal[T]) SubscribeEvents(f func(Event[T])) Disposable {
	return s.Subscribe(
		func(v T) { f(Event[T]{Kind: KindNext, Value: v}) },
		func(err error) { f(Event[T]{Kind: KindError, Err: err}) },
		func() { f(Event[T]{Kind: KindCompleted}) },
	)
}
