package engine

import "fmt"

// Kind identifies the variant of an [Event].
type Kind uint8

const (
	KindNext Kind = iota
	KindError
	KindCompleted
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Event is a single notification delivered by a stream.
// Error and Completed events are terminal: nothing follows them on the same subscription.
type Event struct {
	Kind  Kind
	Value any
	Err   error
}

func NextEvent(v any) Event {
	return Event{Kind: KindNext, Value: v}
}

func ErrorEvent(err error) Event {
	return Event{Kind: KindError, Err: err}
}

func CompletedEvent() Event {
	return Event{Kind: KindCompleted}
}

// IsTerminal reports whether e ends a subscription.
func (e Event) IsTerminal() bool {
	return e.Kind != KindNext
}

// Accept delivers e to o.
func (e Event) Accept(o Observer) {
	switch e.Kind {
	case KindNext:
		o.SendNext(e.Value)
	case KindError:
		o.SendError(e.Err)
	case KindCompleted:
		o.SendCompleted()
	}
}

func (e Event) String() string {
	switch e.Kind {
	case KindNext:
		return fmt.Sprintf("next(%v)", e.Value)
	case KindError:
		return fmt.Sprintf("error(%v)", e.Err)
	default:
		return e.Kind.String()
	}
}

// Observer receives the events of a stream.
type Observer interface {
	SendNext(v any)
	SendError(err error)
	SendCompleted()
}

// Subscriber is the observer handed to a producer. Producers that emit in a loop
// should stop once IsDisposed reports true.
type Subscriber interface {
	Observer
	IsDisposed() bool
}

// ObserverFuncs adapts plain functions to the [Subscriber] interface. Nil functions are skipped.
type ObserverFuncs struct {
	Next      func(v any)
	Error     func(err error)
	Completed func()

	// Owner ties the observer to a downstream subscription. When Owner is disposed,
	// the upstream subscription made with this observer reports itself disposed too,
	// so synchronous producers can stop early.
	Owner interface{ IsDisposed() bool }
}

func (f ObserverFuncs) SendNext(v any) {
	if f.Next != nil {
		f.Next(v)
	}
}

func (f ObserverFuncs) SendError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

func (f ObserverFuncs) SendCompleted() {
	if f.Completed != nil {
		f.Completed()
	}
}

func (f ObserverFuncs) IsDisposed() bool {
	return f.Owner != nil && f.Owner.IsDisposed()
}

// forward builds an observer that hands Next values to next and passes terminal events to sub unchanged.
func forward(sub Subscriber, next func(v any)) ObserverFuncs {
	return ObserverFuncs{
		Next:      next,
		Error:     sub.SendError,
		Completed: sub.SendCompleted,
		Owner:     sub,
	}
}

// passthrough relays every event to sub.
func passthrough(sub Subscriber) ObserverFuncs {
	return forward(sub, sub.SendNext)
}
