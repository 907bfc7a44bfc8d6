package engine

// Stream is a cold, untyped event stream. Each subscription runs the stream's
// subscribe function afresh. A nil *Stream behaves like [Empty].
type Stream struct {
	subscribe func(sub Subscriber) Disposable
}

// Create returns a stream whose subscriptions are driven by subscribe.
// The disposable returned by subscribe (nil is allowed) is disposed when the subscription
// ends, either by a terminal event or by the subscriber disposing it.
func Create(subscribe func(sub Subscriber) Disposable) *Stream {
	return &Stream{subscribe: subscribe}
}

// Subscribe attaches o to the stream and returns the subscription's disposable.
func (s *Stream) Subscribe(o Observer) Disposable {
	sub := newSubscriber(o)
	if s == nil || s.subscribe == nil {
		sub.SendCompleted()
		return sub.disposable
	}

	sub.disposable.Add(s.subscribe(sub))
	return sub.disposable
}

// SubscribeFuncs is a shorthand for Subscribe with an [ObserverFuncs]. Any of the functions may be nil.
func (s *Stream) SubscribeFuncs(next func(v any), err func(error), completed func()) Disposable {
	return s.Subscribe(ObserverFuncs{Next: next, Error: err, Completed: completed})
}

// Empty returns a stream that completes immediately.
func Empty() *Stream {
	return Create(func(sub Subscriber) Disposable {
		sub.SendCompleted()
		return nil
	})
}

// Never returns a stream that sends nothing.
func Never() *Stream {
	return Create(func(Subscriber) Disposable {
		return nil
	})
}

// Fail returns a stream that sends err immediately.
func Fail(err error) *Stream {
	return Create(func(sub Subscriber) Disposable {
		sub.SendError(err)
		return nil
	})
}

// Of returns a stream that sends values in order and then completes.
func Of(values ...any) *Stream {
	return Create(func(sub Subscriber) Disposable {
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
