package engine

import "sync/atomic"

// subscriber guards one subscription: it drops events after a terminal event or disposal,
// and releases the subscription's resources on the terminal event.
type subscriber struct {
	observer   Observer
	owner      interface{ IsDisposed() bool }
	disposable *CompositeDisposable
	stopped    atomic.Bool
}

func newSubscriber(o Observer) *subscriber {
	s := &subscriber{
		observer:   o,
		disposable: NewCompositeDisposable(),
	}
	if owner, ok := o.(interface{ IsDisposed() bool }); ok {
		s.owner = owner
	}
	return s
}

func (s *subscriber) IsDisposed() bool {
	if s.disposable.IsDisposed() {
		return true
	}
	return s.owner != nil && s.owner.IsDisposed()
}

func (s *subscriber) SendNext(v any) {
	if s.stopped.Load() || s.IsDisposed() {
		return
	}
	s.observer.SendNext(v)
}

func (s *subscriber) SendError(err error) {
	if s.IsDisposed() || !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.disposable.Dispose()
	s.observer.SendError(err)
}

func (s *subscriber) SendCompleted() {
	if s.IsDisposed() || !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.disposable.Dispose()
	s.observer.SendCompleted()
}
