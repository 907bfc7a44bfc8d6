// Package rxtest provides helpers for testing code built on rx signals.
package rxtest

import (
	"sync"
	"testing"
	"time"

	"github.com/destel/rx"
	"github.com/destel/rx/internal/typecheck"
)

// Recorder subscribes to a signal and records its events.
//
// Recorder is safe for concurrent use.
type Recorder[T any] struct {
	mu         sync.Mutex
	events     []rx.Event[T]
	done       chan struct{}
	disposable rx.Disposable
}

// Record subscribes to s and returns the recorder.
func Record[T any](s rx.Signal[T]) *Recorder[T] {
	r := &Recorder[T]{done: make(chan struct{})}
	r.disposable = s.SubscribeEvents(r.add)
	return r
}

func (r *Recorder[T]) add(e rx.Event[T]) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()

	if e.Kind != rx.KindNext {
		close(r.done)
	}
}

// Events returns a snapshot copy of the recorded events.
func (r *Recorder[T]) Events() []rx.Event[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]rx.Event[T], len(r.events))
	copy(out, r.events)
	return out
}

// Values returns the recorded values, in order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, 0, len(r.events))
	for _, e := range r.events {
		if e.Kind == rx.KindNext {
			out = append(out, e.Value)
		}
	}
	return out
}

// Err returns the error the signal failed with, if any.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.events); n > 0 && r.events[n-1].Kind == rx.KindError {
		return r.events[n-1].Err
	}
	return nil
}

// Completed reports whether the signal completed.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.events)
	return n > 0 && r.events[n-1].Kind == rx.KindCompleted
}

// Terminated reports whether the signal failed or completed.
func (r *Recorder[T]) Terminated() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the signal fails or completes.
func (r *Recorder[T]) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the signal terminates or timeout elapses. It reports whether the signal terminated.
func (r *Recorder[T]) Wait(timeout time.Duration) bool {
	select {
	case <-r.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Dispose cancels the recorder's subscription.
func (r *Recorder[T]) Dispose() {
	r.disposable.Dispose()
}

// Mismatches collects the type mismatches caught by [CatchTypeMismatches].
type Mismatches struct {
	mu   sync.Mutex
	errs []*rx.TypeMismatchError
}

// Errors returns the mismatches caught so far.
func (m *Mismatches) Errors() []*rx.TypeMismatchError {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*rx.TypeMismatchError, len(m.errs))
	copy(out, m.errs)
	return out
}

// Len returns the number of mismatches caught so far.
func (m *Mismatches) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errs)
}

// CatchTypeMismatches replaces the panicking type-mismatch handler with one that records
// mismatches, until the test ends. Mismatched values are still dropped.
//
// The handler is process-wide: tests using it must not run in parallel with other tests
// that depend on the default behavior.
func CatchTypeMismatches(tb testing.TB) *Mismatches {
	tb.Helper()

	m := &Mismatches{}
	restore := typecheck.SetHandler(func(err *typecheck.MismatchError) {
		m.mu.Lock()
		m.errs = append(m.errs, err)
		m.mu.Unlock()
	})
	tb.Cleanup(restore)
	return m
}
