package rx

import (
	"log/slog"

	"github.com/destel/rx/engine"
)

// Map transforms each value of s with f. Errors and completion pass through unchanged.
func Map[T, U any](s Signal[T], f func(T) U) Signal[U] {
	return FromStream[U](engine.FilterMap(s.stream, func(v any) (any, bool) {
		t, ok := cast[T](v)
		if !ok {
			return nil, false
		}
		return f(t), true
	}))
}

// Filter drops the values of s for which f returns false.
func Filter[T any](s Signal[T], f func(T) bool) Signal[T] {
	return FromStream[T](engine.FilterMap(s.stream, func(v any) (any, bool) {
		t, ok := cast[T](v)
		if !ok {
			return nil, false
		}
		return t, f(t)
	}))
}

// DistinctUntilChanged drops values equal to the value delivered right before them.
// The first value always passes.
func DistinctUntilChanged[T comparable](s Signal[T]) Signal[T] {
	return DistinctUntilChangedFunc(s, func(a, b T) bool {
		return a == b
	})
}

// DistinctUntilChangedFunc is like [DistinctUntilChanged], with equality decided by equal.
func DistinctUntilChangedFunc[T any](s Signal[T], equal func(a, b T) bool) Signal[T] {
	return FromStream[T](engine.DistinctUntilChanged(checked[T](s.stream), func(a, b any) bool {
		return equal(as[T](a), as[T](b))
	}))
}

// Take forwards the first n values of s, then completes and cancels the subscription to s.
// An error from s before that is forwarded. Take with n <= 0 completes immediately.
func Take[T any](s Signal[T], n int) Signal[T] {
	return FromStream[T](engine.Take(checked[T](s.stream), n))
}

// StartWith sends v to every subscriber before the events of s.
func StartWith[T any](s Signal[T], v T) Signal[T] {
	return FromStream[T](engine.StartWith(checked[T](s.stream), v))
}

// Then ignores the values of s. When s completes, the result continues with next().
// If s fails, the error is forwarded and next is never called.
func Then[T, U any](s Signal[T], next func() Signal[U]) Signal[U] {
	return FromStream[U](engine.Then(checked[T](s.stream), func() *engine.Stream {
		return next().stream
	}))
}

// Catch replaces an error of s with the signal returned by handler.
func Catch[T any](s Signal[T], handler func(error) Signal[T]) Signal[T] {
	return FromStream[T](engine.Catch(checked[T](s.stream), func(err error) *engine.Stream {
		return handler(err).stream
	}))
}

// DoNext calls f for each value of s before forwarding it.
func DoNext[T any](s Signal[T], f func(T)) Signal[T] {
	return FromStream[T](engine.Do(checked[T](s.stream), engine.ObserverFuncs{
		Next: func(v any) {
			f(as[T](v))
		},
	}))
}

// DoError calls f if s fails, before the error is forwarded.
func DoError[T any](s Signal[T], f func(error)) Signal[T] {
	return FromStream[T](engine.Do(checked[T](s.stream), engine.ObserverFuncs{Error: f}))
}

// DoCompleted calls f when s completes, before the completion is forwarded.
func DoCompleted[T any](s Signal[T], f func()) Signal[T] {
	return FromStream[T](engine.Do(checked[T](s.stream), engine.ObserverFuncs{Completed: f}))
}

// LogAll logs every event of s with logger (slog.Default() when nil), tagged with name.
func LogAll[T any](s Signal[T], logger *slog.Logger, name string) Signal[T] {
	return FromStream[T](engine.LogAll(checked[T](s.stream), logger, name))
}
