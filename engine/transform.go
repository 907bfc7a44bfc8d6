package engine

import (
	"log/slog"
	"sync/atomic"
)

// FilterMap transforms each value with f and drops the values for which f reports false.
// Terminal events pass through unchanged.
func FilterMap(s *Stream, f func(v any) (any, bool)) *Stream {
	return Create(func(sub Subscriber) Disposable {
		return s.Subscribe(forward(sub, func(v any) {
			if out, keep := f(v); keep {
				sub.SendNext(out)
			}
		}))
	})
}

// Map transforms each value with f.
func Map(s *Stream, f func(v any) any) *Stream {
	return FilterMap(s, func(v any) (any, bool) {
		return f(v), true
	})
}

// Filter drops values for which f returns false.
func Filter(s *Stream, f func(v any) bool) *Stream {
	return FilterMap(s, func(v any) (any, bool) {
		return v, f(v)
	})
}

// DistinctUntilChanged drops a value when equal reports it equal to the previously delivered one.
func DistinctUntilChanged(s *Stream, equal func(a, b any) bool) *Stream {
	return Create(func(sub Subscriber) Disposable {
		var prev any
		var seen bool

		return s.Subscribe(forward(sub, func(v any) {
			if seen && equal(prev, v) {
				return
			}
			prev, seen = v, true
			sub.SendNext(v)
		}))
	})
}

// Take forwards the first n values, then completes and disposes the upstream subscription.
func Take(s *Stream, n int) *Stream {
	if n <= 0 {
		return Empty()
	}

	return Create(func(sub Subscriber) Disposable {
		var taken atomic.Int64

		return s.Subscribe(forward(sub, func(v any) {
			i := taken.Add(1)
			if i > int64(n) {
				return
			}

			sub.SendNext(v)
			if i == int64(n) {
				sub.SendCompleted()
			}
		}))
	})
}

// StartWith sends v to each new subscriber before the events of s.
func StartWith(s *Stream, v any) *Stream {
	return Create(func(sub Subscriber) Disposable {
		sub.SendNext(v)
		if sub.IsDisposed() {
			return nil
		}
		return s.Subscribe(passthrough(sub))
	})
}

// Then ignores the values of s and, once s completes, continues with the stream returned by next.
// A nil stream from next completes right away.
// An error from s is forwarded and next is never called.
func Then(s *Stream, next func() *Stream) *Stream {
	return Create(func(sub Subscriber) Disposable {
		group := NewCompositeDisposable()
		group.Add(s.Subscribe(ObserverFuncs{
			Error: sub.SendError,
			Completed: func() {
				group.Add(next().Subscribe(passthrough(sub)))
			},
			Owner: sub,
		}))
		return group
	})
}

// Catch replaces an error from s with the stream returned by handler. A nil stream completes.
func Catch(s *Stream, handler func(err error) *Stream) *Stream {
	return Create(func(sub Subscriber) Disposable {
		group := NewCompositeDisposable()
		group.Add(s.Subscribe(ObserverFuncs{
			Next: sub.SendNext,
			Error: func(err error) {
				group.Add(handler(err).Subscribe(passthrough(sub)))
			},
			Completed: sub.SendCompleted,
			Owner:     sub,
		}))
		return group
	})
}

// Do runs the side effects in tap before each matching event is forwarded.
// The events themselves are not changed.
func Do(s *Stream, tap ObserverFuncs) *Stream {
	return Create(func(sub Subscriber) Disposable {
		return s.Subscribe(ObserverFuncs{
			Next: func(v any) {
				tap.SendNext(v)
				sub.SendNext(v)
			},
			Error: func(err error) {
				tap.SendError(err)
				sub.SendError(err)
			},
			Completed: func() {
				tap.SendCompleted()
				sub.SendCompleted()
			},
			Owner: sub,
		})
	})
}

// LogAll logs every event of s to logger, tagged with name. A nil logger means slog.Default().
func LogAll(s *Stream, logger *slog.Logger, name string) *Stream {
	log := func() *slog.Logger {
		if logger != nil {
			return logger
		}
		return slog.Default()
	}
	tag := slog.String("stream", name)

	return Do(s, ObserverFuncs{
		Next: func(v any) {
			log().Info("stream next", tag, slog.Any("value", v))
		},
		Error: func(err error) {
			log().Error("stream error", tag, slog.Any("error", err))
		},
		Completed: func() {
			log().Info("stream completed", tag)
		},
	})
}
