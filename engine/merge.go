package engine

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Merge interleaves the values of all streams. The first error is forwarded and cancels
// the other subscriptions. The result completes once every stream has completed.
func Merge(streams ...*Stream) *Stream {
	return Create(func(sub Subscriber) Disposable {
		if len(streams) == 0 {
			sub.SendCompleted()
			return nil
		}

		out := serialize(sub)
		group := NewCompositeDisposable()

		var active atomic.Int64
		active.Store(int64(len(streams)))

		for _, s := range streams {
			if sub.IsDisposed() {
				break
			}

			group.Add(s.Subscribe(ObserverFuncs{
				Next:  out.SendNext,
				Error: out.SendError,
				Completed: func() {
					if active.Add(-1) == 0 {
						out.SendCompleted()
					}
				},
				Owner: out,
			}))
		}

		return group
	})
}

// FlattenMap subscribes to f(v) for every value v of s and merges the resulting streams.
// A nil stream from f is treated as empty. Any error is forwarded immediately and cancels
// everything else. The result completes once s and every stream spawned from it have completed.
func FlattenMap(s *Stream, f func(v any) *Stream) *Stream {
	return Create(func(sub Subscriber) Disposable {
		out := serialize(sub)
		group := NewCompositeDisposable()

		var active atomic.Int64
		active.Store(1)
		done := func() {
			if active.Add(-1) == 0 {
				out.SendCompleted()
			}
		}

		group.Add(s.Subscribe(ObserverFuncs{
			Next: func(v any) {
				inner := f(v)
				if inner == nil {
					return
				}

				active.Add(1)
				slot := NewSerialDisposable()
				group.Add(slot)
				slot.Set(inner.Subscribe(ObserverFuncs{
					Next:  out.SendNext,
					Error: out.SendError,
					Completed: func() {
						group.Remove(slot)
						done()
					},
					Owner: out,
				}))
			},
			Error:     out.SendError,
			Completed: done,
			Owner:     out,
		}))

		return group
	})
}

// SwitchMap subscribes to f(v) for every value v of s, disposing the subscription to the
// previous inner stream first. A nil stream from f just cancels the previous one.
// Errors from s or from the current inner stream are forwarded immediately.
// The result completes once s and the current inner stream have completed.
func SwitchMap(s *Stream, f func(v any) *Stream) *Stream {
	return Create(func(sub Subscriber) Disposable {
		out := serialize(sub)

		var mu sync.Mutex
		var (
			gen         uint64
			current     Disposable
			innerActive bool
			outerDone   bool
			disposed    bool
		)

		// emit queues an event of inner stream id unless a newer inner stream replaced it.
		emit := func(id uint64, enqueue func() bool) {
			mu.Lock()
			drain := id == gen && enqueue()
			mu.Unlock()

			if drain {
				out.drain()
			}
		}

		group := NewCompositeDisposable(NewDisposable(func() {
			mu.Lock()
			disposed = true
			d := current
			current = nil
			mu.Unlock()

			if d != nil {
				d.Dispose()
			}
		}))

		group.Add(s.Subscribe(ObserverFuncs{
			Next: func(v any) {
				inner := f(v)

				mu.Lock()
				gen++
				id := gen
				prev := current
				current = nil
				innerActive = inner != nil
				mu.Unlock()

				if prev != nil {
					prev.Dispose()
				}
				if inner == nil {
					return
				}

				d := inner.Subscribe(ObserverFuncs{
					Next: func(v any) {
						emit(id, func() bool { return out.enqueueNext(v) })
					},
					Error: func(err error) {
						emit(id, func() bool { return out.enqueueError(err) })
					},
					Completed: func() {
						emit(id, func() bool {
							innerActive = false
							return outerDone && out.enqueueCompleted()
						})
					},
					Owner: out,
				})

				mu.Lock()
				if id == gen && !disposed {
					current, d = d, nil
				}
				mu.Unlock()

				if d != nil {
					d.Dispose()
				}
			},
			Error: out.SendError,
			Completed: func() {
				mu.Lock()
				outerDone = true
				drain := !innerActive && out.enqueueCompleted()
				mu.Unlock()

				if drain {
					out.drain()
				}
			},
			Owner: out,
		}))

		return group
	})
}

// SwitchToLatest is [SwitchMap] over a stream whose values are *Stream.
// Values of any other type are treated as nil streams.
func SwitchToLatest(s *Stream) *Stream {
	return SwitchMap(s, func(v any) *Stream {
		inner, _ := v.(*Stream)
		return inner
	})
}

// CombineLatest sends a []any snapshot of the latest value of every stream each time one of them
// sends a value, but only after all of them have sent at least once. The first error is
// forwarded immediately. The result completes once every stream has completed.
func CombineLatest(streams ...*Stream) *Stream {
	return Create(func(sub Subscriber) Disposable {
		n := len(streams)
		if n == 0 {
			sub.SendCompleted()
			return nil
		}

		out := serialize(sub)
		group := NewCompositeDisposable()

		var mu sync.Mutex
		latest := make([]any, n)
		has := make([]bool, n)
		missing, active := n, n

		for i, s := range streams {
			if sub.IsDisposed() {
				break
			}

			group.Add(s.Subscribe(ObserverFuncs{
				Next: func(v any) {
					mu.Lock()
					if !has[i] {
						has[i] = true
						missing--
					}
					latest[i] = v

					drain := missing == 0 && out.enqueueNext(slices.Clone(latest))
					mu.Unlock()

					if drain {
						out.drain()
					}
				},
				Error: out.SendError,
				Completed: func() {
					mu.Lock()
					active--
					drain := active == 0 && out.enqueueCompleted()
					mu.Unlock()

					if drain {
						out.drain()
					}
				},
				Owner: out,
			}))
		}

		return group
	})
}

// Sample sends the latest value of s each time trigger sends a value.
// Trigger values that arrive before s has sent anything are ignored.
// Errors from either stream are forwarded; the result completes when either stream completes.
func Sample(s, trigger *Stream) *Stream {
	return Create(func(sub Subscriber) Disposable {
		out := serialize(sub)
		group := NewCompositeDisposable()

		var mu sync.Mutex
		var latest any
		var has bool

		group.Add(s.Subscribe(ObserverFuncs{
			Next: func(v any) {
				mu.Lock()
				latest, has = v, true
				mu.Unlock()
			},
			Error:     out.SendError,
			Completed: out.SendCompleted,
			Owner:     out,
		}))

		if sub.IsDisposed() {
			return group
		}

		group.Add(trigger.Subscribe(ObserverFuncs{
			Next: func(any) {
				mu.Lock()
				drain := has && out.enqueueNext(latest)
				mu.Unlock()

				if drain {
					out.drain()
				}
			},
			Error:     out.SendError,
			Completed: out.SendCompleted,
			Owner:     out,
		}))

		return group
	})
}
