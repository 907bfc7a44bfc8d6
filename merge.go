package rx

import (
	"github.com/destel/rx/engine"
)

// Merge interleaves the values of all signals in delivery order. The first error is
// forwarded and cancels the other subscriptions. The result completes when all inputs have.
func Merge[T any](signals ...Signal[T]) Signal[T] {
	return FromStream[T](engine.Merge(streams(signals)...))
}

// FlattenMap subscribes to f(v) for every value v of s and merges the inner signals
// as their values arrive. Any error, inner or outer, is forwarded immediately and cancels
// all other subscriptions. The result completes once s and every inner signal have completed.
func FlattenMap[T, U any](s Signal[T], f func(T) Signal[U]) Signal[U] {
	return FromStream[U](engine.FlattenMap(s.stream, func(v any) *engine.Stream {
		t, ok := cast[T](v)
		if !ok {
			return nil
		}
		return checked[U](f(t).stream)
	}))
}

// SwitchToLatest follows the most recent inner signal of s. Each new inner signal replaces
// the previous one, whose subscription is disposed. Errors from s or from the current inner
// signal are forwarded immediately. The result completes once s and the current inner signal
// have both completed.
func SwitchToLatest[T any](s Signal[Signal[T]]) Signal[T] {
	return FromStream[T](engine.SwitchMap(s.stream, func(v any) *engine.Stream {
		inner, ok := unwrap[T](v)
		if !ok {
			return nil
		}
		return inner
	}))
}

// CombineLatest sends the latest value of every input each time one of them sends,
// once each input has sent at least once. The first error is forwarded immediately.
// The result completes when all inputs have completed.
func CombineLatest[T any](signals ...Signal[T]) Signal[[]T] {
	return FromStream[[]T](engine.FilterMap(engine.CombineLatest(streams(signals)...), func(v any) (any, bool) {
		values, ok := cast[[]any](v)
		if !ok {
			return nil, false
		}

		out := make([]T, len(values))
		for i, x := range values {
			if out[i], ok = cast[T](x); !ok {
				return nil, false
			}
		}
		return out, true
	}))
}

// CombineLatest2 is [CombineLatest] for two signals of different types.
func CombineLatest2[A, B any](a Signal[A], b Signal[B]) Signal[Tuple2[A, B]] {
	return FromStream[Tuple2[A, B]](engine.FilterMap(engine.CombineLatest(a.stream, b.stream), func(v any) (any, bool) {
		values, ok := cast[[]any](v)
		if !ok {
			return nil, false
		}

		var t Tuple2[A, B]
		if t.V1, ok = cast[A](values[0]); !ok {
			return nil, false
		}
		if t.V2, ok = cast[B](values[1]); !ok {
			return nil, false
		}
		return t, true
	}))
}

// CombineLatest3 is [CombineLatest] for three signals of different types.
func CombineLatest3[A, B, C any](a Signal[A], b Signal[B], c Signal[C]) Signal[Tuple3[A, B, C]] {
	combined := engine.CombineLatest(a.stream, b.stream, c.stream)
	return FromStream[Tuple3[A, B, C]](engine.FilterMap(combined, func(v any) (any, bool) {
		values, ok := cast[[]any](v)
		if !ok {
			return nil, false
		}

		var t Tuple3[A, B, C]
		if t.V1, ok = cast[A](values[0]); !ok {
			return nil, false
		}
		if t.V2, ok = cast[B](values[1]); !ok {
			return nil, false
		}
		if t.V3, ok = cast[C](values[2]); !ok {
			return nil, false
		}
		return t, true
	}))
}

// Sample sends the latest value of s each time trigger sends a value. Trigger values
// arriving before s has sent anything are ignored. Errors from either signal are forwarded,
// and the result completes when either of them completes.
func Sample[T, U any](s Signal[T], trigger Signal[U]) Signal[T] {
	return FromStream[T](engine.Sample(checked[T](s.stream), checked[U](trigger.stream)))
}

func streams[T any](signals []Signal[T]) []*engine.Stream {
	out := make([]*engine.Stream, len(signals))
	for i, s := range signals {
		out[i] = checked[T](s.stream)
	}
	return out
}
