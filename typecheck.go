package rx

import (
	"github.com/destel/rx/engine"
	"github.com/destel/rx/internal/typecheck"
)

// cast is the single entry point for untyped payloads. On mismatch the fault handler has
// already run and the value must be dropped.
func cast[T any](v any) (T, bool) {
	return typecheck.Cast[T](v)
}

// checked drops, after reporting, every value of s that is not a T.
func checked[T any](s *engine.Stream) *engine.Stream {
	return engine.Filter(s, func(v any) bool {
		_, ok := cast[T](v)
		return ok
	})
}

// unwrap checks that v holds a Signal[T] and returns its stream with checked values.
func unwrap[T any](v any) (*engine.Stream, bool) {
	inner, ok := cast[Signal[T]](v)
	if !ok {
		return nil, false
	}
	return checked[T](inner.stream), true
}

// as converts a value that already passed cast. A nil interface value becomes the zero T.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
