// Package typecheck holds the checked cast used wherever an untyped payload enters typed code,
// and the process-wide handler invoked when that cast fails.
package typecheck

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// MismatchError describes a payload whose dynamic type does not match the expected static type.
type MismatchError struct {
	Expected reflect.Type
	Value    any
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("rx: got %#v (%T) while expecting %v", e.Value, e.Value, e.Expected)
}

// Handler receives type mismatches. The default handler panics with the *MismatchError.
type Handler func(err *MismatchError)

var handler atomic.Pointer[Handler]

func panicHandler(err *MismatchError) {
	panic(err)
}

// SetHandler installs h and returns a function restoring the previous handler.
// A nil h restores the default, panicking handler.
func SetHandler(h Handler) (restore func()) {
	var next *Handler
	if h != nil {
		next = &h
	}
	prev := handler.Swap(next)
	return func() {
		handler.Store(prev)
	}
}

// Report hands err to the current handler.
func Report(err *MismatchError) {
	if h := handler.Load(); h != nil {
		(*h)(err)
		return
	}
	panicHandler(err)
}

// Cast converts v to T. A nil v converts to the zero value when T is an interface type.
// On any other mismatch Cast reports a *MismatchError and returns false; the caller must drop v.
func Cast[T any](v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}

	var zero T
	typ := reflect.TypeFor[T]()
	if v == nil && typ.Kind() == reflect.Interface {
		return zero, true
	}

	Report(&MismatchError{Expected: typ, Value: v})
	return zero, false
}
