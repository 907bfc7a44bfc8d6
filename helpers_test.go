package rx

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/destel/rx/internal/typecheck"
)

var errTest = errors.New("test error")

// The helpers below mirror rxtest.Recorder and rxtest.CatchTypeMismatches. rxtest imports this
// package, so these in-package tests, which reach unexported fields, cannot use it.

// recorder keeps the values of a signal and a description of how it ended:
// "" while running, "completed", or "error(<message>)".
type recorder[T any] struct {
	mu       sync.Mutex
	values   []T
	terminal string
}

func record[T any](s Signal[T]) (*recorder[T], Disposable) {
	r := &recorder[T]{}
	d := s.Subscribe(
		func(v T) {
			r.mu.Lock()
			r.values = append(r.values, v)
			r.mu.Unlock()
		},
		func(err error) { r.end(fmt.Sprintf("error(%v)", err)) },
		func() { r.end("completed") },
	)
	return r, d
}

func (r *recorder[T]) end(s string) {
	r.mu.Lock()
	r.terminal = s
	r.mu.Unlock()
}

func (r *recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

func (r *recorder[T]) Terminal() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.terminal
}

// catchMismatches records type mismatches instead of panicking until the test ends.
func catchMismatches(t *testing.T) func() []*TypeMismatchError {
	var mu sync.Mutex
	var errs []*TypeMismatchError

	restore := typecheck.SetHandler(func(err *typecheck.MismatchError) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	})
	t.Cleanup(restore)

	return func() []*TypeMismatchError {
		mu.Lock()
		defer mu.Unlock()
		return append([]*TypeMismatchError(nil), errs...)
	}
}
