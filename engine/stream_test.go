package engine

import (
	"testing"

	"github.com/destel/rx/internal/th"
)

func TestCreate(t *testing.T) {
	t.Run("producer per subscription", func(t *testing.T) {
		calls := 0
		s := Create(func(sub Subscriber) Disposable {
			calls++
			sub.SendNext(calls)
			sub.SendCompleted()
			return nil
		})

		r1, _ := record(s)
		r2, _ := record(s)

		th.ExpectValue(t, calls, 2)
		th.ExpectSlice(t, r1.Events(), []string{"1", "completed"})
		th.ExpectSlice(t, r2.Events(), []string{"2", "completed"})
	})

	t.Run("nothing after terminal", func(t *testing.T) {
		s := Create(func(sub Subscriber) Disposable {
			sub.SendNext(1)
			sub.SendError(errTest)
			sub.SendNext(2)
			sub.SendCompleted()
			return nil
		})

		r, d := record(s)
		th.ExpectSlice(t, r.Events(), []string{"1", "error(test error)"})
		th.ExpectValue(t, d.IsDisposed(), true)
	})

	t.Run("disposal", func(t *testing.T) {
		var m manual
		r, d := record(m.Stream())

		m.Next(1)
		d.Dispose()
		m.Next(2)
		m.Complete()

		th.ExpectSlice(t, r.Events(), []string{"1"})
		th.ExpectValue(t, m.Disposals(), 1)
	})

	t.Run("terminal releases producer", func(t *testing.T) {
		var m manual
		record(m.Stream())

		m.Complete()
		th.ExpectValue(t, m.Disposals(), 1)
	})

	t.Run("nil stream", func(t *testing.T) {
		var s *Stream
		r, _ := record(s)
		th.ExpectSlice(t, r.Events(), []string{"completed"})
	})
}

func TestConstructors(t *testing.T) {
	r, _ := record(Empty())
	th.ExpectSlice(t, r.Events(), []string{"completed"})

	r, _ = record(Fail(errTest))
	th.ExpectSlice(t, r.Events(), []string{"error(test error)"})

	r, d := record(Never())
	th.ExpectValue(t, len(r.Events()), 0)
	th.ExpectValue(t, d.IsDisposed(), false)
	d.Dispose()

	r, _ = record(Of(1, "two", 3.5))
	th.ExpectSlice(t, r.Events(), []string{"1", "two", "3.5", "completed"})
}

func TestSubscribeFuncs(t *testing.T) {
	var values []any
	completed := false

	Of(1, 2).SubscribeFuncs(func(v any) {
		values = append(values, v)
	}, nil, func() {
		completed = true
	})

	th.ExpectSlice(t, values, []any{1, 2})
	th.ExpectValue(t, completed, true)
}
