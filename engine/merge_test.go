package engine

import (
	"fmt"
	"sort"
	"strconv"
	"testing"

	"github.com/destel/rx/internal/th"
)

func TestMerge(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		r, _ := record(Merge())
		th.ExpectSlice(t, r.Events(), []string{"completed"})
	})

	t.Run("interleaving", func(t *testing.T) {
		var a, b manual
		r, _ := record(Merge(a.Stream(), b.Stream()))

		a.Next(1)
		b.Next(2)
		a.Complete()
		a.Next(3)
		b.Next(4)
		th.ExpectSlice(t, r.Events(), []string{"1", "2", "4"})

		b.Complete()
		th.ExpectSlice(t, r.Events(), []string{"1", "2", "4", "completed"})
	})

	t.Run("error cancels the rest", func(t *testing.T) {
		var a, b manual
		r, _ := record(Merge(a.Stream(), b.Stream()))

		a.Next(1)
		b.Error(errTest)
		a.Next(2)

		th.ExpectSlice(t, r.Events(), []string{"1", "error(test error)"})
		th.ExpectValue(t, a.Disposals(), 1)
	})

	t.Run("concurrent producers", func(t *testing.T) {
		const producers, perProducer = 8, 200

		sources := make([]*manual, producers)
		streams := make([]*Stream, producers)
		for i := range sources {
			sources[i] = &manual{}
			streams[i] = sources[i].Stream()
		}

		r, _ := record(Merge(streams...))

		th.DoConcurrentlyN(producers, func(i int) {
			for j := 0; j < perProducer; j++ {
				sources[i].Next(i*perProducer + j)
			}
			sources[i].Complete()
		})

		events := r.Events()
		th.ExpectValue(t, len(events), producers*perProducer+1)
		th.ExpectValue(t, events[len(events)-1], "completed")

		values := make([]int, 0, len(events)-1)
		for _, e := range events[:len(events)-1] {
			v, err := strconv.Atoi(e)
			th.ExpectNoError(t, err)
			values = append(values, v)
		}
		sort.Ints(values)
		th.ExpectSlice(t, values, th.Range(0, producers*perProducer))
	})
}

func TestFlattenMap(t *testing.T) {
	t.Run("waits for inner streams", func(t *testing.T) {
		var outer manual
		inners := map[int]*manual{}

		r, _ := record(FlattenMap(outer.Stream(), func(v any) *Stream {
			m := &manual{}
			inners[v.(int)] = m
			return m.Stream()
		}))

		outer.Next(1)
		outer.Next(2)
		inners[1].Next("1a")
		inners[2].Next("2a")
		inners[1].Next("1b")
		outer.Complete()
		inners[1].Complete()
		th.ExpectSlice(t, r.Events(), []string{"1a", "2a", "1b"})

		inners[2].Complete()
		th.ExpectSlice(t, r.Events(), []string{"1a", "2a", "1b", "completed"})
	})

	t.Run("synchronous inner streams", func(t *testing.T) {
		r, _ := record(FlattenMap(Of(1, 2, 3), func(v any) *Stream {
			x := v.(int)
			if x == 2 {
				return nil
			}
			return Of(x, x*10)
		}))
		th.ExpectSlice(t, r.Events(), []string{"1", "10", "3", "30", "completed"})
	})

	t.Run("inner error cancels everything", func(t *testing.T) {
		var outer, first, second manual
		inners := []*manual{&first, &second}
		next := 0

		r, _ := record(FlattenMap(outer.Stream(), func(any) *Stream {
			m := inners[next]
			next++
			return m.Stream()
		}))

		outer.Next(nil)
		outer.Next(nil)
		second.Error(errTest)
		first.Next("late")

		th.ExpectSlice(t, r.Events(), []string{"error(test error)"})
		th.ExpectValue(t, outer.Disposals(), 1)
		th.ExpectValue(t, first.Disposals(), 1)
	})

	t.Run("disposal reaches inner streams", func(t *testing.T) {
		var outer, inner manual
		_, d := record(FlattenMap(outer.Stream(), func(any) *Stream {
			return inner.Stream()
		}))

		outer.Next(1)
		outer.Next(2)
		d.Dispose()

		th.ExpectValue(t, inner.Subscriptions(), 2)
		th.ExpectValue(t, inner.Disposals(), 2)
		th.ExpectValue(t, outer.Disposals(), 1)
	})
}

func TestSwitchToLatest(t *testing.T) {
	t.Run("switching", func(t *testing.T) {
		var outer, a, b manual
		r, _ := record(SwitchToLatest(outer.Stream()))

		outer.Next(a.Stream())
		a.Next("a1")
		outer.Next(b.Stream())
		th.ExpectValue(t, a.Disposals(), 1)

		a.Next("a2")
		b.Next("b1")
		th.ExpectSlice(t, r.Events(), []string{"a1", "b1"})

		outer.Complete()
		th.ExpectSlice(t, r.Events(), []string{"a1", "b1"})

		b.Complete()
		th.ExpectSlice(t, r.Events(), []string{"a1", "b1", "completed"})
	})

	t.Run("outer completes after inner", func(t *testing.T) {
		r, _ := record(SwitchToLatest(Of(Of(1, 2), Of(3))))
		th.ExpectSlice(t, r.Events(), []string{"1", "2", "3", "completed"})
	})

	t.Run("no inner", func(t *testing.T) {
		r, _ := record(SwitchToLatest(Empty()))
		th.ExpectSlice(t, r.Events(), []string{"completed"})
	})

	t.Run("inner error", func(t *testing.T) {
		var outer manual
		r, _ := record(SwitchToLatest(outer.Stream()))

		outer.Next(Fail(errTest))
		th.ExpectSlice(t, r.Events(), []string{"error(test error)"})
		th.ExpectValue(t, outer.Disposals(), 1)
	})

	t.Run("disposal reaches inner", func(t *testing.T) {
		var outer, inner manual
		_, d := record(SwitchToLatest(outer.Stream()))

		outer.Next(inner.Stream())
		d.Dispose()
		th.ExpectValue(t, inner.Disposals(), 1)
	})
}

func TestCombineLatest(t *testing.T) {
	var a, b manual
	r, _ := record(CombineLatest(a.Stream(), b.Stream()))

	a.Next(1)
	a.Next(2)
	th.ExpectValue(t, len(r.Events()), 0)

	b.Next("x")
	a.Next(3)
	b.Next("y")
	th.ExpectSlice(t, r.Events(), []string{"[2 x]", "[3 x]", "[3 y]"})

	a.Complete()
	b.Next("z")
	b.Complete()
	th.ExpectSlice(t, r.Events(), []string{"[2 x]", "[3 x]", "[3 y]", "[3 z]", "completed"})

	t.Run("error", func(t *testing.T) {
		var a, b manual
		r, _ := record(CombineLatest(a.Stream(), b.Stream()))

		a.Next(1)
		b.Error(errTest)
		th.ExpectSlice(t, r.Events(), []string{"error(test error)"})
		th.ExpectValue(t, a.Disposals(), 1)
	})

	t.Run("empty", func(t *testing.T) {
		r, _ := record(CombineLatest())
		th.ExpectSlice(t, r.Events(), []string{"completed"})
	})
}

func TestSample(t *testing.T) {
	var source, trigger manual
	r, _ := record(Sample(source.Stream(), trigger.Stream()))

	trigger.Next(struct{}{})
	source.Next(1)
	source.Next(2)
	trigger.Next(struct{}{})
	trigger.Next(struct{}{})
	source.Next(3)
	trigger.Next(struct{}{})
	source.Complete()

	th.ExpectSlice(t, r.Events(), []string{"2", "2", "3", "completed"})
	th.ExpectValue(t, trigger.Disposals(), 1)
}

func TestSerialQueueReentrancy(t *testing.T) {
	var q serialQueue
	var order []string

	q.do(func() {
		order = append(order, "outer start")
		q.do(func() {
			order = append(order, "inner")
		})
		order = append(order, "outer end")
	})

	th.ExpectSlice(t, order, []string{"outer start", "outer end", "inner"})

	t.Run("panic resets", func(t *testing.T) {
		var q serialQueue
		th.ExpectPanic(t, func() {
			q.do(func() { panic(fmt.Errorf("boom")) })
		})

		ran := false
		q.do(func() { ran = true })
		th.ExpectValue(t, ran, true)
	})
}

func TestConcurrentUpstreams(t *testing.T) {
	const n = 1000

	t.Run("combine latest", func(t *testing.T) {
		var a, b manual
		r, _ := record(CombineLatest(a.Stream(), b.Stream()))

		send := func(m *manual) func() {
			return func() {
				for i := 0; i < n; i++ {
					m.Next(i)
				}
			}
		}
		th.DoConcurrently(send(&a), send(&b))

		events := r.Events()
		th.ExpectValue(t, len(events) > 0, true)
		th.ExpectValue(t, events[len(events)-1], fmt.Sprint([]any{n - 1, n - 1}))

		prevA, prevB := -1, -1
		for _, e := range events {
			var x, y int
			_, err := fmt.Sscanf(e, "[%d %d]", &x, &y)
			th.ExpectNoError(t, err)
			if x < prevA || y < prevB {
				t.Fatalf("stale snapshot %s after [%d %d]", e, prevA, prevB)
			}
			prevA, prevB = x, y
		}
	})

	t.Run("sample", func(t *testing.T) {
		var source, trigger manual
		r, _ := record(Sample(source.Stream(), trigger.Stream()))

		th.DoConcurrently(
			func() {
				for i := 0; i < n; i++ {
					source.Next(i)
				}
			},
			func() {
				for i := 0; i < n; i++ {
					trigger.Next(struct{}{})
				}
			},
		)
		trigger.Next(struct{}{})

		events := r.Events()
		th.ExpectValue(t, events[len(events)-1], strconv.Itoa(n-1))

		prev := -1
		for _, e := range events {
			v, err := strconv.Atoi(e)
			th.ExpectNoError(t, err)
			if v < prev {
				t.Fatalf("stale sample %d after %d", v, prev)
			}
			prev = v
		}
	})

	t.Run("switch to latest", func(t *testing.T) {
		const inners = 5

		var outer manual
		sources := make([]*manual, inners)
		for i := range sources {
			sources[i] = &manual{}
		}
		r, _ := record(SwitchToLatest(outer.Stream()))

		producers := make([]func(), 0, inners+1)
		for i, m := range sources {
			producers = append(producers, func() {
				for j := 0; j < n; j++ {
					m.Next(i*n + j)
				}
			})
		}
		producers = append(producers, func() {
			for _, m := range sources {
				outer.Next(m.Stream())
			}
		})
		th.DoConcurrently(producers...)

		// Values of a replaced inner stream must never follow values of its replacement.
		prev := 0
		for _, e := range r.Events() {
			v, err := strconv.Atoi(e)
			th.ExpectNoError(t, err)
			if v/n < prev {
				t.Fatalf("value %d of inner %d after inner %d", v, v/n, prev)
			}
			prev = v / n
		}
	})

	t.Run("flatten map", func(t *testing.T) {
		const inners = 4

		sources := make([]*manual, inners)
		for i := range sources {
			sources[i] = &manual{}
		}
		r, _ := record(FlattenMap(Of(0, 1, 2, 3), func(v any) *Stream {
			return sources[v.(int)].Stream()
		}))

		th.DoConcurrentlyN(inners, func(i int) {
			for j := 0; j < n; j++ {
				sources[i].Next(i*n + j)
			}
			sources[i].Complete()
		})

		events := r.Events()
		th.ExpectValue(t, len(events), inners*n+1)
		th.ExpectValue(t, events[len(events)-1], "completed")

		values := make([]int, 0, inners*n)
		for _, e := range events[:len(events)-1] {
			v, err := strconv.Atoi(e)
			th.ExpectNoError(t, err)
			values = append(values, v)
		}
		sort.Ints(values)
		th.ExpectSlice(t, values, th.Range(0, inners*n))
	})
}
