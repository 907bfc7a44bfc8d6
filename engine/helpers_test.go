package engine

import (
	"errors"
	"fmt"
	"sync"
)

var errTest = errors.New("test error")

// recorder keeps the events it receives as strings, e.g. "1", "error(test error)", "completed".
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) SendNext(v any) {
	r.add(fmt.Sprint(v))
}

func (r *recorder) SendError(err error) {
	r.add(fmt.Sprintf("error(%v)", err))
}

func (r *recorder) SendCompleted() {
	r.add("completed")
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.events = append(r.events, s)
	r.mu.Unlock()
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func record(s *Stream) (*recorder, Disposable) {
	r := &recorder{}
	d := s.Subscribe(r)
	return r, d
}

// manual is a cold stream whose subscriptions are driven by hand.
type manual struct {
	mu   sync.Mutex
	subs []Subscriber
	// disposals counts disposed subscriptions.
	disposals int
}

func (m *manual) Stream() *Stream {
	return Create(func(sub Subscriber) Disposable {
		m.mu.Lock()
		m.subs = append(m.subs, sub)
		m.mu.Unlock()

		return NewDisposable(func() {
			m.mu.Lock()
			m.disposals++
			m.mu.Unlock()
		})
	})
}

func (m *manual) each(f func(Subscriber)) {
	m.mu.Lock()
	subs := append([]Subscriber(nil), m.subs...)
	m.mu.Unlock()

	for _, s := range subs {
		f(s)
	}
}

func (m *manual) Next(v any) { m.each(func(s Subscriber) { s.SendNext(v) }) }

func (m *manual) Error(err error) { m.each(func(s Subscriber) { s.SendError(err) }) }

func (m *manual) Complete() { m.each(func(s Subscriber) { s.SendCompleted() }) }

func (m *manual) Subscriptions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

func (m *manual) Disposals() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposals
}
