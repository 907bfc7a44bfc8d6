package engine

import (
	"sync"
)

// Disposable cancels a subscription and releases what it holds. Dispose is idempotent.
type Disposable interface {
	Dispose()
	IsDisposed() bool
}

// ActionDisposable runs an action exactly once, on the first call to Dispose.
type ActionDisposable struct {
	once   sync.Once
	done   chan struct{}
	action func()
}

// NewDisposable returns a disposable running action on disposal. The action may be nil.
func NewDisposable(action func()) *ActionDisposable {
	return &ActionDisposable{
		done:   make(chan struct{}),
		action: action,
	}
}

func (d *ActionDisposable) Dispose() {
	d.once.Do(func() {
		close(d.done)
		if d.action != nil {
			d.action()
		}
	})
}

func (d *ActionDisposable) IsDisposed() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once Dispose has been called.
func (d *ActionDisposable) Done() <-chan struct{} {
	return d.done
}

// CompositeDisposable disposes a group of disposables together.
// Disposables added after the group was disposed are disposed immediately.
type CompositeDisposable struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

func NewCompositeDisposable(items ...Disposable) *CompositeDisposable {
	c := &CompositeDisposable{}
	for _, d := range items {
		c.Add(d)
	}
	return c
}

// Add puts d in the group. Nil disposables are ignored.
func (c *CompositeDisposable) Add(d Disposable) {
	if d == nil {
		return
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		d.Dispose()
		return
	}
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// Remove takes d out of the group without disposing it.
func (c *CompositeDisposable) Remove(d Disposable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item == d {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *CompositeDisposable) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	items := c.items
	c.items = nil
	c.mu.Unlock()

	for _, d := range items {
		d.Dispose()
	}
}

func (c *CompositeDisposable) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// SerialDisposable holds at most one disposable; replacing it disposes the previous one.
type SerialDisposable struct {
	mu       sync.Mutex
	current  Disposable
	disposed bool
}

func NewSerialDisposable() *SerialDisposable {
	return &SerialDisposable{}
}

// Set replaces the held disposable with d (which may be nil) and disposes the old one.
// If s is already disposed, d is disposed right away.
func (s *SerialDisposable) Set(d Disposable) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		if d != nil {
			d.Dispose()
		}
		return
	}
	prev := s.current
	s.current = d
	s.mu.Unlock()

	if prev != nil {
		prev.Dispose()
	}
}

func (s *SerialDisposable) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil {
		prev.Dispose()
	}
}

func (s *SerialDisposable) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
