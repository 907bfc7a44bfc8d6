// Package notify is an in-process notification center: producers post named notifications,
// and observers receive them as untyped engine streams.
package notify

import (
	"reflect"
	"slices"
	"sync"

	"github.com/destel/rx/engine"
)

// Notification is a single post to a [Center].
type Notification struct {
	Name    string
	Sender  any
	Payload any
}

type registration struct {
	sender any
	sub    engine.Subscriber
}

// Center dispatches posted notifications to the observers registered for their name.
// Delivery is synchronous, on the posting goroutine. The zero Center is ready to use.
type Center struct {
	mu        sync.Mutex
	observers map[string][]*registration
}

// NewCenter returns an empty center.
func NewCenter() *Center {
	return &Center{}
}

// Post delivers a notification to every observer of name whose sender filter matches sender.
func (c *Center) Post(name string, sender, payload any) {
	c.mu.Lock()
	regs := slices.Clone(c.observers[name])
	c.mu.Unlock()

	n := Notification{Name: name, Sender: sender, Payload: payload}
	for _, r := range regs {
		if r.sender == nil || sameSender(r.sender, sender) {
			r.sub.SendNext(n)
		}
	}
}

// Observe returns a stream of the [Notification] values posted under name. A nil sender
// matches every sender; otherwise only notifications posted by an equal sender are sent.
// Each subscription registers a new observer, removed when the subscription is disposed.
func (c *Center) Observe(name string, sender any) *engine.Stream {
	return engine.Create(func(sub engine.Subscriber) engine.Disposable {
		reg := &registration{sender: sender, sub: sub}

		c.mu.Lock()
		if c.observers == nil {
			c.observers = make(map[string][]*registration)
		}
		c.observers[name] = append(c.observers[name], reg)
		c.mu.Unlock()

		return engine.NewDisposable(func() {
			c.remove(name, reg)
		})
	})
}

// Observers returns the number of observers registered for name.
func (c *Center) Observers(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.observers[name])
}

func (c *Center) remove(name string, reg *registration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	regs := c.observers[name]
	if i := slices.Index(regs, reg); i >= 0 {
		regs = slices.Delete(regs, i, i+1)
	}
	if len(regs) == 0 {
		delete(c.observers, name)
		return
	}
	c.observers[name] = regs
}

func sameSender(a, b any) bool {
	if b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
