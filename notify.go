package rx

import (
	"github.com/destel/rx/engine"
	"github.com/destel/rx/notify"
)

// Notifications returns a signal of the payloads posted to c under name by sender
// (any sender when nil). Payloads are checked against T like every other value entering
// a typed signal: posting a payload of another type is a [TypeMismatchError].
func Notifications[T any](c *notify.Center, name string, sender any) Signal[T] {
	return FromStream[T](engine.FilterMap(c.Observe(name, sender), func(v any) (any, bool) {
		n, ok := cast[notify.Notification](v)
		if !ok {
			return nil, false
		}
		if _, ok := cast[T](n.Payload); !ok {
			return nil, false
		}
		return n.Payload, true
	}))
}
