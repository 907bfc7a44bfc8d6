package notify

import (
	"testing"

	"github.com/destel/rx/engine"
	"github.com/destel/rx/internal/th"
)

func TestCenter(t *testing.T) {
	var c Center

	var got []Notification
	d := c.Observe("changed", nil).SubscribeFuncs(func(v any) {
		got = append(got, v.(Notification))
	}, nil, nil)
	th.ExpectValue(t, c.Observers("changed"), 1)

	c.Post("changed", "sender", 42)
	c.Post("other", "sender", 43)

	th.ExpectValue(t, len(got), 1)
	th.ExpectValue(t, got[0].Name, "changed")
	th.ExpectValue(t, got[0].Sender, any("sender"))
	th.ExpectValue(t, got[0].Payload, any(42))

	d.Dispose()
	th.ExpectValue(t, c.Observers("changed"), 0)

	c.Post("changed", "sender", 44)
	th.ExpectValue(t, len(got), 1)
}

func TestCenterSenderFilter(t *testing.T) {
	c := NewCenter()

	count := func(sender any) *int {
		n := new(int)
		c.Observe("tick", sender).SubscribeFuncs(func(any) { *n++ }, nil, nil)
		return n
	}

	all := count(nil)
	a := count("a")
	uncomparable := count([]int{1})

	c.Post("tick", "a", nil)
	c.Post("tick", "b", nil)
	c.Post("tick", nil, nil)
	c.Post("tick", []int{1}, nil)

	th.ExpectValue(t, *all, 4)
	th.ExpectValue(t, *a, 1)
	th.ExpectValue(t, *uncomparable, 0)
}

func TestCenterWithOperators(t *testing.T) {
	c := NewCenter()

	var payloads []any
	engine.Take(c.Observe("n", nil), 2).SubscribeFuncs(func(v any) {
		payloads = append(payloads, v.(Notification).Payload)
	}, nil, nil)

	c.Post("n", nil, 1)
	c.Post("n", nil, 2)
	c.Post("n", nil, 3)

	th.ExpectSlice(t, payloads, []any{1, 2})
	th.ExpectValue(t, c.Observers("n"), 0)
}
