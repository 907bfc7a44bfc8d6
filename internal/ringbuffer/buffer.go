// Package ringbuffer provides a growable FIFO queue with an optional size limit.
package ringbuffer

const (
	minCap     = 8
	maxIdleCap = 64
)

// Buffer is a FIFO queue backed by a ring. The zero value is an unbounded, empty buffer.
// When a limit is set, writing to a full buffer evicts the oldest item.
// Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	data  []T
	head  int
	size  int
	limit int
}

// New returns a buffer that holds at most limit items. A limit <= 0 means unbounded.
func New[T any](limit int) *Buffer[T] {
	if limit < 0 {
		limit = 0
	}
	return &Buffer[T]{limit: limit}
}

func (b *Buffer[T]) Len() int {
	return b.size
}

func (b *Buffer[T]) Cap() int {
	return len(b.data)
}

// Limit returns the maximum number of items, or 0 for unbounded buffers.
func (b *Buffer[T]) Limit() int {
	return b.limit
}

// Push appends v to the tail. It reports whether an item was evicted to make room.
func (b *Buffer[T]) Push(v T) (evicted bool) {
	if b.limit > 0 && b.size == b.limit {
		b.Pop()
		evicted = true
	}

	b.grow()
	b.data[(b.head+b.size)%len(b.data)] = v
	b.size++
	return evicted
}

// Pop removes and returns the head item.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T
	if b.size == 0 {
		return zero, false
	}

	v := b.data[b.head]
	b.data[b.head] = zero
	b.head = (b.head + 1) % len(b.data)
	b.size--

	if b.size == 0 {
		b.head = 0
		b.shrink()
	}
	return v, true
}

// Peek returns the head item without removing it.
func (b *Buffer[T]) Peek() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}
	return b.data[b.head], true
}

// Values returns a copy of the buffered items, oldest first.
func (b *Buffer[T]) Values() []T {
	out := make([]T, b.size)
	for i := range out {
		out[i] = b.data[(b.head+i)%len(b.data)]
	}
	return out
}

// Reset drops all items and releases the backing storage.
func (b *Buffer[T]) Reset() {
	b.data = nil
	b.head = 0
	b.size = 0
}

func (b *Buffer[T]) grow() {
	if b.size < len(b.data) {
		return
	}

	newCap := len(b.data) << 1
	if newCap < minCap {
		newCap = minCap
	}
	if b.limit > 0 && newCap > b.limit {
		newCap = b.limit
	}
	b.resize(newCap)
}

// shrink is called on an empty buffer; storage grown by a burst is released.
func (b *Buffer[T]) shrink() {
	if len(b.data) > maxIdleCap {
		b.data = nil
	}
}

func (b *Buffer[T]) resize(newCap int) {
	data := make([]T, newCap)
	if b.size > 0 {
		end := b.head + b.size
		if end <= len(b.data) {
			copy(data, b.data[b.head:end])
		} else {
			n := copy(data, b.data[b.head:])
			copy(data[n:], b.data[:end-len(b.data)])
		}
	}
	b.data = data
	b.head = 0
}
