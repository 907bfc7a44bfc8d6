package engine

import (
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrCommandBusy is sent by an execution that was rejected because the command was
// already running its maximum number of executions.
var ErrCommandBusy = errors.New("engine: command is busy")

// Command turns inputs into executions. Each execution is the stream returned by the
// command's factory, connected at once and replayed to late subscribers.
type Command struct {
	factory func(input any) *Stream
	slots   *semaphore.Weighted

	executions *Subject
	errors     *Subject
	executing  *Subject

	queue     serialQueue
	mu        sync.Mutex
	running   int
	announced bool
}

// NewCommand returns a command running factory on every execution. At most maxConcurrent
// executions may be in flight; maxConcurrent <= 0 means no limit.
func NewCommand(factory func(input any) *Stream, maxConcurrent int) *Command {
	c := &Command{
		factory:    factory,
		executions: NewSubject(),
		errors:     NewSubject(),
		executing:  NewReplaySubject(1),
	}
	if maxConcurrent > 0 {
		c.slots = semaphore.NewWeighted(int64(maxConcurrent))
	}
	c.executing.SendNext(false)
	return c
}

// Execute starts a new execution for input and returns it. The returned stream replays
// every value of the execution, so subscribing late loses nothing.
// A rejected execution fails with [ErrCommandBusy] and is not published.
func (c *Command) Execute(input any) *Stream {
	if c.slots != nil && !c.slots.TryAcquire(1) {
		return Fail(ErrCommandBusy)
	}

	source := c.build(input)
	c.adjust(1)

	var once sync.Once
	release := func() {
		once.Do(func() {
			if c.slots != nil {
				c.slots.Release(1)
			}
			c.adjust(-1)
		})
	}

	execution := NewReplaySubject(0)
	c.executions.SendNext(Catch(execution.Stream(), func(error) *Stream {
		return nil
	}))

	// A panic while connecting must not leave the command busy.
	connected := false
	defer func() {
		if !connected {
			release()
		}
	}()

	source.Subscribe(ObserverFuncs{
		Next: execution.SendNext,
		Error: func(err error) {
			release()
			c.errors.SendNext(err)
			execution.SendError(err)
		},
		Completed: func() {
			release()
			execution.SendCompleted()
		},
	})
	connected = true

	return execution.Stream()
}

// build runs the factory before anything is announced. If the factory panics,
// the slot taken for the execution is given back.
func (c *Command) build(input any) *Stream {
	built := false
	defer func() {
		if !built && c.slots != nil {
			c.slots.Release(1)
		}
	}()

	s := c.factory(input)
	built = true
	return s
}

// ExecutionSignals sends one *Stream per accepted execution. The published streams never
// fail: their errors are routed to [Command.Errors] and they complete instead.
func (c *Command) ExecutionSignals() *Stream {
	return c.executions.Stream()
}

// Errors sends the error of every failed execution.
func (c *Command) Errors() *Stream {
	return c.errors.Stream()
}

// Executing sends whether any execution is in flight. New subscribers get the current state first.
func (c *Command) Executing() *Stream {
	return c.executing.Stream()
}

// Running returns the number of executions in flight.
func (c *Command) Running() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Command) adjust(delta int) {
	// The state change is queued under the lock so announcements follow counter order.
	c.mu.Lock()
	c.running += delta
	busy := c.running > 0
	drain := c.queue.enqueue(func() {
		if busy != c.announced {
			c.announced = busy
			c.executing.SendNext(busy)
		}
	})
	c.mu.Unlock()

	if drain {
		c.queue.drain()
	}
}
