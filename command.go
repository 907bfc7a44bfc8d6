package rx

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/destel/rx/engine"
)

// ErrCommandBusy is the error of an execution rejected because the command already runs
// as many executions as [WithMaxConcurrency] allows.
var ErrCommandBusy = engine.ErrCommandBusy

// Command is a typed action: each execution turns an input U into a Signal[T].
type Command[U, T any] struct {
	cmd    *engine.Command
	tracer trace.Tracer
}

// NewCommand returns a command that runs factory for every execution.
func NewCommand[U, T any](factory func(U) Signal[T], opts ...Option) *Command[U, T] {
	cfg := newConfig(opts)

	cmd := engine.NewCommand(func(input any) *engine.Stream {
		u, ok := cast[U](input)
		if !ok {
			return nil
		}
		return checked[T](factory(u).stream)
	}, cfg.maxConcurrency)

	return &Command[U, T]{
		cmd:    cmd,
		tracer: cfg.tracerProvider.Tracer(instrumentationName),
	}
}

// Execute runs the command for input. See [Command.ExecuteContext].
func (c *Command[U, T]) Execute(input U) Signal[T] {
	return c.ExecuteContext(context.Background(), input)
}

// ExecuteContext runs the command for input and returns the execution. The execution is
// already running; the returned signal replays all of its events, so it may be subscribed
// to at any time. ctx only parents the execution's trace span.
func (c *Command[U, T]) ExecuteContext(ctx context.Context, input U) Signal[T] {
	_, span := c.tracer.Start(ctx, "rx.command.execute", trace.WithAttributes(
		attribute.String("rx.execution.id", uuid.NewString()),
		attribute.String("rx.input.type", fmt.Sprintf("%T", input)),
	))

	execution := c.cmd.Execute(input)
	execution.Subscribe(engine.ObserverFuncs{
		Error: func(err error) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
		},
		Completed: func() {
			span.SetStatus(codes.Ok, "")
			span.End()
		},
	})

	return FromStream[T](execution)
}

// ExecutionSignals sends the signal of every accepted execution, in execution order.
// Those signals complete instead of failing; failures are reported on [Command.Errors].
func (c *Command[U, T]) ExecutionSignals() Signal[Signal[T]] {
	return FromStream[Signal[T]](engine.FilterMap(c.cmd.ExecutionSignals(), func(v any) (any, bool) {
		s, ok := cast[*engine.Stream](v)
		if !ok {
			return nil, false
		}
		return FromStream[T](s), true
	}))
}

// Errors sends the error of every failed execution.
func (c *Command[U, T]) Errors() Signal[error] {
	return FromStream[error](c.cmd.Errors())
}

// Executing sends whether the command has executions in flight, starting with the current state.
func (c *Command[U, T]) Executing() Signal[bool] {
	return FromStream[bool](c.cmd.Executing())
}

// Engine returns the untyped command behind c.
func (c *Command[U, T]) Engine() *engine.Command {
	return c.cmd
}
