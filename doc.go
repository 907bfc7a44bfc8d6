// Package rx provides statically typed reactive signals on top of the untyped push-based
// stream engine in the [engine] package.
//
// # Signals
//
// A [Signal] is a typed, read-only stream of events: zero or more values, optionally followed
// by exactly one terminal event, an error or completion. Signals are cold unless stated otherwise:
// every subscription runs the signal's producer again. Signals are immutable handles. Every
// operator returns a new signal and leaves its inputs untouched, so pipelines are built by
// composing plain function calls:
//
//	queries := rx.NewSubject[string]()
//	results := rx.SwitchToLatest(rx.Map(rx.DistinctUntilChanged(queries.Signal), search))
//	d := results.SubscribeNext(render)
//	defer d.Dispose()
//
// Operators are functions rather than methods because Go methods cannot introduce new type
// parameters.
//
// # Subscriptions and disposal
//
// Subscribing returns a [Disposable]. Disposing it stops delivery synchronously and cancels
// every upstream subscription the pipeline made on its behalf. A subscription is also released
// once its terminal event has been delivered.
//
// Delivery is synchronous: values reach subscribers on the goroutine that produced them.
// There is no scheduler and no buffering other than what an operator explicitly documents
// ([ReplayLast] keeps one value, [CombineLatest] keeps one value per input).
//
// # Errors
//
// Failures inside a stream travel as error events. Most operators forward them immediately
// and cancel sibling subscriptions, see each operator for details.
//
// A value of the wrong type reaching a typed signal through the untyped engine, for example via
// [FromStream] or [Notifications], is a programming error and not a stream error. It is reported as
// a [TypeMismatchError], by default by panicking, and the value is never delivered.
// Tests can intercept these reports with the rxtest package.
//
// # Subjects and commands
//
// A [Subject] is a hot signal driven by hand with SendNext, SendError and SendCompleted.
// A [Command] maps inputs to executions, each one a signal, and publishes every execution
// on [Command.ExecutionSignals].
package rx
