// Package engine is a small untyped push-based event-stream engine.
//
// A [Stream] delivers [Event] values carrying untyped (any) payloads to an [Observer]:
// zero or more Next events, optionally followed by exactly one terminal event, Error or Completed.
// Subscribing returns a [Disposable]; disposing it stops delivery synchronously and releases
// everything the subscription holds, including the upstream subscriptions made by operators.
// A subscription is also released automatically once its terminal event is delivered.
//
// # Delivery
//
// The engine has no scheduler. Events are delivered on the goroutine that produces them,
// synchronously with respect to the producer. Streams are cold: every subscription runs
// the producer again. Hot streams are built with [Subject].
//
// Operators with a single upstream rely on that upstream delivering its events one at a time.
// Operators that combine several upstreams, such as [Merge], [FlattenMap], [SwitchMap],
// [CombineLatest] and [Sample], serialize their output, so they are safe to use with upstreams
// producing on different goroutines.
//
// # Typing
//
// Payloads are not checked here. The typed façade in the parent package is responsible for
// verifying payload types at every boundary crossing.
package engine
