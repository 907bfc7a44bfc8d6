package rx

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/destel/rx"

	defaultMaxConcurrency = 1
)

// Option configures a [Command].
type Option func(*config)

type config struct {
	maxConcurrency int
	tracerProvider trace.TracerProvider
}

func newConfig(opts []Option) config {
	c := config{
		maxConcurrency: defaultMaxConcurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.tracerProvider == nil {
		c.tracerProvider = otel.GetTracerProvider()
	}
	return c
}

// WithMaxConcurrency sets how many executions may run at once. Executions beyond the
// limit fail with [ErrCommandBusy]. n <= 0 removes the limit. The default is 1.
func WithMaxConcurrency(n int) Option {
	return func(c *config) {
		c.maxConcurrency = n
	}
}

// WithTracerProvider sets the provider used to trace executions.
// The default is the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}
