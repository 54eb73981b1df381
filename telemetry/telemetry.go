// Package telemetry provides hierarchical timing collection for
// operations. It uses the context pattern for non-intrusive
// instrumentation: collectors travel through context and can be
// enabled or disabled without changing function signatures.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.StartTimer(ctx, "expand input.m4")
//	defer timer.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/m4/output"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var collectorKey = contextKey{}

// Collector collects telemetry data for one command invocation.
type Collector interface {
	// Start begins timing an operation and returns a Timer that must
	// be ended with End() when the operation completes.
	Start(name string) Timer

	// Report outputs the collected telemetry to a writer. The styles
	// parameter adds terminal styling and may be nil.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation's timing. Timers nest via Child.
type Timer interface {
	// End stops the timer and records the duration.
	End()

	// Child creates a nested timer under this timer.
	Child(name string) Timer
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context. If no collector is
// present, a no-op collector is returned, never nil.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// StartTimer starts a timer on the context's collector. With no
// collector in the context this is a no-op with zero overhead.
func StartTimer(ctx context.Context, name string) Timer {
	return FromContext(ctx).Start(name)
}

// noOpCollector is the collector used when telemetry is disabled.
type noOpCollector struct{}

func (noOpCollector) Start(name string) Timer                  { return noOpTimer{} }
func (noOpCollector) Report(w io.Writer, styles *output.Styles) {}

type noOpTimer struct{}

func (noOpTimer) End()                    {}
func (noOpTimer) Child(name string) Timer { return noOpTimer{} }
