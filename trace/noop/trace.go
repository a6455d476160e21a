// Package noop defines a no-op tracer implementation.
package noop

import "context"

// Tracer is a no-op tracer that does nothing.
type Tracer struct{}

func (Tracer) TraceStage(ctx context.Context, stage string, attrs map[string]interface{}) (context.Context, func(error)) {
	return ctx, func(error) {}
}
