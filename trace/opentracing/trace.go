package opentracing

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

// Tracer implements the s2dm tracer.Tracer interface and creates OpenTracing
// spans through the global tracer.
type Tracer struct{}

func (Tracer) TraceStage(ctx context.Context, stage string, attrs map[string]interface{}) (context.Context, func(error)) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "s2dm."+stage)
	span.SetTag("s2dm.stage", stage)
	for name, value := range attrs {
		span.SetTag("s2dm."+name, value)
	}

	return spanCtx, func(err error) {
		if err != nil {
			ext.Error.Set(span, true)
			span.SetTag("s2dm.error", err.Error())
			span.LogFields(log.Error(err))
		}
		span.Finish()
	}
}
