// The tracer package provides tracing functionality for pipeline stages.
package tracer

import "context"

// StageFinishFunc ends a stage. err is the stage's outcome, nil on success.
type StageFinishFunc = func(err error)

// Tracer opens a span-like scope around one stage of the compose pipeline
// (load, parse, filter, print, export).
type Tracer interface {
	TraceStage(ctx context.Context, stage string, attrs map[string]interface{}) (context.Context, StageFinishFunc)
}
