package noop_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/covesa/s2dm/trace/noop"
	"github.com/covesa/s2dm/trace/tracer"
)

func TestInterfaceImplementation(t *testing.T) {
	var _ tracer.Tracer = &noop.Tracer{}
	var _ tracer.Tracer = noop.Tracer{}
}

func TestTraceStage(t *testing.T) {
	ctx := context.Background()
	got, finish := noop.Tracer{}.TraceStage(ctx, "load", nil)
	assert.Equal(t, ctx, got)
	assert.NotPanics(t, func() { finish(errors.New("boom")) })
}
