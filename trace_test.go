package s2dm_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerlog "github.com/uber/jaeger-client-go/log"

	"github.com/covesa/s2dm"
	s2dmtracing "github.com/covesa/s2dm/trace/opentracing"
)

func TestJaegerTracing(t *testing.T) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		t.Skipf("skipping test; could not initialize jaeger: %s", err)
	}
	queryAPI := os.Getenv("JAEGER_QUERY_ENDPOINT")
	if queryAPI == "" {
		t.Skip("skipping test; JAEGER_QUERY_ENDPOINT env not defined")
	}

	svcName := t.Name() + "-" + ksuid.New().String()
	queryURL := fmt.Sprintf("%s?lookback=1h&limit=10&service=%s", queryAPI, svcName)

	cfg.ServiceName = svcName
	cfg.Sampler.Type = jaeger.SamplerTypeConst
	cfg.Sampler.Param = 1
	cfg.Reporter.LogSpans = true

	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaegerlog.StdLogger))
	if err != nil {
		t.Skipf("skipping test; could not initialize jaeger: %s", err)
	}
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	t.Cleanup(func() { opentracing.SetGlobalTracer(prev) })

	assertTraceCount(t, queryURL, 0)

	c := s2dm.NewComposer()
	c.Tracer = s2dmtracing.Tracer{}
	_, err = c.Compose(context.Background(), s2dm.Request{Paths: []string{writeSchema(t)}})
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	// Each stage is its own trace since Compose starts from a bare context.
	time.Sleep(1 * time.Second)
	assertTraceCount(t, queryURL, 3)
}

func assertTraceCount(t *testing.T, queryURL string, count int) {
	t.Helper()
	resp, err := http.Get(queryURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var data struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &data))
	assert.Len(t, data.Data, count)
}
