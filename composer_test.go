package s2dm_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	gqlast "github.com/vektah/gqlparser/v2/ast"

	"github.com/covesa/s2dm"
	"github.com/covesa/s2dm/ast"
	s2dmtracing "github.com/covesa/s2dm/trace/opentracing"
)

const vehicleSDL = `type Vehicle {
  speed: Float @range(min: 0, max: 250)
  cabin: Cabin
}

type Cabin {
  doors: [Door] @noDuplicates
  seats: Int8
}

type Door {
  isOpen: Boolean
  instanceTag: InCabinArea2x2
}

type Query {
  vehicle: Vehicle
  unrelated: Unrelated
}
`

const otherSDL = `"Not reachable from Vehicle."
type Unrelated {
  note: String
}
`

func writeSchema(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vehicle.graphql"), []byte(vehicleSDL), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.graphql"), []byte(otherSDL), 0o644))
	return dir
}

func compose(t *testing.T, req s2dm.Request) *s2dm.Result {
	t.Helper()
	res, err := s2dm.NewComposer().Compose(context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestCompose(t *testing.T) {
	dir := writeSchema(t)
	res := compose(t, s2dm.Request{Paths: []string{dir}})

	tests := []struct {
		description string
		want        string
	}{
		{"user types", "type Vehicle {"},
		{"bundled scalars", "scalar Int8"},
		{"bundled instance tags", "type InCabinArea2x2 @instanceTag {"},
		{"directive declarations", "directive @range(min: Float, max: Float) on FIELD_DEFINITION"},
		{"field directives", "  speed: Float @range(min: 0, max: 250)"},
		{"list directives", "  doors: [Door] @noDuplicates"},
		{"descriptions", `"""Not reachable from Vehicle."""`},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Contains(t, res.SDL, tt.want)
		})
	}

	t.Run("output is a valid schema", func(t *testing.T) {
		_, err := gqlparser.LoadSchema(&gqlast.Source{Name: "composed.graphql", Input: res.SDL})
		assert.NoError(t, err)
	})

	t.Run("source records the user files", func(t *testing.T) {
		require.Len(t, res.Source.Files, 2)
		assert.Equal(t, "other.graphql", filepath.Base(res.Source.Files[0]))
		assert.Equal(t, "vehicle.graphql", filepath.Base(res.Source.Files[1]))
	})
}

func TestComposeIsDeterministic(t *testing.T) {
	dir := writeSchema(t)
	vehicle := filepath.Join(dir, "vehicle.graphql")
	other := filepath.Join(dir, "other.graphql")

	first := compose(t, s2dm.Request{Paths: []string{vehicle, other}, References: true})
	second := compose(t, s2dm.Request{Paths: []string{other, vehicle}, References: true})
	assert.Equal(t, first.SDL, second.SDL)
}

func TestComposeIsIdempotent(t *testing.T) {
	dir := writeSchema(t)
	first := compose(t, s2dm.Request{Paths: []string{dir}, References: true})

	out := filepath.Join(t.TempDir(), "composed.graphql")
	require.NoError(t, os.WriteFile(out, []byte(first.SDL), 0o644))

	c := s2dm.NewComposer()
	c.Bundle = nil
	second, err := c.Compose(context.Background(), s2dm.Request{Paths: []string{out}, References: true})
	require.NoError(t, err)
	assert.Equal(t, first.SDL, second.SDL)
}

func TestComposeReferences(t *testing.T) {
	dir := writeSchema(t)
	res := compose(t, s2dm.Request{Paths: []string{dir}, References: true})

	assert.Contains(t, res.SDL, `type Vehicle @reference(source: "vehicle.graphql") {`)
	assert.Contains(t, res.SDL, `type Unrelated @reference(source: "other.graphql") {`)
	assert.Contains(t, res.SDL, `scalar Int8 @reference(source: "S2DM Spec")`)
	assert.Contains(t, res.SDL, `type InCabinArea2x2 @instanceTag @reference(source: "S2DM Spec") {`)

	plain := compose(t, s2dm.Request{Paths: []string{dir}})
	assert.NotContains(t, plain.SDL, "@reference(source:")
}

func TestComposeRootType(t *testing.T) {
	dir := writeSchema(t)
	res := compose(t, s2dm.Request{Paths: []string{dir}, RootType: "Vehicle"})

	for _, name := range []string{"Vehicle", "Cabin", "Door", "Int8", "InCabinArea2x2"} {
		assert.Contains(t, res.Schema.Types, name)
	}
	assert.NotContains(t, res.Schema.Types, "Unrelated")
	assert.NotContains(t, res.SDL, "type Unrelated")

	t.Run("instance tag fields are not followed", func(t *testing.T) {
		assert.NotContains(t, res.Schema.Types, "TwoRowsInCabinEnum")
		assert.NotContains(t, res.Schema.Types, "TwoColumnsInCabinEnum")
	})

	t.Run("query is narrowed to the root field", func(t *testing.T) {
		assert.Equal(t, []string{"vehicle"}, res.Schema.RootType("query").Fields.Names())
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := s2dm.NewComposer().Compose(context.Background(), s2dm.Request{Paths: []string{dir}, RootType: "Nope"})
		assert.EqualError(t, err, "Root type 'Nope' not found in schema")
	})

	t.Run("required query field", func(t *testing.T) {
		_, err := s2dm.NewComposer().Compose(context.Background(), s2dm.Request{Paths: []string{dir}, RootType: "Cabin", RequireQueryField: true})
		assert.Error(t, err)
	})
}

func TestComposeSelectionQuery(t *testing.T) {
	dir := writeSchema(t)
	res := compose(t, s2dm.Request{Paths: []string{dir}, SelectionQuery: "query { vehicle { speed } }"})

	vehicle, ok := res.Schema.Types["Vehicle"].(*ast.ObjectTypeDefinition)
	require.True(t, ok)
	assert.Equal(t, []string{"speed"}, vehicle.Fields.Names())
	assert.Equal(t, []string{"vehicle"}, res.Schema.RootType("query").Fields.Names())
	assert.NotContains(t, res.Schema.Types, "Cabin")
	assert.Contains(t, res.SDL, "directive @range(min: Float, max: Float) on FIELD_DEFINITION")
	assert.NotContains(t, res.SDL, "directive @noDuplicates")

	t.Run("syntax error", func(t *testing.T) {
		_, err := s2dm.NewComposer().Compose(context.Background(), s2dm.Request{Paths: []string{dir}, SelectionQuery: "query { vehicle { "})
		assert.ErrorContains(t, err, "selection query")
	})
}

func TestComposeTracesStages(t *testing.T) {
	mock := mocktracer.New()
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(mock)
	t.Cleanup(func() { opentracing.SetGlobalTracer(prev) })

	c := s2dm.NewComposer()
	c.Tracer = s2dmtracing.Tracer{}
	_, err := c.Compose(context.Background(), s2dm.Request{Paths: []string{writeSchema(t)}, RootType: "Vehicle"})
	require.NoError(t, err)

	var stages []string
	for _, span := range mock.FinishedSpans() {
		stages = append(stages, span.OperationName)
	}
	assert.Equal(t, []string{"s2dm.load", "s2dm.parse", "s2dm.filter", "s2dm.print"}, stages)

	t.Run("failed stage is marked", func(t *testing.T) {
		mock.Reset()
		_, err := c.Compose(context.Background(), s2dm.Request{Paths: []string{filepath.Join(t.TempDir(), "missing.graphql")}})
		require.Error(t, err)
		spans := mock.FinishedSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, "s2dm.load", spans[0].OperationName)
		assert.Equal(t, true, spans[0].Tag("error"))
	})

	t.Run("cancelled print stage fails the compose", func(t *testing.T) {
		mock.Reset()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := c.Compose(ctx, s2dm.Request{Paths: []string{writeSchema(t)}})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, res)
		spans := mock.FinishedSpans()
		require.NotEmpty(t, spans)
		last := spans[len(spans)-1]
		assert.Equal(t, "s2dm.print", last.OperationName)
		assert.Equal(t, true, last.Tag("error"))
	})
}

func TestTempFile(t *testing.T) {
	dir := t.TempDir()
	path, err := s2dm.NewComposer().TempFile(dir, "type Query { a: Int }\n")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".graphql", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "type Query { a: Int }\n", string(data))
}
