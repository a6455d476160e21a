package printer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	gqlast "github.com/vektah/gqlparser/v2/ast"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/printer"
	"github.com/covesa/s2dm/internal/schema"
)

const fixture = `
directive @range(min: Float, max: Float) on FIELD_DEFINITION
directive @instanceTag on OBJECT
directive @reference(uri: String, source: String) on OBJECT | INTERFACE | UNION | ENUM | SCALAR | INPUT_OBJECT
"Free form label."
directive @tag(name: String!) repeatable on FIELD_DEFINITION | ENUM_VALUE | ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION

"""
Seconds since epoch.
"""
scalar Timestamp @reference(uri: "http://example.com/ts")

interface Node { id: ID! }

"A car"
type Vehicle implements Node @reference(uri: "http://example.com") {
  id: ID!
  """
  Speed.
  Measured at the wheels.
  """
  speed(unit: SpeedUnit = KMH @tag(name: "u")): Float @range(min: 0, max: 250.5) @tag(name: "a") @tag(name: "b")
  doors(
    "how many"
    first: Int = 10
  ): [Door!]!
  seen: Timestamp
}

type Door implements Node @instanceTag {
  id: ID!
  open: Boolean
}

enum SpeedUnit {
  KMH @tag(name: "k")
  MPH
}

union Thing @reference(source: "x.graphql") = Vehicle | Door

input Filter {
  min: Float = 0 @tag(name: "f")
  tags: [String] = ["a", "b"]
}

type Query { vehicle(filter: Filter): Vehicle }
`

func TestPrint(t *testing.T) {
	s, err := schema.Parse(`
directive @range(min: Float, max: Float) on FIELD_DEFINITION
"A car"
type Vehicle { speed: Float @range(min: 0, max: 250) }
type Query { vehicle: Vehicle }
`)
	require.NoError(t, err)

	assert.Equal(t, `directive @range(min: Float, max: Float) on FIELD_DEFINITION

"""A car"""
type Vehicle {
  speed: Float @range(min: 0, max: 250)
}

type Query {
  vehicle: Vehicle
}
`, printer.Print(s))
}

func TestPrintPlacesDirectives(t *testing.T) {
	s, err := schema.Parse(fixture)
	require.NoError(t, err)
	out := printer.Print(s)

	tests := []struct {
		description string
		want        string
	}{
		{"directive declaration", `directive @range(min: Float, max: Float) on FIELD_DEFINITION`},
		{"repeatable declaration", `directive @tag(name: String!) repeatable on FIELD_DEFINITION | ENUM_VALUE | ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION`},
		{"type header after implements", `type Vehicle implements Node @reference(uri: "http://example.com") {`},
		{"instance tag after implements", `type Door implements Node @instanceTag {`},
		{"field after the type", `  speed(unit: SpeedUnit = KMH @tag(name: "u")): Float @range(min: 0, max: 250.5) @tag(name: "a") @tag(name: "b")`},
		{"trailing on scalars", `scalar Timestamp @reference(uri: "http://example.com/ts")`},
		{"before union members", `union Thing @reference(source: "x.graphql") = Vehicle | Door`},
		{"after enum values", `  KMH @tag(name: "k")`},
		{"after input values", `  min: Float = 0 @tag(name: "f")`},
		{"list default", `  tags: [String] = ["a", "b"]`},
		{"multiline argument list", "  doors(\n    \"\"\"how many\"\"\"\n    first: Int = 10\n  ): [Door!]!"},
		{"multiline description", "  \"\"\"\n  Speed.\n  Measured at the wheels.\n  \"\"\"\n  speed"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestPrintIsFixedPoint(t *testing.T) {
	tests := []struct {
		description string
		sdl         string
	}{
		{"full fixture", fixture},
		{"schema block with custom root", "\"Root doc.\"\nschema { query: Root }\ntype Root { a: Int }"},
		{"description ending in a quote", `"Say \"hi\"" type Query { a: Int }`},
		{"description with triple quotes", `"""Use \""" here""" type Query { a: Int }`},
		{"trailing newline", `"a\n" type A { x: Int } type Query { a: A }`},
		{"leading newline", `"\na" type A { x: Int } type Query { a: A }`},
		{"shared indent", `" a\n b" type A { x: Int } type Query { a: A }`},
		{"crlf", `"a\r\nb" type A { x: Int } type Query { a: A }`},
		{"carriage return", `"a\rb" type A { x: Int } type Query { a: A }`},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			s, err := schema.Parse(tt.sdl)
			require.NoError(t, err)
			first := printer.Print(s)

			again, err := schema.Parse(first)
			require.NoError(t, err, first)
			assert.Equal(t, first, printer.Print(again))

			_, err = gqlparser.LoadSchema(&gqlast.Source{Name: "printed.graphql", Input: first})
			assert.NoError(t, err, first)
		})
	}
}

func TestPrintKeepsDescriptions(t *testing.T) {
	tests := []struct {
		description string
		value       string
		block       bool
	}{
		{"single line", "A door.", true},
		{"multi line", "A door.\n\nIt opens.", true},
		{"indented continuation", "Levels:\n  - low\n  - high", true},
		{"trailing newline", "a\n", false},
		{"leading newline", "\na", false},
		{"shared indent", " a\n b", false},
		{"crlf", "a\r\nb", false},
		{"carriage return", "a\rb", false},
		{"blank only", "  ", false},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			s, err := schema.Parse(ast.Quote(tt.value) + " type A { x: Int } type Query { a: A }")
			require.NoError(t, err)
			out := printer.Print(s)
			assert.Equal(t, tt.block, strings.Contains(out, `"""`), out)

			again, err := schema.Parse(out)
			require.NoError(t, err, out)
			assert.Equal(t, tt.value, again.Types["A"].(*ast.ObjectTypeDefinition).Desc)
		})
	}
}

func TestPrintSchemaBlock(t *testing.T) {
	s, err := schema.Parse("schema { query: Root }\ntype Root { a: Int }")
	require.NoError(t, err)
	assert.Equal(t, "schema {\n  query: Root\n}\n\ntype Root {\n  a: Int\n}\n", printer.Print(s))

	s, err = schema.Parse("schema { query: Query }\ntype Query { a: Int }")
	require.NoError(t, err)
	assert.Equal(t, "type Query {\n  a: Int\n}\n", printer.Print(s), "default root names need no schema block")
}

func TestPrintSynthesizedQueryFirst(t *testing.T) {
	s, err := schema.Parse("type A { a: Int }")
	require.NoError(t, err)
	schema.EnsureQuery(s, nil)

	assert.Equal(t, "type Query {\n  ping: String\n}\n\ntype A {\n  a: Int\n}\n", printer.Print(s))
}

func TestWithProvenance(t *testing.T) {
	s, err := schema.Parse(fixture)
	require.NoError(t, err)
	schema.EnsureQuery(s, nil)

	provenance := map[string]string{
		"Vehicle":   "a.graphql",
		"Door":      "a.graphql",
		"SpeedUnit": "S2DM Spec",
		"Filter":    "b.graphql",
		"Thing":     "b.graphql",
	}
	out := printer.Print(s, printer.WithProvenance(provenance))

	assert.Contains(t, out, `type Vehicle implements Node @reference(uri: "http://example.com") {`, "existing @reference is untouched")
	assert.Contains(t, out, `union Thing @reference(source: "x.graphql") = Vehicle | Door`)
	assert.Contains(t, out, `type Door implements Node @instanceTag @reference(source: "a.graphql") {`)
	assert.Contains(t, out, `enum SpeedUnit @reference(source: "S2DM Spec") {`)
	assert.Contains(t, out, `input Filter @reference(source: "b.graphql") {`)
	assert.Contains(t, out, "interface Node {", "types without provenance are not annotated")
	assert.Contains(t, out, "type Query {")

	assert.NotContains(t, printer.Print(s), `source: "a.graphql"`, "the graph itself is not modified")

	again, err := schema.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, out, printer.Print(again, printer.WithProvenance(provenance)))
}

func TestDirectives(t *testing.T) {
	s, err := schema.Parse(fixture)
	require.NoError(t, err)

	m := printer.Directives(s, printer.WithProvenance(map[string]string{"Door": "a.graphql"}))
	assert.Equal(t, []string{`@instanceTag`, `@reference(source: "a.graphql")`}, m["Door"])
	assert.Equal(t, []string{`@range(min: 0, max: 250.5)`, `@tag(name: "a")`, `@tag(name: "b")`}, m["Vehicle.speed"])
	assert.Equal(t, []string{`@tag(name: "k")`}, m["SpeedUnit.KMH"])
	assert.Equal(t, []string{`@tag(name: "f")`}, m["Filter.min"])
	assert.NotContains(t, m, "Vehicle.id")
	assert.NotContains(t, m, "Node")
	assert.Contains(t, m.Keys(), "Thing")
}
