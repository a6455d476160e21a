package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/schema"
	"github.com/covesa/s2dm/log"
)

const directives = `
directive @range(min: Float, max: Float) on FIELD_DEFINITION
directive @instanceTag on OBJECT
directive @reference(uri: String, source: String) on OBJECT | INTERFACE | UNION | ENUM | SCALAR | INPUT_OBJECT
directive @tag(name: String!) repeatable on OBJECT | FIELD_DEFINITION | ENUM_VALUE
`

func TestParse(t *testing.T) {
	tests := []struct {
		description string
		sdl         string
		check       func(t *testing.T, s *ast.Schema)
	}{{
		description: "parses interface definition",
		sdl:         "interface Greeting { message: String! }",
		check: func(t *testing.T, s *ast.Schema) {
			iface, ok := s.Types["Greeting"].(*ast.InterfaceTypeDefinition)
			require.True(t, ok)
			require.Len(t, iface.Fields, 1)
			assert.Equal(t, "String!", iface.Fields[0].Type.String())
		},
	}, {
		description: "parses type with description string",
		sdl: `
		"Single line description."
		type Type {
			field: String
		}`,
		check: func(t *testing.T, s *ast.Schema) {
			assert.Equal(t, "Single line description.", s.Types["Type"].Description())
		},
	}, {
		description: "parses type with multi-line description and ignores comments",
		sdl: `
		"""
		Multi-line description with ignored comments.
		"""
		# This comment should be ignored.
		type Type {
			field: String
		}`,
		check: func(t *testing.T, s *ast.Schema) {
			assert.Equal(t, "Multi-line description with ignored comments.", s.Types["Type"].Description())
		},
	}, {
		description: "keeps custom directive applications",
		sdl: directives + `
		type Row @instanceTag { row: String }
		type Vehicle @reference(source: "a.graphql") {
			speed: Float @range(min: 0, max: 250.5)
		}`,
		check: func(t *testing.T, s *ast.Schema) {
			vehicle := s.Types["Vehicle"].(*ast.ObjectTypeDefinition)
			require.True(t, vehicle.Directives.Has("reference"))
			source, ok := vehicle.Directives.Get("reference").Arguments.Get("source")
			require.True(t, ok)
			assert.Equal(t, "a.graphql", source.Deserialize(nil))

			rng := vehicle.Fields.Get("speed").Directives.Get("range")
			require.NotNil(t, rng)
			assert.Len(t, rng.Arguments, 2, "defaults are never injected")
			assert.Equal(t, float64(250.5), rng.Arguments.MustGet("max").Deserialize(nil))
			assert.Equal(t, int64(0), rng.Arguments.MustGet("min").Deserialize(nil))

			assert.True(t, s.Types["Row"].(*ast.ObjectTypeDefinition).Directives.Has("instanceTag"))
		},
	}, {
		description: "repeatable directive may repeat",
		sdl: directives + `
		type Vehicle @tag(name: "a") @tag(name: "b") { id: ID }`,
		check: func(t *testing.T, s *ast.Schema) {
			assert.Len(t, s.Types["Vehicle"].(*ast.ObjectTypeDefinition).Directives, 2)
		},
	}, {
		description: "implements several interfaces",
		sdl: `
		interface A { a: Int }
		interface B { b: Int }
		type C implements & A & B { a: Int b: Int }`,
		check: func(t *testing.T, s *ast.Schema) {
			c := s.Types["C"].(*ast.ObjectTypeDefinition)
			assert.Equal(t, []string{"A", "B"}, c.InterfaceNames)
			require.Len(t, c.Interfaces, 2)
			assert.Equal(t, []*ast.ObjectTypeDefinition{c}, s.Types["A"].(*ast.InterfaceTypeDefinition).PossibleTypes)
		},
	}, {
		description: "union members are resolved",
		sdl: `
		type A { a: Int }
		type B { b: Int }
		union U = | A | B`,
		check: func(t *testing.T, s *ast.Schema) {
			u := s.Types["U"].(*ast.Union)
			require.Len(t, u.UnionMemberTypes, 2)
			assert.Equal(t, "B", u.UnionMemberTypes[1].Name)
		},
	}, {
		description: "default root operation names",
		sdl: `
		type Query { a: Int }
		type Mutation { b: Int }`,
		check: func(t *testing.T, s *ast.Schema) {
			assert.Equal(t, "Query", s.RootOperationTypes["query"].TypeName())
			assert.Equal(t, "Mutation", s.RootOperationTypes["mutation"].TypeName())
			assert.False(t, s.Present)
		},
	}, {
		description: "schema block renames roots",
		sdl: `
		schema { query: Root }
		type Root { a: Int }`,
		check: func(t *testing.T, s *ast.Schema) {
			assert.True(t, s.Present)
			assert.Equal(t, "Root", s.RootOperationTypes["query"].TypeName())
		},
	}, {
		description: "extensions are merged",
		sdl: directives + `
		type Vehicle { speed: Float }
		extend type Vehicle @reference(source: "x") { weight: Float }
		enum Color { RED }
		extend enum Color { GREEN }`,
		check: func(t *testing.T, s *ast.Schema) {
			vehicle := s.Types["Vehicle"].(*ast.ObjectTypeDefinition)
			assert.Equal(t, []string{"speed", "weight"}, vehicle.Fields.Names())
			assert.True(t, vehicle.Directives.Has("reference"))
			assert.Equal(t, []string{"RED", "GREEN"}, s.Types["Color"].(*ast.EnumTypeDefinition).Values())
			assert.Len(t, s.Extensions, 2)
		},
	}, {
		description: "bodiless types",
		sdl: `
		type Empty
		input Nothing
		enum None`,
		check: func(t *testing.T, s *ast.Schema) {
			assert.Empty(t, s.Types["Empty"].(*ast.ObjectTypeDefinition).Fields)
			assert.Empty(t, s.Types["Nothing"].(*ast.InputObject).Values)
		},
	}, {
		description: "arguments with defaults and descriptions",
		sdl: `
		type Query {
			speed("unit to report" unit: String = "KILOMETER_PER_HOUR", limit: [Int!] = [1, 2]): Float
		}`,
		check: func(t *testing.T, s *ast.Schema) {
			f := s.Types["Query"].(*ast.ObjectTypeDefinition).Fields.Get("speed")
			require.Len(t, f.Arguments, 2)
			assert.Equal(t, "unit to report", f.Arguments[0].Desc)
			assert.Equal(t, "KILOMETER_PER_HOUR", f.Arguments[0].Default.Deserialize(nil))
			assert.Equal(t, "[1, 2]", f.Arguments[1].Default.String())
			assert.Equal(t, "[Int!]", f.Arguments[1].Type.String())
		},
	}}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			s, err := schema.Parse(test.sdl)
			require.NoError(t, err)
			test.check(t, s)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		description string
		sdl         string
		message     string
		lenientOK   bool
	}{
		{description: "syntax error", sdl: "type Vehicle {", message: "syntax error"},
		{description: "duplicate type", sdl: "type A { a: Int }\ntype A { b: Int }", message: `"A" defined more than once`},
		{description: "built-in redefined", sdl: "scalar String", message: `built-in type "String" redefined`},
		{description: "reserved prefix", sdl: "type __Thing { a: Int }", message: `must not begin with "__"`},
		{description: "unknown type", sdl: "type A { b: B }", message: `Unknown type "B".`, lenientOK: true},
		{description: "unknown interface", sdl: "type A implements B { a: Int }", message: `interface "B" not found`, lenientOK: true},
		{description: "unknown union member", sdl: "union U = A", message: `object type "A" not found`, lenientOK: true},
		{description: "unknown directive", sdl: "type A @nope { a: Int }", message: `directive "nope" not found`},
		{description: "unknown directive argument", sdl: directives + `type A @reference(file: "x") { a: Int }`, message: `invalid argument "file" for directive "reference"`},
		{description: "directive at wrong location", sdl: directives + `type A @range(min: 1) { a: Int }`, message: `Directive "range" may not be used on OBJECT.`},
		{description: "non repeatable directive repeated", sdl: directives + `type A @instanceTag @instanceTag { a: Int }`, message: `can only be used once`},
		{description: "missing required directive argument", sdl: directives + `type A @tag { a: Int }`, message: `argument "name" of type String! is required`},
		{description: "duplicate field", sdl: "type A { a: Int a: Float }", message: `field "a" defined more than once in "A"`},
		{description: "extend unknown type", sdl: "extend type A { a: Int }", message: `trying to extend unknown type "A"`},
		{description: "extend with another kind", sdl: "type A { a: Int }\nextend enum A { B }", message: `trying to extend OBJECT "A" with ENUM`},
		{description: "root is not an object", sdl: "schema { query: Q }\nscalar Q", message: `root operation "query" type "Q" is not an object`},
		{description: "unknown root", sdl: "schema { query: Q }", message: `root operation "query" type "Q" not found`},
		{description: "bad root operation", sdl: "schema { reading: Q }\ntype Q { a: Int }", message: `expected "query", "mutation" or "subscription"`},
		{description: "reserved enum value", sdl: "enum E { true }", message: `enum value "true" is reserved`},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			_, err := schema.Parse(test.sdl)
			require.Error(t, err)

			var perr *errors.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Contains(t, err.Error(), test.message)

			_, err = schema.Parse(test.sdl, schema.Lenient())
			if test.lenientOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseErrorLocations(t *testing.T) {
	_, err := schema.Parse("type A { a: Int }\n\ntype A { b: Int }")
	var perr *errors.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, []errors.Location{{Line: 1, Column: 6}, {Line: 3, Column: 6}}, perr.Err.Locations)
}

func TestLenientKeepsUnknownNames(t *testing.T) {
	s, err := schema.Parse("type A { b: [B!] c: Int }", schema.Lenient())
	require.NoError(t, err)

	a := s.Types["A"].(*ast.ObjectTypeDefinition)
	assert.Equal(t, "[B!]", a.Fields.Get("b").Type.String())
	_, isPlaceholder := ast.Unwrap(a.Fields.Get("b").Type).(*ast.TypeName)
	assert.True(t, isPlaceholder)
	assert.Equal(t, "B", ast.NamedTypeName(a.Fields.Get("b").Type))
}

func TestEnsureQuery(t *testing.T) {
	t.Run("synthesizes a placeholder", func(t *testing.T) {
		s, err := schema.Parse("type Vehicle { speed: Float }")
		require.NoError(t, err)
		require.Nil(t, s.RootType("query"))

		s = schema.EnsureQuery(s, log.Discard())
		query := s.RootType("query")
		require.NotNil(t, query)
		assert.Equal(t, "Query", query.Name)
		assert.Equal(t, []string{"ping"}, query.Fields.Names())
		assert.Equal(t, "String", query.Fields[0].Type.String())
		assert.True(t, schema.IsSynthesizedQuery(query))
	})

	t.Run("keeps an existing query", func(t *testing.T) {
		s, err := schema.Parse("type Query { vehicle: Float }")
		require.NoError(t, err)
		query := s.RootType("query")

		s = schema.EnsureQuery(s, log.Discard())
		assert.Same(t, query, s.RootType("query"))
		assert.False(t, schema.IsSynthesizedQuery(query))
	})

	t.Run("binds an unbound Query object", func(t *testing.T) {
		s, err := schema.Parse("schema { mutation: M }\ntype M { a: Int }\ntype Query { b: Int }")
		require.NoError(t, err)

		s = schema.EnsureQuery(s, nil)
		assert.Equal(t, []string{"b"}, s.RootType("query").Fields.Names())
	})
}

func TestBuiltinsAreNotShared(t *testing.T) {
	a, err := schema.Parse("type A { a: String }")
	require.NoError(t, err)
	b, err := schema.Parse("type B { b: String }")
	require.NoError(t, err)

	assert.NotSame(t, a.Types["String"], b.Types["String"])
	assert.True(t, schema.IsBuiltinDirective("deprecated"))
	assert.False(t, schema.IsBuiltinDirective("range"))
}
