package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
)

func TestValidateEntryPointName(t *testing.T) {
	s := New()
	prev := map[string]errors.Location{
		"query":    {Line: 1, Column: 6},
		"mutation": {Line: 2, Column: 6},
	}

	testCases := []struct {
		description string
		entryPoint  string
		err         string
	}{
		{description: "new operation", entryPoint: "subscription"},
		{description: "unknown operation", entryPoint: "foo", err: `unexpected "foo", expected "query", "mutation" or "subscription"`},
		{description: "repeated operation", entryPoint: "query", err: `"query" type provided more than once`},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			err := validateEntryPointName(s, ast.Ident{Name: test.entryPoint, Loc: errors.Location{Line: 3, Column: 2}}, prev)
			if test.err == "" {
				assert.Nil(t, err)
				return
			}
			if assert.NotNil(t, err) {
				assert.Equal(t, test.err, err.Message)
			}
		})
	}
}

func TestValidateTypeName(t *testing.T) {
	s := New()
	s.Types["Foo"] = &ast.ObjectTypeDefinition{Name: "Foo", Loc: errors.Location{Line: 1, Column: 6}}

	testCases := []struct {
		description string
		namedType   ast.NamedType
		err         string
		locations   []errors.Location
	}{
		{
			description: "new type",
			namedType:   &ast.ObjectTypeDefinition{Name: "Baz"},
		},
		{
			description: "duplicate type",
			namedType:   &ast.ScalarTypeDefinition{Name: "Foo", Loc: errors.Location{Line: 4, Column: 8}},
			err:         `"Foo" defined more than once`,
			locations:   []errors.Location{{Line: 1, Column: 6}, {Line: 4, Column: 8}},
		},
		{
			description: "built-in type",
			namedType:   &ast.ScalarTypeDefinition{Name: "Boolean", Loc: errors.Location{Line: 2, Column: 8}},
			err:         `built-in type "Boolean" redefined`,
			locations:   []errors.Location{{Line: 2, Column: 8}},
		},
		{
			description: "introspection prefix",
			namedType:   &ast.EnumTypeDefinition{Name: "__Kind"},
			err:         `"__Kind" must not begin with "__", reserved for introspection types`,
			locations:   []errors.Location{{}},
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			err := validateTypeName(s, test.namedType)
			if test.err == "" {
				assert.Nil(t, err)
				return
			}
			if assert.NotNil(t, err) {
				assert.Equal(t, test.err, err.Message)
				assert.Equal(t, test.locations, err.Locations)
			}
		})
	}
}

func TestValidateDirectiveName(t *testing.T) {
	s := New()
	s.Directives["range"] = &ast.DirectiveDefinition{Name: "range", Loc: errors.Location{Line: 1, Column: 12}}

	testCases := []struct {
		description string
		directive   string
		err         string
	}{
		{description: "new directive", directive: "cardinality"},
		{description: "duplicate directive", directive: "range", err: `"range" defined more than once`},
		{description: "built-in directive", directive: "deprecated", err: `built-in directive "deprecated" redefined`},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			err := validateDirectiveName(s, &ast.DirectiveDefinition{Name: test.directive})
			if test.err == "" {
				assert.Nil(t, err)
				return
			}
			if assert.NotNil(t, err) {
				assert.Equal(t, test.err, err.Message)
			}
		})
	}
}
