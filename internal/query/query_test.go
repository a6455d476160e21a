package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covesa/s2dm/ast"
)

func FuzzParseQuery(f *testing.F) {
	f.Add(`{ vehicle { speed } }`)
	f.Fuzz(func(t *testing.T, queryStr string) {
		Parse(queryStr)
	})
}

func TestParse(t *testing.T) {
	doc, err := Parse(`
# comment
mutation Reset { reset }

query Cabin($withDoors: Boolean = true) {
  vehicle(id: "V1") {
    speed
    alias: averageSpeed
    body @include(if: $withDoors) {
      ...Doors
    }
    ... on Vehicle { weight }
  }
}

fragment Doors on Vehicle_Body { doorCount }
`)
	require.Nil(t, err)
	require.Len(t, doc.Operations, 2)
	require.Len(t, doc.Fragments, 1)

	assert.Equal(t, Mutation, doc.Operations[0].Type)

	op := FirstQuery(doc)
	require.NotNil(t, op)
	assert.Equal(t, "Cabin", op.Name.Name)
	require.Len(t, op.Vars, 1)
	assert.Equal(t, "withDoors", op.Vars[0].Name.Name)

	require.Len(t, op.Selections, 1)
	vehicle := op.Selections[0].(*ast.Field)
	assert.Equal(t, "vehicle", vehicle.Name.Name)
	id, ok := vehicle.Arguments.Get("id")
	require.True(t, ok)
	assert.Equal(t, "V1", id.Deserialize(nil))

	require.Len(t, vehicle.SelectionSet, 4)
	alias := vehicle.SelectionSet[1].(*ast.Field)
	assert.Equal(t, "alias", alias.Alias.Name)
	assert.Equal(t, "averageSpeed", alias.Name.Name)

	body := vehicle.SelectionSet[2].(*ast.Field)
	assert.True(t, body.Directives.Has("include"))
	spread := body.SelectionSet[0].(*ast.FragmentSpread)
	assert.Equal(t, "Doors", spread.Name.Name)

	inline := vehicle.SelectionSet[3].(*ast.InlineFragment)
	assert.Equal(t, "Vehicle", inline.On.Name)

	assert.Equal(t, "Vehicle_Body", doc.Fragments.Get("Doors").On.Name)
}

func TestParseShorthandQuery(t *testing.T) {
	doc, err := Parse(`{ ping }`)
	require.Nil(t, err)
	op := FirstQuery(doc)
	require.NotNil(t, op)
	assert.Equal(t, Query, op.Type)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		description string
		query       string
		message     string
	}{
		{
			description: "type definition in a query document",
			query:       `type Vehicle { speed: Float }`,
			message:     `unexpected "type", expecting "query" or "fragment"`,
		},
		{
			description: "unclosed selection set",
			query:       `{ vehicle { speed }`,
			message:     `expecting Ident`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			_, err := Parse(tt.query)
			require.NotNil(t, err)
			assert.Contains(t, err.Message, tt.message)
		})
	}
}
