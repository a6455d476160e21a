package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/field"
	"github.com/covesa/s2dm/internal/schema"
)

const modifiers = `
directive @noDuplicates on FIELD_DEFINITION
directive @cardinality(min: Int, max: Int) on FIELD_DEFINITION
directive @range(min: Float, max: Float) on FIELD_DEFINITION
directive @metadata(comment: String, vssType: String) on FIELD_DEFINITION | OBJECT

enum SpeedUnit { KILOMETER_PER_HOUR METER_PER_SECOND }

type Modifiers {
  defaultScalar: Int
  nonNull: Int!
  list: [Int]
  nonNullList: [Int]!
  listNonNull: [Int!]
  nonNullListNonNull: [Int!]!
  set: [Int] @noDuplicates
  setNonNull: [Int!] @noDuplicates
  nonNullSet: [Int]! @noDuplicates
  nested: [[Int!]]
  bounded: [Int] @cardinality(min: 2, max: 4)
  speed(unit: SpeedUnit = KILOMETER_PER_HOUR): Float @range(min: 0, max: 250.5) @metadata(comment: "at the wheels", vssType: "sensor")
  label(lang: String = "en"): String
  open: Boolean @range(max: 1)
}

type Query { m: Modifiers }
`

func fields(t *testing.T) ast.FieldsDefinition {
	t.Helper()
	s, err := schema.Parse(modifiers)
	require.NoError(t, err)
	return s.Types["Modifiers"].(*ast.ObjectTypeDefinition).Fields
}

func TestCases(t *testing.T) {
	fs := fields(t)

	tests := []struct {
		description string
		field       string
		basic       field.Case
		extended    field.Case
		cardinality field.Cardinality
	}{
		{"default", "defaultScalar", field.Default, field.Default, field.Cardinality{Min: 0, Max: 1}},
		{"non null", "nonNull", field.NonNull, field.NonNull, field.Cardinality{Min: 1, Max: 1}},
		{"list", "list", field.List, field.List, field.Cardinality{Min: 0, Max: field.Unbounded}},
		{"non null list", "nonNullList", field.NonNullList, field.NonNullList, field.Cardinality{Min: 1, Max: field.Unbounded}},
		{"list of non null", "listNonNull", field.ListNonNull, field.ListNonNull, field.Cardinality{Min: 0, Max: field.Unbounded}},
		{"non null list of non null", "nonNullListNonNull", field.NonNullListNonNull, field.NonNullListNonNull, field.Cardinality{Min: 1, Max: field.Unbounded}},
		{"set", "set", field.List, field.Set, field.Cardinality{Min: 0, Max: field.Unbounded}},
		{"set of non null", "setNonNull", field.ListNonNull, field.SetNonNull, field.Cardinality{Min: 0, Max: field.Unbounded}},
		{"no duplicates on a non null list keeps the case", "nonNullSet", field.NonNullList, field.NonNullList, field.Cardinality{Min: 1, Max: field.Unbounded}},
		{"nested lists use the outer list", "nested", field.List, field.List, field.Cardinality{Min: 0, Max: field.Unbounded}},
		{"cardinality directive overrides", "bounded", field.List, field.List, field.Cardinality{Min: 2, Max: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			f := fs.Get(tt.field)
			require.NotNil(t, f)
			assert.Equal(t, tt.basic, field.CaseOf(f.Type))
			assert.Equal(t, tt.extended, field.ExtendedCaseOf(f))
			assert.Equal(t, tt.cardinality, field.CardinalityOf(f))
		})
	}
}

func TestCaseNames(t *testing.T) {
	assert.Equal(t, "DEFAULT", field.Default.String())
	assert.Equal(t, "SET_NON_NULL", field.SetNonNull.String())
	assert.NotEmpty(t, field.NonNullListNonNull.Description())
	assert.False(t, field.NonNull.IsList())
	assert.True(t, field.Set.IsList())
}

func TestRange(t *testing.T) {
	fs := fields(t)

	min, max := field.Range(fs.Get("speed"))
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, field.Bound{Text: "0", Value: 0, Integer: true}, *min)
	assert.Equal(t, field.Bound{Text: "250.5", Value: 250.5}, *max)

	min, max = field.Range(fs.Get("open"))
	assert.Nil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, "1", max.Text)

	min, max = field.Range(fs.Get("list"))
	assert.Nil(t, min)
	assert.Nil(t, max)
}

func TestMetadataAndDefaults(t *testing.T) {
	fs := fields(t)
	speed := fs.Get("speed")

	assert.Equal(t, field.Metadata{Comment: "at the wheels", VSSType: "sensor"}, field.MetadataOf(speed.Directives))
	assert.Equal(t, field.Metadata{}, field.MetadataOf(fs.Get("list").Directives))

	unit, ok := field.ArgumentDefault(speed, "unit")
	assert.True(t, ok)
	assert.Equal(t, "KILOMETER_PER_HOUR", unit)

	lang, ok := field.ArgumentDefault(fs.Get("label"), "lang")
	assert.True(t, ok)
	assert.Equal(t, "en", lang, "string defaults are unquoted")

	_, ok = field.ArgumentDefault(fs.Get("list"), "unit")
	assert.False(t, ok)

	assert.Equal(t, map[string]interface{}{"min": int64(2), "max": int64(4)}, field.Arguments(fs.Get("bounded").Directives, field.CardinalityDirective))
	assert.Nil(t, field.Arguments(fs.Get("list").Directives, field.CardinalityDirective))
}
