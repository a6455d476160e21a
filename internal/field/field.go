// Package field classifies field type modifiers and reads the field level
// directives of the s2dm vocabulary.
package field

import (
	"text/scanner"

	"github.com/covesa/s2dm/ast"
)

// Case is the combination of list and non-null modifiers on a field type.
type Case int

const (
	Default Case = iota
	NonNull
	List
	NonNullList
	ListNonNull
	NonNullListNonNull
	Set
	SetNonNull
)

var cases = [...]struct {
	name, description string
}{
	Default:            {"DEFAULT", "A single value or null."},
	NonNull:            {"NON_NULL", "A single value."},
	List:               {"LIST", "A list of values that may be null, the list itself may be null."},
	NonNullList:        {"NON_NULL_LIST", "A non-null list of values that may be null."},
	ListNonNull:        {"LIST_NON_NULL", "A list of non-null values, the list itself may be null."},
	NonNullListNonNull: {"NON_NULL_LIST_NON_NULL", "A non-null list of non-null values."},
	Set:                {"SET", "A list of unique values that may be null."},
	SetNonNull:         {"SET_NON_NULL", "A list of unique non-null values."},
}

func (c Case) String() string { return cases[c].name }

// Description says what values a field of this case holds.
func (c Case) Description() string { return cases[c].description }

// IsList reports whether values of this case are collections.
func (c Case) IsList() bool { return c >= List }

// CaseOf classifies t by its outer wrapper and the wrapper of the list
// element. Nested lists are classified by their outermost list.
func CaseOf(t ast.Type) Case {
	outerNonNull := false
	if nn, ok := t.(*ast.NonNull); ok {
		outerNonNull = true
		t = nn.OfType
	}
	list, ok := t.(*ast.List)
	if !ok {
		if outerNonNull {
			return NonNull
		}
		return Default
	}
	_, innerNonNull := list.OfType.(*ast.NonNull)

	switch {
	case outerNonNull && innerNonNull:
		return NonNullListNonNull
	case outerNonNull:
		return NonNullList
	case innerNonNull:
		return ListNonNull
	}
	return List
}

// NoDuplicatesDirective marks a list field whose values are unique.
const NoDuplicatesDirective = "noDuplicates"

// ExtendedCaseOf is CaseOf with @noDuplicates turning LIST into SET and
// LIST_NON_NULL into SET_NON_NULL.
func ExtendedCaseOf(f *ast.FieldDefinition) Case {
	c := CaseOf(f.Type)
	if !f.Directives.Has(NoDuplicatesDirective) {
		return c
	}
	switch c {
	case List:
		return Set
	case ListNonNull:
		return SetNonNull
	}
	return c
}

// Unbounded is the Max of a cardinality without an upper limit.
const Unbounded = -1

// Cardinality is the number of values a field holds.
type Cardinality struct {
	Min int
	Max int
}

// CardinalityOf derives the bounds from the type modifiers: one value is
// required when the outer type is non-null, at most one is allowed unless
// the type is a list. @cardinality(min, max) overrides either bound.
func CardinalityOf(f *ast.FieldDefinition) Cardinality {
	c := Cardinality{Max: 1}
	if _, ok := f.Type.(*ast.NonNull); ok {
		c.Min = 1
	}
	if CaseOf(f.Type).IsList() {
		c.Max = Unbounded
	}

	args := Arguments(f.Directives, CardinalityDirective)
	if min, ok := args["min"].(int64); ok {
		c.Min = int(min)
	}
	if max, ok := args["max"].(int64); ok {
		c.Max = int(max)
	}
	return c
}

const (
	RangeDirective       = "range"
	CardinalityDirective = "cardinality"
	MetadataDirective    = "metadata"
)

// Arguments returns the literal arguments of the directive named name as Go
// values (int64, float64, string, bool), or nil when it is not applied.
func Arguments(dirs ast.DirectiveList, name string) map[string]interface{} {
	d := dirs.Get(name)
	if d == nil {
		return nil
	}
	args := make(map[string]interface{}, len(d.Arguments))
	for _, a := range d.Arguments {
		if _, ok := a.Value.(*ast.NullValue); ok {
			continue
		}
		args[a.Name.Name] = a.Value.Deserialize(nil)
	}
	return args
}

// Bound is one end of a @range.
type Bound struct {
	// Text is the literal as written.
	Text  string
	Value float64
	// Integer reports whether the literal was an Int.
	Integer bool
}

// Range returns the @range bounds of f; a nil bound was not given.
func Range(f *ast.FieldDefinition) (min, max *Bound) {
	d := f.Directives.Get(RangeDirective)
	if d == nil {
		return nil, nil
	}
	if v, ok := d.Arguments.Get("min"); ok {
		min = bound(v)
	}
	if v, ok := d.Arguments.Get("max"); ok {
		max = bound(v)
	}
	return min, max
}

func bound(v ast.Value) *Bound {
	p, ok := v.(*ast.PrimitiveValue)
	if !ok || (p.Type != scanner.Int && p.Type != scanner.Float) {
		return nil
	}
	b := &Bound{Text: p.Text, Integer: p.Type == scanner.Int}
	switch n := p.Deserialize(nil).(type) {
	case int64:
		b.Value = float64(n)
	case float64:
		b.Value = n
	}
	return b
}

// Metadata holds the @metadata arguments.
type Metadata struct {
	Comment string
	VSSType string
}

// MetadataOf reads @metadata(comment, vssType) from dirs.
func MetadataOf(dirs ast.DirectiveList) Metadata {
	args := Arguments(dirs, MetadataDirective)
	comment, _ := args["comment"].(string)
	vssType, _ := args["vssType"].(string)
	return Metadata{Comment: comment, VSSType: vssType}
}

// ArgumentDefault returns the default of the field argument named name as
// written, e.g. the enum value of a `unit` argument.
func ArgumentDefault(f *ast.FieldDefinition, name string) (string, bool) {
	arg := f.Arguments.Get(name)
	if arg == nil || arg.Default == nil {
		return "", false
	}
	if p, ok := arg.Default.(*ast.PrimitiveValue); ok && p.Type == scanner.String {
		s, err := ast.Unquote(p.Text)
		if err == nil {
			return s, true
		}
	}
	return arg.Default.String(), true
}
