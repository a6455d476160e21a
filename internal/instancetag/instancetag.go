// Package instancetag handles objects marked @instanceTag. Such an object
// holds only enum fields; an object that points at it through its instanceTag
// field exists once per combination of the enum values.
package instancetag

import (
	"strings"

	"github.com/covesa/s2dm/ast"
)

const (
	// Directive marks an instance tag object.
	Directive = "instanceTag"

	// Field is the reserved field linking an object to its instance tag.
	Field = "instanceTag"
)

// IsTag reports whether t is an object carrying @instanceTag.
func IsTag(t ast.NamedType) bool {
	obj, ok := t.(*ast.ObjectTypeDefinition)
	return ok && obj.Directives.Has(Directive)
}

// TagOf returns the instance tag object referenced by the instanceTag field of
// obj, or nil when obj has no valid instanceTag field.
func TagOf(obj *ast.ObjectTypeDefinition) *ast.ObjectTypeDefinition {
	if obj == nil {
		return nil
	}
	f := obj.Fields.Get(Field)
	if f == nil {
		return nil
	}
	tag, ok := ast.Unwrap(f.Type).(*ast.ObjectTypeDefinition)
	if !ok || !IsTag(tag) {
		return nil
	}
	return tag
}

// Dimension is one enum field of an instance tag.
type Dimension struct {
	Field  string
	Enum   string
	Values []string
}

// Dimensions returns the enum fields of tag in declaration order. Fields that
// are not enum typed are ignored.
func Dimensions(tag *ast.ObjectTypeDefinition) []Dimension {
	var dims []Dimension
	for _, f := range tag.Fields {
		enum, ok := ast.Unwrap(f.Type).(*ast.EnumTypeDefinition)
		if !ok {
			continue
		}
		dims = append(dims, Dimension{Field: f.Name, Enum: enum.Name, Values: enum.Values()})
	}
	return dims
}

// Expand returns every combination of the tag's dimension values, joined by
// dots in dimension order: ROW1.DRIVERSIDE, ROW1.PASSENGERSIDE, ... A non-nil
// convert is applied to each value first.
func Expand(tag *ast.ObjectTypeDefinition, convert func(string) string) []string {
	return join(Product(tag, convert))
}

// Product is Expand without the joining.
func Product(tag *ast.ObjectTypeDefinition, convert func(string) string) [][]string {
	combos := [][]string{{}}
	for _, dim := range Dimensions(tag) {
		next := make([][]string, 0, len(combos)*len(dim.Values))
		for _, prefix := range combos {
			for _, v := range dim.Values {
				if convert != nil {
					v = convert(v)
				}
				combo := make([]string, len(prefix), len(prefix)+1)
				copy(combo, prefix)
				next = append(next, append(combo, v))
			}
		}
		combos = next
	}
	if len(combos) == 1 && len(combos[0]) == 0 {
		return nil
	}
	return combos
}

// All expands every instance tag object of s, keyed by type name.
func All(s *ast.Schema, convert func(string) string) map[string][]string {
	tags := make(map[string][]string)
	for _, obj := range s.Objects {
		if IsTag(obj) {
			tags[obj.Name] = Expand(obj, convert)
		}
	}
	return tags
}

func join(combos [][]string) []string {
	if combos == nil {
		return nil
	}
	out := make([]string, len(combos))
	for i, c := range combos {
		out[i] = strings.Join(c, ".")
	}
	return out
}
