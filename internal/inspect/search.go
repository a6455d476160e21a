package inspect

import (
	"strings"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/schema"
)

type SearchOptions struct {
	// Exact requires the whole name to match instead of a substring.
	Exact           bool
	CaseInsensitive bool
}

// Match is a type found by a search and the fields that matched. Fields
// lists every field of the type when the type name itself matched.
type Match struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
}

// Search looks term up among type names and field names. Type matches come
// first, then field matches, each in source order.
func Search(s *ast.Schema, term string, opts SearchOptions) []Match {
	matches := func(name string) bool {
		a, b := name, term
		if opts.CaseInsensitive {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		if opts.Exact {
			return a == b
		}
		return strings.Contains(a, b)
	}

	var byType, byField []Match
	for _, t := range s.SortedTypes() {
		if schema.IsReservedName(t.TypeName()) {
			continue
		}
		names, ok := fieldNames(t)
		if !ok {
			continue
		}
		if matches(t.TypeName()) {
			byType = append(byType, Match{Type: t.TypeName(), Fields: names})
		}
		var found []string
		for _, f := range names {
			if matches(f) {
				found = append(found, f)
			}
		}
		if len(found) > 0 {
			byField = append(byField, Match{Type: t.TypeName(), Fields: found})
		}
	}
	return append(byType, byField...)
}

// fieldNames returns the field names of types that have fields.
func fieldNames(t ast.NamedType) ([]string, bool) {
	switch t := t.(type) {
	case *ast.ObjectTypeDefinition:
		return t.Fields.Names(), true
	case *ast.InterfaceTypeDefinition:
		return t.Fields.Names(), true
	case *ast.InputObject:
		names := make([]string, len(t.Values))
		for i, v := range t.Values {
			names[i] = v.Name.Name
		}
		return names, true
	}
	return nil, false
}
