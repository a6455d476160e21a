// Package inspect validates composed schemas with gqlparser and answers
// questions about them: searching names, finding similar types and counting
// types per kind.
package inspect

import (
	"bytes"

	"github.com/vektah/gqlparser/v2"
	gqlast "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// Validate loads sdl with gqlparser, which applies the full set of schema
// validation rules.
func Validate(name, sdl string) (*gqlast.Schema, error) {
	s, err := gqlparser.LoadSchema(&gqlast.Source{Name: name, Input: sdl})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Format renders s in gqlparser's canonical layout.
func Format(s *gqlast.Schema) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchema(s)
	return buf.String()
}
