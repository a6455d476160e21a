// Package naming converts identifiers between case conventions and renames a
// schema graph according to a naming configuration.
package naming

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/config"
	"github.com/covesa/s2dm/internal/instancetag"
	"github.com/covesa/s2dm/internal/schema"
)

// Convert returns name in the target case. Unknown cases leave name as is.
func Convert(name, target string) string {
	if name == "" {
		return name
	}
	switch target {
	case "camelCase":
		return strcase.ToLowerCamel(name)
	case "PascalCase":
		return strcase.ToCamel(name)
	case "snake_case":
		return strcase.ToSnake(name)
	case "kebab-case":
		return strcase.ToKebab(name)
	case "MACROCASE":
		return strcase.ToScreamingSnake(name)
	case "COBOL-CASE":
		return strcase.ToScreamingKebab(name)
	case "flatcase":
		return strings.ReplaceAll(strcase.ToSnake(name), "_", "")
	case "TitleCase":
		words := strings.Fields(strcase.ToDelimited(name, ' '))
		for i, w := range words {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
		return strings.Join(words, " ")
	}
	return name
}

// Converter returns a function converting names of element in context, or
// nil when n has no rule for them.
func Converter(n config.Naming, element, context string) func(string) string {
	target := n.CaseFor(element, context)
	if target == "" {
		return nil
	}
	return func(name string) string { return Convert(name, target) }
}

// InstanceTag returns the converter for expanded instance values.
func InstanceTag(n config.Naming) func(string) string {
	return Converter(n, config.ElementInstanceTag, "")
}

var typeContexts = map[string]string{
	"OBJECT":       "object",
	"INTERFACE":    "interface",
	"INPUT_OBJECT": "input",
	"SCALAR":       "scalar",
	"UNION":        "union",
	"ENUM":         "enum",
}

// Apply renames s in place: type names, fields, input fields, field
// arguments and enum values. Built-in scalars and introspection types keep
// their names, root operation types are left alone entirely and the
// instanceTag field of a tagged object is never renamed.
func Apply(s *ast.Schema, n config.Naming) *ast.Schema {
	if len(n) == 0 {
		return s
	}

	renamed := make(map[string]string)
	for name, t := range s.Types {
		if ast.IsBuiltinScalar(name) || schema.IsReservedName(name) || schema.IsRootName(s, name) {
			continue
		}
		if convert := Converter(n, config.ElementType, typeContexts[t.Kind()]); convert != nil {
			if to := convert(name); to != name {
				renamed[name] = to
			}
		}
	}

	for name, t := range s.Types {
		if schema.IsReservedName(name) || schema.IsRootName(s, name) {
			continue
		}
		switch t := t.(type) {
		case *ast.ObjectTypeDefinition:
			renameFields(n, "object", t.Fields, instancetag.TagOf(t) != nil)
			t.InterfaceNames = rename(t.InterfaceNames, renamed)
		case *ast.InterfaceTypeDefinition:
			renameFields(n, "interface", t.Fields, false)
			t.InterfaceNames = rename(t.InterfaceNames, renamed)
		case *ast.InputObject:
			if convert := Converter(n, config.ElementField, "input"); convert != nil {
				for _, v := range t.Values {
					v.Name.Name = convert(v.Name.Name)
				}
			}
		case *ast.Union:
			t.TypeNames = rename(t.TypeNames, renamed)
		case *ast.EnumTypeDefinition:
			if convert := Converter(n, config.ElementEnumValue, ""); convert != nil {
				for _, v := range t.EnumValuesDefinition {
					v.EnumValue = convert(v.EnumValue)
				}
			}
		}
	}

	for from, to := range renamed {
		t := s.Types[from]
		setName(t, to)
		delete(s.Types, from)
		s.Types[to] = t
	}
	return s
}

func renameFields(n config.Naming, context string, fields ast.FieldsDefinition, keepTagField bool) {
	convertField := Converter(n, config.ElementField, context)
	convertArg := Converter(n, config.ElementArgument, "field")
	for _, f := range fields {
		if convertField != nil && !(keepTagField && f.Name == instancetag.Field) {
			f.Name = convertField(f.Name)
		}
		if convertArg != nil {
			for _, a := range f.Arguments {
				a.Name.Name = convertArg(a.Name.Name)
			}
		}
	}
}

func rename(names []string, renamed map[string]string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		if to, ok := renamed[name]; ok {
			name = to
		}
		out[i] = name
	}
	return out
}

func setName(t ast.NamedType, name string) {
	switch t := t.(type) {
	case *ast.ObjectTypeDefinition:
		t.Name = name
	case *ast.InterfaceTypeDefinition:
		t.Name = name
	case *ast.Union:
		t.Name = name
	case *ast.EnumTypeDefinition:
		t.Name = name
	case *ast.InputObject:
		t.Name = name
	case *ast.ScalarTypeDefinition:
		t.Name = name
	}
}
