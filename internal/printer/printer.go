// Package printer renders a schema graph back to SDL. Directive applications
// are printed where they were written; provenance can be recorded as
// @reference(source: ...) applications.
package printer

import (
	"sort"
	"strings"
	"text/scanner"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/common"
	"github.com/covesa/s2dm/internal/schema"
)

// ReferenceDirective names the directive provenance is recorded with.
const ReferenceDirective = "reference"

type Option func(*options)

type options struct {
	provenance map[string]string
}

// WithProvenance appends @reference(source: "label") to every type that has an
// entry in provenance and no @reference application of its own.
func WithProvenance(provenance map[string]string) Option {
	return func(o *options) { o.provenance = provenance }
}

// Print renders s as SDL: the schema block when root names are not the
// defaults or it carries a description or directives, non built-in
// directive declarations, then non built-in types in source order.
func Print(s *ast.Schema, opts ...Option) string {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	p := &printer{opts: o}
	var defs []string
	if def := p.schemaDefinition(s); def != "" {
		defs = append(defs, def)
	}
	for _, d := range s.SortedDirectives() {
		if schema.IsBuiltinDirective(d.Name) {
			continue
		}
		defs = append(defs, p.directiveDefinition(d))
	}
	for _, t := range printableTypes(s) {
		defs = append(defs, p.namedType(t))
	}
	if len(defs) == 0 {
		return ""
	}
	return strings.Join(defs, "\n\n") + "\n"
}

func printableTypes(s *ast.Schema) []ast.NamedType {
	var types []ast.NamedType
	for _, t := range s.SortedTypes() {
		if ast.IsBuiltinScalar(t.TypeName()) || schema.IsReservedName(t.TypeName()) {
			continue
		}
		types = append(types, t)
	}
	return types
}

type printer struct {
	opts *options
}

var defaultRootNames = map[string]string{
	"query":        "Query",
	"mutation":     "Mutation",
	"subscription": "Subscription",
}

var operations = []string{"query", "mutation", "subscription"}

func (p *printer) schemaDefinition(s *ast.Schema) string {
	custom := s.SchemaDefinition.Desc != "" || len(s.SchemaDefinition.Directives) > 0
	for op, t := range s.RootOperationTypes {
		if t.TypeName() != defaultRootNames[op] {
			custom = true
		}
	}
	if !custom {
		return ""
	}

	var b strings.Builder
	b.WriteString(description(s.SchemaDefinition.Desc, ""))
	b.WriteString("schema")
	b.WriteString(directives(s.SchemaDefinition.Directives))
	b.WriteString(" {\n")
	for _, op := range operations {
		if t, ok := s.RootOperationTypes[op]; ok {
			b.WriteString("  " + op + ": " + t.TypeName() + "\n")
		}
	}
	b.WriteString("}")
	return b.String()
}

func (p *printer) directiveDefinition(d *ast.DirectiveDefinition) string {
	var b strings.Builder
	b.WriteString(description(d.Desc, ""))
	b.WriteString("directive @" + d.Name)
	b.WriteString(arguments(d.Arguments, ""))
	if d.Repeatable {
		b.WriteString(" repeatable")
	}
	b.WriteString(" on " + strings.Join(d.Locations, " | "))
	return b.String()
}

func (p *printer) namedType(t ast.NamedType) string {
	var b strings.Builder
	b.WriteString(description(t.Description(), ""))
	dirs := directives(p.typeDirectives(t))

	switch t := t.(type) {
	case *ast.ScalarTypeDefinition:
		b.WriteString("scalar " + t.Name + dirs)

	case *ast.ObjectTypeDefinition:
		b.WriteString("type " + t.Name + implements(t.InterfaceNames) + dirs)
		b.WriteString(fields(t.Fields))

	case *ast.InterfaceTypeDefinition:
		b.WriteString("interface " + t.Name + implements(t.InterfaceNames) + dirs)
		b.WriteString(fields(t.Fields))

	case *ast.Union:
		b.WriteString("union " + t.Name + dirs)
		if len(t.TypeNames) > 0 {
			b.WriteString(" = " + strings.Join(t.TypeNames, " | "))
		}

	case *ast.EnumTypeDefinition:
		b.WriteString("enum " + t.Name + dirs)
		if len(t.EnumValuesDefinition) > 0 {
			b.WriteString(" {\n")
			for _, v := range t.EnumValuesDefinition {
				b.WriteString(description(v.Desc, "  "))
				b.WriteString("  " + v.EnumValue + directives(v.Directives) + "\n")
			}
			b.WriteString("}")
		}

	case *ast.InputObject:
		b.WriteString("input " + t.Name + dirs)
		if len(t.Values) > 0 {
			b.WriteString(" {\n")
			for _, v := range t.Values {
				b.WriteString(description(v.Desc, "  "))
				b.WriteString("  " + inputValue(v) + "\n")
			}
			b.WriteString("}")
		}
	}
	return b.String()
}

// typeDirectives returns the applications printed on the header of t, with
// the provenance annotation appended when it applies.
func (p *printer) typeDirectives(t ast.NamedType) ast.DirectiveList {
	dirs := ast.DirectivesOf(t)
	label, ok := p.opts.provenance[t.TypeName()]
	if !ok || dirs.Has(ReferenceDirective) || schema.IsSynthesizedQuery(t) {
		return dirs
	}
	out := make(ast.DirectiveList, len(dirs), len(dirs)+1)
	copy(out, dirs)
	return append(out, Reference(label))
}

// Reference builds the @reference(source: label) application.
func Reference(label string) *ast.Directive {
	return &ast.Directive{
		Name: ast.Ident{Name: ReferenceDirective},
		Arguments: ast.ArgumentList{{
			Name:  ast.Ident{Name: "source"},
			Value: &ast.PrimitiveValue{Type: scanner.String, Text: ast.Quote(label)},
		}},
	}
}

func implements(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return " implements " + strings.Join(names, " & ")
}

func fields(fields ast.FieldsDefinition) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(" {\n")
	for _, f := range fields {
		b.WriteString(description(f.Desc, "  "))
		b.WriteString("  " + f.Name + arguments(f.Arguments, "  ") + ": " + f.Type.String() + directives(f.Directives) + "\n")
	}
	b.WriteString("}")
	return b.String()
}

// arguments prints an argument definition list inline, or one argument per
// line when any of them has a description.
func arguments(args ast.ArgumentsDefinition, indent string) string {
	if len(args) == 0 {
		return ""
	}
	multiline := false
	for _, a := range args {
		if a.Desc != "" {
			multiline = true
		}
	}
	if !multiline {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = inputValue(a)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}

	var b strings.Builder
	b.WriteString("(\n")
	for _, a := range args {
		b.WriteString(description(a.Desc, indent+"  "))
		b.WriteString(indent + "  " + inputValue(a) + "\n")
	}
	b.WriteString(indent + ")")
	return b.String()
}

func inputValue(v *ast.InputValueDefinition) string {
	s := v.Name.Name + ": " + v.Type.String()
	if v.Default != nil {
		s += " = " + v.Default.String()
	}
	return s + directives(v.Directives)
}

func directives(dirs ast.DirectiveList) string {
	var b strings.Builder
	for _, d := range dirs {
		b.WriteString(" " + Directive(d))
	}
	return b.String()
}

// Directive renders one application: @name(arg: value, ...).
func Directive(d *ast.Directive) string {
	if len(d.Arguments) == 0 {
		return "@" + d.Name.Name
	}
	args := make([]string, len(d.Arguments))
	for i, a := range d.Arguments {
		args[i] = a.Name.Name + ": " + a.Value.String()
	}
	return "@" + d.Name.Name + "(" + strings.Join(args, ", ") + ")"
}

// description renders desc as a block string followed by a newline. Values a
// block string cannot carry, such as carriage returns, blank edge lines or a
// shared indent, are printed as a quoted string instead.
func description(desc, indent string) string {
	if desc == "" {
		return ""
	}
	if raw, ok := blockString(desc, indent); ok {
		return indent + `"""` + strings.ReplaceAll(raw, `"""`, `\"""`) + `"""` + "\n"
	}
	return indent + ast.Quote(desc) + "\n"
}

// blockString lays desc out between triple quotes and reports whether the
// lexer reads the layout back as desc.
func blockString(desc, indent string) (string, bool) {
	var raw string
	if !strings.Contains(desc, "\n") {
		if strings.HasSuffix(desc, `"`) || strings.HasSuffix(desc, `\`) {
			return "", false
		}
		raw = desc
	} else {
		var b strings.Builder
		b.WriteString("\n")
		for _, line := range strings.Split(desc, "\n") {
			if line != "" {
				b.WriteString(indent + line)
			}
			b.WriteString("\n")
		}
		b.WriteString(indent)
		raw = b.String()
	}
	return raw, common.BlockStringValue(raw) == desc
}

// DirectiveMap maps a type name, or Type.member for fields, input fields and
// enum values, to the directive applications printed on it.
type DirectiveMap map[string][]string

// Keys returns the map keys sorted.
func (m DirectiveMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Directives collects the directive applications Print would emit for s.
func Directives(s *ast.Schema, opts ...Option) DirectiveMap {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	p := &printer{opts: o}

	m := make(DirectiveMap)
	add := func(key string, dirs ast.DirectiveList) {
		for _, d := range dirs {
			m[key] = append(m[key], Directive(d))
		}
	}
	for _, t := range printableTypes(s) {
		name := t.TypeName()
		add(name, p.typeDirectives(t))
		switch t := t.(type) {
		case *ast.ObjectTypeDefinition:
			for _, f := range t.Fields {
				add(name+"."+f.Name, f.Directives)
			}
		case *ast.InterfaceTypeDefinition:
			for _, f := range t.Fields {
				add(name+"."+f.Name, f.Directives)
			}
		case *ast.InputObject:
			for _, v := range t.Values {
				add(name+"."+v.Name.Name, v.Directives)
			}
		case *ast.EnumTypeDefinition:
			for _, v := range t.EnumValuesDefinition {
				add(name+"."+v.EnumValue, v.Directives)
			}
		}
	}
	return m
}
