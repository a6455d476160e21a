package filter

import (
	"log/slog"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/query"
	"github.com/covesa/s2dm/internal/schema"
)

// Prune keeps the fields selected by the first query operation of doc and
// the types they return or take as arguments. Objects and interfaces that are
// entered by a selection lose their unselected fields; other kept types stay
// whole. Directive declarations that no kept node applies are dropped. s is
// not modified.
func Prune(s *ast.Schema, doc *ast.ExecutableDefinition, opts ...Option) (*ast.Schema, error) {
	o := newOptions(opts)

	queryType := s.RootType("query")
	if queryType == nil {
		return nil, errors.New("schema has no query type defined")
	}
	op := query.FirstQuery(doc)
	if op == nil {
		return nil, errors.New("no query operation found in selection document")
	}

	p := &pruner{
		schema: s,
		doc:    doc,
		keep:   make(map[string]bool),
		fields: make(map[string]map[string]bool),
		spread: make(map[string]bool),
	}
	p.collect(queryType.Name, op.Selections)

	out := reduced(s)
	out.Directives = make(map[string]*ast.DirectiveDefinition)
	for name := range p.keep {
		t, ok := s.Types[name]
		if !ok {
			continue
		}
		if selected, ok := p.fields[name]; ok {
			t = pruneFields(t, selected)
		}
		out.Types[name] = t
	}
	setRoot(out, "query", out.Types[queryType.Name].(*ast.ObjectTypeDefinition))

	used := usedDirectives(out)
	// Provenance annotation may apply @reference to the pruned schema.
	used["reference"] = true
	for name, d := range s.Directives {
		if schema.IsBuiltinDirective(name) || used[name] {
			out.Directives[name] = d
		}
	}

	index(out, s)
	o.logger.Info("pruned schema to the query selection", slog.Int("objects", len(p.fields)), slog.Int("types", len(p.keep)))
	return out, nil
}

type pruner struct {
	schema *ast.Schema
	doc    *ast.ExecutableDefinition
	keep   map[string]bool
	fields map[string]map[string]bool
	spread map[string]bool
}

func (p *pruner) collect(typeName string, sels []ast.Selection) {
	t, ok := p.schema.Types[typeName]
	if !ok {
		return
	}
	p.keep[typeName] = true

	fields := fieldsOf(t)
	if fields != nil && p.fields[typeName] == nil {
		p.fields[typeName] = make(map[string]bool)
	}

	for _, sel := range sels {
		switch sel := sel.(type) {
		case *ast.Field:
			if fields == nil {
				continue
			}
			p.fields[typeName][sel.Name.Name] = true
			f := fields.Get(sel.Name.Name)
			if f == nil {
				continue
			}
			fieldType := ast.NamedTypeName(f.Type)
			p.keep[fieldType] = true
			for _, arg := range f.Arguments {
				p.keep[ast.NamedTypeName(arg.Type)] = true
			}
			if len(sel.SelectionSet) > 0 {
				p.collect(fieldType, sel.SelectionSet)
			}

		case *ast.InlineFragment:
			on := sel.On.Name
			if on == "" {
				on = typeName
			}
			p.collect(on, sel.Selections)

		case *ast.FragmentSpread:
			frag := p.doc.Fragments.Get(sel.Name.Name)
			if frag == nil || p.spread[frag.Name.Name] {
				continue
			}
			p.spread[frag.Name.Name] = true
			p.collect(frag.On.Name, frag.Selections)
		}
	}
}

func fieldsOf(t ast.NamedType) ast.FieldsDefinition {
	switch t := t.(type) {
	case *ast.ObjectTypeDefinition:
		if t.Fields == nil {
			return ast.FieldsDefinition{}
		}
		return t.Fields
	case *ast.InterfaceTypeDefinition:
		if t.Fields == nil {
			return ast.FieldsDefinition{}
		}
		return t.Fields
	}
	return nil
}

func pruneFields(t ast.NamedType, selected map[string]bool) ast.NamedType {
	keep := func(fields ast.FieldsDefinition) ast.FieldsDefinition {
		var out ast.FieldsDefinition
		for _, f := range fields {
			if selected[f.Name] {
				out = append(out, f)
			}
		}
		return out
	}
	switch t := t.(type) {
	case *ast.ObjectTypeDefinition:
		cp := *t
		cp.Fields = keep(t.Fields)
		return &cp
	case *ast.InterfaceTypeDefinition:
		cp := *t
		cp.Fields = keep(t.Fields)
		return &cp
	}
	return t
}

// usedDirectives collects the names of the directives applied anywhere in s.
func usedDirectives(s *ast.Schema) map[string]bool {
	used := make(map[string]bool)
	add := func(l ast.DirectiveList) {
		for _, d := range l {
			used[d.Name.Name] = true
		}
	}
	addFields := func(fields ast.FieldsDefinition) {
		for _, f := range fields {
			add(f.Directives)
			for _, arg := range f.Arguments {
				add(arg.Directives)
			}
		}
	}

	add(s.SchemaDefinition.Directives)
	for _, t := range s.Types {
		add(ast.DirectivesOf(t))
		switch t := t.(type) {
		case *ast.ObjectTypeDefinition:
			addFields(t.Fields)
		case *ast.InterfaceTypeDefinition:
			addFields(t.Fields)
		case *ast.EnumTypeDefinition:
			for _, v := range t.EnumValuesDefinition {
				add(v.Directives)
			}
		case *ast.InputObject:
			for _, v := range t.Values {
				add(v.Directives)
			}
		}
	}
	return used
}
