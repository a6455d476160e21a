// Package concept lists the concepts of a schema (objects, their leaf fields
// and enums) and builds the concept URI document of the registry.
package concept

import (
	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/idgen"
	"github.com/covesa/s2dm/internal/instancetag"
	"github.com/covesa/s2dm/internal/schema"
)

// Field is a leaf field concept, Object.Field.
type Field struct {
	Object     string
	Definition *ast.FieldDefinition
}

// Name is the qualified concept name.
func (f Field) Name() string { return f.Object + "." + f.Definition.Name }

// Nested is a field of Object that points at another object.
type Nested struct {
	Object string
	Field  string
	Target string
}

// Concepts are the named concepts of a schema in source order.
type Concepts struct {
	Objects []*ast.ObjectTypeDefinition
	Fields  []Field
	Enums   []*ast.EnumTypeDefinition
	Nested  []Nested
}

// Collect walks s. Root operation types, introspection types and instance
// tag objects are not concepts, nor are ID typed fields or instanceTag
// fields.
func Collect(s *ast.Schema) *Concepts {
	c := &Concepts{}
	for _, t := range s.SortedTypes() {
		name := t.TypeName()
		if schema.IsReservedName(name) || schema.IsRootName(s, name) {
			continue
		}
		switch t := t.(type) {
		case *ast.EnumTypeDefinition:
			c.Enums = append(c.Enums, t)

		case *ast.ObjectTypeDefinition:
			if instancetag.IsTag(t) {
				continue
			}
			c.Objects = append(c.Objects, t)
			for _, f := range t.Fields {
				if f.Name == instancetag.Field || ast.NamedTypeName(f.Type) == "ID" {
					continue
				}
				if idgen.IsLeaf(f) {
					c.Fields = append(c.Fields, Field{Object: name, Definition: f})
					continue
				}
				if target, ok := ast.Unwrap(f.Type).(*ast.ObjectTypeDefinition); ok && !instancetag.IsTag(target) {
					c.Nested = append(c.Nested, Nested{Object: name, Field: f.Name, Target: target.Name})
				}
			}
		}
	}
	return c
}

// FieldsOf returns the leaf field concepts of object.
func (c *Concepts) FieldsOf(object string) []Field {
	var out []Field
	for _, f := range c.Fields {
		if f.Object == object {
			out = append(out, f)
		}
	}
	return out
}

// Names lists every concept name: objects, fields, then enums.
func (c *Concepts) Names() []string {
	var names []string
	for _, o := range c.Objects {
		names = append(names, o.Name)
	}
	for _, f := range c.Fields {
		names = append(names, f.Name())
	}
	for _, e := range c.Enums {
		names = append(names, e.Name)
	}
	return names
}
