// Package jsonschema translates a schema into a JSON Schema (draft 2020-12)
// document with one $defs entry per named type.
package jsonschema

import (
	"encoding/json"
	"log/slog"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/config"
	"github.com/covesa/s2dm/internal/field"
	"github.com/covesa/s2dm/internal/filter"
	"github.com/covesa/s2dm/internal/instancetag"
	"github.com/covesa/s2dm/internal/naming"
	"github.com/covesa/s2dm/internal/schema"
	"github.com/covesa/s2dm/log"
)

// Draft is the meta schema of the generated documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a JSON Schema node.
type Schema struct {
	Schema      string             `json:"$schema,omitempty"`
	Title       string             `json:"title,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	Description string             `json:"description,omitempty"`
	Type        interface{}        `json:"type,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	UniqueItems bool               `json:"uniqueItems,omitempty"`
	MinItems    *int               `json:"minItems,omitempty"`
	MaxItems    *int               `json:"maxItems,omitempty"`
	Minimum     json.Number        `json:"minimum,omitempty"`
	Maximum     json.Number        `json:"maximum,omitempty"`
	OneOf       []*Schema          `json:"oneOf,omitempty"`
	AnyOf       []*Schema          `json:"anyOf,omitempty"`
	Defs        map[string]*Schema `json:"$defs,omitempty"`
}

type scalar struct {
	typ      string
	min, max json.Number
}

var scalars = map[string]scalar{
	"String":  {typ: "string"},
	"ID":      {typ: "string"},
	"Int":     {typ: "integer"},
	"Float":   {typ: "number"},
	"Boolean": {typ: "boolean"},
	"Int8":    {typ: "integer", min: "-128", max: "127"},
	"UInt8":   {typ: "integer", min: "0", max: "255"},
	"Int16":   {typ: "integer", min: "-32768", max: "32767"},
	"UInt16":  {typ: "integer", min: "0", max: "65535"},
	"UInt32":  {typ: "integer", min: "0", max: "4294967295"},
	"Int64":   {typ: "integer", min: "-9223372036854775808", max: "9223372036854775807"},
	"UInt64":  {typ: "integer", min: "0", max: "18446744073709551615"},
}

// Options configure Transform.
type Options struct {
	// RootType limits $defs to the types reachable from it and makes the
	// document a reference to it. Empty means every type.
	RootType string

	// Strict makes non-null fields required and nullable fields accept null.
	Strict bool

	// ExpandedInstances turns lists of instance tagged objects into nested
	// objects keyed by instance values.
	ExpandedInstances bool

	Naming config.Naming
	Logger *slog.Logger
}

type transformer struct {
	s      *ast.Schema
	opts   Options
	defs   map[string]*Schema
	queue  []string
	expand func(string) string
	logger *slog.Logger
}

// Transform builds the JSON Schema of s. A RootType that is not in s yields
// an *errors.NotFoundError.
func Transform(s *ast.Schema, opts Options) (*Schema, error) {
	t := &transformer{
		s:      s,
		opts:   opts,
		defs:   make(map[string]*Schema),
		expand: naming.InstanceTag(opts.Naming),
		logger: opts.Logger,
	}
	if t.logger == nil {
		t.logger = log.Discard()
	}

	doc := &Schema{Schema: Draft}
	if opts.RootType != "" {
		if _, err := filter.Referenced(s, opts.RootType); err != nil {
			return nil, err
		}
		t.logger.Info("using root type", "type", opts.RootType)
		doc.Title = opts.RootType
		doc.Ref = ref(opts.RootType)
		t.queue = append(t.queue, opts.RootType)
	} else {
		for _, nt := range s.SortedTypes() {
			if t.definable(nt) {
				t.queue = append(t.queue, nt.TypeName())
			}
		}
	}

	for len(t.queue) > 0 {
		name := t.queue[0]
		t.queue = t.queue[1:]
		if _, ok := t.defs[name]; ok {
			continue
		}
		if def := t.definition(s.Types[name]); def != nil {
			t.defs[name] = def
		}
	}
	doc.Defs = t.defs
	t.logger.Info("converted schema to JSON Schema", "definitions", len(t.defs))
	return doc, nil
}

// Export is Transform followed by indented JSON encoding.
func Export(s *ast.Schema, opts Options) ([]byte, error) {
	doc, err := Transform(s, opts)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

func ref(name string) string { return "#/$defs/" + name }

func (t *transformer) definable(nt ast.NamedType) bool {
	name := nt.TypeName()
	if schema.IsReservedName(name) || schema.IsRootName(t.s, name) {
		return false
	}
	if _, ok := nt.(*ast.ScalarTypeDefinition); ok {
		return false
	}
	return !(t.opts.ExpandedInstances && instancetag.IsTag(nt))
}

func (t *transformer) refTo(name string) *Schema {
	t.queue = append(t.queue, name)
	return &Schema{Ref: ref(name)}
}

func (t *transformer) definition(nt ast.NamedType) *Schema {
	switch nt := nt.(type) {
	case *ast.ObjectTypeDefinition:
		return t.object(nt.Desc, nt.Fields, nt)
	case *ast.InterfaceTypeDefinition:
		return t.object(nt.Desc, nt.Fields, nil)
	case *ast.InputObject:
		def := &Schema{Type: "object", Description: nt.Desc, Properties: make(map[string]*Schema)}
		for _, v := range nt.Values {
			def.Properties[v.Name.Name] = t.nullable(t.typeSchema(v.Type), v.Type)
			if _, ok := v.Type.(*ast.NonNull); ok && t.opts.Strict {
				def.Required = append(def.Required, v.Name.Name)
			}
		}
		return def
	case *ast.EnumTypeDefinition:
		return &Schema{Type: "string", Description: nt.Desc, Enum: nt.Values()}
	case *ast.Union:
		def := &Schema{Description: nt.Desc}
		for _, name := range nt.TypeNames {
			def.AnyOf = append(def.AnyOf, t.refTo(name))
		}
		return def
	}
	return nil
}

func (t *transformer) object(desc string, fields ast.FieldsDefinition, obj *ast.ObjectTypeDefinition) *Schema {
	def := &Schema{Type: "object", Description: desc, Properties: make(map[string]*Schema)}
	for _, f := range fields {
		if t.opts.ExpandedInstances {
			if f.Name == instancetag.Field && instancetag.TagOf(obj) != nil {
				continue
			}
			if target, ok := ast.Unwrap(f.Type).(*ast.ObjectTypeDefinition); ok && field.CaseOf(f.Type).IsList() {
				if tag := instancetag.TagOf(target); tag != nil {
					def.Properties[target.Name] = t.instances(target.Name, instancetag.Product(tag, t.expand))
					continue
				}
			}
		}
		def.Properties[f.Name] = t.field(f)
		if _, ok := f.Type.(*ast.NonNull); ok && t.opts.Strict {
			def.Required = append(def.Required, f.Name)
		}
	}
	return def
}

// instances nests one object level per dimension, ending in a reference to
// target for every combination.
func (t *transformer) instances(target string, combos [][]string) *Schema {
	root := &Schema{Type: "object", Properties: make(map[string]*Schema)}
	leaf := t.refTo(target)
	for _, combo := range combos {
		node := root
		for i, v := range combo {
			if i == len(combo)-1 {
				node.Properties[v] = leaf
				break
			}
			next, ok := node.Properties[v]
			if !ok {
				next = &Schema{Type: "object", Properties: make(map[string]*Schema)}
				node.Properties[v] = next
			}
			node = next
		}
	}
	return root
}

func (t *transformer) field(f *ast.FieldDefinition) *Schema {
	s := t.typeSchema(f.Type)
	s.Description = f.Desc

	min, max := field.Range(f)
	target := s
	for target.Items != nil {
		target = target.Items
	}
	if min != nil {
		target.Minimum = json.Number(min.Text)
	}
	if max != nil {
		target.Maximum = json.Number(max.Text)
	}

	if s.Items != nil {
		s.UniqueItems = f.Directives.Has(field.NoDuplicatesDirective)
		args := field.Arguments(f.Directives, field.CardinalityDirective)
		if v, ok := args["min"].(int64); ok {
			n := int(v)
			s.MinItems = &n
		}
		if v, ok := args["max"].(int64); ok {
			n := int(v)
			s.MaxItems = &n
		}
	}
	return t.nullable(s, f.Type)
}

// nullable lets a nullable type accept null in strict mode.
func (t *transformer) nullable(s *Schema, typ ast.Type) *Schema {
	if !t.opts.Strict {
		return s
	}
	if _, ok := typ.(*ast.NonNull); ok {
		return s
	}
	if name, ok := s.Type.(string); ok {
		s.Type = []string{name, "null"}
		return s
	}
	if s.Ref != "" {
		return &Schema{Description: s.Description, OneOf: []*Schema{{Ref: s.Ref}, {Type: "null"}}}
	}
	return s
}

func (t *transformer) typeSchema(typ ast.Type) *Schema {
	switch typ := typ.(type) {
	case *ast.NonNull:
		return t.typeSchema(typ.OfType)
	case *ast.List:
		item := t.nullable(t.typeSchema(typ.OfType), typ.OfType)
		return &Schema{Type: "array", Items: item}
	case *ast.ScalarTypeDefinition:
		sc, ok := scalars[typ.Name]
		if !ok {
			t.logger.Debug("custom scalar mapped to string", "scalar", typ.Name)
			return &Schema{Type: "string"}
		}
		return &Schema{Type: sc.typ, Minimum: sc.min, Maximum: sc.max}
	case ast.NamedType:
		return t.refTo(typ.TypeName())
	}
	t.logger.Warn("unresolved type", "type", typ.String())
	return &Schema{}
}
