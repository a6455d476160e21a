// Package vspec translates a schema into the flat VSS vspec format: one
// YAML entry per branch and leaf, keyed by its dotted path.
package vspec

import (
	"bytes"
	"log/slog"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/config"
	"github.com/covesa/s2dm/internal/field"
	"github.com/covesa/s2dm/internal/instancetag"
	"github.com/covesa/s2dm/internal/naming"
	"github.com/covesa/s2dm/internal/schema"
	"github.com/covesa/s2dm/log"
)

// Branch and Attribute are vspec node types.
const (
	Branch    = "branch"
	Attribute = "attribute"
)

var datatypes = map[string]string{
	"Int":     "int32",
	"Float":   "float",
	"String":  "string",
	"Boolean": "boolean",
	"ID":      "string",
	"Int8":    "int8",
	"UInt8":   "uint8",
	"Int16":   "int16",
	"UInt16":  "uint16",
	"UInt32":  "uint32",
	"Int64":   "int64",
	"UInt64":  "uint64",
}

// Node is a vspec entry. Fields are in key order.
type Node struct {
	Allowed     FlowList    `yaml:"allowed,omitempty"`
	Comment     string      `yaml:"comment,omitempty"`
	Datatype    string      `yaml:"datatype,omitempty"`
	Description *string     `yaml:"description,omitempty"`
	Instances   []FlowList  `yaml:"instances,omitempty"`
	Max         interface{} `yaml:"max,omitempty"`
	Min         interface{} `yaml:"min,omitempty"`
	Type        string      `yaml:"type,omitempty"`
	Unit        string      `yaml:"unit,omitempty"`
}

// FlowList is a string list written inline.
type FlowList []string

func (l FlowList) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, s := range l {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: s})
	}
	return n, nil
}

// Options configure Translate. Units extend the built-in unit table.
type Options struct {
	Naming config.Naming
	Units  map[string]string
	Logger *slog.Logger
}

type edge struct{ parent, child string }

type translator struct {
	opts   Options
	doc    map[string]*Node
	order  []string
	nested []edge
	logger *slog.Logger
}

// Translate returns the vspec entries of s keyed by path.
func Translate(s *ast.Schema, opts Options) map[string]*Node {
	t := &translator{opts: opts, doc: make(map[string]*Node), logger: opts.Logger}
	if t.logger == nil {
		t.logger = log.Discard()
	}

	for _, nt := range s.SortedTypes() {
		obj, ok := nt.(*ast.ObjectTypeDefinition)
		if !ok || instancetag.IsTag(obj) || schema.IsReservedName(obj.Name) || schema.IsRootName(s, obj.Name) {
			continue
		}
		if _, ok := t.doc[obj.Name]; !ok {
			t.branch(obj)
		}
		for _, f := range obj.Fields {
			t.field(obj, f)
		}
	}

	paths := reconstructPaths(t.nested)
	t.logger.Debug("reconstructed paths", "paths", paths)
	for _, key := range t.order {
		first, _, _ := strings.Cut(key, ".")
		for _, p := range paths {
			parts := strings.Split(p, ".")
			if parts[len(parts)-1] != first {
				continue
			}
			if len(parts) > 1 {
				prefixed := strings.Join(append(parts[:len(parts)-1:len(parts)-1], key), ".")
				t.doc[prefixed] = t.doc[key]
				delete(t.doc, key)
			}
			break
		}
	}
	return t.doc
}

func (t *translator) set(key string, n *Node) {
	if _, ok := t.doc[key]; !ok {
		t.order = append(t.order, key)
	}
	t.doc[key] = n
}

func (t *translator) branch(obj *ast.ObjectTypeDefinition) {
	t.logger.Info("processing object type", "type", obj.Name)
	n := &Node{Type: Branch}
	if obj.Desc != "" {
		n.Description = &obj.Desc
	}
	if tag := instancetag.TagOf(obj); tag != nil {
		convert := naming.InstanceTag(t.opts.Naming)
		for _, dim := range instancetag.Dimensions(tag) {
			values := make(FlowList, len(dim.Values))
			for i, v := range dim.Values {
				if convert != nil {
					v = convert(v)
				}
				values[i] = v
			}
			n.Instances = append(n.Instances, values)
		}
	}
	t.set(obj.Name, n)
}

func (t *translator) field(obj *ast.ObjectTypeDefinition, f *ast.FieldDefinition) {
	key := obj.Name + "." + f.Name
	desc := f.Desc
	list := field.CaseOf(f.Type).IsList()

	switch target := ast.Unwrap(f.Type).(type) {
	case *ast.ScalarTypeDefinition:
		n := &Node{Description: &desc, Datatype: datatype(target.Name, list)}
		min, max := field.Range(f)
		n.Min, n.Max = number(min), number(max)
		if unit, ok := field.ArgumentDefault(f, "unit"); ok {
			n.Unit = t.unit(unit)
		}
		meta := field.MetadataOf(f.Directives)
		n.Comment = meta.Comment
		n.Type = meta.VSSType
		t.set(key, n)

	case *ast.EnumTypeDefinition:
		n := &Node{
			Description: &desc,
			Datatype:    datatype("String", list),
			Allowed:     target.Values(),
			Type:        Attribute,
		}
		meta := field.MetadataOf(f.Directives)
		n.Comment = meta.Comment
		if meta.VSSType != "" {
			n.Type = meta.VSSType
		}
		t.set(key, n)

	case *ast.ObjectTypeDefinition:
		if f.Name == instancetag.Field {
			return
		}
		t.nested = append(t.nested, edge{obj.Name, target.Name})
		t.logger.Debug("nested structure", "type", obj.Name, "field", f.Name, "target", target.Name)
		if _, ok := t.doc[target.Name]; !ok {
			t.branch(target)
		}

	default:
		t.logger.Debug("skipping field", "field", key, "type", f.Type.String())
	}
}

func (t *translator) unit(value string) string {
	if u, ok := t.opts.Units[value]; ok {
		return u
	}
	if u, ok := Units[value]; ok {
		return u
	}
	t.logger.Warn("unknown unit, keeping enum value", "unit", value)
	return value
}

func datatype(scalar string, list bool) string {
	dt, ok := datatypes[scalar]
	if !ok {
		dt = "string"
	}
	if list {
		dt += "[]"
	}
	return dt
}

func number(b *field.Bound) interface{} {
	switch {
	case b == nil:
		return nil
	case b.Integer:
		return int64(b.Value)
	}
	return b.Value
}

// reconstructPaths lists every path from a type that is never nested to each
// type reachable from it, sorted.
func reconstructPaths(edges []edge) []string {
	children := make(map[string][]string)
	isChild := make(map[string]bool)
	var parents []string
	for _, e := range edges {
		if _, ok := children[e.parent]; !ok {
			parents = append(parents, e.parent)
		}
		children[e.parent] = append(children[e.parent], e.child)
		isChild[e.child] = true
	}

	unique := make(map[string]bool)
	var walk func(current string, path []string)
	walk = func(current string, path []string) {
		unique[strings.Join(path, ".")] = true
		for _, child := range children[current] {
			if contains(path, child) {
				continue
			}
			walk(child, append(path[:len(path):len(path)], child))
		}
	}
	for _, p := range parents {
		if !isChild[p] {
			walk(p, []string{p})
		}
	}

	paths := make([]string, 0, len(unique))
	for p := range unique {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Marshal writes doc sorted by key with a blank line between entries.
func Marshal(doc map[string]*Node) ([]byte, error) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			out.WriteString("\n")
		}
		var entry bytes.Buffer
		enc := yaml.NewEncoder(&entry)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]*Node{k: doc[k]}); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		out.Write(entry.Bytes())
	}
	return out.Bytes(), nil
}

// Export translates s and marshals the result.
func Export(s *ast.Schema, opts Options) (string, error) {
	data, err := Marshal(Translate(s, opts))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
