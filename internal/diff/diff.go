// Package diff detects the structural changes between two schemas and rates
// how they affect existing consumers.
package diff

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/printer"
	"github.com/covesa/s2dm/internal/schema"
)

type Criticality string

const (
	Breaking    Criticality = "BREAKING"
	Dangerous   Criticality = "DANGEROUS"
	NonBreaking Criticality = "NON_BREAKING"
)

// Change is one difference between the old and the new schema. Path is the
// dotted coordinate of the changed element.
type Change struct {
	Type        string      `json:"type"`
	Criticality Criticality `json:"criticality"`
	Message     string      `json:"message"`
	Path        string      `json:"path"`
}

// Compare lists the changes that turn old into new, ordered by path.
func Compare(old, new *ast.Schema) []Change {
	d := &differ{}

	for _, op := range []string{"query", "mutation", "subscription"} {
		o, n := rootName(old, op), rootName(new, op)
		if o != n {
			d.add("SCHEMA_ROOT_CHANGED", Breaking, op, "Schema %s root type changed from '%s' to '%s'", op, o, n)
		}
	}

	oldNames, newNames := typeNames(old), typeNames(new)
	kept := make(map[string]bool, len(newNames))
	for _, name := range newNames {
		kept[name] = true
	}
	for _, name := range oldNames {
		ot, nt := old.Types[name], new.Types[name]
		if !kept[name] {
			d.add("TYPE_REMOVED", Breaking, name, "Type '%s' was removed", name)
			continue
		}
		if ot.Kind() != nt.Kind() {
			d.add("TYPE_KIND_CHANGED", Breaking, name, "'%s' kind changed from '%s' to '%s'", name, ot.Kind(), nt.Kind())
			continue
		}
		d.namedType(ot, nt)
	}
	for _, name := range missing(newNames, oldNames) {
		d.add("TYPE_ADDED", NonBreaking, name, "Type '%s' was added", name)
	}

	d.directiveDefinitions(old, new)

	sort.SliceStable(d.changes, func(i, j int) bool {
		if d.changes[i].Path != d.changes[j].Path {
			return d.changes[i].Path < d.changes[j].Path
		}
		return d.changes[i].Message < d.changes[j].Message
	})
	return d.changes
}

type differ struct {
	changes []Change
}

func (d *differ) add(kind string, c Criticality, path, format string, args ...interface{}) {
	d.changes = append(d.changes, Change{Type: kind, Criticality: c, Message: fmt.Sprintf(format, args...), Path: path})
}

func (d *differ) namedType(o, n ast.NamedType) {
	name := o.TypeName()
	if o.Description() != n.Description() {
		d.add("TYPE_DESCRIPTION_CHANGED", NonBreaking, name, "Description of type '%s' changed", name)
	}
	d.directiveUsages(ast.DirectivesOf(o), ast.DirectivesOf(n), name, "type '"+name+"'")

	switch o := o.(type) {
	case *ast.ObjectTypeDefinition:
		n := n.(*ast.ObjectTypeDefinition)
		d.interfaces(name, o.InterfaceNames, n.InterfaceNames)
		d.fields(name, "object type", o.Fields, n.Fields)
	case *ast.InterfaceTypeDefinition:
		n := n.(*ast.InterfaceTypeDefinition)
		d.interfaces(name, o.InterfaceNames, n.InterfaceNames)
		d.fields(name, "interface", o.Fields, n.Fields)
	case *ast.EnumTypeDefinition:
		d.enumValues(o, n.(*ast.EnumTypeDefinition))
	case *ast.Union:
		d.unionMembers(name, o.TypeNames, n.(*ast.Union).TypeNames)
	case *ast.InputObject:
		d.inputFields(name, o.Values, n.(*ast.InputObject).Values)
	}
}

func (d *differ) interfaces(name string, o, n []string) {
	for _, i := range missing(o, n) {
		d.add("OBJECT_TYPE_INTERFACE_REMOVED", Breaking, name, "'%s' no longer implements interface '%s'", name, i)
	}
	for _, i := range missing(n, o) {
		d.add("OBJECT_TYPE_INTERFACE_ADDED", Dangerous, name, "'%s' object implements '%s' interface", name, i)
	}
}

func (d *differ) fields(typeName, kind string, o, n ast.FieldsDefinition) {
	for _, of := range o {
		path := typeName + "." + of.Name
		nf := n.Get(of.Name)
		if nf == nil {
			d.add("FIELD_REMOVED", Breaking, path, "Field '%s' was removed from %s '%s'", of.Name, kind, typeName)
			continue
		}
		if of.Type.String() != nf.Type.String() {
			c := Breaking
			if safeOutput(of.Type, nf.Type) {
				c = NonBreaking
			}
			d.add("FIELD_TYPE_CHANGED", c, path, "Field '%s' changed type from '%s' to '%s'", path, of.Type, nf.Type)
		}
		if of.Desc != nf.Desc {
			d.add("FIELD_DESCRIPTION_CHANGED", NonBreaking, path, "Field '%s' description changed", path)
		}
		d.arguments(path, of.Arguments, nf.Arguments)
		d.directiveUsages(of.Directives, nf.Directives, path, "field '"+path+"'")
	}
	for _, nf := range n {
		if o.Get(nf.Name) == nil {
			d.add("FIELD_ADDED", NonBreaking, typeName+"."+nf.Name, "Field '%s' was added to %s '%s'", nf.Name, kind, typeName)
		}
	}
}

func (d *differ) arguments(field string, o, n ast.ArgumentsDefinition) {
	for _, oa := range o {
		path := field + "." + oa.Name.Name
		na := n.Get(oa.Name.Name)
		if na == nil {
			d.add("FIELD_ARGUMENT_REMOVED", Breaking, path, "Argument '%s' was removed from field '%s'", oa.Name.Name, field)
			continue
		}
		d.inputValue("FIELD_ARGUMENT", "Argument", path, oa, na)
	}
	for _, na := range n {
		if o.Get(na.Name.Name) != nil {
			continue
		}
		c := Dangerous
		if required(na) {
			c = Breaking
		}
		d.add("FIELD_ARGUMENT_ADDED", c, field+"."+na.Name.Name, "Argument '%s: %s' added to field '%s'", na.Name.Name, na.Type, field)
	}
}

func (d *differ) inputFields(typeName string, o, n ast.ArgumentsDefinition) {
	for _, ov := range o {
		path := typeName + "." + ov.Name.Name
		nv := n.Get(ov.Name.Name)
		if nv == nil {
			d.add("INPUT_FIELD_REMOVED", Breaking, path, "Input field '%s' was removed from input object type '%s'", ov.Name.Name, typeName)
			continue
		}
		d.inputValue("INPUT_FIELD", "Input field", path, ov, nv)
	}
	for _, nv := range n {
		if o.Get(nv.Name.Name) != nil {
			continue
		}
		c := Dangerous
		if required(nv) {
			c = Breaking
		}
		d.add("INPUT_FIELD_ADDED", c, typeName+"."+nv.Name.Name, "Input field '%s' of type '%s' was added to input object type '%s'", nv.Name.Name, nv.Type, typeName)
	}
}

func (d *differ) inputValue(kind, label, path string, o, n *ast.InputValueDefinition) {
	if o.Type.String() != n.Type.String() {
		c := Breaking
		if safeOutput(n.Type, o.Type) {
			c = NonBreaking
		}
		d.add(kind+"_TYPE_CHANGED", c, path, "%s '%s' changed type from '%s' to '%s'", label, path, o.Type, n.Type)
	}
	if od, nd := valueString(o.Default), valueString(n.Default); od != nd {
		d.add(kind+"_DEFAULT_VALUE_CHANGED", Dangerous, path, "Default value for %s '%s' changed from '%s' to '%s'", strings.ToLower(label), path, od, nd)
	}
	if o.Desc != n.Desc {
		d.add(kind+"_DESCRIPTION_CHANGED", NonBreaking, path, "Description for %s '%s' changed", strings.ToLower(label), path)
	}
	d.directiveUsages(o.Directives, n.Directives, path, strings.ToLower(label)+" '"+path+"'")
}

func (d *differ) enumValues(o, n *ast.EnumTypeDefinition) {
	nv := make(map[string]*ast.EnumValueDefinition, len(n.EnumValuesDefinition))
	for _, v := range n.EnumValuesDefinition {
		nv[v.EnumValue] = v
	}
	ov := make(map[string]bool, len(o.EnumValuesDefinition))
	for _, v := range o.EnumValuesDefinition {
		ov[v.EnumValue] = true
		path := o.Name + "." + v.EnumValue
		other, ok := nv[v.EnumValue]
		if !ok {
			d.add("ENUM_VALUE_REMOVED", Breaking, path, "Enum value '%s' was removed from enum '%s'", v.EnumValue, o.Name)
			continue
		}
		if v.Desc != other.Desc {
			d.add("ENUM_VALUE_DESCRIPTION_CHANGED", NonBreaking, path, "Description of enum value '%s' changed", path)
		}
		d.directiveUsages(v.Directives, other.Directives, path, "enum value '"+path+"'")
	}
	for _, v := range n.EnumValuesDefinition {
		if !ov[v.EnumValue] {
			d.add("ENUM_VALUE_ADDED", Dangerous, o.Name+"."+v.EnumValue, "Enum value '%s' was added to enum '%s'", v.EnumValue, o.Name)
		}
	}
}

func (d *differ) unionMembers(name string, o, n []string) {
	for _, m := range missing(o, n) {
		d.add("UNION_MEMBER_REMOVED", Breaking, name, "Member '%s' was removed from union type '%s'", m, name)
	}
	for _, m := range missing(n, o) {
		d.add("UNION_MEMBER_ADDED", Dangerous, name, "Member '%s' was added to union type '%s'", m, name)
	}
}

// directiveUsages compares applications such as @range or @cardinality.
// They constrain the data an element carries, so any change is dangerous.
func (d *differ) directiveUsages(o, n ast.DirectiveList, path, element string) {
	render := func(l ast.DirectiveList) map[string]string {
		m := make(map[string]string, len(l))
		for _, dir := range l {
			if _, ok := m[dir.Name.Name]; ok {
				m[dir.Name.Name] += " " + printer.Directive(dir)
				continue
			}
			m[dir.Name.Name] = printer.Directive(dir)
		}
		return m
	}
	om, nm := render(o), render(n)
	for _, name := range sortedKeys(om) {
		nd, ok := nm[name]
		switch {
		case !ok:
			d.add("DIRECTIVE_USAGE_REMOVED", Dangerous, path, "Directive '%s' was removed from %s", name, element)
		case nd != om[name]:
			d.add("DIRECTIVE_USAGE_CHANGED", Dangerous, path, "Directive '%s' on %s changed from '%s' to '%s'", name, element, om[name], nd)
		}
	}
	for _, name := range sortedKeys(nm) {
		if _, ok := om[name]; !ok {
			d.add("DIRECTIVE_USAGE_ADDED", Dangerous, path, "Directive '%s' was added to %s", name, element)
		}
	}
}

func (d *differ) directiveDefinitions(old, new *ast.Schema) {
	for _, od := range old.SortedDirectives() {
		if schema.IsBuiltinDirective(od.Name) {
			continue
		}
		path := "@" + od.Name
		nd, ok := new.Directives[od.Name]
		if !ok {
			d.add("DIRECTIVE_REMOVED", Breaking, path, "Directive '%s' was removed", od.Name)
			continue
		}
		for _, l := range missing(od.Locations, nd.Locations) {
			d.add("DIRECTIVE_LOCATION_REMOVED", Breaking, path, "Location '%s' was removed from directive '%s'", l, od.Name)
		}
		for _, l := range missing(nd.Locations, od.Locations) {
			d.add("DIRECTIVE_LOCATION_ADDED", NonBreaking, path, "Location '%s' was added to directive '%s'", l, od.Name)
		}
		for _, oa := range od.Arguments {
			na := nd.Arguments.Get(oa.Name.Name)
			if na == nil {
				d.add("DIRECTIVE_ARGUMENT_REMOVED", Breaking, path, "Argument '%s' was removed from directive '%s'", oa.Name.Name, od.Name)
				continue
			}
			if oa.Type.String() != na.Type.String() {
				c := Breaking
				if safeOutput(na.Type, oa.Type) {
					c = NonBreaking
				}
				d.add("DIRECTIVE_ARGUMENT_TYPE_CHANGED", c, path, "Type for argument '%s' on directive '%s' changed from '%s' to '%s'", oa.Name.Name, od.Name, oa.Type, na.Type)
			}
		}
		for _, na := range nd.Arguments {
			if od.Arguments.Get(na.Name.Name) != nil {
				continue
			}
			c := NonBreaking
			if required(na) {
				c = Breaking
			}
			d.add("DIRECTIVE_ARGUMENT_ADDED", c, path, "Argument '%s' was added to directive '%s'", na.Name.Name, od.Name)
		}
	}
	for _, nd := range new.SortedDirectives() {
		if schema.IsBuiltinDirective(nd.Name) {
			continue
		}
		if _, ok := old.Directives[nd.Name]; !ok {
			d.add("DIRECTIVE_ADDED", NonBreaking, "@"+nd.Name, "Directive '%s' was added", nd.Name)
		}
	}
}

// safeOutput reports whether a consumer reading values of type o still reads
// values of type n: n may only add non-null wrappers. Input positions use the
// reverse check.
func safeOutput(o, n ast.Type) bool {
	if nn, ok := n.(*ast.NonNull); ok {
		if on, ok := o.(*ast.NonNull); ok {
			return safeOutput(on.OfType, nn.OfType)
		}
		return safeOutput(o, nn.OfType)
	}
	if _, ok := o.(*ast.NonNull); ok {
		return false
	}
	ol, oList := o.(*ast.List)
	nl, nList := n.(*ast.List)
	switch {
	case oList && nList:
		return safeOutput(ol.OfType, nl.OfType)
	case oList || nList:
		return false
	}
	return ast.NamedTypeName(o) == ast.NamedTypeName(n)
}

func required(v *ast.InputValueDefinition) bool {
	_, nonNull := v.Type.(*ast.NonNull)
	return nonNull && v.Default == nil
}

func valueString(v ast.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// typeNames lists the user visible types of s in source order.
func typeNames(s *ast.Schema) []string {
	var names []string
	for _, t := range s.SortedTypes() {
		name := t.TypeName()
		if schema.IsReservedName(name) || schema.IsSynthesizedQuery(t) {
			continue
		}
		if _, ok := t.(*ast.ScalarTypeDefinition); ok && ast.IsBuiltinScalar(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func rootName(s *ast.Schema, op string) string {
	t := s.RootType(op)
	if t == nil || schema.IsSynthesizedQuery(t) {
		return ""
	}
	return t.Name
}

// missing returns the items of a that are not in b, in the order of a.
func missing(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, v := range b {
		in[v] = true
	}
	var out []string
	for _, v := range a {
		if !in[v] {
			out = append(out, v)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Marshal renders changes as an indented JSON array.
func Marshal(changes []Change) ([]byte, error) {
	if changes == nil {
		changes = []Change{}
	}
	return json.MarshalIndent(changes, "", "  ")
}
