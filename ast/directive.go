package ast

import "github.com/covesa/s2dm/errors"

// Directive is an application of a directive: `@name(arg: value)`.
//
// http://spec.graphql.org/draft/#sec-Language.Directives
type Directive struct {
	Name      Ident
	Arguments ArgumentList
}

// DirectiveDefinition declares a directive's location set and arguments.
//
// http://spec.graphql.org/draft/#sec-Type-System.Directives
type DirectiveDefinition struct {
	Name       string
	Desc       string
	Repeatable bool
	Locations  []string
	Arguments  ArgumentsDefinition
	Loc        errors.Location
}

// DirectiveList keeps applications in source order.
type DirectiveList []*Directive

// Get returns the first application named name.
func (l DirectiveList) Get(name string) *Directive {
	for _, d := range l {
		if d.Name.Name == name {
			return d
		}
	}
	return nil
}

// Has reports whether an application named name exists.
func (l DirectiveList) Has(name string) bool {
	return l.Get(name) != nil
}

// Argument is a named value in a directive application or a field selection.
type Argument struct {
	Name  Ident
	Value Value
}

// ArgumentList is a list of arguments in source order.
type ArgumentList []*Argument

// Get returns the value of the argument named name.
func (l ArgumentList) Get(name string) (Value, bool) {
	for _, arg := range l {
		if arg.Name.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// MustGet returns the value of the argument named name or panics.
func (l ArgumentList) MustGet(name string) Value {
	value, ok := l.Get(name)
	if !ok {
		panic("argument not found")
	}
	return value
}

// DirectivesOf returns the directive applications attached to a named type.
func DirectivesOf(t NamedType) DirectiveList {
	switch t := t.(type) {
	case *ObjectTypeDefinition:
		return t.Directives
	case *InterfaceTypeDefinition:
		return t.Directives
	case *Union:
		return t.Directives
	case *EnumTypeDefinition:
		return t.Directives
	case *InputObject:
		return t.Directives
	case *ScalarTypeDefinition:
		return t.Directives
	}
	return nil
}

// AppendDirective adds d to the applications of t.
func AppendDirective(t NamedType, d *Directive) {
	switch t := t.(type) {
	case *ObjectTypeDefinition:
		t.Directives = append(t.Directives, d)
	case *InterfaceTypeDefinition:
		t.Directives = append(t.Directives, d)
	case *Union:
		t.Directives = append(t.Directives, d)
	case *EnumTypeDefinition:
		t.Directives = append(t.Directives, d)
	case *InputObject:
		t.Directives = append(t.Directives, d)
	case *ScalarTypeDefinition:
		t.Directives = append(t.Directives, d)
	}
}
