package ast

import "github.com/covesa/s2dm/errors"

// ObjectTypeDefinition represents a GraphQL ObjectTypeDefinition.
//
// type FooObject {
//		foo: String
// }
//
// https://spec.graphql.org/draft/#sec-Objects
type ObjectTypeDefinition struct {
	Name           string
	Interfaces     []*InterfaceTypeDefinition
	Fields         FieldsDefinition
	Desc           string
	Directives     DirectiveList
	InterfaceNames []string
	Loc            errors.Location
}

func (*ObjectTypeDefinition) Kind() string          { return "OBJECT" }
func (t *ObjectTypeDefinition) String() string      { return t.Name }
func (t *ObjectTypeDefinition) TypeName() string    { return t.Name }
func (t *ObjectTypeDefinition) Description() string { return t.Desc }
func (t *ObjectTypeDefinition) Location() errors.Location {
	return t.Loc
}

// InterfaceTypeDefinition represents a list of named fields and their arguments.
//
// http://spec.graphql.org/draft/#sec-Interfaces
type InterfaceTypeDefinition struct {
	Name           string
	PossibleTypes  []*ObjectTypeDefinition
	Interfaces     []*InterfaceTypeDefinition
	Fields         FieldsDefinition
	Desc           string
	Directives     DirectiveList
	InterfaceNames []string
	Loc            errors.Location
}

func (*InterfaceTypeDefinition) Kind() string          { return "INTERFACE" }
func (t *InterfaceTypeDefinition) String() string      { return t.Name }
func (t *InterfaceTypeDefinition) TypeName() string    { return t.Name }
func (t *InterfaceTypeDefinition) Description() string { return t.Desc }
func (t *InterfaceTypeDefinition) Location() errors.Location {
	return t.Loc
}

// Union types represent objects that could be one of a list of GraphQL object types, but provides no
// guaranteed fields between those types.
//
// http://spec.graphql.org/draft/#sec-Unions
type Union struct {
	Name             string
	UnionMemberTypes []*ObjectTypeDefinition
	Desc             string
	Directives       DirectiveList
	TypeNames        []string
	Loc              errors.Location
}

func (*Union) Kind() string                { return "UNION" }
func (t *Union) String() string            { return t.Name }
func (t *Union) TypeName() string          { return t.Name }
func (t *Union) Description() string       { return t.Desc }
func (t *Union) Location() errors.Location { return t.Loc }

// EnumTypeDefinition types describe a set of possible values.
//
// http://spec.graphql.org/draft/#sec-Enums
type EnumTypeDefinition struct {
	Name                 string
	EnumValuesDefinition []*EnumValueDefinition
	Desc                 string
	Directives           DirectiveList
	Loc                  errors.Location
}

func (*EnumTypeDefinition) Kind() string          { return "ENUM" }
func (t *EnumTypeDefinition) String() string      { return t.Name }
func (t *EnumTypeDefinition) TypeName() string    { return t.Name }
func (t *EnumTypeDefinition) Description() string { return t.Desc }
func (t *EnumTypeDefinition) Location() errors.Location {
	return t.Loc
}

// Values returns the enum value names in declaration order.
func (t *EnumTypeDefinition) Values() []string {
	values := make([]string, len(t.EnumValuesDefinition))
	for i, v := range t.EnumValuesDefinition {
		values[i] = v.EnumValue
	}
	return values
}

// EnumValueDefinition is a single value of an enum.
//
// http://spec.graphql.org/draft/#EnumValueDefinition
type EnumValueDefinition struct {
	EnumValue  string
	Directives DirectiveList
	Desc       string
	Loc        errors.Location
}

// InputObject types define a set of input fields; the input fields are either scalars, enums, or
// other input objects.
//
// http://spec.graphql.org/draft/#sec-Input-Objects
type InputObject struct {
	Name       string
	Desc       string
	Values     ArgumentsDefinition
	Directives DirectiveList
	Loc        errors.Location
}

func (*InputObject) Kind() string                { return "INPUT_OBJECT" }
func (t *InputObject) String() string            { return t.Name }
func (t *InputObject) TypeName() string          { return t.Name }
func (t *InputObject) Description() string       { return t.Desc }
func (t *InputObject) Location() errors.Location { return t.Loc }

// ScalarTypeDefinition types represent primitive leaf values (e.g. a string or an integer) in a GraphQL type
// system.
//
// https://spec.graphql.org/draft/#sec-Scalars
type ScalarTypeDefinition struct {
	Name       string
	Desc       string
	Directives DirectiveList
	Loc        errors.Location
}

func (*ScalarTypeDefinition) Kind() string          { return "SCALAR" }
func (t *ScalarTypeDefinition) String() string      { return t.Name }
func (t *ScalarTypeDefinition) TypeName() string    { return t.Name }
func (t *ScalarTypeDefinition) Description() string { return t.Desc }
func (t *ScalarTypeDefinition) Location() errors.Location {
	return t.Loc
}

// FieldsDefinition is an ordered list of field definitions.
//
// http://spec.graphql.org/draft/#FieldsDefinition
type FieldsDefinition []*FieldDefinition

// Get returns a FieldDefinition in a FieldsDefinition by name or nil if not found.
func (l FieldsDefinition) Get(name string) *FieldDefinition {
	for _, f := range l {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Names returns a slice of FieldDefinition names.
func (l FieldsDefinition) Names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.Name
	}
	return names
}

// FieldDefinition is a representation of a GraphQL FieldDefinition.
//
// http://spec.graphql.org/draft/#FieldDefinition
type FieldDefinition struct {
	Name       string
	Arguments  ArgumentsDefinition
	Type       Type
	Directives DirectiveList
	Desc       string
	Loc        errors.Location
}

// InputValueDefinition is a representation of the GraphQL InputValueDefinition.
//
// http://spec.graphql.org/draft/#InputValueDefinition
type InputValueDefinition struct {
	Name       Ident
	Type       Type
	Default    Value
	Desc       string
	Directives DirectiveList
	Loc        errors.Location
	TypeLoc    errors.Location
}

// ArgumentsDefinition is an ordered list of input value definitions.
type ArgumentsDefinition []*InputValueDefinition

// Get returns an InputValueDefinition in an ArgumentsDefinition by name or nil if not found.
func (a ArgumentsDefinition) Get(name string) *InputValueDefinition {
	for _, inputValue := range a {
		if inputValue.Name.Name == name {
			return inputValue
		}
	}
	return nil
}

var builtinScalars = map[string]bool{
	"Int":     true,
	"Float":   true,
	"String":  true,
	"Boolean": true,
	"ID":      true,
}

// IsBuiltinScalar reports whether name is one of the five scalars every schema has.
func IsBuiltinScalar(name string) bool {
	return builtinScalars[name]
}
