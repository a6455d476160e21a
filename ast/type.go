package ast

import "github.com/covesa/s2dm/errors"

// Type is a type reference: a wrapper or a named type.
//
// http://spec.graphql.org/draft/#sec-Types
type Type interface {
	// Kind returns one possible GraphQL type kind. A type kind must be
	// valid as defined by the GraphQL spec.
	//
	// https://spec.graphql.org/draft/#sec-Type-Kinds
	Kind() string

	// String serializes a Type into the SDL notation of a type reference.
	String() string
}

// NamedType is a definition with a name, a description and a position in the
// composed source.
type NamedType interface {
	Type
	TypeName() string
	Description() string
	Location() errors.Location
}

// List represents a GraphQL list wrapper.
//
// http://spec.graphql.org/draft/#sec-List
type List struct {
	OfType Type
}

// NonNull represents a GraphQL non-null wrapper.
//
// http://spec.graphql.org/draft/#sec-Non-Null
type NonNull struct {
	OfType Type
}

// TypeName is a type reference that has not been bound to a definition. It
// survives in the graph only when a schema is parsed leniently and the name is
// unknown.
type TypeName struct {
	Ident
}

func (*List) Kind() string     { return "LIST" }
func (*NonNull) Kind() string  { return "NON_NULL" }
func (*TypeName) Kind() string { panic("TypeName needs to be resolved to actual type") }

func (t *List) String() string    { return "[" + t.OfType.String() + "]" }
func (t *NonNull) String() string { return t.OfType.String() + "!" }
func (t *TypeName) String() string {
	return t.Name
}

// Unwrap strips every list and non-null wrapper from t.
func Unwrap(t Type) Type {
	for {
		switch w := t.(type) {
		case *List:
			t = w.OfType
		case *NonNull:
			t = w.OfType
		default:
			return t
		}
	}
}

// NamedTypeName returns the innermost type name of t, bound or not.
func NamedTypeName(t Type) string {
	switch inner := Unwrap(t).(type) {
	case NamedType:
		return inner.TypeName()
	case *TypeName:
		return inner.Name
	}
	return ""
}

// ListDepth counts the list wrappers around the innermost type of t.
func ListDepth(t Type) int {
	depth := 0
	for {
		switch w := t.(type) {
		case *List:
			depth++
			t = w.OfType
		case *NonNull:
			t = w.OfType
		default:
			return depth
		}
	}
}

// Ident is a name together with the position it was read from.
type Ident struct {
	Name string
	Loc  errors.Location
}
