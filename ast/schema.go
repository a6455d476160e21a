package ast

import (
	"sort"

	"github.com/covesa/s2dm/errors"
)

// Schema represents a composed type system: named type definitions, directive
// declarations and the root operation types for `query`, `mutation` and
// `subscription`.
//
// http://spec.graphql.org/draft/#sec-Schema
type Schema struct {
	// SchemaDefinition corresponds to the `schema` sdl keyword.
	SchemaDefinition

	// Types holds every named type, built-in scalars included.
	//
	// http://spec.graphql.org/draft/#sec-Types
	Types map[string]NamedType

	// Directives holds every directive declaration, built-in ones included.
	//
	// http://spec.graphql.org/#sec-Type-System.Directives
	Directives map[string]*DirectiveDefinition

	Objects      []*ObjectTypeDefinition
	Unions       []*Union
	Enums        []*EnumTypeDefinition
	Extensions   []*Extension
	SchemaString string
}

func (s *Schema) Resolve(name string) Type {
	t, ok := s.Types[name]
	if !ok {
		return nil
	}
	return t
}

// RootType returns the object type bound to the operation ("query",
// "mutation" or "subscription"), or nil.
func (s *Schema) RootType(operation string) *ObjectTypeDefinition {
	t, ok := s.RootOperationTypes[operation]
	if !ok {
		return nil
	}
	obj, _ := t.(*ObjectTypeDefinition)
	return obj
}

// IsRootTypeName reports whether name is bound to any root operation.
func (s *Schema) IsRootTypeName(name string) bool {
	for _, t := range s.RootOperationTypes {
		if t.TypeName() == name {
			return true
		}
	}
	return false
}

// SortedTypes returns the named types ordered by their source location. Types
// without a location (synthesized ones) come first; ties break by name.
func (s *Schema) SortedTypes() []NamedType {
	types := make([]NamedType, 0, len(s.Types))
	for _, t := range s.Types {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		li, lj := types[i].Location(), types[j].Location()
		if li != lj {
			return li.Before(lj)
		}
		return types[i].TypeName() < types[j].TypeName()
	})
	return types
}

// SortedDirectives returns the directive declarations ordered like SortedTypes.
func (s *Schema) SortedDirectives() []*DirectiveDefinition {
	dirs := make([]*DirectiveDefinition, 0, len(s.Directives))
	for _, d := range s.Directives {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		if dirs[i].Loc != dirs[j].Loc {
			return dirs[i].Loc.Before(dirs[j].Loc)
		}
		return dirs[i].Name < dirs[j].Name
	})
	return dirs
}

// SchemaDefinition is an optional schema block.
// If the schema definition is present it might contain a description and directives. It also contains a map of root operations. For example:
//
//	schema {
//	  query: Query
//	  mutation: Mutation
//	}
//
// If the root operations have default names (i.e. Query, Mutation and Subscription), then the schema definition can be omitted.
//
// https://spec.graphql.org/October2021/#sec-Schema
type SchemaDefinition struct {
	// Present is true if the schema definition is not omitted, false otherwise.
	Present bool

	// RootOperationTypes determines the place in the type system where `query`, `mutation`, and
	// `subscription` operations begin.
	//
	// http://spec.graphql.org/draft/#sec-Root-Operation-Types
	RootOperationTypes map[string]NamedType

	EntryPointNames map[string]string
	Desc            string
	Directives      DirectiveList
	Loc             errors.Location
}

// Extension is an `extend` definition merged into the type it names.
//
// https://spec.graphql.org/October2021/#sec-Type-Extensions
type Extension struct {
	Type       NamedType
	Directives DirectiveList
	Loc        errors.Location
}
