package ast

import "github.com/covesa/s2dm/errors"

// ExecutableDefinition is a parsed query document. s2dm never executes it; the
// selection tree is used to prune a schema down to the selected fields.
type ExecutableDefinition struct {
	Operations OperationList
	Fragments  FragmentList
}

type OperationDefinition struct {
	Type       OperationType
	Name       Ident
	Vars       ArgumentsDefinition
	Selections []Selection
	Directives DirectiveList
	Loc        errors.Location
}

type OperationType string

// A Selection is one of Field, InlineFragment or FragmentSpread.
type Selection interface {
	isSelection()
}

type Field struct {
	Alias           Ident
	Name            Ident
	Arguments       ArgumentList
	Directives      DirectiveList
	SelectionSet    []Selection
	SelectionSetLoc errors.Location
}

type Fragment struct {
	On         TypeName
	Selections []Selection
}

type InlineFragment struct {
	Fragment
	Directives DirectiveList
	Loc        errors.Location
}

type FragmentSpread struct {
	Name       Ident
	Directives DirectiveList
	Loc        errors.Location
}

type FragmentDefinition struct {
	Fragment
	Name       Ident
	Directives DirectiveList
	Loc        errors.Location
}

func (Field) isSelection()          {}
func (InlineFragment) isSelection() {}
func (FragmentSpread) isSelection() {}

type OperationList []*OperationDefinition

// Get returns the operation named name, or nil.
func (l OperationList) Get(name string) *OperationDefinition {
	for _, f := range l {
		if f.Name.Name == name {
			return f
		}
	}
	return nil
}

type FragmentList []*FragmentDefinition

// Get returns the fragment named name, or nil.
func (l FragmentList) Get(name string) *FragmentDefinition {
	for _, f := range l {
		if f.Name.Name == name {
			return f
		}
	}
	return nil
}
