package inspect

import (
	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/internal/schema"
)

// Stats counts the named types of a schema per kind. CustomTypes counts the
// scalars that are not built in.
type Stats struct {
	Object      int            `json:"object"`
	Enum        int            `json:"enum"`
	Scalar      int            `json:"scalar"`
	Interface   int            `json:"interface"`
	Union       int            `json:"union"`
	InputObject int            `json:"input_object"`
	CustomTypes map[string]int `json:"custom_types"`
}

func Count(s *ast.Schema) Stats {
	st := Stats{CustomTypes: make(map[string]int)}
	for name, t := range s.Types {
		if schema.IsReservedName(name) {
			continue
		}
		switch t.(type) {
		case *ast.ObjectTypeDefinition:
			st.Object++
		case *ast.EnumTypeDefinition:
			st.Enum++
		case *ast.ScalarTypeDefinition:
			st.Scalar++
			if !ast.IsBuiltinScalar(name) {
				st.CustomTypes[name]++
			}
		case *ast.InterfaceTypeDefinition:
			st.Interface++
		case *ast.Union:
			st.Union++
		case *ast.InputObject:
			st.InputObject++
		}
	}
	return st
}
