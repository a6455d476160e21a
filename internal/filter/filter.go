package filter

import (
	"log/slog"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/schema"
)

// Filter returns a new schema holding the closure of root. The query root is
// kept as is when root names it; otherwise it is narrowed to the first query
// field returning root. Mutation and subscription roots survive only when they
// are the root. s is not modified.
//
// The result may reference types outside the closure, through field arguments
// or instance tag objects, and re-parses with schema.Lenient.
func Filter(s *ast.Schema, root string, opts ...Option) (*ast.Schema, error) {
	o := newOptions(opts)

	c, err := Referenced(s, root)
	if err != nil {
		return nil, err
	}

	out := reduced(s)
	for name, t := range c.types {
		out.Types[name] = t
	}

	query := s.RootType("query")
	switch {
	case query != nil && query.Name == root:
		setRoot(out, "query", query)

	default:
		f := fieldReturning(query, root)
		if f != nil {
			narrowed := &ast.ObjectTypeDefinition{
				Name:   "Query",
				Fields: ast.FieldsDefinition{f},
				Loc:    query.Loc,
			}
			out.Types[narrowed.Name] = narrowed
			setRoot(out, "query", narrowed)
			break
		}
		if o.requireQueryField {
			return nil, &errors.NotFoundError{Kind: "Query field for root type", Name: root, Err: errors.ErrNoQueryField}
		}
		o.logger.Warn("no query field returns the root type, using a placeholder query", slog.String("root", root))
	}

	for _, op := range []string{"mutation", "subscription"} {
		if t := s.RootType(op); t != nil && t.Name == root {
			setRoot(out, op, t)
		}
	}

	index(out, s)
	schema.EnsureQuery(out, o.logger)
	o.logger.Info("filtered schema", slog.String("root", root), slog.Int("types", c.Len()))
	return out, nil
}

// fieldReturning finds the first field of query, in declaration order, whose
// unwrapped type is named root.
func fieldReturning(query *ast.ObjectTypeDefinition, root string) *ast.FieldDefinition {
	if query == nil {
		return nil
	}
	for _, f := range query.Fields {
		if ast.NamedTypeName(f.Type) == root {
			return f
		}
	}
	return nil
}

// reduced returns an empty copy of s keeping the schema block, the built-in
// scalars and every directive declaration.
func reduced(s *ast.Schema) *ast.Schema {
	out := &ast.Schema{
		SchemaDefinition: ast.SchemaDefinition{
			Present:            s.Present,
			RootOperationTypes: make(map[string]ast.NamedType),
			EntryPointNames:    make(map[string]string),
			Desc:               s.SchemaDefinition.Desc,
			Directives:         s.SchemaDefinition.Directives,
			Loc:                s.SchemaDefinition.Loc,
		},
		Types:      make(map[string]ast.NamedType),
		Directives: make(map[string]*ast.DirectiveDefinition, len(s.Directives)),
	}
	for name, t := range s.Types {
		if ast.IsBuiltinScalar(name) {
			out.Types[name] = t
		}
	}
	for name, d := range s.Directives {
		out.Directives[name] = d
	}
	return out
}

func setRoot(s *ast.Schema, op string, t *ast.ObjectTypeDefinition) {
	s.Types[t.Name] = t
	s.RootOperationTypes[op] = t
	s.EntryPointNames[op] = t.Name
}

// index fills the Objects, Unions and Enums lists of out in the order of src.
// Types that only exist in out are appended.
func index(out, src *ast.Schema) {
	seen := make(map[string]bool)
	for _, obj := range src.Objects {
		if t, ok := out.Types[obj.Name].(*ast.ObjectTypeDefinition); ok {
			out.Objects = append(out.Objects, t)
			seen[obj.Name] = true
		}
	}
	for _, t := range out.SortedTypes() {
		if obj, ok := t.(*ast.ObjectTypeDefinition); ok && !seen[obj.Name] {
			out.Objects = append(out.Objects, obj)
		}
	}
	for _, u := range src.Unions {
		if out.Types[u.Name] == ast.NamedType(u) {
			out.Unions = append(out.Unions, u)
		}
	}
	for _, e := range src.Enums {
		if out.Types[e.Name] == ast.NamedType(e) {
			out.Enums = append(out.Enums, e)
		}
	}
}
