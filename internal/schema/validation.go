package schema

import (
	"fmt"
	"strings"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
)

func validateEntryPointName(s *ast.Schema, ident ast.Ident, prev map[string]errors.Location) *errors.QueryError {
	if s == Meta {
		return nil
	}

	switch name := ident.Name; name {
	case "query", "mutation", "subscription":
		if loc, ok := prev[name]; ok {
			return &errors.QueryError{
				Message:   fmt.Sprintf(`%q type provided more than once`, name),
				Locations: []errors.Location{loc, ident.Loc},
			}
		}
	default:
		return &errors.QueryError{
			Message:   fmt.Sprintf(`unexpected %q, expected "query", "mutation" or "subscription"`, name),
			Locations: []errors.Location{ident.Loc},
		}
	}
	return nil
}

func validateTypeName(s *ast.Schema, t ast.NamedType) *errors.QueryError {
	if s == Meta {
		return nil
	}
	name := t.TypeName()
	if err := validatePrefix(name, t.Location()); err != nil {
		return err
	}
	if _, ok := Meta.Types[name]; ok {
		return &errors.QueryError{
			Message:   fmt.Sprintf(`built-in type %q redefined`, name),
			Locations: []errors.Location{t.Location()},
		}
	}
	if prev, ok := s.Types[name]; ok {
		return &errors.QueryError{
			Message:   fmt.Sprintf(`%q defined more than once`, name),
			Locations: []errors.Location{prev.Location(), t.Location()},
		}
	}
	return nil
}

func validateDirectiveName(s *ast.Schema, d *ast.DirectiveDefinition) *errors.QueryError {
	if s == Meta {
		return nil
	}
	name := d.Name
	if err := validatePrefix(name, d.Loc); err != nil {
		return err
	}
	if _, ok := Meta.Directives[name]; ok {
		return &errors.QueryError{
			Message:   fmt.Sprintf(`built-in directive %q redefined`, name),
			Locations: []errors.Location{d.Loc},
		}
	}
	if prev, ok := s.Directives[name]; ok {
		return &errors.QueryError{
			Message:   fmt.Sprintf(`%q defined more than once`, name),
			Locations: []errors.Location{prev.Loc, d.Loc},
		}
	}
	return nil
}

func validatePrefix(name string, loc errors.Location) *errors.QueryError {
	if strings.HasPrefix(name, "__") {
		return &errors.QueryError{
			Message:   fmt.Sprintf(`%q must not begin with "__", reserved for introspection types`, name),
			Locations: []errors.Location{loc},
		}
	}
	return nil
}
