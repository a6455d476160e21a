// Package filter reduces a schema graph to the part reachable from a root
// type or selected by a query document.
package filter

import (
	"log/slog"
	"sort"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/instancetag"
	"github.com/covesa/s2dm/internal/schema"
	"github.com/covesa/s2dm/log"
)

// Closure is the set of named types reachable from a root type.
type Closure struct {
	root  string
	types map[string]ast.NamedType
}

func (c *Closure) Root() string { return c.root }

func (c *Closure) Has(name string) bool {
	_, ok := c.types[name]
	return ok
}

func (c *Closure) Len() int { return len(c.types) }

// Names returns the type names in the closure, sorted.
func (c *Closure) Names() []string {
	names := make([]string, 0, len(c.types))
	for n := range c.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Types returns the closure's types keyed by name. The map is a copy.
func (c *Closure) Types() map[string]ast.NamedType {
	types := make(map[string]ast.NamedType, len(c.types))
	for n, t := range c.types {
		types[n] = t
	}
	return types
}

// Referenced walks the graph depth first from root. Root operation types
// other than root itself are not entered, and an @instanceTag object is
// collected without following its fields.
func Referenced(s *ast.Schema, root string) (*Closure, error) {
	if _, ok := s.Types[root]; !ok {
		return nil, &errors.NotFoundError{Kind: "Root type", Name: root}
	}

	c := &Closure{root: root, types: make(map[string]ast.NamedType)}
	visited := make(map[string]bool)

	var visit func(name string)
	visitType := func(t ast.Type) {
		if name := ast.NamedTypeName(t); name != "" {
			visit(name)
		}
	}
	visitFields := func(fields ast.FieldsDefinition) {
		for _, f := range fields {
			visitType(f.Type)
		}
	}

	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true

		if schema.IsReservedName(name) || (name != root && schema.IsRootName(s, name)) {
			return
		}
		t, ok := s.Types[name]
		if !ok {
			return
		}
		c.types[name] = t

		switch t := t.(type) {
		case *ast.ObjectTypeDefinition:
			if instancetag.IsTag(t) {
				return
			}
			visitFields(t.Fields)
			for _, name := range t.InterfaceNames {
				visit(name)
			}
		case *ast.InterfaceTypeDefinition:
			visitFields(t.Fields)
		case *ast.Union:
			for _, name := range t.TypeNames {
				visit(name)
			}
		case *ast.InputObject:
			for _, v := range t.Values {
				visitType(v.Type)
			}
		}
	}
	visit(root)
	return c, nil
}

// Option configures Filter and Prune.
type Option func(*options)

type options struct {
	logger            *slog.Logger
	requireQueryField bool
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// RequireQueryField makes Filter fail with errors.ErrNoQueryField when no
// field of the query root returns the filter root, instead of falling back to
// the placeholder query.
func RequireQueryField() Option {
	return func(o *options) { o.requireQueryField = true }
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.Discard()
	}
	return o
}
