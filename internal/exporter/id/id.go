// Package id exports the concept identifiers of a schema as a JSON object
// mapping concept names to ids.
package id

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/exporter/concept"
	"github.com/covesa/s2dm/internal/idgen"
	"github.com/covesa/s2dm/log"
)

type Option func(*options)

type options struct {
	units  idgen.Units
	strict bool
	logger *slog.Logger
}

// WithUnits translates unit argument defaults to their symbols.
func WithUnits(units idgen.Units) Option {
	return func(o *options) { o.units = units }
}

// Strict keeps the case of the hashed text.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Generate returns the id of every enum and every leaf field of s. Two
// concepts sharing an id yield errors.ErrDuplicateID.
func Generate(s *ast.Schema, opts ...Option) (map[string]string, error) {
	o := &options{logger: log.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	specs := make(map[string]idgen.Spec)
	c := concept.Collect(s)
	for _, e := range c.Enums {
		specs[e.Name] = idgen.FromEnum(e)
	}
	for _, f := range c.Fields {
		specs[f.Name()] = idgen.FromField(f.Object, f.Definition, o.units)
	}

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	ids := make(map[string]string, len(specs))
	owner := make(map[string]string, len(specs))
	for _, name := range names {
		spec := specs[name]
		id := spec.ID(o.strict)
		if prev, ok := owner[id]; ok {
			return nil, fmt.Errorf("%w: %s for %s and %s", errors.ErrDuplicateID, id, prev, name)
		}
		owner[id] = name
		ids[name] = id
		o.logger.Debug("generated concept id", "concept", name, "id", id, "input", spec.Input(o.strict))
	}
	return ids, nil
}

// Marshal encodes ids as an indented JSON object with sorted keys.
func Marshal(ids map[string]string) ([]byte, error) {
	return json.MarshalIndent(ids, "", "  ")
}

// Export is Generate followed by Marshal.
func Export(s *ast.Schema, opts ...Option) ([]byte, error) {
	ids, err := Generate(s, opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(ids)
}

// Load reads a JSON id map written by Export.
func Load(data []byte) (map[string]string, error) {
	var ids map[string]string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parse concept ids: %w", err)
	}
	return ids, nil
}
