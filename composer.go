// Package s2dm composes a GraphQL schema from the bundled S2DM fragments and
// user files, and optionally narrows it to the types reachable from one root
// type or selected by a query.
package s2dm

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/filter"
	"github.com/covesa/s2dm/internal/fsutil"
	"github.com/covesa/s2dm/internal/loader"
	"github.com/covesa/s2dm/internal/printer"
	"github.com/covesa/s2dm/internal/query"
	"github.com/covesa/s2dm/internal/schema"
	"github.com/covesa/s2dm/log"
	"github.com/covesa/s2dm/spec"
	"github.com/covesa/s2dm/trace/noop"
	"github.com/covesa/s2dm/trace/tracer"
)

type Composer struct {
	Tracer tracer.Tracer
	Logger *slog.Logger
	// Bundle holds the fragments loaded ahead of the user files. Nil loads
	// the user files alone.
	Bundle fs.FS
}

func NewComposer() *Composer {
	return &Composer{
		Tracer: noop.Tracer{},
		Logger: log.Discard(),
		Bundle: spec.FS,
	}
}

// Request describes one compose run.
type Request struct {
	Paths []string
	// RootType narrows the schema to the closure of the named type.
	RootType string
	// References annotates every type with @reference(source: ...) naming
	// the file that declared it.
	References bool
	// SelectionQuery prunes the schema to the fields the first query
	// operation of this document selects.
	SelectionQuery    string
	RequireQueryField bool
}

type Result struct {
	Source *loader.Source
	Schema *ast.Schema
	SDL    string
}

// Stage runs fn inside a traced stage.
func (c *Composer) Stage(ctx context.Context, stage string, attrs map[string]interface{}, fn func(ctx context.Context) error) error {
	ctx, finish := c.Tracer.TraceStage(ctx, stage, attrs)
	err := fn(ctx)
	finish(err)
	return err
}

// Load resolves paths and reads the bundled and user fragments.
func (c *Composer) Load(ctx context.Context, paths []string) (*loader.Source, error) {
	var src *loader.Source
	err := c.Stage(ctx, "load", map[string]interface{}{"paths": len(paths)}, func(context.Context) error {
		var err error
		src, err = loader.Load(paths, loader.WithLogger(c.Logger), loader.WithBundle(c.Bundle))
		return err
	})
	return src, err
}

// Build parses src and adds a placeholder query root when it has none.
func (c *Composer) Build(ctx context.Context, src *loader.Source) (*ast.Schema, error) {
	var s *ast.Schema
	err := c.Stage(ctx, "parse", map[string]interface{}{"files": len(src.Files)}, func(context.Context) error {
		var err error
		s, err = src.Parse()
		if err != nil {
			return err
		}
		s = schema.EnsureQuery(s, c.Logger)
		return nil
	})
	return s, err
}

// LoadSchema loads and builds the schema stored at paths.
func (c *Composer) LoadSchema(ctx context.Context, paths []string) (*ast.Schema, *loader.Source, error) {
	src, err := c.Load(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	s, err := c.Build(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	return s, src, nil
}

// Compose loads, filters, prunes and prints the schema req describes.
func (c *Composer) Compose(ctx context.Context, req Request) (*Result, error) {
	s, src, err := c.LoadSchema(ctx, req.Paths)
	if err != nil {
		return nil, err
	}

	if req.RootType != "" {
		err := c.Stage(ctx, "filter", map[string]interface{}{"root": req.RootType}, func(context.Context) error {
			opts := []filter.Option{filter.WithLogger(c.Logger)}
			if req.RequireQueryField {
				opts = append(opts, filter.RequireQueryField())
			}
			var err error
			s, err = filter.Filter(s, req.RootType, opts...)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	if req.SelectionQuery != "" {
		err := c.Stage(ctx, "prune", nil, func(context.Context) error {
			doc, qe := query.Parse(req.SelectionQuery)
			if qe != nil {
				return &errors.ParseError{File: "selection query", Err: qe}
			}
			var err error
			s, err = filter.Prune(s, doc, filter.WithLogger(c.Logger))
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	var sdl string
	err = c.Stage(ctx, "print", map[string]interface{}{"references": req.References}, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var opts []printer.Option
		if req.References {
			opts = append(opts, printer.WithProvenance(src.Provenance))
		}
		sdl = printer.Print(s, opts...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.Logger.Info("composed schema", slog.Int("types", len(s.Types)), slog.Int("bytes", len(sdl)))
	return &Result{Source: src, Schema: s, SDL: sdl}, nil
}

// TempFile writes sdl to a fresh file under dir for tools that want a path.
func (c *Composer) TempFile(dir string, sdl string) (string, error) {
	path, err := fsutil.TempFile(dir, "s2dm-composed-", ".graphql", []byte(sdl))
	if err != nil {
		return "", err
	}
	c.Logger.Debug("wrote composed schema", slog.String("path", path))
	return path, nil
}
