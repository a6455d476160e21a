// Package loader resolves schema paths, reads the bundled fragments and the
// user files and records which file declared each type.
package loader

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/covesa/s2dm/ast"
	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/common"
	"github.com/covesa/s2dm/internal/schema"
	"github.com/covesa/s2dm/log"
	"github.com/covesa/s2dm/spec"
)

// Provenance maps a type name to the base name of the file declaring it, or to
// spec.Label for bundled types.
type Provenance map[string]string

// Segment is the line span one fragment occupies in the combined text.
type Segment struct {
	// Path is empty for bundled fragments.
	Path      string
	Label     string
	StartLine int
	Lines     int
}

// Source is the combined SDL of a load.
type Source struct {
	// Files holds the resolved user files in load order.
	Files      []string
	Text       string
	Provenance Provenance
	Segments   []Segment
}

type Option func(*options)

type options struct {
	logger *slog.Logger
	bundle fs.FS
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithBundle reads the bundled fragments from fsys instead of spec.FS. A nil
// fsys loads the user files alone.
func WithBundle(fsys fs.FS) Option {
	return func(o *options) { o.bundle = fsys }
}

// Load resolves paths and concatenates the bundled fragments followed by the
// user files. Directories are searched recursively for *.graphql files and
// paths holding glob characters are expanded.
func Load(paths []string, opts ...Option) (*Source, error) {
	o := &options{logger: log.Discard(), bundle: spec.FS}
	for _, opt := range opts {
		opt(o)
	}

	files, err := Resolve(paths)
	if err != nil {
		return nil, err
	}

	src := &Source{Files: files, Provenance: make(Provenance)}
	var b strings.Builder
	line := 1
	add := func(path, label, text string) error {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		defs, qe := common.ScanDefinitions(text)
		if qe != nil {
			return &errors.ParseError{File: label, Err: qe}
		}
		for _, d := range defs {
			if d.Extension || d.Name == "" || d.Keyword == "directive" {
				continue
			}
			if _, ok := src.Provenance[d.Name]; !ok {
				src.Provenance[d.Name] = label
			}
		}
		n := strings.Count(text, "\n")
		src.Segments = append(src.Segments, Segment{Path: path, Label: label, StartLine: line, Lines: n})
		line += n
		b.WriteString(text)
		o.logger.Debug("loaded schema fragment", slog.String("source", label), slog.Int("definitions", len(defs)))
		return nil
	}

	if o.bundle != nil {
		for _, name := range spec.Files {
			data, err := fs.ReadFile(o.bundle, name)
			if err != nil {
				return nil, &errors.IOError{Op: "read bundled fragment", Path: name, Err: err}
			}
			if err := add("", spec.Label, string(data)); err != nil {
				return nil, err
			}
		}
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, &errors.IOError{Op: "read schema file", Path: f, Err: err}
		}
		if err := add(f, filepath.Base(f), string(data)); err != nil {
			return nil, err
		}
	}

	src.Text = b.String()
	o.logger.Info("loaded schema sources", slog.Int("files", len(files)), slog.Int("types", len(src.Provenance)))
	return src, nil
}

// Resolve expands paths into a sorted list of absolute .graphql files with
// symlinks evaluated and duplicates removed.
func Resolve(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	addFile := func(p string) error {
		abs, err := filepath.Abs(p)
		if err != nil {
			return &errors.IOError{Op: "resolve", Path: p, Err: err}
		}
		real, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return &errors.IOError{Op: "resolve", Path: p, Err: err}
		}
		if !seen[real] {
			seen[real] = true
			files = append(files, real)
		}
		return nil
	}

	for _, p := range paths {
		if containsGlob(p) {
			matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
			if err != nil {
				return nil, &errors.IOError{Op: "glob", Path: p, Err: err}
			}
			if len(matches) == 0 {
				return nil, &errors.IOError{Op: "glob", Path: p, Err: fs.ErrNotExist}
			}
			for _, m := range matches {
				if err := addFile(m); err != nil {
					return nil, err
				}
			}
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, &errors.IOError{Op: "stat", Path: p, Err: err}
		}
		if !info.IsDir() {
			if err := addFile(p); err != nil {
				return nil, err
			}
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(p), "**/*.graphql", doublestar.WithFilesOnly())
		if err != nil {
			return nil, &errors.IOError{Op: "glob", Path: p, Err: err}
		}
		for _, m := range matches {
			if err := addFile(filepath.Join(p, filepath.FromSlash(m))); err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Locate maps a line of the combined text to its segment and the line within
// that segment.
func (s *Source) Locate(line int) (Segment, int, bool) {
	for _, seg := range s.Segments {
		if line >= seg.StartLine && line < seg.StartLine+seg.Lines {
			return seg, line - seg.StartLine + 1, true
		}
	}
	return Segment{}, 0, false
}

// Parse builds the schema graph of the combined text. Parse errors name the
// fragment and the line in it.
func (s *Source) Parse(opts ...schema.Option) (*ast.Schema, error) {
	sch, err := schema.Parse(s.Text, opts...)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			return nil, s.translate(pe.Err)
		}
		return nil, err
	}
	return sch, nil
}

func (s *Source) translate(qe *errors.QueryError) *errors.ParseError {
	out := &errors.QueryError{Message: qe.Message, Rule: qe.Rule, Err: qe.Err}
	file := ""
	for _, loc := range qe.Locations {
		seg, line, ok := s.Locate(loc.Line)
		if !ok {
			out.Locations = append(out.Locations, loc)
			continue
		}
		if file == "" {
			file = seg.Label
			if seg.Path != "" {
				file = seg.Path
			}
		}
		out.Locations = append(out.Locations, errors.Location{Line: line, Column: loc.Column})
	}
	return &errors.ParseError{File: file, Err: out}
}
