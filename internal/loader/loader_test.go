package loader_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/loader"
	"github.com/covesa/s2dm/spec"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProvenance(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.graphql"), `
"A car."
type Vehicle @reference(uri: "http://example.com") {
  door: Door
}
extend type Door @metadata(comment: "x")
`)
	writeFile(t, filepath.Join(dir, "nested", "a.graphql"), `
type Door { isOpen: Boolean }
enum Side { LEFT RIGHT }
`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `type Ignored`)

	src, err := loader.Load([]string{dir})
	require.NoError(t, err)

	assert.Len(t, src.Files, 2)
	assert.Equal(t, "b.graphql", filepath.Base(src.Files[0]))
	assert.Equal(t, "a.graphql", filepath.Base(src.Files[1]))

	assert.Equal(t, "b.graphql", src.Provenance["Vehicle"])
	assert.Equal(t, "a.graphql", src.Provenance["Door"])
	assert.Equal(t, "a.graphql", src.Provenance["Side"])
	assert.Equal(t, spec.Label, src.Provenance["InCabinArea2x2"])
	assert.Equal(t, spec.Label, src.Provenance["UInt32"])
	assert.NotContains(t, src.Provenance, "Ignored")
	assert.NotContains(t, src.Provenance, "range")

	require.Len(t, src.Segments, len(spec.Files)+2)
	assert.Equal(t, 1, src.Segments[0].StartLine)
	for i := 1; i < len(src.Segments); i++ {
		prev := src.Segments[i-1]
		assert.Equal(t, prev.StartLine+prev.Lines, src.Segments[i].StartLine)
	}

	s, err := src.Parse()
	require.NoError(t, err)
	assert.Contains(t, s.Types, "Vehicle")
	assert.Contains(t, s.Directives, "instanceTag")
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.graphql"), "scalar A\n")
	writeFile(t, filepath.Join(dir, "sub", "c.graphql"), "scalar C\n")
	writeFile(t, filepath.Join(dir, "sub", "b.graphql"), "scalar B\n")
	link := filepath.Join(dir, "link.graphql")
	require.NoError(t, os.Symlink(a, link))

	tests := []struct {
		description string
		paths       []string
		want        []string
	}{
		{
			description: "file given twice",
			paths:       []string{a, a},
			want:        []string{"a.graphql"},
		},
		{
			description: "symlink resolves to its target",
			paths:       []string{link, a},
			want:        []string{"a.graphql"},
		},
		{
			description: "directory expands recursively in sorted order",
			paths:       []string{filepath.Join(dir, "sub")},
			want:        []string{"b.graphql", "c.graphql"},
		},
		{
			description: "glob pattern",
			paths:       []string{filepath.Join(dir, "**", "c.graphql")},
			want:        []string{"c.graphql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			files, err := loader.Resolve(tt.paths)
			require.NoError(t, err)
			var got []string
			for _, f := range files {
				assert.True(t, filepath.IsAbs(f))
				got = append(got, filepath.Base(f))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, filepath.Join(dir, "ok.graphql"), "scalar X\n")

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load([]string{ok, filepath.Join(dir, "missing.graphql")})
		var ioErr *errors.IOError
		require.True(t, errors.As(err, &ioErr), "got %v", err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("missing bundled fragment", func(t *testing.T) {
		bundle := fstest.MapFS{
			"custom_directives.graphql": {Data: []byte("directive @x on OBJECT\n")},
		}
		_, err := loader.Load([]string{ok}, loader.WithBundle(bundle))
		var ioErr *errors.IOError
		require.True(t, errors.As(err, &ioErr), "got %v", err)
		assert.Equal(t, "common_types.graphql", ioErr.Path)
	})
}

func TestLoadWithoutBundle(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, filepath.Join(dir, "x.graphql"), "type Query { a: Int }")

	src, err := loader.Load([]string{f}, loader.WithBundle(nil))
	require.NoError(t, err)
	assert.Equal(t, "type Query { a: Int }\n", src.Text)
	assert.Equal(t, loader.Provenance{"Query": "x.graphql"}, src.Provenance)
}

func TestParseErrorNamesTheFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.graphql"), "type A {\n  x: Int\n}\n")
	bad := writeFile(t, filepath.Join(dir, "b.graphql"), "type B {\n  y: Int\n  z: Missing\n}\n")

	src, err := loader.Load([]string{dir}, loader.WithBundle(nil))
	require.NoError(t, err)

	_, err = src.Parse()
	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, bad, pe.File)
	require.NotEmpty(t, pe.Err.Locations)
	assert.Equal(t, 3, pe.Err.Locations[0].Line)
}

func TestUnterminatedBlockStringNamesTheFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.graphql"), "type A {\n  x: Int\n}\n")
	bad := writeFile(t, filepath.Join(dir, "b.graphql"), "type B {\n  y: Int\n}\n\"\"\"never closed\ntype C {\n  z: Int\n}\n")

	src, err := loader.Load([]string{dir}, loader.WithBundle(nil))
	require.NoError(t, err)

	_, err = src.Parse()
	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, bad, pe.File)
	assert.Contains(t, pe.Err.Message, "unterminated block string")
	require.Len(t, pe.Err.Locations, 1)
	assert.Equal(t, errors.Location{Line: 4, Column: 1}, pe.Err.Locations[0])
}

func TestRedeclaringBundledTypeFails(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, filepath.Join(dir, "x.graphql"), "scalar UInt8\n")

	src, err := loader.Load([]string{f})
	require.NoError(t, err)
	_, err = src.Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"UInt8" defined more than once`)
}
