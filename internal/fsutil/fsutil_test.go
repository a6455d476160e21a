package fsutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/internal/fsutil"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.graphql")

	require.NoError(t, fsutil.WriteFile(path, []byte("type A"), 0o644))
	require.NoError(t, fsutil.WriteFile(path, []byte("type B"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "type B", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteFileFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := fsutil.WriteFile(filepath.Join(blocker, "out.graphql"), []byte("x"), 0o644)
	var ioErr *errors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "create directory", ioErr.Op)
}

func TestTempFile(t *testing.T) {
	dir := t.TempDir()
	a, err := fsutil.TempFile(dir, "composed-", ".graphql", []byte("type A"))
	require.NoError(t, err)
	b, err := fsutil.TempFile(dir, "composed-", ".graphql", []byte("type A"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(filepath.Base(a), "composed-"))
	assert.Equal(t, ".graphql", filepath.Ext(a))
	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "type A", string(data))
}
