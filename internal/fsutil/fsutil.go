// Package fsutil writes output files so that readers never observe a partial
// file.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"

	"github.com/covesa/s2dm/errors"
)

// WriteFile writes data to a fresh file next to path and renames it over
// path. Missing parent directories are created.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &errors.IOError{Op: "create directory", Path: dir, Err: err}
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+ksuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, data, perm); err != nil {
		os.Remove(tmp)
		return &errors.IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &errors.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// TempFile writes data to a new file in dir (the system temp directory when
// empty) named prefix, a KSUID and ext, and returns its path.
func TempFile(dir, prefix, ext string, data []byte) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, prefix+ksuid.New().String()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &errors.IOError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}
