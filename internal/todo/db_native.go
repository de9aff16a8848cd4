//go:build !js

package todo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// prepareDatabaseFile resolves path to an absolute location, reports whether
// the file does not exist yet, and makes sure the parent directory is there.
func prepareDatabaseFile(path string) (string, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf("resolving db path: %w", err)
	}

	_, statErr := os.Stat(abs)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", false, fmt.Errorf("creating db parent dir: %w", err)
	}
	return abs, fresh, nil
}

// removeDatabaseFiles best-effort removes a half-initialized db file along
// with its WAL/SHM siblings.
func removeDatabaseFiles(path string) {
	_ = os.Remove(path)
	if paths, err := filepath.Glob(path + "*"); err == nil {
		for _, p := range paths {
			_ = os.Remove(p)
		}
	}
}
