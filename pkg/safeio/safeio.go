// Package safeio holds path helpers that keep writes inside a configured root.
package safeio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath returns the absolute, cleaned form of p with every symlink in
// its existing part resolved. Components that do not exist yet are appended
// unchanged, so the result is meaningful for paths that are about to be created.
func ResolvePath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", p, err)
	}

	existing := abs
	var rest []string
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("cannot access %s: %w", existing, err)
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}

	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks in %s: %w", existing, err)
	}
	return filepath.Join(append([]string{resolved}, rest...)...), nil
}

// Within reports whether path equals root or lies beneath it. Both arguments
// must already be absolute and clean (see ResolvePath).
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Contains resolves root and path and reports whether path lies inside root.
func Contains(root, path string) (bool, error) {
	r, err := ResolvePath(root)
	if err != nil {
		return false, err
	}
	p, err := ResolvePath(path)
	if err != nil {
		return false, err
	}
	return Within(r, p), nil
}

// IsDirEmpty reports whether dir has no entries at all. A directory that
// cannot be listed counts as not empty, so callers never overwrite content
// they could not inspect.
func IsDirEmpty(dir string) bool {
	f, err := os.Open(dir) // #nosec G304 -- only lists entry names
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	return errors.Is(err, io.EOF)
}
