package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"
)

// memFS is an in-memory FS. go-billy's memfs keeps no permission bits it
// can change, so modes set with Chmod are recorded here and reported by Stat.
type memFS struct {
	billy.Filesystem
	modes map[string]os.FileMode
}

func newMemFS(t *testing.T) *memFS {
	t.Helper()
	return &memFS{Filesystem: memfs.New(), modes: map[string]os.FileMode{}}
}

func (m *memFS) Chmod(name string, mode os.FileMode) error {
	if _, err := m.Filesystem.Stat(name); err != nil {
		return err
	}
	m.modes[filepath.Clean(name)] = mode
	return nil
}

func (m *memFS) Stat(name string) (os.FileInfo, error) {
	info, err := m.Filesystem.Stat(name)
	if err != nil {
		return nil, err
	}
	if mode, ok := m.modes[filepath.Clean(name)]; ok {
		return modeInfo{FileInfo: info, mode: mode}, nil
	}
	return info, nil
}

type modeInfo struct {
	os.FileInfo
	mode os.FileMode
}

func (i modeInfo) Mode() os.FileMode { return i.mode }

// realTempDir returns a symlink-free temp dir so resolved paths compare equal.
func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions are not supported on windows")
	}
}

// writeTree creates files (relative path -> content) under root. A path
// ending in "/" creates an empty directory.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0o700))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o700))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

// readTree returns every entry under root as slash path -> content, with
// directories mapped to "/".
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		if d.IsDir() {
			out[filepath.ToSlash(rel)+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

// modes returns the permission bits of every entry under root, root included.
func modes(t *testing.T, root string) map[string]os.FileMode {
	t.Helper()
	out := map[string]os.FileMode{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		out[filepath.ToSlash(rel)] = info.Mode().Perm()
		return nil
	})
	require.NoError(t, err)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
