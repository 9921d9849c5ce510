package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/datavault/pkg/mode"
)

func TestNormalizer_SetsUniformModes(t *testing.T) {
	skipOnWindows(t)
	root := realTempDir(t)
	writeTree(t, root, map[string]string{
		"a.txt":            "a",
		"sub/b.txt":        "b",
		"sub/deeper/c.txt": "c",
		"empty/":           "",
	})
	require.NoError(t, os.Chmod(filepath.Join(root, "a.txt"), 0o777))
	require.NoError(t, os.Chmod(filepath.Join(root, "sub"), 0o711))

	err := NewNormalizer(HostFS()).Normalize(root, mode.MustParse("0644"), mode.MustParse("rwxr-xr-x"))
	require.NoError(t, err)

	got := modes(t, root)
	assert.Equal(t, map[string]os.FileMode{
		".":                0o755,
		"a.txt":            0o644,
		"empty":            0o755,
		"sub":              0o755,
		"sub/b.txt":        0o644,
		"sub/deeper":       0o755,
		"sub/deeper/c.txt": 0o644,
	}, got)
}

func TestNormalizer_OpensClosedDirectoriesBeforeListing(t *testing.T) {
	skipOnWindows(t)
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	root := realTempDir(t)
	writeTree(t, root, map[string]string{"locked/inner/f.txt": "f"})
	// Pre-order chmod makes these listable again before they are read.
	require.NoError(t, os.Chmod(filepath.Join(root, "locked", "inner"), 0o100))
	require.NoError(t, os.Chmod(filepath.Join(root, "locked"), 0o100))

	err := NewNormalizer(HostFS()).Normalize(root, mode.MustParse("0600"), mode.MustParse("0700"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), modes(t, root)["locked/inner/f.txt"])
}

func TestNormalizer_MemFS(t *testing.T) {
	mfs := newMemFS(t)
	require.NoError(t, util.WriteFile(mfs, "/root/x/y.txt", []byte("y"), 0o600))
	require.NoError(t, util.WriteFile(mfs, "/root/z.txt", []byte("z"), 0o600))

	require.NoError(t, NewNormalizer(mfs).Normalize("/root", mode.MustParse("r--r-----"), mode.MustParse("0750")))

	for path, want := range map[string]os.FileMode{
		"/root":         os.ModeDir | 0o750,
		"/root/x":       os.ModeDir | 0o750,
		"/root/x/y.txt": 0o440,
		"/root/z.txt":   0o440,
	} {
		info, err := mfs.Stat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, info.Mode(), path)
	}
}

func TestNormalizer_SkipsSymlinks(t *testing.T) {
	skipOnWindows(t)
	root := realTempDir(t)
	outside := realTempDir(t)
	writeTree(t, outside, map[string]string{"target.txt": "t"})
	require.NoError(t, os.Chmod(filepath.Join(outside, "target.txt"), 0o600))
	require.NoError(t, os.Symlink(filepath.Join(outside, "target.txt"), filepath.Join(root, "link")))

	require.NoError(t, NewNormalizer(HostFS()).Normalize(root, mode.MustParse("0644"), mode.MustParse("0755")))

	info, err := os.Stat(filepath.Join(outside, "target.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNormalizer_MissingRoot(t *testing.T) {
	err := NewNormalizer(newMemFS(t)).Normalize("/absent", mode.MustParse("0644"), mode.MustParse("0755"))
	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "/absent", ioe.Path)
}
