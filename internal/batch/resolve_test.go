package batch

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveFixture lays out <tmp>/src/A holding one file and an empty import
// root at <tmp>/import.
type resolveFixture struct {
	source string
	root   string
}

func newResolveFixture(t *testing.T) resolveFixture {
	t.Helper()
	base := realTempDir(t)
	f := resolveFixture{
		source: filepath.Join(base, "src", "A"),
		root:   filepath.Join(base, "import"),
	}
	writeTree(t, f.source, map[string]string{"data.txt": "data"})
	require.NoError(t, os.MkdirAll(f.root, 0o755))
	return f
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, f resolveFixture)
		target func(f resolveFixture) string
		want   func(f resolveFixture) string
	}{
		{
			name:   "same name, target absent",
			target: func(f resolveFixture) string { return filepath.Join(f.root, "A") },
			want:   func(f resolveFixture) string { return filepath.Join(f.root, "A") },
		},
		{
			name: "same name, target empty",
			setup: func(t *testing.T, f resolveFixture) {
				require.NoError(t, os.Mkdir(filepath.Join(f.root, "A"), 0o755))
			},
			target: func(f resolveFixture) string { return filepath.Join(f.root, "A") },
			want:   func(f resolveFixture) string { return filepath.Join(f.root, "A") },
		},
		{
			name:   "different name, target absent",
			target: func(f resolveFixture) string { return filepath.Join(f.root, "B") },
			want:   func(f resolveFixture) string { return filepath.Join(f.root, "B", "A") },
		},
		{
			name: "different name, target has content",
			setup: func(t *testing.T, f resolveFixture) {
				writeTree(t, f.root, map[string]string{"B/A/old.txt": "old"})
			},
			target: func(f resolveFixture) string { return filepath.Join(f.root, "B") },
			want:   func(f resolveFixture) string { return filepath.Join(f.root, "B", "A") },
		},
		{
			name:   "import root itself",
			target: func(f resolveFixture) string { return f.root },
			want:   func(f resolveFixture) string { return filepath.Join(f.root, "A") },
		},
		{
			name:   "unclean target inside root",
			target: func(f resolveFixture) string { return f.root + "/x/../B/" },
			want:   func(f resolveFixture) string { return filepath.Join(f.root, "B", "A") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newResolveFixture(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}
			before := readTree(t, filepath.Dir(f.root))

			got, err := Resolve(f.source, tt.target(f), f.root)
			require.NoError(t, err)
			assert.Equal(t, tt.want(f), got)
			assert.Equal(t, before, readTree(t, filepath.Dir(f.root)), "Resolve must not modify the filesystem")
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f resolveFixture)
		source  func(f resolveFixture) string
		target  func(f resolveFixture) string
		wantErr error
	}{
		{
			name:    "source missing",
			source:  func(f resolveFixture) string { return filepath.Join(f.source, "nope") },
			target:  func(f resolveFixture) string { return filepath.Join(f.root, "A") },
			wantErr: ErrNotADirectory,
		},
		{
			name:    "source is a file",
			source:  func(f resolveFixture) string { return filepath.Join(f.source, "data.txt") },
			target:  func(f resolveFixture) string { return filepath.Join(f.root, "A") },
			wantErr: ErrNotADirectory,
		},
		{
			name:    "target outside root",
			target:  func(f resolveFixture) string { return filepath.Join(filepath.Dir(f.root), "elsewhere") },
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "target escapes with dot-dot",
			target:  func(f resolveFixture) string { return f.root + "/../elsewhere" },
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "target is sibling with root as prefix",
			target:  func(f resolveFixture) string { return f.root + "-other" },
			wantErr: ErrOutOfBounds,
		},
		{
			name: "same name, target not empty",
			setup: func(t *testing.T, f resolveFixture) {
				writeTree(t, f.root, map[string]string{"A/existing.txt": "x"})
			},
			target:  func(f resolveFixture) string { return filepath.Join(f.root, "A") },
			wantErr: ErrNonEmptyTarget,
		},
		{
			name: "same name, target has only a hidden file",
			setup: func(t *testing.T, f resolveFixture) {
				writeTree(t, f.root, map[string]string{"A/.hidden": ""})
			},
			target:  func(f resolveFixture) string { return filepath.Join(f.root, "A") },
			wantErr: ErrNonEmptyTarget,
		},
		{
			name: "destination inside source",
			source: func(f resolveFixture) string {
				return filepath.Join(f.root, "batch")
			},
			setup: func(t *testing.T, f resolveFixture) {
				writeTree(t, f.root, map[string]string{"batch/sub/": ""})
			},
			target:  func(f resolveFixture) string { return filepath.Join(f.root, "batch", "sub") },
			wantErr: ErrOverlap,
		},
		{
			name: "destination is source",
			source: func(f resolveFixture) string {
				return filepath.Join(f.root, "batch")
			},
			setup: func(t *testing.T, f resolveFixture) {
				writeTree(t, f.root, map[string]string{"batch/": ""})
			},
			target:  func(f resolveFixture) string { return filepath.Join(f.root, "batch") },
			wantErr: ErrOverlap,
		},
		{
			name: "source inside destination",
			source: func(f resolveFixture) string {
				return filepath.Join(f.root, "A", "A")
			},
			setup: func(t *testing.T, f resolveFixture) {
				writeTree(t, f.root, map[string]string{"A/A/f": "original", "A/A/A/f": "nested"})
			},
			// destination is <root>/A, which holds the source
			target:  func(f resolveFixture) string { return f.root },
			wantErr: ErrOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newResolveFixture(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}
			source := f.source
			if tt.source != nil {
				source = tt.source(f)
			}
			before := readTree(t, filepath.Dir(f.root))

			_, err := Resolve(source, tt.target(f), f.root)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, readTree(t, filepath.Dir(f.root)), "a failed Resolve must not modify the filesystem")
		})
	}
}

func TestResolve_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	f := newResolveFixture(t)
	outside := realTempDir(t)
	require.NoError(t, os.Symlink(outside, filepath.Join(f.root, "escape")))

	_, err := Resolve(f.source, filepath.Join(f.root, "escape", "B"), f.root)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = os.Stat(filepath.Join(outside, "B"))
	assert.True(t, os.IsNotExist(err))
}

func TestResolve_SymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	f := newResolveFixture(t)
	link := filepath.Join(realTempDir(t), "import-link")
	require.NoError(t, os.Symlink(f.root, link))

	// Target spelled through the real path, root through the link.
	got, err := Resolve(f.source, filepath.Join(f.root, "B"), link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.root, "B", "A"), got)

	// And the other way round.
	got, err = Resolve(f.source, filepath.Join(link, "B"), f.root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.root, "B", "A"), got)
}
