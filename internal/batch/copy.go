package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulmenhq/datavault/pkg/logger"
)

const (
	// Modes used while copying; the normalizer replaces them afterwards.
	copyDirMode  os.FileMode = 0o755
	copyFileMode os.FileMode = 0o644
)

// CopyStats counts what a copy wrote.
type CopyStats struct {
	Files       int   `json:"files" yaml:"files"`
	Directories int   `json:"directories" yaml:"directories"`
	Bytes       int64 `json:"bytes" yaml:"bytes"`
}

// Copier mirrors a directory tree onto an FS.
type Copier struct {
	fs      FS
	exclude []string
}

// NewCopier returns a Copier. Entries whose slash-separated path relative to
// the source root matches one of the doublestar exclude patterns are skipped.
func NewCopier(fs FS, exclude []string) (*Copier, error) {
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return &Copier{fs: fs, exclude: exclude}, nil
}

// Copy recreates the contents of source under dest, creating dest and any
// missing ancestors. File contents are copied byte for byte; source
// permissions are not preserved. Symlinks in source are followed; one that
// leads back to a directory already entered, or into dest, fails with
// ErrSymlinkCycle.
func (c *Copier) Copy(source, dest string) (CopyStats, error) {
	var stats CopyStats

	if err := c.fs.MkdirAll(dest, copyDirMode); err != nil {
		return stats, ioErr("mkdir", dest, err)
	}
	destInfo, err := c.fs.Stat(dest)
	if err != nil {
		return stats, ioErr("stat", dest, err)
	}

	w := &treeWalker{
		fs:             c.fs,
		followSymlinks: true,
		// A link into dest would copy the copy.
		visited: []os.FileInfo{destInfo},
		onDir: func(path string, _ os.FileInfo) error {
			rel, err := relPath(source, path)
			if err != nil {
				return err
			}
			if rel == "." {
				return nil
			}
			if c.excluded(rel) {
				logger.Trace("Excluded directory", logger.String("path", rel))
				return errSkipDir
			}
			target := c.fs.Join(dest, rel)
			if err := c.fs.MkdirAll(target, copyDirMode); err != nil {
				return ioErr("mkdir", target, err)
			}
			stats.Directories++
			return nil
		},
		onFile: func(path string, info os.FileInfo) error {
			rel, err := relPath(source, path)
			if err != nil {
				return err
			}
			if c.excluded(rel) {
				logger.Trace("Excluded file", logger.String("path", rel))
				return nil
			}
			if !info.Mode().IsRegular() {
				return ioErr("copy", path, fmt.Errorf("unsupported file type %s", info.Mode().Type()))
			}
			n, err := c.copyFile(path, c.fs.Join(dest, rel))
			if err != nil {
				return err
			}
			logger.Trace("Copied file", logger.String("path", rel), logger.Int64("bytes", n))
			stats.Files++
			stats.Bytes += n
			return nil
		},
	}

	if err := w.walk(source); err != nil {
		return stats, err
	}

	logger.Debug("Copied batch tree",
		logger.String("destination", dest),
		logger.Int("files", stats.Files),
		logger.Int("directories", stats.Directories),
		logger.Int64("bytes", stats.Bytes))
	return stats, nil
}

func (c *Copier) excluded(rel string) bool {
	slashed := filepath.ToSlash(rel)
	for _, p := range c.exclude {
		if ok, _ := doublestar.Match(p, slashed); ok {
			return true
		}
	}
	return false
}

func (c *Copier) copyFile(src, dst string) (n int64, err error) {
	in, err := c.fs.Open(src)
	if err != nil {
		return 0, ioErr("open", src, err)
	}
	defer in.Close()

	out, err := c.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, copyFileMode)
	if err != nil {
		return 0, ioErr("create", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = ioErr("close", dst, cerr)
		}
	}()

	n, err = io.Copy(out, in)
	if err != nil {
		return n, ioErr("copy", src, err)
	}
	return n, nil
}

func relPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", ioErr("rel", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ioErr("rel", path, errors.New("path escapes the batch root"))
	}
	return rel, nil
}
