package batch

import (
	"os"

	"github.com/fulmenhq/datavault/pkg/logger"
	"github.com/fulmenhq/datavault/pkg/mode"
)

// Normalizer sets one mode on every directory and another on every file of a tree.
type Normalizer struct {
	fs FS
}

// NewNormalizer returns a Normalizer working on fs.
func NewNormalizer(fs FS) *Normalizer {
	return &Normalizer{fs: fs}
}

// Normalize walks root in pre-order. Each directory, root included, gets
// dirPerm before its entries are listed, so dirPerm must keep the directory
// searchable for the walking user. Files get filePerm. Symlinks are left
// alone: chmod would follow them out of the tree.
func (n *Normalizer) Normalize(root string, filePerm, dirPerm mode.Perm) error {
	var dirs, files int
	w := &treeWalker{
		fs: n.fs,
		onDir: func(path string, _ os.FileInfo) error {
			if err := n.fs.Chmod(path, os.ModeDir|dirPerm.FileMode()); err != nil {
				return ioErr("chmod", path, err)
			}
			dirs++
			return nil
		},
		onFile: func(path string, _ os.FileInfo) error {
			if err := n.fs.Chmod(path, filePerm.FileMode()); err != nil {
				return ioErr("chmod", path, err)
			}
			files++
			return nil
		},
		onSymlink: func(path string, _ os.FileInfo) error {
			logger.Warn("Not changing mode of symlink", logger.String("path", path))
			return nil
		},
	}
	if err := w.walk(root); err != nil {
		return err
	}

	logger.Debug("Normalized permissions",
		logger.String("root", root),
		logger.Mode("fileMode", filePerm.FileMode()),
		logger.Mode("directoryMode", dirPerm.FileMode()),
		logger.Int("files", files),
		logger.Int("directories", dirs))
	return nil
}
