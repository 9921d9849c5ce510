package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fulmenhq/datavault/pkg/logger"
	"github.com/fulmenhq/datavault/pkg/safeio"
)

// Resolve computes the directory that receives the contents of source.
//
// The target must lie inside importRoot once both are made absolute and
// their symlinks are resolved. When target has the same final name as source
// it is used as is, but only if it does not exist yet or is empty. Otherwise
// the batch goes into a child of target named after source, whether or not
// target exists; existing content there is merged without a guard.
//
// Resolve does not touch the filesystem beyond reading it.
func Resolve(source, target, importRoot string) (string, error) {
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, source)
	}

	sourceAbs, err := filepath.Abs(source)
	if err != nil {
		return "", ioErr("resolve", source, err)
	}
	targetAbs, err := filepath.Abs(target)
	if err != nil {
		return "", ioErr("resolve", target, err)
	}

	root, err := safeio.ResolvePath(importRoot)
	if err != nil {
		return "", ioErr("resolve", importRoot, err)
	}
	resolvedTarget, err := safeio.ResolvePath(targetAbs)
	if err != nil {
		return "", ioErr("resolve", target, err)
	}
	if !safeio.Within(root, resolvedTarget) {
		return "", fmt.Errorf("%w: %s is not inside %s", ErrOutOfBounds, target, importRoot)
	}

	sourceName := filepath.Base(sourceAbs)
	var dest string
	if filepath.Base(targetAbs) == sourceName {
		logger.Debug("Source and target have the same name", logger.String("name", sourceName))
		exists, err := pathExists(resolvedTarget)
		if err != nil {
			return "", ioErr("stat", resolvedTarget, err)
		}
		if exists && !safeio.IsDirEmpty(resolvedTarget) {
			return "", fmt.Errorf("%w: %s", ErrNonEmptyTarget, target)
		}
		dest = resolvedTarget
	} else {
		dest = filepath.Join(resolvedTarget, sourceName)
	}

	resolvedSource, err := safeio.ResolvePath(sourceAbs)
	if err != nil {
		return "", ioErr("resolve", source, err)
	}
	if safeio.Within(resolvedSource, dest) || safeio.Within(dest, resolvedSource) {
		return "", fmt.Errorf("%w: %s and %s", ErrOverlap, resolvedSource, dest)
	}

	logger.Debug("Resolved batch destination", logger.String("source", resolvedSource), logger.String("destination", dest))
	return dest, nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}
