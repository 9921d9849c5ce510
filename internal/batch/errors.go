package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrNotADirectory means the batch source is missing or is not a directory.
	ErrNotADirectory = errors.New("source must be an existing directory")

	// ErrOutOfBounds means the target resolves to a location outside the import area.
	ErrOutOfBounds = errors.New("destination must be inside the import area")

	// ErrNonEmptyTarget means the target has the same name as the source and already has entries.
	ErrNonEmptyTarget = errors.New("target directory is not empty; when source and target have the same name and target exists, it must be empty")

	// ErrOverlap means source and destination are one directory or one contains the other.
	ErrOverlap = errors.New("source and destination must not contain each other")

	// ErrSymlinkCycle means a followed symlink leads back to a directory
	// already being copied, the destination included.
	ErrSymlinkCycle = errors.New("symlink leads back to a directory already being copied")
)

// IOError wraps a filesystem failure during copying or permission setting.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
