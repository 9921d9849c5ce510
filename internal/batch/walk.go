package batch

import (
	"errors"
	"os"
)

// errSkipDir returned from a directory callback prunes that directory.
var errSkipDir = errors.New("skip directory")

type visitFunc func(path string, info os.FileInfo) error

// treeWalker performs a pre-order traversal without recursion: a directory
// is handed to onDir before any of its entries are listed, and the walk keeps
// its own stack so deep trees do not grow the call stack.
//
// With followSymlinks set, a directory reached through a link that turns out
// to be one already entered (or one listed in visited up front) fails the walk
// with ErrSymlinkCycle. Identity is decided by os.SameFile, so detection needs
// FileInfo values from the host filesystem.
type treeWalker struct {
	fs             FS
	followSymlinks bool
	onDir          visitFunc
	onFile         visitFunc
	// onSymlink sees links that are not followed; nil ignores them.
	onSymlink visitFunc
	// visited holds the directories entered so far.
	visited []os.FileInfo
}

type walkItem struct {
	path string
	// viaLink is set below a followed directory symlink.
	viaLink bool
}

func (w *treeWalker) walk(root string) error {
	info, err := w.fs.Stat(root)
	if err != nil {
		return ioErr("stat", root, err)
	}
	if !info.IsDir() {
		return ioErr("walk", root, errors.New("not a directory"))
	}

	stack := []walkItem{{path: root}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		dir := item.path

		dirInfo, err := w.fs.Stat(dir)
		if err != nil {
			return ioErr("stat", dir, err)
		}
		if item.viaLink && w.seen(dirInfo) {
			return ioErr("walk", dir, ErrSymlinkCycle)
		}
		w.visited = append(w.visited, dirInfo)

		if err := w.onDir(dir, dirInfo); err != nil {
			if errors.Is(err, errSkipDir) {
				continue
			}
			return err
		}

		entries, err := w.fs.ReadDir(dir)
		if err != nil {
			return ioErr("readdir", dir, err)
		}

		var subdirs []walkItem
		for _, entry := range entries {
			path := w.fs.Join(dir, entry.Name())
			viaLink := item.viaLink
			if entry.Mode()&os.ModeSymlink != 0 {
				if !w.followSymlinks {
					if w.onSymlink != nil {
						if err := w.onSymlink(path, entry); err != nil {
							return err
						}
					}
					continue
				}
				// Stat follows the link; a dangling link surfaces here
				target, err := w.fs.Stat(path)
				if err != nil {
					return ioErr("stat", path, err)
				}
				entry = target
				viaLink = true
			}
			if entry.IsDir() {
				subdirs = append(subdirs, walkItem{path: path, viaLink: viaLink})
				continue
			}
			if err := w.onFile(path, entry); err != nil {
				return err
			}
		}

		// Reverse push keeps lexical order when popping
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return nil
}

func (w *treeWalker) seen(info os.FileInfo) bool {
	for _, v := range w.visited {
		if os.SameFile(v, info) {
			return true
		}
	}
	return false
}
