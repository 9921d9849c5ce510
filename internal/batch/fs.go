package batch

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// FS is the filesystem surface the copier and normalizer need. The host
// filesystem (osfs.Default) satisfies it; go-billy's memfs needs Chmod
// supplied on top.
type FS interface {
	billy.Basic
	billy.Dir
	billy.Chmod
}

// HostFS returns the operating system filesystem addressed by absolute paths.
func HostFS() FS {
	return osfs.Default
}
