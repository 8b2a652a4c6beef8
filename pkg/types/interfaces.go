package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for dotsync operations
type FS interface {
	// Metadata. Stat follows symlinks.
	Stat(name string) (fs.FileInfo, error)

	// ReadDirNames returns the names of the entries in a directory.
	// Implementations may return a partial list together with an error.
	ReadDirNames(name string) ([]string, error)

	// File operations
	Open(name string) (io.ReadCloser, error)
	OpenFile(name string, flag int, perm fs.FileMode) (io.WriteCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
}
