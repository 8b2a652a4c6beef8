package entity

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

const (
	defaultFileMode = 0644
	defaultDirMode  = 0755
)

// File is a single regular file, or the location a file will be copied to.
type File struct {
	fs   types.FS
	path string

	// Name is the final path component, valid UTF-8
	Name string
	// Size and Mode are taken from the scan; both are zero when the file
	// did not exist at construction time.
	Size int64
	Mode fs.FileMode
}

// NewFile builds a File for path. The parent directory is created if it is
// missing; the file itself does not need to exist.
func NewFile(fsys types.FS, path string) (*File, error) {
	parent := filepath.Dir(path)
	if parent == "" || parent == path {
		return nil, errors.Newf(errors.ErrNoParentDirectory, "%s has no parent directory", path).
			WithDetail("path", path)
	}

	f, err := newFile(fsys, path, nil)
	if err != nil {
		return nil, err
	}

	info, err := fsys.Stat(path)
	switch {
	case err == nil:
		if !info.Mode().IsRegular() {
			return nil, errors.Newf(errors.ErrMismatchedKinds, "%s exists but is not a regular file", path).
				WithDetail("path", path)
		}
		f.Size = info.Size()
		f.Mode = info.Mode()
	case stderrors.Is(err, fs.ErrNotExist):
		if err := fsys.MkdirAll(parent, defaultDirMode); err != nil {
			return nil, errors.Wrapf(err, errors.ErrNoParentDirectory, "cannot create parent directory %s", parent).
				WithDetail("path", parent)
		}
	default:
		return nil, errors.Wrapf(err, errors.ErrClassify, "cannot read metadata of %s", path).
			WithDetail("path", path)
	}

	return f, nil
}

// newFile validates the name of path. info, when known from a directory
// scan, fills in size and mode without another stat.
func newFile(fsys types.FS, path string, info fs.FileInfo) (*File, error) {
	name := filepath.Base(path)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return nil, errors.Newf(errors.ErrNoFilename, "%s does not have a valid filename", path).
			WithDetail("path", path)
	}
	if !utf8.ValidString(name) {
		return nil, errors.Newf(errors.ErrInvalidFilenameEncoding, "filename of %q is not valid UTF-8", path).
			WithDetail("path", path)
	}

	f := &File{fs: fsys, path: path, Name: name}
	if info != nil {
		f.Size = info.Size()
		f.Mode = info.Mode()
	}
	return f, nil
}

// Path returns the file's absolute path
func (f *File) Path() string { return f.path }

// Kind always returns types.KindFile
func (f *File) Kind() types.Kind { return types.KindFile }

// CopyTo copies the file to dest. An existing destination is truncated and
// written in place, so a symlinked destination updates its target and a
// destination that cannot be opened for writing is an error.
func (f *File) CopyTo(dest string) ([]error, error) {
	if err := f.copyTo(dest); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *File) copyTo(dest string) error {
	logger := logging.WithFields(map[string]interface{}{
		"component": "entity.file",
		"path":      f.path,
		"dest":      dest,
	})

	perm := f.Mode.Perm()
	if perm == 0 {
		perm = defaultFileMode
	}

	if err := f.writeTo(dest, perm); err != nil {
		return f.copyError(err, dest)
	}

	logger.Trace().Int64("size", f.Size).Msg("File copied")
	return nil
}

func (f *File) writeTo(dest string, perm fs.FileMode) error {
	src, err := f.fs.Open(f.path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := f.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	// OpenFile leaves the mode of an existing file alone and is subject to
	// the umask for a new one
	return f.fs.Chmod(dest, perm)
}

func (f *File) copyError(err error, dest string) error {
	return errors.Wrapf(err, errors.ErrCopyIO, "cannot copy %s to %s", f.path, dest).
		WithDetail("path", f.path).
		WithDetail("dest", dest)
}
