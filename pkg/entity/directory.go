package entity

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Directory is an in-memory mirror of a directory tree, built by one scan.
type Directory struct {
	fs   types.FS
	path string

	// Files and Directories are the immediate children, in lexical order
	Files       []*File
	Directories []*Directory

	// Errors holds problems met while scanning this directory's immediate
	// children, including sub-directories that could not be built at all.
	Errors []error
}

// Stats summarizes a directory tree
type Stats struct {
	Files       int
	Directories int
	Bytes       int64
	ScanErrors  int
}

// NewDirectory scans path into a Directory, creating it (and any missing
// ancestors) first if it does not exist. Only failures that leave nothing to
// scan are returned as an error; everything else ends up in Errors.
func NewDirectory(fsys types.FS, path string, opts ...Option) (*Directory, error) {
	o := buildOptions(opts)
	logger := logging.GetLogger("entity.directory")

	d, err := scanDirectory(fsys, path, "", 0, o)
	if err != nil {
		return nil, err
	}

	stats := d.Stats()
	logger.Debug().
		Str("path", path).
		Int("files", stats.Files).
		Int("directories", stats.Directories).
		Int("errors", stats.ScanErrors).
		Msg("Directory scanned")
	return d, nil
}

func scanDirectory(fsys types.FS, path, rel string, depth int, o *options) (*Directory, error) {
	if err := ensureDirectory(fsys, path); err != nil {
		return nil, err
	}

	if depth > o.maxDepth {
		return nil, errors.Newf(errors.ErrScanRead, "%s is nested deeper than %d levels", path, o.maxDepth).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("entity.directory")
	d := &Directory{fs: fsys, path: path}

	names, err := fsys.ReadDirNames(path)
	if err != nil {
		wrapped := errors.Wrapf(err, errors.ErrScanRead, "cannot read entries of %s", path).
			WithDetail("path", path)
		if len(names) == 0 {
			return nil, wrapped
		}
		d.Errors = append(d.Errors, wrapped)
	}
	sort.Strings(names)

	for _, name := range names {
		childPath := filepath.Join(path, name)
		childRel := filepath.Join(rel, name)

		info, err := fsys.Stat(childPath)
		if err != nil {
			d.Errors = append(d.Errors, errors.Wrapf(err, errors.ErrScanMetadata, "cannot read metadata of %s", childPath).
				WithDetail("path", childPath))
			continue
		}

		if o.ignore.Match(childRel, info.IsDir()) {
			logger.Debug().
				Str("path", childPath).
				Msg("Entry ignored")
			continue
		}

		switch {
		case info.IsDir():
			sub, err := scanDirectory(fsys, childPath, childRel, depth+1, o)
			if err != nil {
				d.Errors = append(d.Errors, err)
				continue
			}
			d.Directories = append(d.Directories, sub)
		case info.Mode().IsRegular():
			f, err := newFile(fsys, childPath, info)
			if err != nil {
				d.Errors = append(d.Errors, err)
				continue
			}
			d.Files = append(d.Files, f)
		default:
			_, err := kindOf(childPath, info)
			d.Errors = append(d.Errors, err)
		}
	}

	return d, nil
}

// ensureDirectory creates path when it is missing and rejects anything that
// exists but is not a directory.
func ensureDirectory(fsys types.FS, path string) error {
	info, err := fsys.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return errors.Newf(errors.ErrMismatchedKinds, "%s exists but is not a directory", path).
				WithDetail("path", path)
		}
		return nil
	case stderrors.Is(err, fs.ErrNotExist):
		if err := fsys.MkdirAll(path, defaultDirMode); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", path).
				WithDetail("path", path)
		}
		return nil
	default:
		return errors.Wrapf(err, errors.ErrClassify, "cannot read metadata of %s", path).
			WithDetail("path", path)
	}
}

// Path returns the directory's absolute path
func (d *Directory) Path() string { return d.path }

// Kind always returns types.KindDirectory
func (d *Directory) Kind() types.Kind { return types.KindDirectory }

// CopyTo copies the whole tree into dest, creating dest and any missing
// sub-directories. Failures on individual children are collected and
// returned; the error result is set only when dest itself cannot be created.
func (d *Directory) CopyTo(dest string) ([]error, error) {
	if err := d.fs.MkdirAll(dest, defaultDirMode); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dest).
			WithDetail("path", dest)
	}

	var copyErrors []error

	for _, f := range d.Files {
		if err := f.copyTo(filepath.Join(dest, f.Name)); err != nil {
			copyErrors = append(copyErrors, err)
		}
	}

	for _, sub := range d.Directories {
		name := filepath.Base(sub.path)
		if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
			copyErrors = append(copyErrors, errors.Newf(errors.ErrNoDirectoryName, "%s does not have a valid name", sub.path).
				WithDetail("path", sub.path))
			continue
		}

		subErrors, err := sub.CopyTo(filepath.Join(dest, name))
		if err != nil {
			copyErrors = append(copyErrors, err)
			continue
		}
		copyErrors = append(copyErrors, subErrors...)
	}

	return copyErrors, nil
}

// WalkFunc is called for every entity in a tree with its path relative to
// the tree root. Returning a non-nil error stops the walk.
type WalkFunc func(rel string, e Entity) error

// Walk visits the directory's files, then each sub-directory followed by its
// own contents, in lexical order. The root itself is not visited.
func (d *Directory) Walk(fn WalkFunc) error {
	return d.walk("", fn)
}

func (d *Directory) walk(rel string, fn WalkFunc) error {
	for _, f := range d.Files {
		if err := fn(filepath.Join(rel, f.Name), f); err != nil {
			return err
		}
	}
	for _, sub := range d.Directories {
		subRel := filepath.Join(rel, filepath.Base(sub.path))
		if err := fn(subRel, sub); err != nil {
			return err
		}
		if err := sub.walk(subRel, fn); err != nil {
			return err
		}
	}
	return nil
}

// AllErrors returns the scan errors of the whole tree, parents first.
func (d *Directory) AllErrors() []error {
	var all []error
	all = append(all, d.Errors...)
	for _, sub := range d.Directories {
		all = append(all, sub.AllErrors()...)
	}
	return all
}

// Stats counts the files, sub-directories, bytes and scan errors in the tree.
// The directory itself is not counted.
func (d *Directory) Stats() Stats {
	s := Stats{
		Files:       len(d.Files),
		Directories: len(d.Directories),
		ScanErrors:  len(d.Errors),
	}
	for _, f := range d.Files {
		s.Bytes += f.Size
	}
	for _, sub := range d.Directories {
		child := sub.Stats()
		s.Files += child.Files
		s.Directories += child.Directories
		s.Bytes += child.Bytes
		s.ScanErrors += child.ScanErrors
	}
	return s
}
