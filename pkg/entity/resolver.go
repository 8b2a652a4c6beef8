package entity

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Classify reports whether path is a file, a directory, or missing.
// A missing path is not an error. Symlinks are followed.
func Classify(fsys types.FS, path string) (types.Kind, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return types.KindMissing, nil
		}
		return types.KindMissing, errors.Wrapf(err, errors.ErrClassify, "cannot read metadata of %s", path).
			WithDetail("path", path)
	}
	return kindOf(path, info)
}

func kindOf(path string, info fs.FileInfo) (types.Kind, error) {
	switch {
	case info.IsDir():
		return types.KindDirectory, nil
	case info.Mode().IsRegular():
		return types.KindFile, nil
	default:
		return types.KindMissing, errors.Newf(errors.ErrUnsupportedKind, "%s is neither a regular file nor a directory (%s)", path, info.Mode().Type()).
			WithDetail("path", path)
	}
}
