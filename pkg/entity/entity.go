package entity

import (
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/matchers"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Entity is one side of a managed pair: a *File or a *Directory.
// The interface is sealed; no other implementations exist.
type Entity interface {
	Path() string
	Kind() types.Kind
	// CopyTo copies the entity to dest. The returned slice holds non-fatal
	// failures; the error is set only when nothing could be attempted.
	CopyTo(dest string) ([]error, error)

	sealed()
}

// Option configures tree construction
type Option func(*options)

type options struct {
	ignore   *matchers.Ignore
	maxDepth int
}

// DefaultMaxDepth bounds directory recursion. Symlinked directories are
// followed, so a link pointing at an ancestor would otherwise never end.
const DefaultMaxDepth = 64

// WithIgnore skips entries matched by m during directory scans
func WithIgnore(m *matchers.Ignore) Option {
	return func(o *options) {
		o.ignore = m
	}
}

// WithMaxDepth overrides DefaultMaxDepth
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

func buildOptions(opts []Option) *options {
	o := &options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// New builds the entity variant matching kind for path.
func New(fsys types.FS, kind types.Kind, path string, opts ...Option) (Entity, error) {
	switch kind {
	case types.KindFile:
		f, err := NewFile(fsys, path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case types.KindDirectory:
		d, err := NewDirectory(fsys, path, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot build an entity of kind %s for %s", kind, path).
			WithDetail("path", path)
	}
}

func (f *File) sealed()      {}
func (d *Directory) sealed() {}
