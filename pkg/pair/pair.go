// Package pair reconciles one configured mapping: a path inside the manager
// directory and the live location it corresponds to on the system.
//
// Construction classifies both sides, decides the pair's kind and builds an
// entity tree for each side. Copy then moves content in one direction. Nothing
// is ever deleted; content only present at the destination is left alone.
package pair

import (
	"github.com/arthur-debert/dotsync/pkg/entity"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Managed is a reconciled manager/system pair. It is immutable once built.
type Managed struct {
	kind        types.Kind
	managerPath string
	systemPath  string

	manager entity.Entity
	system  entity.Entity
}

// New builds the pair for managerRel (relative to managerRoot) and
// systemPath (absolute, ~ allowed). If only one side exists the other is
// materialized: an empty directory, or the parent directory of a file.
func New(fsys types.FS, managerRoot, managerRel, systemPath string, opts ...entity.Option) (*Managed, error) {
	logger := logging.GetLogger("pair")

	managerPath, err := paths.JoinManagerPath(managerRoot, managerRel)
	if err != nil {
		return nil, constructError(err, managerRel, systemPath)
	}
	resolved, err := paths.ResolveSystemPath(systemPath)
	if err != nil {
		return nil, constructError(err, managerPath, systemPath)
	}
	systemPath = resolved

	kind, err := reconcileKinds(fsys, managerPath, systemPath)
	if err != nil {
		return nil, constructError(err, managerPath, systemPath)
	}

	manager, err := entity.New(fsys, kind, managerPath, opts...)
	if err != nil {
		return nil, constructError(err, managerPath, systemPath)
	}
	system, err := entity.New(fsys, kind, systemPath, opts...)
	if err != nil {
		return nil, constructError(err, managerPath, systemPath)
	}

	logger.Debug().
		Str("manager", managerPath).
		Str("system", systemPath).
		Str("kind", kind.String()).
		Msg("Pair built")

	return &Managed{
		kind:        kind,
		managerPath: managerPath,
		systemPath:  systemPath,
		manager:     manager,
		system:      system,
	}, nil
}

// reconcileKinds decides what the pair is from what exists on each side
func reconcileKinds(fsys types.FS, managerPath, systemPath string) (types.Kind, error) {
	managerKind, err := entity.Classify(fsys, managerPath)
	if err != nil {
		return types.KindMissing, err
	}
	systemKind, err := entity.Classify(fsys, systemPath)
	if err != nil {
		return types.KindMissing, err
	}

	switch {
	case !managerKind.Exists() && !systemKind.Exists():
		return types.KindMissing, errors.Newf(errors.ErrNothingToReconcile, "neither %s nor %s exists", managerPath, systemPath).
			WithDetail("manager", managerPath).
			WithDetail("system", systemPath)
	case !managerKind.Exists():
		return systemKind, nil
	case !systemKind.Exists():
		return managerKind, nil
	case managerKind != systemKind:
		return types.KindMissing, errors.Newf(errors.ErrMismatchedKinds, "%s is a %s but %s is a %s",
			managerPath, managerKind, systemPath, systemKind).
			WithDetail("manager", managerPath).
			WithDetail("system", systemPath)
	default:
		return managerKind, nil
	}
}

func constructError(err error, managerPath, systemPath string) error {
	return errors.Wrapf(err, errors.ErrPairConstruct, "cannot reconcile %s with %s", managerPath, systemPath).
		WithDetail("manager", managerPath).
		WithDetail("system", systemPath)
}

// Copy copies the source side of dir over the other side. The returned slice
// holds per-entry failures; the error is set only when the copy could not
// start at all.
func (m *Managed) Copy(dir types.Direction) ([]error, error) {
	src, dst := m.system, m.manager
	if dir == types.ToSystem {
		src, dst = m.manager, m.system
	}

	if src.Kind() != dst.Kind() {
		return nil, errors.Newf(errors.ErrMismatchedKinds, "cannot copy %s %s onto %s %s", src.Kind(), src.Path(), dst.Kind(), dst.Path()).
			WithDetail("manager", m.managerPath).
			WithDetail("system", m.systemPath)
	}

	logger := logging.GetLogger("pair")
	logger.Info().
		Str("from", src.Path()).
		Str("to", dst.Path()).
		Str("direction", dir.String()).
		Msg("Copying")

	return src.CopyTo(dst.Path())
}

// TreeErrors returns the scan errors recorded while building both sides,
// manager side first. File pairs never have any.
func (m *Managed) TreeErrors() []error {
	var all []error
	for _, e := range []entity.Entity{m.manager, m.system} {
		if d, ok := e.(*entity.Directory); ok {
			all = append(all, d.AllErrors()...)
		}
	}
	return all
}

// Source returns the side that Copy(dir) reads from
func (m *Managed) Source(dir types.Direction) entity.Entity {
	if dir == types.ToSystem {
		return m.manager
	}
	return m.system
}

func (m *Managed) Kind() types.Kind       { return m.kind }
func (m *Managed) ManagerPath() string    { return m.managerPath }
func (m *Managed) SystemPath() string     { return m.systemPath }
func (m *Managed) Manager() entity.Entity { return m.manager }
func (m *Managed) System() entity.Entity  { return m.system }
