package filesystem

import (
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/spf13/afero"
)

// NewOS creates a filesystem backed by the operating system
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewMemory creates an empty in-memory filesystem
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

// NewDryRun creates a filesystem that reads through to the operating system
// and captures all writes in memory. The real filesystem is never modified.
func NewDryRun() types.FS {
	base := afero.NewReadOnlyFs(afero.NewOsFs())
	return NewAferoFS(afero.NewCopyOnWriteFs(base, afero.NewMemMapFs()))
}

// New returns the dry-run filesystem when dryRun is set and the OS one otherwise.
func New(dryRun bool) types.FS {
	if dryRun {
		return NewDryRun()
	}
	return NewOS()
}
