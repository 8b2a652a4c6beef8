package testutil

import (
	"io"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/dotsync/pkg/types"
)

// Op names a types.FS method that FaultFS can fail
type Op string

const (
	OpStat         Op = "stat"
	OpReadDirNames Op = "readdirnames"
	OpOpen         Op = "open"
	OpOpenFile     Op = "openfile"
	OpReadFile     Op = "readfile"
	OpWriteFile    Op = "writefile"
	OpChmod        Op = "chmod"
	OpRename       Op = "rename"
	OpRemove       Op = "remove"
	OpMkdirAll     Op = "mkdirall"
)

// ErrInjected is returned (wrapped in a *fs.PathError) by failing operations
var ErrInjected = fs.ErrPermission

type faultKey struct {
	op   Op
	path string
}

// FaultFS wraps a types.FS and fails selected operations on selected paths.
// Everything else is delegated to the wrapped filesystem.
type FaultFS struct {
	types.FS

	mu     sync.Mutex
	faults map[faultKey]error
	// partial makes ReadDirNames return its names together with an error
	partial map[string]bool
	calls   map[Op]int
}

// NewFaultFS wraps base
func NewFaultFS(base types.FS) *FaultFS {
	return &FaultFS{
		FS:      base,
		faults:  make(map[faultKey]error),
		partial: make(map[string]bool),
		calls:   make(map[Op]int),
	}
}

// Fail makes op on path return an error
func (f *FaultFS) Fail(op Op, path string) *FaultFS {
	return f.FailWith(op, path, ErrInjected)
}

// FailWith makes op on path return err
func (f *FaultFS) FailWith(op Op, path string, err error) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[faultKey{op, filepath.Clean(path)}] = err
	return f
}

// FailPartially makes ReadDirNames on path return the real names plus an error
func (f *FaultFS) FailPartially(path string) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.partial[filepath.Clean(path)] = true
	return f
}

// Calls returns how many times op was invoked
func (f *FaultFS) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultFS) check(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if err, ok := f.faults[faultKey{op, filepath.Clean(path)}]; ok {
		return &fs.PathError{Op: string(op), Path: path, Err: err}
	}
	return nil
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) ReadDirNames(name string) ([]string, error) {
	if err := f.check(OpReadDirNames, name); err != nil {
		return nil, err
	}
	names, err := f.FS.ReadDirNames(name)
	f.mu.Lock()
	partial := f.partial[filepath.Clean(name)]
	f.mu.Unlock()
	if partial && err == nil {
		err = &fs.PathError{Op: string(OpReadDirNames), Path: name, Err: ErrInjected}
	}
	return names, err
}

func (f *FaultFS) Open(name string) (io.ReadCloser, error) {
	if err := f.check(OpOpen, name); err != nil {
		return nil, err
	}
	return f.FS.Open(name)
}

func (f *FaultFS) OpenFile(name string, flag int, perm fs.FileMode) (io.WriteCloser, error) {
	if err := f.check(OpOpenFile, name); err != nil {
		return nil, err
	}
	return f.FS.OpenFile(name, flag, perm)
}

func (f *FaultFS) ReadFile(name string) ([]byte, error) {
	if err := f.check(OpReadFile, name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check(OpWriteFile, name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultFS) Chmod(name string, mode fs.FileMode) error {
	if err := f.check(OpChmod, name); err != nil {
		return err
	}
	return f.FS.Chmod(name, mode)
}

// Rename fails when newpath has a rename fault
func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, newpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}
