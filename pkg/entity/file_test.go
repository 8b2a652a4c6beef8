package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFile(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		fsys := testutil.NewTestFS()
		testutil.WriteFS(t, fsys, "/home/user/.gitconfig", "[user]")

		f, err := NewFile(fsys, "/home/user/.gitconfig")
		require.NoError(t, err)
		assert.Equal(t, ".gitconfig", f.Name)
		assert.Equal(t, "/home/user/.gitconfig", f.Path())
		assert.Equal(t, types.KindFile, f.Kind())
		assert.Equal(t, int64(len("[user]")), f.Size)
	})

	t.Run("missing file creates parent", func(t *testing.T) {
		fsys := testutil.NewTestFS()

		f, err := NewFile(fsys, "/home/user/.config/git/config")
		require.NoError(t, err)
		assert.Equal(t, "config", f.Name)

		kind, err := Classify(fsys, "/home/user/.config/git")
		require.NoError(t, err)
		assert.Equal(t, types.KindDirectory, kind)

		kind, err = Classify(fsys, "/home/user/.config/git/config")
		require.NoError(t, err)
		assert.Equal(t, types.KindMissing, kind, "only the parent is created")
	})

	t.Run("errors", func(t *testing.T) {
		fsys := testutil.NewTestFS()
		require.NoError(t, fsys.MkdirAll("/home/user/dir", 0755))

		tests := []struct {
			name string
			path string
			code errors.ErrorCode
		}{
			{"root has no parent", "/", errors.ErrNoParentDirectory},
			{"dot-dot has no filename", "/home/user/..", errors.ErrNoFilename},
			{"invalid utf-8", "/home/user/\xff\xfe", errors.ErrInvalidFilenameEncoding},
			{"directory in the way", "/home/user/dir", errors.ErrMismatchedKinds},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewFile(fsys, tt.path)
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			})
		}
	})

	t.Run("parent cannot be created", func(t *testing.T) {
		fsys := testutil.NewFaultFS(testutil.NewTestFS()).Fail(testutil.OpMkdirAll, "/home/user")

		_, err := NewFile(fsys, "/home/user/.bashrc")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoParentDirectory))
	})
}

func TestFileCopyTo(t *testing.T) {
	t.Run("copies content and mode", func(t *testing.T) {
		root := t.TempDir()
		src := testutil.CreateFile(t, root, "src/.netrc", "machine example.com")
		testutil.Chmod(t, src, 0600)
		dest := filepath.Join(root, "dest", ".netrc")
		testutil.CreateDir(t, root, "dest")

		f, err := NewFile(filesystem.NewOS(), src)
		require.NoError(t, err)

		copyErrors, err := f.CopyTo(dest)
		require.NoError(t, err)
		assert.Empty(t, copyErrors)

		testutil.AssertFileContent(t, dest, "machine example.com")
		info, err := os.Stat(dest)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("overwrites destination", func(t *testing.T) {
		fsys := testutil.NewTestFS()
		testutil.WriteFS(t, fsys, "/a/file", "new")
		testutil.WriteFS(t, fsys, "/b/file", "old content that is longer")

		f, err := NewFile(fsys, "/a/file")
		require.NoError(t, err)
		_, err = f.CopyTo("/b/file")
		require.NoError(t, err)

		assert.Equal(t, "new", testutil.ReadFS(t, fsys, "/b/file"))
	})

	t.Run("destination cannot be opened", func(t *testing.T) {
		base := testutil.NewTestFS()
		testutil.WriteFS(t, base, "/a/file", "new")
		testutil.WriteFS(t, base, "/b/file", "old")
		fsys := testutil.NewFaultFS(base).Fail(testutil.OpOpenFile, "/b/file")

		f, err := NewFile(fsys, "/a/file")
		require.NoError(t, err)
		_, err = f.CopyTo("/b/file")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCopyIO))
		assert.Equal(t, "/b/file", errors.GetErrorDetails(err)["dest"])
		assert.Equal(t, "old", testutil.ReadFS(t, base, "/b/file"))
	})

	t.Run("symlinked destination updates its target", func(t *testing.T) {
		testutil.SkipOnWindows(t)
		root := t.TempDir()
		src := testutil.CreateFile(t, root, "dotfiles/bashrc", "export PS1='$ '")
		target := testutil.CreateFile(t, root, "real/bashrc", "old")
		dest := filepath.Join(root, "home", ".bashrc")
		testutil.CreateSymlink(t, target, dest)

		f, err := NewFile(filesystem.NewOS(), src)
		require.NoError(t, err)
		copyErrors, err := f.CopyTo(dest)
		require.NoError(t, err)
		assert.Empty(t, copyErrors)

		testutil.AssertFileContent(t, target, "export PS1='$ '")
		info, err := os.Lstat(dest)
		require.NoError(t, err)
		assert.Equal(t, os.ModeSymlink, info.Mode().Type(), "the link itself is kept")
	})

	t.Run("read-only destination", func(t *testing.T) {
		testutil.SkipOnWindows(t)
		if os.Geteuid() == 0 {
			t.Skip("permission bits do not restrict root")
		}
		root := t.TempDir()
		src := testutil.CreateFile(t, root, "src/hosts", "new")
		dest := testutil.CreateFile(t, root, "dest/hosts", "old")
		testutil.Chmod(t, dest, 0444)

		f, err := NewFile(filesystem.NewOS(), src)
		require.NoError(t, err)
		_, err = f.CopyTo(dest)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCopyIO))
		testutil.AssertFileContent(t, dest, "old")
	})

	t.Run("unreadable source", func(t *testing.T) {
		base := testutil.NewTestFS()
		testutil.WriteFS(t, base, "/a/file", "data")
		fsys := testutil.NewFaultFS(base).Fail(testutil.OpOpen, "/a/file")

		f, err := NewFile(fsys, "/a/file")
		require.NoError(t, err)
		_, err = f.CopyTo("/b/file")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCopyIO))
	})
}

func TestNew(t *testing.T) {
	fsys := testutil.NewTestFS()

	e, err := New(fsys, types.KindDirectory, "/home/user/.config/app")
	require.NoError(t, err)
	assert.IsType(t, &Directory{}, e)

	e, err = New(fsys, types.KindFile, "/home/user/.bashrc")
	require.NoError(t, err)
	assert.IsType(t, &File{}, e)

	_, err = New(fsys, types.KindMissing, "/home/user/.bashrc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
