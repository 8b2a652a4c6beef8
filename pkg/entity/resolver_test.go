package entity

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	fsys := testutil.NewTestFS()
	testutil.WriteFS(t, fsys, "/home/user/.vimrc", "set nu")
	require.NoError(t, fsys.MkdirAll("/home/user/.config/nvim", 0755))

	tests := []struct {
		name string
		path string
		want types.Kind
	}{
		{"regular file", "/home/user/.vimrc", types.KindFile},
		{"directory", "/home/user/.config/nvim", types.KindDirectory},
		{"missing", "/home/user/.zshrc", types.KindMissing},
		{"missing parent", "/nowhere/at/all", types.KindMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(fsys, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyMetadataError(t *testing.T) {
	base := testutil.NewTestFS()
	testutil.WriteFS(t, base, "/home/user/.vimrc", "set nu")
	fsys := testutil.NewFaultFS(base).Fail(testutil.OpStat, "/home/user/.vimrc")

	_, err := Classify(fsys, "/home/user/.vimrc")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrClassify))
	assert.Equal(t, "/home/user/.vimrc", errors.GetErrorDetails(err)["path"])
}

func TestClassifyFollowsSymlinks(t *testing.T) {
	testutil.SkipOnWindows(t)

	root := t.TempDir()
	target := testutil.CreateFile(t, root, "target", "x")
	link := filepath.Join(root, "link")
	testutil.CreateSymlink(t, target, link)

	got, err := Classify(filesystem.NewOS(), link)
	require.NoError(t, err)
	assert.Equal(t, types.KindFile, got)
}

func TestClassifyUnsupportedKind(t *testing.T) {
	testutil.SkipOnWindows(t)

	sock := filepath.Join(t.TempDir(), "s")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}
	defer func() { _ = l.Close() }()

	_, err = Classify(filesystem.NewOS(), sock)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedKind))
}
