package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	require.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))

	names, err := fs.ReadDirNames(tmpDir)
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"sub", "test.txt"}, names)

	renamed := filepath.Join(tmpDir, "renamed.txt")
	require.NoError(t, fs.Rename(testFile, renamed))
	require.NoError(t, fs.Chmod(renamed, 0600))
	info, err = fs.Stat(renamed)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, fs.Remove(renamed))
	_, err = fs.Stat(renamed)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenAndOpenFile(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/a", 0755))

	w, err := fs.OpenFile("/a/f", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	require.NoError(t, err)
	_, err = io.WriteString(w, "data")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := fs.Open("/a/f")
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}

func TestReadFileOnDirectory(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/dir", 0755))

	_, err := fs.ReadFile("/dir")
	assert.Error(t, err)
}

func TestReadDirNamesMissing(t *testing.T) {
	fs := NewMemory()
	_, err := fs.ReadDirNames("/nope")
	assert.True(t, os.IsNotExist(err))
}

func TestNewDryRunLeavesDiskUntouched(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "existing.txt")
	require.NoError(t, os.WriteFile(existing, []byte("original"), 0644))

	fs := NewDryRun()

	// Reads see the real file
	content, err := fs.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))

	// Writes land in the overlay only
	require.NoError(t, fs.WriteFile(existing, []byte("changed"), 0644))
	newDir := filepath.Join(tmpDir, "created", "nested")
	require.NoError(t, fs.MkdirAll(newDir, 0755))

	content, err = fs.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "changed", string(content))

	onDisk, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "original", string(onDisk))

	_, err = os.Stat(filepath.Join(tmpDir, "created"))
	assert.True(t, os.IsNotExist(err), "dry run must not create directories on disk")
}

func TestNewSelectsImplementation(t *testing.T) {
	assert.NotNil(t, New(true))
	assert.NotNil(t, New(false))
}
