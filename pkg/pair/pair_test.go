package pair

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/entity"
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/matchers"
	"github.com/arthur-debert/dotsync/pkg/testutil"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	home    string
	manager string
	fs      types.FS
}

func setupEnv(t *testing.T) env {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	manager := testutil.CreateDir(t, home, ".dotfiles")
	return env{home: home, manager: manager, fs: filesystem.NewOS()}
}

func TestNewClassification(t *testing.T) {
	t.Run("both directories", func(t *testing.T) {
		e := setupEnv(t)
		testutil.CreateTree(t, e.manager, map[string]string{"nvim/init.lua": "m"})
		testutil.CreateTree(t, e.home, map[string]string{".config/nvim/init.lua": "s"})

		p, err := New(e.fs, e.manager, "nvim", "~/.config/nvim")
		require.NoError(t, err)
		assert.Equal(t, types.KindDirectory, p.Kind())
		assert.Equal(t, filepath.Join(e.manager, "nvim"), p.ManagerPath())
		assert.Equal(t, filepath.Join(e.home, ".config", "nvim"), p.SystemPath())
		assert.Empty(t, p.TreeErrors())
	})

	t.Run("only manager file exists", func(t *testing.T) {
		e := setupEnv(t)
		testutil.CreateFile(t, e.manager, "git/gitconfig", "[user]")

		p, err := New(e.fs, e.manager, "git/gitconfig", filepath.Join(e.home, ".config", "git", "config"))
		require.NoError(t, err)
		assert.Equal(t, types.KindFile, p.Kind())
		assert.True(t, testutil.DirExists(t, filepath.Join(e.home, ".config", "git")), "system parent is created")
		testutil.AssertNoFile(t, p.SystemPath())
	})

	t.Run("only system directory exists", func(t *testing.T) {
		e := setupEnv(t)
		testutil.CreateTree(t, e.home, map[string]string{".config/kitty/kitty.conf": "font_size 12"})

		p, err := New(e.fs, e.manager, "kitty", "~/.config/kitty")
		require.NoError(t, err)
		assert.Equal(t, types.KindDirectory, p.Kind())
		assert.True(t, testutil.DirExists(t, filepath.Join(e.manager, "kitty")), "manager directory is created")
	})

	t.Run("errors", func(t *testing.T) {
		e := setupEnv(t)
		testutil.CreateTree(t, e.manager, map[string]string{"zsh/zshrc": "m"})
		testutil.CreateFile(t, e.home, ".zshrc", "s")

		tests := []struct {
			name   string
			rel    string
			system string
			code   errors.ErrorCode
		}{
			{"nothing to reconcile", "tmux", "~/.tmux.conf", errors.ErrNothingToReconcile},
			{"mismatched kinds", "zsh", "~/.zshrc", errors.ErrMismatchedKinds},
			{"escaping manager path", "../outside", "~/.outside", errors.ErrInvalidInput},
			{"absolute manager path", "/etc/zsh", "~/.zshrc", errors.ErrInvalidInput},
			{"manager root itself", ".", "~/.zshrc", errors.ErrInvalidInput},
			{"relative system path", "zsh/zshrc", "zshrc", errors.ErrInvalidInput},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := New(e.fs, e.manager, tt.rel, tt.system)
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrPairConstruct))
				assert.True(t, errors.HasErrorCode(err, tt.code), "got %v", err)
			})
		}
	})

	t.Run("classification failure", func(t *testing.T) {
		base := testutil.NewTestFS()
		testutil.WriteFS(t, base, "/m/vimrc", "set nu")
		fsys := testutil.NewFaultFS(base).Fail(testutil.OpStat, "/home/.vimrc")

		_, err := New(fsys, "/m", "vimrc", "/home/.vimrc")
		require.Error(t, err)
		assert.True(t, errors.HasErrorCode(err, errors.ErrClassify))
	})
}

func TestCopy(t *testing.T) {
	t.Run("config directory scenario", func(t *testing.T) {
		e := setupEnv(t)
		system := filepath.Join(e.home, "etc", "app", "config")
		testutil.CreateTree(t, system, map[string]string{
			"a.conf": "alpha = 1",
			"b.conf": "beta = 2",
		})

		p, err := New(e.fs, e.manager, "app/config", system)
		require.NoError(t, err)

		copyErrors, err := p.Copy(types.ToManager)
		require.NoError(t, err)
		assert.Empty(t, copyErrors)

		testutil.AssertFileContent(t, filepath.Join(e.manager, "app", "config", "a.conf"), "alpha = 1")
		testutil.AssertFileContent(t, filepath.Join(e.manager, "app", "config", "b.conf"), "beta = 2")
		assert.Equal(t, testutil.ReadTree(t, system), testutil.ReadTree(t, p.ManagerPath()))
	})

	t.Run("fresh manager tree copied to system", func(t *testing.T) {
		e := setupEnv(t)
		system := filepath.Join(e.home, ".config", "kitty")
		testutil.CreateTree(t, system, map[string]string{"kitty.conf": "font_size 12"})

		p, err := New(e.fs, e.manager, "kitty", system)
		require.NoError(t, err)

		copyErrors, err := p.Copy(types.ToSystem)
		require.NoError(t, err)
		assert.Empty(t, copyErrors)
		testutil.AssertFileContent(t, filepath.Join(system, "kitty.conf"), "font_size 12")

		fresh, err := New(e.fs, e.manager, "kitty", system)
		require.NoError(t, err)
		copyErrors, err = fresh.Copy(types.ToManager)
		require.NoError(t, err)
		assert.Empty(t, copyErrors)
		testutil.AssertFileContent(t, filepath.Join(e.manager, "kitty", "kitty.conf"), "font_size 12")
	})

	t.Run("single file round trip", func(t *testing.T) {
		e := setupEnv(t)
		testutil.CreateFile(t, e.home, ".vimrc", "set number\n")

		p, err := New(e.fs, e.manager, "vim/vimrc", "~/.vimrc")
		require.NoError(t, err)
		_, err = p.Copy(types.ToManager)
		require.NoError(t, err)
		testutil.AssertFileContent(t, filepath.Join(e.manager, "vim", "vimrc"), "set number\n")

		testutil.CreateFile(t, e.manager, "vim/vimrc", "set relativenumber\n")
		p, err = New(e.fs, e.manager, "vim/vimrc", "~/.vimrc")
		require.NoError(t, err)
		_, err = p.Copy(types.ToSystem)
		require.NoError(t, err)
		testutil.AssertFileContent(t, filepath.Join(e.home, ".vimrc"), "set relativenumber\n")
	})

	t.Run("scan errors are reported from both sides", func(t *testing.T) {
		base := testutil.NewTestFS()
		testutil.WriteFS(t, base, "/m/app/a.conf", "a")
		testutil.WriteFS(t, base, "/m/app/b.conf", "b")
		testutil.WriteFS(t, base, "/etc/app/c.conf", "c")
		fsys := testutil.NewFaultFS(base).
			Fail(testutil.OpStat, "/m/app/b.conf").
			Fail(testutil.OpStat, "/etc/app/c.conf")

		p, err := New(fsys, "/m", "app", "/etc/app")
		require.NoError(t, err)
		treeErrors := p.TreeErrors()
		require.Len(t, treeErrors, 2)
		assert.Equal(t, "/m/app/b.conf", errors.GetErrorDetails(treeErrors[0])["path"])

		copyErrors, err := p.Copy(types.ToSystem)
		require.NoError(t, err)
		assert.Empty(t, copyErrors)
		assert.Equal(t, "a", testutil.ReadFS(t, base, "/etc/app/a.conf"))
	})

	t.Run("ignore patterns apply to both sides", func(t *testing.T) {
		fsys := testutil.NewTestFS()
		testutil.WriteFS(t, fsys, "/etc/app/a.conf", "a")
		testutil.WriteFS(t, fsys, "/etc/app/a.conf.bak", "old")

		ignore, err := matchers.NewIgnore([]string{"*.bak"})
		require.NoError(t, err)

		p, err := New(fsys, "/m", "app", "/etc/app", entity.WithIgnore(ignore))
		require.NoError(t, err)
		_, err = p.Copy(types.ToManager)
		require.NoError(t, err)

		assert.Equal(t, "a", testutil.ReadFS(t, fsys, "/m/app/a.conf"))
		kind, err := entity.Classify(fsys, "/m/app/a.conf.bak")
		require.NoError(t, err)
		assert.Equal(t, types.KindMissing, kind)
	})

	t.Run("source follows direction", func(t *testing.T) {
		fsys := testutil.NewTestFS()
		testutil.WriteFS(t, fsys, "/etc/app/a.conf", "a")

		p, err := New(fsys, "/m", "app", "/etc/app")
		require.NoError(t, err)
		assert.Equal(t, "/etc/app", p.Source(types.ToManager).Path())
		assert.Equal(t, "/m/app", p.Source(types.ToSystem).Path())
		assert.Equal(t, p.Manager(), p.Source(types.ToSystem))
		assert.Equal(t, p.System(), p.Source(types.ToManager))
	})
}
