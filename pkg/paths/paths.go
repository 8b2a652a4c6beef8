package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotsync/pkg/errors"
)

// Environment variable names
const (
	// EnvConfig overrides the configuration file location
	EnvConfig = "DOTSYNC_CONFIG"

	// EnvManagerDirectory overrides the manager root
	EnvManagerDirectory = "DOTSYNC_MANAGER_DIRECTORY"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DefaultManagerDir is the manager root's name under the home directory
	DefaultManagerDir = ".dotfiles"

	// AppDirName is the directory name for dotsync-specific files
	AppDirName = "dotsync"

	// ConfigFileName is the name of the default configuration file
	ConfigFileName = "config.toml"
)

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrHomeDir, "unable to determine home directory: neither os.UserHomeDir() nor HOME are available")
}

// ExpandHome expands a leading ~ to the user's home directory.
// Paths like ~user are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrHomeDir, "cannot expand %s", path)
	}
	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// DefaultManagerRoot returns $HOME/.dotfiles
func DefaultManagerRoot() (string, error) {
	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, DefaultManagerDir), nil
}

// ResolveManagerRoot turns a configured manager directory into an absolute
// path. Empty means the default; relative values are taken from $HOME.
func ResolveManagerRoot(value string) (string, error) {
	if value == "" {
		return DefaultManagerRoot()
	}

	expanded, err := ExpandHome(value)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, expanded), nil
}

// JoinManagerPath joins a manager-relative path onto root. The result must
// stay strictly inside root.
func JoinManagerPath(root, rel string) (string, error) {
	if rel == "" {
		return "", errors.New(errors.ErrInvalidInput, "manager path is empty")
	}
	if filepath.IsAbs(rel) {
		return "", errors.Newf(errors.ErrInvalidInput, "manager path %q must be relative to the manager directory", rel).
			WithDetail("path", rel)
	}

	joined := filepath.Join(root, rel)
	inside, err := filepath.Rel(root, joined)
	if err != nil || inside == "." || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "manager path %q escapes the manager directory %s", rel, root).
			WithDetail("path", rel)
	}
	return joined, nil
}

// ResolveSystemPath expands ~ and requires the result to be absolute.
func ResolveSystemPath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "system path is empty")
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		return "", errors.Newf(errors.ErrInvalidInput, "system path %q must be absolute", path).
			WithDetail("path", path)
	}
	return filepath.Clean(expanded), nil
}

// DefaultConfigPath returns the configuration file location: DOTSYNC_CONFIG
// if set, otherwise dotsync/config.toml under the XDG config home.
func DefaultConfigPath() string {
	if cfg := os.Getenv(EnvConfig); cfg != "" {
		if expanded, err := ExpandHome(cfg); err == nil {
			return expanded
		}
		return cfg
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, AppDirName, ConfigFileName)
}
