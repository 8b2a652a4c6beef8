// Package paths provides centralized path handling for dotsync.
//
// It resolves the manager root (where the canonical copies of dotfiles
// live), the default configuration file location and the system side of
// each mapping. It handles:
//
//   - Home directory discovery and ~ expansion
//   - Manager root defaults and overrides
//   - XDG config directory lookup for the configuration file
//   - Confinement of manager-relative paths to the manager root
//
// # Environment Variables
//
//   - DOTSYNC_CONFIG: configuration file (default: $XDG_CONFIG_HOME/dotsync/config.toml)
//   - DOTSYNC_MANAGER_DIRECTORY: manager root override (default: $HOME/.dotfiles)
//
// # Usage
//
//	root, err := paths.ResolveManagerRoot("")       // /home/user/.dotfiles
//	mgr, err := paths.JoinManagerPath(root, "nvim") // /home/user/.dotfiles/nvim
//	sys, err := paths.ResolveSystemPath("~/.config/nvim")
package paths
