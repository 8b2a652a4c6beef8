// Package config loads the dotsync configuration: the manager directory, the
// global ignore list and the ordered list of dotfile records.
//
// Sources are layered with koanf, later ones winning:
//  1. embedded defaults (embedded/defaults.toml)
//  2. the configuration file, TOML or YAML depending on its extension
//  3. DOTSYNC_MANAGER_DIRECTORY and DOTSYNC_IGNORE from the environment
//
// A malformed record never aborts loading. Each one yields its own error in
// Config.RecordErrors and the remaining records are still returned.
package config
