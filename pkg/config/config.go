package config

import (
	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/matchers"
	"github.com/arthur-debert/dotsync/pkg/paths"
)

// Dotfile is one configured mapping between the manager directory and the
// system.
type Dotfile struct {
	// ManagerPath is relative to the manager root
	ManagerPath string `koanf:"manager_path" mapstructure:"manager_path" toml:"manager_path" yaml:"manager_path"`
	// SystemPath is absolute; a leading ~ is expanded
	SystemPath string `koanf:"system_path" mapstructure:"system_path" toml:"system_path" yaml:"system_path"`
	// Ignore adds patterns for this record only
	Ignore []string `koanf:"ignore" mapstructure:"ignore" toml:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Index is the record's position in the configuration, from 0
	Index int `koanf:"-" mapstructure:"-" toml:"-" yaml:"-"`
}

// Config is the loaded configuration
type Config struct {
	// Source is the file the configuration was read from
	Source string

	ManagerDirectory string
	Ignore           []string
	Dotfiles         []Dotfile

	// RecordErrors holds one error per malformed record, in record order
	RecordErrors []error
}

// ManagerRoot resolves the manager root. A non-empty override (the --manager
// flag) beats the configured value.
func (c *Config) ManagerRoot(override string) (string, error) {
	value := c.ManagerDirectory
	if override != "" {
		value = override
	}

	root, err := paths.ResolveManagerRoot(value)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigInvalid, "invalid manager directory %q", value).
			WithDetail("manager_directory", value)
	}
	return root, nil
}

// IgnoreFor returns the matcher for a record: the global patterns followed by
// the record's own.
func (c *Config) IgnoreFor(d Dotfile) (*matchers.Ignore, error) {
	m, err := matchers.NewIgnore(c.Ignore, d.Ignore)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRecordInvalid, "dotfile %d has an invalid ignore list", d.Index).
			WithDetail("index", d.Index)
	}
	return m, nil
}
