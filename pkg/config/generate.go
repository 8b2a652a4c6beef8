package config

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

type sampleConfig struct {
	ManagerDirectory string    `toml:"manager_directory" yaml:"manager_directory"`
	Ignore           []string  `toml:"ignore" yaml:"ignore"`
	Dotfiles         []Dotfile `toml:"dotfiles" yaml:"dotfiles"`
}

const sampleHeader = `dotsync configuration.

manager_directory is absolute or relative to $HOME (default: ~/.dotfiles).
Each dotfiles entry maps a path inside the manager directory to its live
location. Run 'dotsync sync' to copy system -> manager and
'dotsync sync --from-manager' for the other direction.`

func sample() sampleConfig {
	return sampleConfig{
		ManagerDirectory: "~/.dotfiles",
		Ignore:           []string{".DS_Store", "*.swp"},
		Dotfiles: []Dotfile{
			{ManagerPath: "zsh/zshrc", SystemPath: "~/.zshrc"},
			{ManagerPath: "nvim", SystemPath: "~/.config/nvim", Ignore: []string{"plugin/packer_compiled.lua"}},
			{ManagerPath: "git/config", SystemPath: "~/.config/git/config"},
		},
	}
}

// GenerateConfigContent returns a sample configuration in the given format
func GenerateConfigContent(format Format) (string, error) {
	var buf bytes.Buffer

	switch format {
	case FormatTOML, "":
		buf.WriteString(commentLines(sampleHeader))
		buf.WriteString("\n")
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(sample()); err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "cannot encode sample configuration")
		}
	case FormatYAML:
		buf.WriteString(commentLines(sampleHeader))
		buf.WriteString("\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(sample()); err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "cannot encode sample configuration")
		}
		if err := enc.Close(); err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "cannot encode sample configuration")
		}
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown format %q (use toml or yaml)", format).
			WithDetail("format", string(format))
	}

	return buf.String(), nil
}

// commentLines prefixes every line of text with "# "
func commentLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = "#"
			continue
		}
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
