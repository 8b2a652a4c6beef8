package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/matchers"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix   = "DOTSYNC_"
	keyDotfiles = "dotfiles"
)

// envKeys maps the supported environment variables to configuration keys.
// Other DOTSYNC_ variables (DOTSYNC_CONFIG) are not configuration values.
var envKeys = map[string]string{
	paths.EnvManagerDirectory: "manager_directory",
	envPrefix + "IGNORE":      "ignore",
}

type topLevel struct {
	ManagerDirectory string   `koanf:"manager_directory"`
	Ignore           []string `koanf:"ignore"`
}

// Load reads the configuration at path. An empty path means the default
// location (see paths.DefaultConfigPath).
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	if path == "" {
		path = paths.DefaultConfigPath()
	}
	expanded, err := paths.ExpandHome(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot resolve configuration path %s", path)
	}
	path = expanded

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load embedded defaults")
	}

	// 2. Configuration file
	if _, err := os.Stat(path); err != nil {
		code := errors.ErrConfigLoad
		msg := "cannot read configuration file %s"
		if stderrors.Is(err, fs.ErrNotExist) {
			msg = "configuration file %s does not exist (run 'dotsync genconfig' for a sample)"
		}
		return nil, errors.Wrapf(err, code, msg, path).WithDetail("path", path)
	}
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse configuration file %s", path).
			WithDetail("path", path)
	}

	// 3. Environment. Empty variables are treated as unset.
	err = k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return envKeys[key], value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var top topLevel
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &top,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &top, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid configuration in %s", path).
			WithDetail("path", path)
	}
	if _, err := matchers.NewIgnore(top.Ignore); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid ignore list in %s", path).
			WithDetail("path", path)
	}

	cfg := &Config{
		Source:           path,
		ManagerDirectory: top.ManagerDirectory,
		Ignore:           top.Ignore,
	}
	if err := parseDotfiles(k, cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid configuration in %s", path).
			WithDetail("path", path)
	}

	logger.Debug().
		Str("path", path).
		Int("dotfiles", len(cfg.Dotfiles)).
		Int("errors", len(cfg.RecordErrors)).
		Msg("Configuration loaded")
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported configuration format %q (use .toml, .yaml or .yml)", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// parseDotfiles decodes the dotfiles array record by record
func parseDotfiles(k *koanf.Koanf, cfg *Config) error {
	if !k.Exists(keyDotfiles) {
		return errors.New(errors.ErrConfigInvalid, "no dotfiles section found")
	}

	raw := k.Get(keyDotfiles)
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice {
		return errors.Newf(errors.ErrConfigInvalid, "dotfiles must be an array of tables, got %T (in TOML use [[dotfiles]])", raw)
	}

	for i := 0; i < v.Len(); i++ {
		d, err := parseRecord(i, v.Index(i).Interface())
		if err != nil {
			cfg.RecordErrors = append(cfg.RecordErrors, err)
			continue
		}
		cfg.Dotfiles = append(cfg.Dotfiles, d)
	}
	return nil
}

func parseRecord(index int, item interface{}) (Dotfile, error) {
	d := Dotfile{Index: index}

	if item == nil || reflect.ValueOf(item).Kind() != reflect.Map {
		return d, recordError(index, "dotfile %d is not a table (got %T)", index, item)
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &d,
		Metadata:    &md,
		ErrorUnused: true,
	})
	if err != nil {
		return d, errors.Wrap(err, errors.ErrInternal, "cannot build record decoder")
	}
	if err := decoder.Decode(item); err != nil {
		return d, errors.Wrapf(err, errors.ErrRecordInvalid, "dotfile %d is invalid", index).
			WithDetail("index", index)
	}

	decoded := make(map[string]bool, len(md.Keys))
	for _, key := range md.Keys {
		decoded[key] = true
	}
	for _, field := range []struct {
		key   string
		value string
	}{
		{"manager_path", d.ManagerPath},
		{"system_path", d.SystemPath},
	} {
		if !decoded[field.key] {
			return d, recordError(index, "dotfile %d is missing %s", index, field.key)
		}
		if strings.TrimSpace(field.value) == "" {
			return d, recordError(index, "dotfile %d has an empty %s", index, field.key)
		}
	}

	if _, err := matchers.NewIgnore(d.Ignore); err != nil {
		return d, errors.Wrapf(err, errors.ErrRecordInvalid, "dotfile %d has an invalid ignore list", index).
			WithDetail("index", index)
	}

	d.Index = index
	return d, nil
}

func recordError(index int, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrRecordInvalid, format, args...).WithDetail("index", index)
}
