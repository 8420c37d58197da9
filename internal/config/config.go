// Package config loads the converter configuration: ambient settings through
// viper and the ordered account alias and payee rule sections through yaml.v3.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"unicode/utf8"

	"fjacquet/camt-ynab/internal/fileutils"
	"fjacquet/camt-ynab/internal/pipelineerror"
)

const (
	// DefaultDir is the config directory relative to the home directory.
	DefaultDir = ".config/transaction-parser"
	// FileName is the config file looked up inside the config directory.
	FileName = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. TXPARSER_LOG_LEVEL.
	EnvPrefix = "TXPARSER"
)

// LogSettings controls the logger built by the container.
type LogSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVSettings controls the YNAB CSV output.
type CSVSettings struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// PayeeRuleSpec is one uncompiled payee rule. Label is the payee name set when
// Pattern matches.
type PayeeRuleSpec struct {
	Label   string
	Pattern string
}

// Config represents the complete converter configuration
type Config struct {
	Log LogSettings `mapstructure:"log" yaml:"log"`
	CSV CSVSettings `mapstructure:"csv" yaml:"csv"`

	// AccountAlias maps a raw account identifier to a friendly name.
	AccountAlias map[string]string `mapstructure:"-" yaml:"-"`
	// PayeeRules are flattened in declaration order: labels as written, then
	// each label's patterns as written.
	PayeeRules []PayeeRuleSpec `mapstructure:"-" yaml:"-"`

	// Path is the file the configuration was read from.
	Path string `mapstructure:"-" yaml:"-"`
}

// Default returns the configuration used when no file provides values.
func Default() *Config {
	return &Config{
		Log:          LogSettings{Level: "info", Format: "text"},
		CSV:          CSVSettings{Delimiter: ","},
		AccountAlias: map[string]string{},
	}
}

// DelimiterRune returns the configured CSV delimiter, or ',' when unset.
func (c *Config) DelimiterRune() rune {
	r, size := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if size == 0 || r == utf8.RuneError {
		return ','
	}
	return r
}

// ResolveDir returns the config directory. An empty configDir selects
// DefaultDir, a relative one is joined to the home directory and an absolute
// one is returned unchanged.
func ResolveDir(configDir string) (string, error) {
	if configDir == "" {
		configDir = DefaultDir
	}
	if filepath.IsAbs(configDir) {
		return filepath.Clean(configDir), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", &pipelineerror.ConfigError{Path: configDir, Err: err}
	}
	return filepath.Join(home, configDir), nil
}

// Load reads FileName from dir. A missing, unreadable or malformed file, an
// invalid setting or an ill-shaped rule section yields a ConfigError.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if !fileutils.FileExists(path) {
		return nil, &pipelineerror.ConfigError{Path: path, Err: errors.New("config file not found")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &pipelineerror.ConfigError{Path: path, Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		var cfgErr *pipelineerror.ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse builds a Config from the contents of a config file.
func Parse(data []byte) (*Config, error) {
	cfg, err := loadSettings(data)
	if err != nil {
		return nil, &pipelineerror.ConfigError{Err: err}
	}

	sections, err := parseSections(data)
	if err != nil {
		return nil, &pipelineerror.ConfigError{Err: err}
	}
	cfg.AccountAlias = sections.aliases
	cfg.PayeeRules = sections.rules

	return cfg, nil
}
