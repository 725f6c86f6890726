// Package config loads rosterdesk settings from an optional YAML or JSON
// file with ROSTERDESK_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables. A double underscore
// separates nested keys: ROSTERDESK_LOG__LEVEL sets log.level.
const EnvPrefix = "ROSTERDESK_"

const (
	DefaultUndoLimit      = 20
	DefaultMaxSuggestions = 3
)

type Config struct {
	DBPath         string    `json:"db_path"`
	UndoLimit      int       `json:"undo_limit"`
	MaxSuggestions int       `json:"max_suggestions"`
	Log            LogConfig `json:"log"`
}

// Load reads path when it is non-empty, applies environment overrides, then
// fills defaults and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.SetDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPath returns ~/.rosterdesk/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".rosterdesk", "config.yaml"), nil
}

// ResolvePath picks the config file: ROSTERDESK_CONFIG when set, otherwise
// the default path if the file exists. An empty result means env only.
func ResolvePath() string {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}
	p, err := DefaultPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %q", ext)
	}
}

// envKey maps ROSTERDESK_LOG__LEVEL to log.level.
func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) SetDefaults() error {
	if c.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		c.DBPath = filepath.Join(home, ".rosterdesk", "rosterdesk.db")
	}
	if c.UndoLimit == 0 {
		c.UndoLimit = DefaultUndoLimit
	}
	if c.MaxSuggestions == 0 {
		c.MaxSuggestions = DefaultMaxSuggestions
	}
	c.Log.SetDefaults()
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.UndoLimit < 1 {
		errs = append(errs, fmt.Errorf("undo_limit must be at least 1, got %d", c.UndoLimit))
	}
	if c.MaxSuggestions < 1 {
		errs = append(errs, fmt.Errorf("max_suggestions must be at least 1, got %d", c.MaxSuggestions))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
