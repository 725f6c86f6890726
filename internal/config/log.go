package config

import "fmt"

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error or disabled.
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
	if c.Format == "" {
		c.Format = LogFormatJSON
	}
}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

func (c LogConfig) Validate() error {
	if !validLevels[c.Level] {
		return fmt.Errorf("unknown log level %q", c.Level)
	}
	if c.Format != LogFormatJSON && c.Format != LogFormatConsole {
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	return nil
}
