package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/rosterdesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONCarriesComponent(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	log := New("editor", config.LogConfig{Level: "info", Format: config.LogFormatJSON}, &buf)

	log.Info().Str("date", "2026-03-02").Msg("applied edit")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "editor", line["component"])
	assert.Equal(t, "2026-03-02", line["date"])
	assert.Equal(t, "applied edit", line["message"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_LevelFilters(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	log := New("editor", config.LogConfig{Level: "warn", Format: config.LogFormatJSON}, &buf)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New("cli", config.LogConfig{Level: "debug", Format: config.LogFormatConsole}, &buf)

	log.Debug().Msg("opened session")
	out := buf.String()
	assert.Contains(t, out, "opened session")
	assert.Contains(t, out, "component=cli")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNew_DevEnvForcesConsole(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	var buf bytes.Buffer
	log := New("cli", config.LogConfig{Level: "info", Format: config.LogFormatJSON}, &buf)

	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "component=cli")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error().Msg("dropped")
}
