package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "config.toml")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 20*time.Millisecond, cfg.Typing.KeyDelay())
	assert.Equal(t, 300*time.Millisecond, cfg.Typing.SettleDelay())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "loading must not create a config file")
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
[typing]
key_delay_ms = 50
normalize_line_endings = false

[logging]
debug = true
file = "/tmp/rawpaste.log"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Typing.KeyDelayMs)
	assert.Equal(t, 300, cfg.Typing.SettleDelayMs, "unset keys keep defaults")
	assert.False(t, cfg.Typing.NormalizeLineEndings)
	assert.True(t, cfg.Typing.StripControl)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "/tmp/rawpaste.log", cfg.Logging.File)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative key delay", "[typing]\nkey_delay_ms = -1\n"},
		{"huge key delay", "[typing]\nkey_delay_ms = 5000\n"},
		{"negative settle delay", "[typing]\nsettle_delay_ms = -10\n"},
		{"malformed", "[typing\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
