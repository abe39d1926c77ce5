package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Typing  TypingConfig  `toml:"typing"`
	Logging LoggingConfig `toml:"logging"`
}

type TypingConfig struct {
	KeyDelayMs           int  `toml:"key_delay_ms"`
	SettleDelayMs        int  `toml:"settle_delay_ms"`
	NormalizeLineEndings bool `toml:"normalize_line_endings"`
	StripControl         bool `toml:"strip_control"`
	TrimTrailingNewline  bool `toml:"trim_trailing_newline"`
}

type LoggingConfig struct {
	// Debug logs every observed key event. Leave off outside troubleshooting.
	Debug bool   `toml:"debug"`
	File  string `toml:"file"`
}

const maxKeyDelayMs = 1000

// Default configuration
func defaultConfig() *Config {
	return &Config{
		Typing: TypingConfig{
			KeyDelayMs:           20,
			SettleDelayMs:        300,
			NormalizeLineEndings: true,
			StripControl:         true,
			TrimTrailingNewline:  false,
		},
		Logging: LoggingConfig{
			Debug: false,
			File:  "",
		},
	}
}

// Default returns the built-in configuration used when no file exists
func Default() *Config {
	return defaultConfig()
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}

	return filepath.Join(configDir, "rawpaste", "config.toml"), nil
}

// Load loads the configuration from the TOML file.
// A missing file yields the defaults; nothing is ever written back.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile loads and validates the configuration at path
func LoadFile(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Typing.KeyDelayMs < 0 {
		return fmt.Errorf("typing.key_delay_ms must not be negative: %d", c.Typing.KeyDelayMs)
	}
	if c.Typing.KeyDelayMs > maxKeyDelayMs {
		return fmt.Errorf("typing.key_delay_ms must be at most %d: %d", maxKeyDelayMs, c.Typing.KeyDelayMs)
	}
	if c.Typing.SettleDelayMs < 0 {
		return fmt.Errorf("typing.settle_delay_ms must not be negative: %d", c.Typing.SettleDelayMs)
	}
	return nil
}

// KeyDelay is the pause between two emitted keystrokes
func (t TypingConfig) KeyDelay() time.Duration {
	return time.Duration(t.KeyDelayMs) * time.Millisecond
}

// SettleDelay is the pause before the first keystroke
func (t TypingConfig) SettleDelay() time.Duration {
	return time.Duration(t.SettleDelayMs) * time.Millisecond
}
