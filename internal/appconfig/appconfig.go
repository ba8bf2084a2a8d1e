// Package appconfig loads cmd/aetherctl's own optional TOML settings file:
// BurntSushi/toml decoded into a raw struct, with meta.IsDefined guarding
// each optional field so a partially-specified file only overrides the
// fields it sets.
package appconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the defaults cmd/aetherctl falls back to when a flag isn't
// given explicitly.
type Config struct {
	// DefaultMode is "file" or "message", used when --mode is omitted.
	DefaultMode string
	// ErrorBufferCapacity sizes the boundary error buffer cmd/aetherctl
	// collects io-category codes into; the tag-tree parser and setting
	// handler size their own buffers off the schema length, and the
	// bit-frame parser uses a fixed two-slot buffer.
	ErrorBufferCapacity int
	// LogLevel overrides AETHERCFG_LOG_LEVEL when the environment variable
	// itself is unset, letting a deployment pin a level in one file.
	LogLevel string
}

// Default returns the built-in fallback Config, used verbatim when no file
// is given or the given path does not exist.
func Default() Config {
	return Config{
		DefaultMode:         "file",
		ErrorBufferCapacity: 8,
		LogLevel:            "",
	}
}

type rawConfig struct {
	DefaultMode         string `toml:"default_mode"`
	ErrorBufferCapacity int    `toml:"error_buffer_capacity"`
	LogLevel            string `toml:"log_level"`
}

// Load reads path as TOML into a Config seeded from Default(). A missing
// file is not an error — Load returns the defaults unchanged; a malformed
// file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var raw rawConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load aetherctl config (%s): %w", path, err)
	}

	if meta.IsDefined("default_mode") {
		mode := strings.ToLower(strings.TrimSpace(raw.DefaultMode))
		if mode != "file" && mode != "message" {
			return Config{}, fmt.Errorf("load aetherctl config (%s): default_mode must be file or message, got %q", path, raw.DefaultMode)
		}
		cfg.DefaultMode = mode
	}
	if meta.IsDefined("error_buffer_capacity") {
		if raw.ErrorBufferCapacity <= 0 {
			return Config{}, fmt.Errorf("load aetherctl config (%s): error_buffer_capacity must be positive", path)
		}
		cfg.ErrorBufferCapacity = raw.ErrorBufferCapacity
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}
