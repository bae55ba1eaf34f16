// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/roster/internal/record"
)

// Config holds all roster configuration.
type Config struct {
	IDs IDs `yaml:"ids"`
	Log Log `yaml:"log"`
	UI  UI  `yaml:"ui"`
}

// IDs selects how record identifiers are generated.
type IDs struct {
	Strategy string `yaml:"strategy"` // "uuid" | "sequence"
	Prefix   string `yaml:"prefix"`   // Sequence prefix, e.g. "u" for u1, u2, ...
}

// Log holds diagnostic logging settings.
type Log struct {
	File  string `yaml:"file"`  // Empty disables logging; the TUI owns the terminal.
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// UI holds front-end settings.
type UI struct {
	AltScreen  bool   `yaml:"alt_screen"`
	ScriptsDir string `yaml:"scripts_dir"` // Local replay scripts, checked before embedded ones
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IDs: IDs{
			Strategy: record.StrategyUUID,
			Prefix:   "u",
		},
		Log: Log{
			Level: "info",
		},
		UI: UI{
			AltScreen:  true,
			ScriptsDir: ".roster/scripts",
		},
	}
}

// Load reads a single YAML config file. It is LoadLayered with one path:
// a missing or empty file yields defaults, and unknown fields are an error.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if _, err := record.NewIDGenerator(c.IDs.Strategy, c.IDs.Prefix); err != nil {
		return fmt.Errorf("config: ids.strategy: %w", err)
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config: log.level: %w", err)
		}
	}
	if c.UI.ScriptsDir == "" {
		return errors.New("config: ui.scripts_dir cannot be empty")
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ROSTER_ID_STRATEGY, ROSTER_LOG_FILE, ROSTER_LOG_LEVEL,
// ROSTER_ALT_SCREEN.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ROSTER_ID_STRATEGY"); v != "" {
		c.IDs.Strategy = v
	}
	if v := os.Getenv("ROSTER_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("ROSTER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ROSTER_ALT_SCREEN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid ROSTER_ALT_SCREEN %q: %w", v, err)
		}
		c.UI.AltScreen = b
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	IDs *rawIDs `yaml:"ids"`
	Log *rawLog `yaml:"log"`
	UI  *rawUI  `yaml:"ui"`
}

type rawIDs struct {
	Strategy *string `yaml:"strategy"`
	Prefix   *string `yaml:"prefix"`
}

type rawLog struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

type rawUI struct {
	AltScreen  *bool   `yaml:"alt_screen"`
	ScriptsDir *string `yaml:"scripts_dir"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.IDs != nil {
		if layer.IDs.Strategy != nil {
			c.IDs.Strategy = *layer.IDs.Strategy
		}
		if layer.IDs.Prefix != nil {
			c.IDs.Prefix = *layer.IDs.Prefix
		}
	}
	if layer.Log != nil {
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
	if layer.UI != nil {
		if layer.UI.AltScreen != nil {
			c.UI.AltScreen = *layer.UI.AltScreen
		}
		if layer.UI.ScriptsDir != nil {
			c.UI.ScriptsDir = *layer.UI.ScriptsDir
		}
	}
}
