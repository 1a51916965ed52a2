// Package settings loads viewer settings.
//
// Precedence, lowest first: built-in defaults, the YAML settings file,
// MVV_* environment variables. Command-line flags are applied on top by
// the caller.
package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no settings path is given and it exists.
const DefaultFile = "mvv.yaml"

// Settings configures the viewer process.
type Settings struct {
	// Payload is the path of the host payload file; "" means discover.
	Payload string `yaml:"payload" env:"MVV_PAYLOAD"`

	// Refresh is the polling fallback interval for payload changes.
	Refresh time.Duration `yaml:"refresh" env:"MVV_REFRESH"`

	// CellWidth and CellHeight convert terminal cells to logical pixels
	// for the layout breakpoint and font scale.
	CellWidth  int `yaml:"cell_width" env:"MVV_CELL_WIDTH"`
	CellHeight int `yaml:"cell_height" env:"MVV_CELL_HEIGHT"`

	Log Log `yaml:"log"`
}

// Log configures the log file.
type Log struct {
	File       string `yaml:"file" env:"MVV_LOG_FILE"`
	Level      string `yaml:"level" env:"MVV_LOG_LEVEL"`
	Format     string `yaml:"format" env:"MVV_LOG_FORMAT"` // text or json
	MaxSizeMB  int    `yaml:"max_size_mb" env:"MVV_LOG_MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"MVV_LOG_MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"MVV_LOG_MAX_AGE_DAYS"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Refresh:    2 * time.Second,
		CellWidth:  8,
		CellHeight: 16,
		Log: Log{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the settings file at path over the defaults, then applies the
// environment. An empty path reads DefaultFile if present; an explicit
// path must exist.
func Load(path string) (Settings, error) {
	s := Defaults()

	file := path
	if file == "" {
		file = DefaultFile
	}
	raw, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return s, fmt.Errorf("parse settings %s: %w", file, err)
		}
	case path == "" && errors.Is(err, os.ErrNotExist):
	default:
		return s, fmt.Errorf("read settings %s: %w", file, err)
	}

	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("settings from environment: %w", err)
	}
	return s, s.Validate()
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Refresh <= 0 {
		return fmt.Errorf("refresh must be positive, got %s", s.Refresh)
	}
	if s.CellWidth <= 0 || s.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %dx%d", s.CellWidth, s.CellHeight)
	}
	switch s.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", s.Log.Format)
	}
	return nil
}
