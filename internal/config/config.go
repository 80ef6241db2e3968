// Package config loads the optional tiaki.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tiaki/internal/export"
	"github.com/roach88/tiaki/internal/figures"
	"github.com/roach88/tiaki/internal/region"
)

// DefaultPath is read when --config is not given.
const DefaultPath = "tiaki.yaml"

// Config holds tiaki configuration. Flags override it.
type Config struct {
	Project           ProjectConfig  `yaml:"project"`
	Council           string         `yaml:"council"`
	SpeciesCheckpoint *bool          `yaml:"species_checkpoint"`
	Figures           FiguresConfig  `yaml:"figures"`
	Export            ExportConfig   `yaml:"export"`
	Findings          FindingsConfig `yaml:"findings"`
	Logging           LoggingConfig  `yaml:"logging"`
}

// ProjectConfig names the project and where it is.
type ProjectConfig struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
}

// FiguresConfig selects the figures attached to narrative exports.
type FiguresConfig struct {
	Selected []string `yaml:"selected"` // figure IDs; empty keeps the catalogue default
}

// ExportConfig controls where exports are written and in which container.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // docx | xlsx
}

// FindingsConfig points at a knowledge base that replaces the embedded one.
type FindingsConfig struct {
	Path string `yaml:"path"` // CUE override; empty uses the embedded knowledge base
}

// LoggingConfig sets the slog level. --verbose forces debug.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns the default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Council == "" {
		cfg.Council = string(region.Hamilton)
	}
	if cfg.SpeciesCheckpoint == nil {
		on := true
		cfg.SpeciesCheckpoint = &on
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "."
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = string(export.FormatDOCX)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks enumerated values and figure IDs.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := region.ParseCouncil(cfg.Council); err != nil {
		errs = append(errs, fmt.Errorf("council: %w", err))
	}
	if _, err := export.ParseFormat(cfg.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("export.format: %w", err))
	}
	if _, err := ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if len(cfg.Figures.Selected) > 0 {
		if _, err := figures.Select(figures.Defaults(), cfg.Figures.Selected); err != nil {
			errs = append(errs, fmt.Errorf("figures.selected: %w", err))
		}
	}
	return errors.Join(errs...)
}

// CouncilValue returns the parsed council. Validate must have passed.
func (c *Config) CouncilValue() region.Council {
	council, _ := region.ParseCouncil(c.Council)
	return council
}

// Checkpoint reports whether the species checkpoint toggle is on.
func (c *Config) Checkpoint() bool {
	return c.SpeciesCheckpoint == nil || *c.SpeciesCheckpoint
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", raw)
	}
}
