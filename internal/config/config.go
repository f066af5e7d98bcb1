// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/pcforge/internal/domain/compat"
	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/scoring"
	"github.com/okian/pcforge/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SeedFile is an optional YAML catalog loaded at startup.
	SeedFile string `koanf:"seed_file"`

	// DefaultPageSize and MaxPageSize bound GET /components paging.
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// RequiredCategories decide when a build is complete.
	RequiredCategories []string `koanf:"required_categories"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Compat tunes the compatibility rules.
	Compat Compat `koanf:"compat"`

	// Scoring overrides the hardware lists used by the scoring profiles.
	// Empty lists keep the built-in values.
	Scoring scoring.Tables `koanf:"scoring"`
}

// Compat holds compatibility rule settings.
type Compat struct {
	// PowerHeadroom is the share of PSU wattage a GPU may draw.
	PowerHeadroom float64 `koanf:"power_headroom"`
}

// New creates a Config populated with defaults.
func New() *Config {
	required := make([]string, 0, len(model.DefaultRequiredCategories))
	for _, c := range model.DefaultRequiredCategories {
		required = append(required, string(c))
	}
	return &Config{
		LogLevel:           "info",
		LogFormat:          logger.FormatText,
		Addr:               ":9080",
		DefaultPageSize:    20,
		MaxPageSize:        100,
		RequiredCategories: required,
		ShutdownTimeout:    10 * time.Second,
		Compat: Compat{
			PowerHeadroom: compat.DefaultPowerHeadroom,
		},
	}
}

// Validate checks c and reports the first problem wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DefaultPageSize <= 0:
		return fmt.Errorf("%w: default_page_size must be positive", ErrInvalidConfig)
	case c.MaxPageSize < c.DefaultPageSize:
		return fmt.Errorf("%w: max_page_size must be >= default_page_size", ErrInvalidConfig)
	case c.Compat.PowerHeadroom <= 0 || c.Compat.PowerHeadroom > 1:
		return fmt.Errorf("%w: compat.power_headroom must be in (0, 1]", ErrInvalidConfig)
	case c.ShutdownTimeout < 0:
		return fmt.Errorf("%w: shutdown_timeout must not be negative", ErrInvalidConfig)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if f := strings.ToLower(c.LogFormat); f != logger.FormatText && f != logger.FormatJSON {
		return fmt.Errorf("%w: log_format must be %q or %q", ErrInvalidConfig, logger.FormatText, logger.FormatJSON)
	}
	if _, err := c.Required(); err != nil {
		return err
	}
	return nil
}

// Required resolves RequiredCategories.
func (c *Config) Required() ([]model.Category, error) {
	out := make([]model.Category, 0, len(c.RequiredCategories))
	for _, name := range c.RequiredCategories {
		if strings.TrimSpace(name) == "" {
			continue
		}
		cat, err := model.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("%w: required_categories: %w", ErrInvalidConfig, err)
		}
		out = append(out, cat)
	}
	return out, nil
}
