// Package config defines the application configuration and its loader.
package config

import (
	"fmt"
	"strings"
)

// Config represents the full application configuration.
type Config struct {
	Review        ReviewConfig        `yaml:"review"`
	Dedup         DedupConfig         `yaml:"dedup"`
	Git           GitConfig           `yaml:"git"`
	Output        OutputConfig        `yaml:"output"`
	Store         StoreConfig         `yaml:"store"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ReviewConfig configures validation and review assembly behavior.
type ReviewConfig struct {
	// RenamePolicy controls how issues filed against a pre-rename path
	// are handled: "auto-correct" remaps them to the new path, "strict"
	// rejects them.
	RenamePolicy string `yaml:"renamePolicy"`

	// Actions maps issue severities to review events.
	Actions ReviewActions `yaml:"actions"`
}

// ReviewActions maps issue severities to review actions.
// Valid action values (case-insensitive): approve, comment, request_changes.
type ReviewActions struct {
	// OnCritical is the action when any critical severity issue survives.
	OnCritical string `yaml:"onCritical"`

	// OnHigh is the action when any high severity issue survives (and no critical).
	OnHigh string `yaml:"onHigh"`

	// OnMedium is the action when any medium severity issue survives (and no higher).
	OnMedium string `yaml:"onMedium"`

	// OnLow is the action when any low severity issue survives (and no higher).
	OnLow string `yaml:"onLow"`

	// OnClean is the action when no comments survive validation.
	OnClean string `yaml:"onClean"`
}

// DedupConfig configures cross-run duplicate suppression.
type DedupConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GitConfig locates the repository diffs are read from.
type GitConfig struct {
	RepositoryDir string `yaml:"repositoryDir"`
}

// OutputConfig locates the artifact directory.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// StoreConfig configures the persistence layer.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`  // debug, info, warn
	Format  string `yaml:"format"` // human, json
}

// Validate reports the first configuration problem encountered.
func (c Config) Validate() error {
	switch c.Review.RenamePolicy {
	case "", "auto-correct", "strict":
	default:
		return fmt.Errorf("review.renamePolicy must be %q or %q, got %q", "auto-correct", "strict", c.Review.RenamePolicy)
	}

	actions := map[string]string{
		"review.actions.onCritical": c.Review.Actions.OnCritical,
		"review.actions.onHigh":     c.Review.Actions.OnHigh,
		"review.actions.onMedium":   c.Review.Actions.OnMedium,
		"review.actions.onLow":      c.Review.Actions.OnLow,
		"review.actions.onClean":    c.Review.Actions.OnClean,
	}
	for key, value := range actions {
		if !validAction(value) {
			return fmt.Errorf("%s must be approve, comment, or request_changes, got %q", key, value)
		}
	}

	switch strings.ToLower(c.Observability.Logging.Level) {
	case "", "debug", "info", "warn":
	default:
		return fmt.Errorf("observability.logging.level must be debug, info, or warn, got %q", c.Observability.Logging.Level)
	}

	switch strings.ToLower(c.Observability.Logging.Format) {
	case "", "human", "json":
	default:
		return fmt.Errorf("observability.logging.format must be human or json, got %q", c.Observability.Logging.Format)
	}

	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("store.path is required when store.enabled is true")
	}

	return nil
}

func validAction(value string) bool {
	switch strings.ToLower(value) {
	case "", "approve", "comment", "request_changes":
		return true
	default:
		return false
	}
}
