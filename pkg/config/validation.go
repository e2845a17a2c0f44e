package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// ValidationError represents a single configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors and returns all validation
// errors found.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Lexicon.Main) == "" {
		errs = append(errs, ValidationError{"lexicon.main", "a main lexicon is required"})
	}
	if c.Lexicon.FetchTimeout < 0 {
		errs = append(errs, ValidationError{"lexicon.fetch_timeout", "must not be negative"})
	}
	if c.Lexicon.MaxBytes < 0 {
		errs = append(errs, ValidationError{"lexicon.max_bytes", "must not be negative"})
	}
	if c.Storage.Database == "" {
		errs = append(errs, ValidationError{"storage.database", "a database path is required"})
	}
	if c.Ingest.Workers < 1 || c.Ingest.Workers > 256 {
		errs = append(errs, ValidationError{"ingest.workers", fmt.Sprintf("must be between 1 and 256, got %d", c.Ingest.Workers)})
	}
	if c.Ingest.BatchSize < 1 {
		errs = append(errs, ValidationError{"ingest.batch_size", "must be positive"})
	}
	if c.Highlighter.CacheSize < 1 {
		errs = append(errs, ValidationError{"highlighter.cache_size", "must be positive"})
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{"log.level", err.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseLevel maps a configured level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
