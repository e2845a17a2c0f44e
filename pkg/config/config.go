// Package config loads the ordlys YAML configuration.
package config

import "time"

// Config is the top-level configuration.
type Config struct {
	Lexicon     LexiconConfig     `yaml:"lexicon"`
	Storage     StorageConfig     `yaml:"storage"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Highlighter HighlighterConfig `yaml:"highlighter"`
	Log         LogConfig         `yaml:"log"`
}

// LexiconConfig names the lexicon sources. Each is a file path or an
// http(s) URL.
type LexiconConfig struct {
	Main string `yaml:"main"`
	// Own is the reader's personal word list; it is optional and a
	// missing file is not an error.
	Own             string        `yaml:"own"`
	IncludeOwn      *bool         `yaml:"include_own"`
	InflectionTails bool          `yaml:"inflection_tails"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	MaxBytes        int64         `yaml:"max_bytes"`
}

// StorageConfig holds file locations.
type StorageConfig struct {
	Database string `yaml:"database"`
	Cache    string `yaml:"cache"`
}

// IngestConfig tunes the ingest pipeline.
type IngestConfig struct {
	Workers   int `yaml:"workers"`
	BatchSize int `yaml:"batch_size"`
}

// HighlighterConfig tunes scanning.
type HighlighterConfig struct {
	CacheSize int           `yaml:"cache_size"`
	Debounce  time.Duration `yaml:"watch_debounce"`
}

// LogConfig configures slog.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	includeOwn := true
	return &Config{
		Lexicon: LexiconConfig{
			Main:         "wordsdetail.json",
			Own:          "myown.json",
			IncludeOwn:   &includeOwn,
			FetchTimeout: 30 * time.Second,
			MaxBytes:     64 << 20,
		},
		Storage: StorageConfig{
			Database: "ordlys.db",
			Cache:    "ordlys-cache.db",
		},
		Ingest: IngestConfig{
			Workers:   4,
			BatchSize: 50,
		},
		Highlighter: HighlighterConfig{
			CacheSize: 512,
			Debounce:  300 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// IncludeOwnDefault reports whether the own lexicon is used when no
// preference has been stored yet.
func (c *Config) IncludeOwnDefault() bool {
	return c.Lexicon.IncludeOwn == nil || *c.Lexicon.IncludeOwn
}
