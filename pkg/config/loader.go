package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default configuration file name.
const ConfigFileName = "ordlys.yaml"

// Load loads the configuration from the specified path, or searches
// default locations if path is empty.
//
// Search order:
//  1. Explicit path (if provided)
//  2. $XDG_CONFIG_HOME/ordlys/ordlys.yaml (~/.config when unset)
//  3. ordlys.yaml in the binary's directory
//
// Without any file the defaults are used.
func Load(path string) (*Config, error) {
	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		cfg := DefaultConfig()
		applyDefaults(cfg)
		return cfg, nil
	}
	return loadFromFile(configPath)
}

// findConfigFile returns "" when no file exists in the default locations.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	for _, p := range []string{userConfigPath(), getBinaryDirConfigPath()} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

func userConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ordlys", ConfigFileName)
}

// getBinaryDirConfigPath returns the path to config file in the binary's
// directory.
func getBinaryDirConfigPath() string {
	executable, err := os.Executable()
	if err != nil {
		return ""
	}
	executable, err = filepath.EvalSymlinks(executable)
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(executable), ConfigFileName)
}

// loadFromFile loads and parses the configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills zero values an explicit file may have left behind
// and expands ~ in paths.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Lexicon.FetchTimeout == 0 {
		cfg.Lexicon.FetchTimeout = def.Lexicon.FetchTimeout
	}
	if cfg.Lexicon.MaxBytes == 0 {
		cfg.Lexicon.MaxBytes = def.Lexicon.MaxBytes
	}
	if cfg.Ingest.Workers == 0 {
		cfg.Ingest.Workers = def.Ingest.Workers
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = def.Ingest.BatchSize
	}
	if cfg.Highlighter.CacheSize == 0 {
		cfg.Highlighter.CacheSize = def.Highlighter.CacheSize
	}
	if cfg.Highlighter.Debounce == 0 {
		cfg.Highlighter.Debounce = def.Highlighter.Debounce
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}

	cfg.Lexicon.Main = expandPath(cfg.Lexicon.Main)
	cfg.Lexicon.Own = expandPath(cfg.Lexicon.Own)
	cfg.Storage.Database = expandPath(cfg.Storage.Database)
	cfg.Storage.Cache = expandPath(cfg.Storage.Cache)
}
