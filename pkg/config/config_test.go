package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	if err != nil {
		t.Fatalf("failed to load valid config: %v", err)
	}

	if cfg.Lexicon.Main != "https://example.com/wordsdetail.json" {
		t.Errorf("unexpected main lexicon %q", cfg.Lexicon.Main)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "ordlys", "myown.json"); cfg.Lexicon.Own != want {
		t.Errorf("expected own lexicon %q, got %q", want, cfg.Lexicon.Own)
	}
	if cfg.IncludeOwnDefault() {
		t.Errorf("expected include_own false")
	}
	if !cfg.Lexicon.InflectionTails {
		t.Errorf("expected inflection_tails true")
	}
	if cfg.Lexicon.FetchTimeout != 5*time.Second {
		t.Errorf("expected fetch timeout 5s, got %v", cfg.Lexicon.FetchTimeout)
	}
	if cfg.Ingest.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Ingest.Workers)
	}
	// Unset fields keep their defaults.
	if cfg.Ingest.BatchSize != 50 {
		t.Errorf("expected default batch size 50, got %d", cfg.Ingest.BatchSize)
	}
	if cfg.Storage.Cache != "ordlys-cache.db" {
		t.Errorf("expected default cache path, got %q", cfg.Storage.Cache)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	fields := map[string]bool{}
	for _, e := range verrs {
		fields[e.Field] = true
	}
	for _, f := range []string{"lexicon.main", "ingest.workers", "log.level"} {
		if !fields[f] {
			t.Errorf("expected error for %s, got %v", f, verrs)
		}
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_SearchesXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Lexicon.Main != "wordsdetail.json" || !cfg.IncludeOwnDefault() {
		t.Errorf("expected defaults, got %+v", cfg.Lexicon)
	}

	if err := os.MkdirAll(filepath.Join(dir, "ordlys"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("storage:\n  database: from-xdg.db\n")
	if err := os.WriteFile(filepath.Join(dir, "ordlys", ConfigFileName), data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load xdg config: %v", err)
	}
	if cfg.Storage.Database != "from-xdg.db" {
		t.Errorf("expected database from XDG config, got %q", cfg.Storage.Database)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
