package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/japaniel/ordlys/pkg/lexicon"
)

// LoadFile reads a lexicon JSON file (array of records or {"words": [...]}).
func LoadFile(path string) ([]lexicon.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := lexicon.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return records, nil
}

// Merge returns the main records followed by the reader's own records
// when includeOwn is set. Main entries come first, so they win when both
// lexicons define the same phrase.
func Merge(main, own []lexicon.Record, includeOwn bool) []lexicon.Record {
	if !includeOwn || len(own) == 0 {
		return main
	}
	merged := make([]lexicon.Record, 0, len(main)+len(own))
	merged = append(merged, main...)
	return append(merged, own...)
}

// Loader resolves a lexicon source, either a local path or an http(s) URL.
type Loader struct {
	Fetcher *Fetcher
	Logger  *slog.Logger
}

// NewLoader creates a loader. fetcher may be nil when only files are used.
func NewLoader(fetcher *Fetcher, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Fetcher: fetcher, Logger: logger}
}

// IsURL reports whether src names a remote lexicon.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load returns the records of a required lexicon.
func (l *Loader) Load(ctx context.Context, src string) ([]lexicon.Record, error) {
	if src == "" {
		return nil, fmt.Errorf("no lexicon source configured")
	}
	if !IsURL(src) {
		return LoadFile(src)
	}
	if l.Fetcher == nil {
		return nil, fmt.Errorf("lexicon %s: no fetcher configured for remote sources", src)
	}
	return l.Fetcher.Fetch(ctx, src)
}

// LoadOptional loads a lexicon that may be missing. Failures are logged
// and yield no records.
func (l *Loader) LoadOptional(ctx context.Context, src string) []lexicon.Record {
	if src == "" {
		return nil
	}
	records, err := l.Load(ctx, src)
	if err != nil {
		l.Logger.Warn("optional lexicon ignored", "source", src, "error", err)
		return nil
	}
	return records
}
