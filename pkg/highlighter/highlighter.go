// Package highlighter owns the live lexicon index. Readers scan against
// an immutable snapshot; every preference change or lexicon reload builds
// a complete new index and swaps it in.
package highlighter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/japaniel/ordlys/pkg/db"
	"github.com/japaniel/ordlys/pkg/dictionary"
	"github.com/japaniel/ordlys/pkg/lexicon"
)

// DefaultCacheSize is the number of scanned texts memoised per index.
const DefaultCacheSize = 512

// Options configures a Highlighter.
type Options struct {
	Main string // main lexicon, path or URL
	Own  string // optional own lexicon, path or URL

	InflectionTails bool
	// IncludeOwnDefault applies until the reader stores a preference.
	IncludeOwnDefault bool
	CacheSize         int
	Logger            *slog.Logger
}

// Highlighter scans text against the current index. It is safe for
// concurrent use; Scan never blocks on a rebuild.
type Highlighter struct {
	conn   *sql.DB
	loader *dictionary.Loader
	opts   Options
	logger *slog.Logger

	mu   sync.Mutex // serialises rebuilds
	main []lexicon.Record
	own  []lexicon.Record

	current atomic.Pointer[snapshot]
}

// snapshot is one built index with everything derived from it.
type snapshot struct {
	index          *lexicon.Index
	records        []lexicon.Record
	disabledWords  lexicon.WordSet
	disabledLevels lexicon.LevelSet
	includeOwn     bool
	builtAt        time.Time

	cache      *lru.Cache[string, []lexicon.Match]
	suggestOne sync.Once
	suggester  *lexicon.Suggester
}

// New creates a highlighter. It serves an empty index until Reload.
func New(conn *sql.DB, loader *dictionary.Loader, opts Options) *Highlighter {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if loader == nil {
		loader = dictionary.NewLoader(nil, opts.Logger)
	}
	h := &Highlighter{conn: conn, loader: loader, opts: opts, logger: opts.Logger}
	h.current.Store(h.newSnapshot(lexicon.Build(nil, nil, nil), nil, nil, nil, opts.IncludeOwnDefault))
	return h
}

func (h *Highlighter) newSnapshot(idx *lexicon.Index, records []lexicon.Record, words lexicon.WordSet, levels lexicon.LevelSet, includeOwn bool) *snapshot {
	cache, err := lru.New[string, []lexicon.Match](h.opts.CacheSize)
	if err != nil {
		// Only a non-positive size fails, and New guards against that.
		panic(err)
	}
	return &snapshot{
		index:          idx,
		records:        records,
		disabledWords:  words,
		disabledLevels: levels,
		includeOwn:     includeOwn,
		builtAt:        time.Now(),
		cache:          cache,
	}
}

// Reload fetches both lexicons and rebuilds the index. If the main
// lexicon cannot be loaded the records loaded before keep serving and the
// error is returned.
func (h *Highlighter) Reload(ctx context.Context) error {
	main, mainErr := h.loader.Load(ctx, h.opts.Main)
	own := h.loader.LoadOptional(ctx, h.opts.Own)

	h.mu.Lock()
	defer h.mu.Unlock()
	if mainErr != nil {
		h.logger.Warn("main lexicon unavailable, keeping previous records", "source", h.opts.Main, "error", mainErr)
	} else {
		h.main = main
	}
	h.own = own
	if err := h.rebuildLocked(); err != nil {
		return err
	}
	if mainErr != nil {
		return fmt.Errorf("load main lexicon: %w", mainErr)
	}
	return nil
}

// SetRecords installs records directly, bypassing the loader.
func (h *Highlighter) SetRecords(main, own []lexicon.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.main, h.own = main, own
	return h.rebuildLocked()
}

// rebuildLocked reads the preferences and swaps in a fresh index. On error
// the previous index stays in place.
func (h *Highlighter) rebuildLocked() error {
	words, levels, includeOwn, err := h.loadPrefs()
	if err != nil {
		return err
	}
	records := dictionary.Merge(h.main, h.own, includeOwn)
	start := time.Now()
	idx := lexicon.Build(records, words, levels, lexicon.WithInflectionTails(h.opts.InflectionTails))
	h.current.Store(h.newSnapshot(idx, records, words, levels, includeOwn))
	h.logger.Debug("index rebuilt",
		"phrases", idx.Len(),
		"records", len(records),
		"disabled_words", len(words),
		"disabled_levels", len(levels),
		"include_own", includeOwn,
		"took", time.Since(start))
	return nil
}

func (h *Highlighter) loadPrefs() (lexicon.WordSet, lexicon.LevelSet, bool, error) {
	if h.conn == nil {
		return nil, nil, h.opts.IncludeOwnDefault, nil
	}
	words, err := db.LoadDisabledWords(h.conn)
	if err != nil {
		return nil, nil, false, err
	}
	levels, err := db.LoadDisabledLevels(h.conn)
	if err != nil {
		return nil, nil, false, err
	}
	includeOwn, err := db.LoadIncludeOwnOr(h.conn, h.opts.IncludeOwnDefault)
	if err != nil {
		return nil, nil, false, err
	}
	return words, levels, includeOwn, nil
}

var errNoStore = errors.New("highlighter: no preference store configured")

func (h *Highlighter) update(fn func(conn *sql.DB) (bool, error)) error {
	if h.conn == nil {
		return errNoStore
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	changed, err := fn(h.conn)
	if err != nil || !changed {
		return err
	}
	return h.rebuildLocked()
}

// DisableWord stops highlighting word. It returns the canonical form that
// was stored, "" if word has no letters.
func (h *Highlighter) DisableWord(word string) (string, error) {
	var phrase string
	err := h.update(func(conn *sql.DB) (bool, error) {
		var err error
		phrase, err = db.DisableWord(conn, word)
		return phrase != "", err
	})
	return phrase, err
}

// RestoreWord highlights a disabled word again.
func (h *Highlighter) RestoreWord(word string) error {
	return h.update(func(conn *sql.DB) (bool, error) {
		return true, db.RestoreWord(conn, word)
	})
}

// SetLevelEnabled switches a difficulty level on or off.
func (h *Highlighter) SetLevelEnabled(level int, enabled bool) error {
	return h.update(func(conn *sql.DB) (bool, error) {
		return true, db.SetLevelEnabled(conn, level, enabled)
	})
}

// SetIncludeOwn switches the own lexicon on or off.
func (h *Highlighter) SetIncludeOwn(enabled bool) error {
	return h.update(func(conn *sql.DB) (bool, error) {
		return true, db.SaveIncludeOwn(conn, enabled)
	})
}

// Scan finds phrase occurrences in text using the current index. The
// returned slice may be shared with later calls and must not be modified.
func (h *Highlighter) Scan(text string) []lexicon.Match {
	s := h.current.Load()
	if m, ok := s.cache.Get(text); ok {
		return m
	}
	m := s.index.Scan(text)
	s.cache.Add(text, m)
	return m
}

// Index returns the current index.
func (h *Highlighter) Index() *lexicon.Index {
	return h.current.Load().index
}

// DisabledWords returns the canonical forms currently switched off, sorted.
func (h *Highlighter) DisabledWords() []string {
	return h.current.Load().disabledWords.Sorted()
}

// IncludeOwn reports whether the current index includes the own lexicon.
func (h *Highlighter) IncludeOwn() bool {
	return h.current.Load().includeOwn
}

// Suggest completes prefix against the current index.
func (h *Highlighter) Suggest(prefix string, limit int) []lexicon.Entry {
	s := h.current.Load()
	s.suggestOne.Do(func() { s.suggester = lexicon.NewSuggester(s.index) })
	return s.suggester.Suggest(prefix, limit)
}

// LevelInfo describes one difficulty level of the loaded lexicons.
type LevelInfo struct {
	Level   int    `json:"level"`
	Words   int    `json:"words"`
	Enabled bool   `json:"enabled"`
	Color   string `json:"color"`
}

// Levels lists every level present in the loaded records with its record
// count and whether it is enabled.
func (h *Highlighter) Levels() []LevelInfo {
	s := h.current.Load()
	counts := lexicon.LevelCounts(s.records)
	levels := lexicon.AllLevels(s.records)
	// Disabled levels stay listed so they can be enabled again.
	for l := range s.disabledLevels {
		if l > 0 && !slices.Contains(levels, l) {
			levels = append(levels, l)
		}
	}
	slices.Sort(levels)

	out := make([]LevelInfo, 0, len(levels))
	for _, l := range levels {
		out = append(out, LevelInfo{
			Level:   l,
			Words:   counts[l],
			Enabled: !s.disabledLevels.Has(l),
			Color:   lexicon.LevelColor(l),
		})
	}
	return out
}
