package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/japaniel/ordlys/pkg/config"
	"github.com/japaniel/ordlys/pkg/db"
	"github.com/japaniel/ordlys/pkg/dictionary"
	"github.com/japaniel/ordlys/pkg/highlighter"
	"github.com/spf13/cobra"
)

// app holds the collaborators a command works with.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	conn   *sql.DB
	cache  *dictionary.Cache
	hl     *highlighter.Highlighter
}

// openApp loads the configuration, opens the database and, if load is
// set, loads the lexicons.
func openApp(cmd *cobra.Command, opts *rootOptions, load bool) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := newLogger(cmd.ErrOrStderr(), level)

	conn, err := db.Open(cfg.Storage.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, conn: conn}

	var fetcher *dictionary.Fetcher
	if dictionary.IsURL(cfg.Lexicon.Main) || dictionary.IsURL(cfg.Lexicon.Own) {
		if cfg.Storage.Cache != "" {
			a.cache, err = dictionary.OpenCache(cfg.Storage.Cache)
			if err != nil {
				logger.Warn("lexicon cache unavailable", "path", cfg.Storage.Cache, "error", err)
			}
		}
		fetcher = dictionary.NewFetcher(cfg.Lexicon.FetchTimeout, a.cache)
		fetcher.MaxBytes = cfg.Lexicon.MaxBytes
		fetcher.Logger = logger
	}

	a.hl = highlighter.New(conn, dictionary.NewLoader(fetcher, logger), highlighter.Options{
		Main:              cfg.Lexicon.Main,
		Own:               cfg.Lexicon.Own,
		InflectionTails:   cfg.Lexicon.InflectionTails,
		IncludeOwnDefault: cfg.IncludeOwnDefault(),
		CacheSize:         cfg.Highlighter.CacheSize,
		Logger:            logger,
	})
	if load {
		if err := a.hl.Reload(cmd.Context()); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *rootOptions) {
	if opts.dbPath != "" {
		cfg.Storage.Database = opts.dbPath
	}
	if opts.lexicon != "" {
		cfg.Lexicon.Main = opts.lexicon
	}
	if opts.own != "" {
		cfg.Lexicon.Own = opts.own
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if cmd.Flags().Changed("inflection-tails") {
		cfg.Lexicon.InflectionTails = opts.tails
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close releases the database and cache.
func (a *app) Close() error {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	if a.conn != nil {
		errs = append(errs, a.conn.Close())
	}
	return errors.Join(errs...)
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, opts *rootOptions, load bool, fn func(ctx context.Context, a *app) error) error {
	a, err := openApp(cmd, opts, load)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(cmd.Context(), a)
}
