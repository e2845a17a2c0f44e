package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/japaniel/ordlys/pkg/lexicon"
)

// DefaultMaxBytes bounds the size of a downloaded lexicon.
const DefaultMaxBytes = 64 << 20

// Fetcher downloads lexicon documents over HTTP. A failed attempt is
// retried once with a cache-busting query parameter; if that fails too and
// a Cache is configured, the last good copy is used instead.
type Fetcher struct {
	Client   *http.Client
	Cache    *Cache
	MaxBytes int64
	Logger   *slog.Logger

	now func() time.Time
}

// NewFetcher creates a fetcher with the given request timeout. cache may be nil.
func NewFetcher(timeout time.Duration, cache *Cache) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: timeout},
		Cache:    cache,
		MaxBytes: DefaultMaxBytes,
		Logger:   slog.Default(),
		now:      time.Now,
	}
}

// Fetch downloads and decodes the lexicon at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]lexicon.Record, error) {
	records, body, err := f.fetchOnce(ctx, rawURL)
	if err != nil {
		retryURL, uerr := cacheBust(rawURL, f.now())
		if uerr != nil {
			return nil, uerr
		}
		var retryErr error
		records, body, retryErr = f.fetchOnce(ctx, retryURL)
		if retryErr != nil {
			err = fmt.Errorf("%v; retry failed: %w", err, retryErr)
			return f.fromCache(rawURL, err)
		}
	}
	if f.Cache != nil {
		if cerr := f.Cache.Put(rawURL, body); cerr != nil {
			f.Logger.Warn("lexicon cache write failed", "url", rawURL, "error", cerr)
		}
	}
	return records, nil
}

func (f *Fetcher) fromCache(rawURL string, fetchErr error) ([]lexicon.Record, error) {
	if f.Cache == nil {
		return nil, fetchErr
	}
	body, fetchedAt, err := f.Cache.Get(rawURL)
	if err != nil {
		if errors.Is(err, ErrNotCached) {
			return nil, fetchErr
		}
		return nil, fmt.Errorf("%v; cache: %w", fetchErr, err)
	}
	records, err := lexicon.DecodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("%v; cached copy unusable: %w", fetchErr, err)
	}
	f.Logger.Warn("using cached lexicon", "url", rawURL, "fetched_at", fetchedAt, "error", fetchErr)
	return records, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) ([]lexicon.Record, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", "ordlys")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("lexicon request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("lexicon request failed: %s", resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read lexicon: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, nil, fmt.Errorf("lexicon exceeds %d bytes", limit)
	}

	records, err := lexicon.DecodeRecords(body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (length=%d, start=%q)", err, len(body), preview(body))
	}
	return records, body, nil
}

// cacheBust appends t=<unix millis> to rawURL.
func cacheBust(rawURL string, now time.Time) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse lexicon url: %w", err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(now.UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func preview(body []byte) string {
	const n = 120
	if len(body) > n {
		body = body[:n]
	}
	return string(body)
}
