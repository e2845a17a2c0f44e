package page

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// MaxPageBytes limits the size of a fetched page.
const MaxPageBytes = 10 * 1024 * 1024

// Source is raw page markup and where it came from.
type Source struct {
	URL  *url.URL
	Body []byte
}

// Load reads a page from an http(s) URL or a local file.
func Load(ctx context.Context, client *http.Client, src string) (Source, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return Fetch(ctx, client, src)
	}
	body, err := os.ReadFile(src)
	if err != nil {
		return Source{}, err
	}
	return Source{URL: &url.URL{Scheme: "file", Path: src}, Body: body}, nil
}

// Fetch downloads a page the way a desktop browser would request it.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (Source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Source{}, fmt.Errorf("parse url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Source{}, fmt.Errorf("failed to create request: %w", err)
	}
	// Some sites block requests that do not look like a browser.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "nb-NO,nb;q=0.9,no;q=0.8,en;q=0.7")

	resp, err := client.Do(req)
	if err != nil {
		return Source{}, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Source{}, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	if resp.ContentLength > MaxPageBytes {
		return Source{}, fmt.Errorf("content-length %d exceeds limit of %d bytes", resp.ContentLength, MaxPageBytes)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes+1))
	if err != nil {
		return Source{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxPageBytes {
		return Source{}, fmt.Errorf("response body exceeded maximum size limit of %d bytes", MaxPageBytes)
	}
	return Source{URL: u, Body: body}, nil
}
