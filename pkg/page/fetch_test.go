package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(sampleArticle))
	}))
	defer srv.Close()

	src, err := Load(context.Background(), srv.Client(), srv.URL+"/article")
	require.NoError(t, err)
	assert.Equal(t, "/article", src.URL.Path)
	assert.True(t, strings.Contains(string(src.Body), "Det røde huset"))

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "status 404")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>hus</p>"), 0o644))

	src, err := Load(context.Background(), http.DefaultClient, path)
	require.NoError(t, err)
	assert.Equal(t, "file", src.URL.Scheme)
	assert.Equal(t, "<p>hus</p>", string(src.Body))
}
