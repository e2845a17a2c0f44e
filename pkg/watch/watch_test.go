package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	lexicon := filepath.Join(dir, "wordsdetail.json")
	require.NoError(t, os.WriteFile(lexicon, []byte("[]"), 0o644))

	var calls int32
	changed := make(chan string, 10)
	w, err := New([]string{lexicon}, 100*time.Millisecond, func(ctx context.Context, path string) {
		atomic.AddInt32(&calls, 1)
		changed <- path
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(lexicon, []byte(`[{"word": "hus"}]`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case path := <-changed:
		assert.Equal(t, lexicon, path)
	case <-time.After(2 * time.Second):
		t.Fatal("expected callback for lexicon change")
	}
	time.Sleep(200 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	lexicon := filepath.Join(dir, "wordsdetail.json")
	require.NoError(t, os.WriteFile(lexicon, []byte("[]"), 0o644))

	changed := make(chan string, 10)
	w, err := New([]string{lexicon}, 20*time.Millisecond, func(ctx context.Context, path string) {
		changed <- path
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case path := <-changed:
		t.Fatalf("unexpected callback for %s", path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewRequiresFiles(t *testing.T) {
	_, err := New(nil, time.Second, func(context.Context, string) {}, nil)
	assert.Error(t, err)
}
