// Package ingest records which lexicon phrases occur in a source. Paragraphs
// are scanned concurrently, results are put back in order and persisted
// in batched transactions together with a resume checkpoint.
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/japaniel/ordlys/pkg/db"
	"github.com/japaniel/ordlys/pkg/lexicon"
)

// WorkerPoolInterface abstracts the worker pool so tests can inject failing implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	// SubmitCtx attempts to enqueue a job but returns promptly if ctx is canceled.
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// Scanner finds phrase occurrences in text. It must be safe for concurrent
// use; *lexicon.Index and the highlighter are.
type Scanner interface {
	Scan(text string) []lexicon.Match
}

// Ingester scans paragraphs of a source and saves the phrases found.
type Ingester struct {
	DB        *sql.DB
	Scanner   Scanner
	BatchSize int
	Logger    *slog.Logger
	// OnProgress is called periodically with the number of processed paragraphs and the total.
	OnProgress func(current, total int)

	Workers int

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

// Result summarises one Ingest run.
type Result struct {
	Paragraphs int               // paragraphs processed in this run
	Links      int               // phrase occurrences recorded
	Stats      lexicon.PageStats // level statistics of the processed paragraphs
}

// NewIngester creates a new Ingester.
func NewIngester(conn *sql.DB, scanner Scanner) *Ingester {
	return &Ingester{
		DB:        conn,
		Scanner:   scanner,
		BatchSize: 50,
		Workers:   4,
		Logger:    slog.Default(),
	}
}

// phraseHit is one distinct phrase found in a paragraph.
type phraseHit struct {
	Entry lexicon.Entry
	Count int
}

type scannedParagraph struct {
	Index   int
	Text    string
	Matches []lexicon.Match
	Hits    []phraseHit
}

// Ingest scans paragraphs and records phrase occurrences for sourceID.
// Paragraphs up to the stored checkpoint are skipped, so an interrupted
// run continues where it stopped.
func (ig *Ingester) Ingest(ctx context.Context, sourceID int64, paragraphs []string) (Result, error) {
	logger := ig.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var res Result
	res.Stats = lexicon.NewPageStats()

	if ig.Scanner == nil {
		return res, errors.New("ingest: no scanner configured")
	}

	lastProcessed, err := db.GetSourceProgress(ig.DB, sourceID)
	if err != nil {
		logger.Warn("failed to retrieve progress", "source", sourceID, "error", err)
		lastProcessed = -1
	}
	total := len(paragraphs)
	startIdx := lastProcessed + 1
	if startIdx > 0 && startIdx < total {
		logger.Info("resuming ingest", "source", sourceID, "paragraph", startIdx, "total", total)
	}
	if startIdx >= total {
		return res, nil
	}

	workers := ig.Workers
	if workers <= 0 {
		workers = 1
	}
	var wp WorkerPoolInterface
	if ig.PoolFactory != nil {
		wp = ig.PoolFactory(workers, workers*2)
	} else {
		wp = NewWorkerPool(workers, workers*2)
	}
	resultCh := make(chan scannedParagraph, workers*2)
	doneCh := make(chan error, 1)

	var links int64
	bw := NewBatchWriter(ig.DB, ig.BatchSize, 100*time.Millisecond)
	bw.Logger = logger
	var batchErr error
	var batchErrMu sync.Mutex
	bw.OnError = func(e error) {
		batchErrMu.Lock()
		if batchErr == nil {
			batchErr = e
		}
		batchErrMu.Unlock()
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	closeOnce := sync.OnceFunc(func() {
		wp.Close()
		close(resultCh)
	})
	defer closeOnce()
	defer bw.Close()

	wp.Start(ctx)

	// Consumer: reorders results and hands them to the batch writer.
	go func() {
		defer close(doneCh)
		pending := make(map[int]scannedParagraph)
		next := startIdx

		flush := func() error {
			for {
				item, ok := pending[next]
				if !ok {
					return nil
				}
				delete(pending, next)
				if err := bw.Submit(ig.persist(sourceID, item, &links)); err != nil {
					return err
				}
				res.Stats.Add(item.Matches)
				res.Paragraphs++
				next++
				if ig.OnProgress != nil && ig.BatchSize > 0 && next%ig.BatchSize == 0 {
					ig.OnProgress(next, total)
				}
			}
		}

		for {
			select {
			case <-ctx.Done():
				doneCh <- ctx.Err()
				return
			case item, ok := <-resultCh:
				if !ok {
					err := flush()
					if err == nil && ig.OnProgress != nil {
						ig.OnProgress(next, total)
					}
					doneCh <- err
					return
				}
				pending[item.Index] = item
				if err := flush(); err != nil {
					cancel()
					doneCh <- err
					return
				}
			}
		}
	}()

	// Producer: one scan job per paragraph.
	var submitErr error
Loop:
	for i := startIdx; i < total; i++ {
		if ctx.Err() != nil {
			break
		}
		idx, text := i, paragraphs[i]
		job := func(ctx context.Context) error {
			item := ig.scanParagraph(idx, text)
			select {
			case resultCh <- item:
			case <-ctx.Done():
			}
			return nil
		}
		if err := wp.SubmitCtx(ctx, job); err != nil {
			if errors.Is(err, ctx.Err()) || errors.Is(err, ErrPoolClosed) {
				break Loop
			}
			submitErr = fmt.Errorf("submit paragraph %d: %w", idx, err)
			cancel()
			break Loop
		}
	}

	closeOnce()
	consumerErr := <-doneCh
	if submitErr != nil {
		consumerErr = submitErr
	}

	if err := bw.Close(); err != nil && consumerErr == nil && !errors.Is(err, ErrBatchWriterClosed) {
		consumerErr = err
	}
	batchErrMu.Lock()
	if batchErr != nil && consumerErr == nil {
		consumerErr = batchErr
	}
	batchErrMu.Unlock()

	if consumerErr == nil && parent.Err() != nil {
		consumerErr = parent.Err()
	}

	res.Links = int(atomic.LoadInt64(&links))
	return res, consumerErr
}

// persist returns the write that stores one paragraph's phrases and
// advances the checkpoint in the same transaction.
func (ig *Ingester) persist(sourceID int64, item scannedParagraph, links *int64) WriteFunc {
	return func(ctx context.Context, tx *sql.Tx) error {
		for _, h := range item.Hits {
			phraseID, err := db.CreateOrGetPhrase(tx, db.Phrase{
				Phrase:   h.Entry.Phrase,
				BaseWord: h.Entry.BaseWord,
				Meaning:  h.Entry.Meaning,
				POS:      h.Entry.Type,
				Level:    h.Entry.Level,
			})
			if err != nil {
				return fmt.Errorf("failed to persist phrase %s: %w", h.Entry.Phrase, err)
			}
			if err := db.LinkPhraseToSource(tx, phraseID, sourceID, item.Text, h.Count); err != nil {
				return fmt.Errorf("failed to link phrase %d: %w", phraseID, err)
			}
			atomic.AddInt64(links, int64(h.Count))
		}
		if err := db.UpdateSourceProgress(tx, sourceID, item.Index); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}
		return nil
	}
}

// scanParagraph finds the phrases of one paragraph, counted per phrase in
// order of first appearance.
func (ig *Ingester) scanParagraph(index int, text string) scannedParagraph {
	matches := ig.Scanner.Scan(text)
	counts := make(map[string]int, len(matches))
	var hits []phraseHit
	for _, m := range matches {
		if i, ok := counts[m.Phrase]; ok {
			hits[i].Count++
			continue
		}
		counts[m.Phrase] = len(hits)
		hits = append(hits, phraseHit{Entry: m.Entry, Count: 1})
	}
	return scannedParagraph{Index: index, Text: text, Matches: matches, Hits: hits}
}
