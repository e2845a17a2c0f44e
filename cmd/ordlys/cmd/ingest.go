package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/japaniel/ordlys/pkg/db"
	"github.com/japaniel/ordlys/pkg/ingest"
	"github.com/japaniel/ordlys/pkg/page"
	"github.com/spf13/cobra"
)

func newIngestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <url|file>",
		Short: "Record which lexicon phrases occur in a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, true, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				src, err := page.Load(ctx, &http.Client{Timeout: 30 * time.Second}, args[0])
				if err != nil {
					return err
				}
				article, err := page.Extract(bytes.NewReader(src.Body), src.URL)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Title: %s\n", article.Title)

				sourceID, err := db.CreateOrGetSource(a.conn, "website_article", article.Title, article.Byline, article.SiteName, args[0], "")
				if err != nil {
					return fmt.Errorf("failed to persist source: %w", err)
				}

				paragraphs := page.Paragraphs(article.Text)
				a.logger.Info("article extracted", "source", sourceID, "paragraphs", len(paragraphs))

				ig := ingest.NewIngester(a.conn, a.hl)
				ig.Workers = a.cfg.Ingest.Workers
				ig.BatchSize = a.cfg.Ingest.BatchSize
				ig.Logger = a.logger
				ig.OnProgress = func(current, total int) {
					a.logger.Debug("ingest progress", "current", current, "total", total)
				}
				res, err := ig.Ingest(ctx, sourceID, paragraphs)
				if err != nil {
					return fmt.Errorf("ingestion failed: %w", err)
				}
				fmt.Fprintf(out, "Processing complete. Linked %d phrase occurrences in %d paragraphs.\n", res.Links, res.Paragraphs)
				printStats(out, res.Stats)
				return nil
			})
		},
	}
}
