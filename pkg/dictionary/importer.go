package dictionary

import (
	"database/sql"
	"log/slog"

	"github.com/japaniel/ordlys/pkg/db"
	"github.com/japaniel/ordlys/pkg/lexicon"
)

// Importer brings stored phrase metadata in line with a lexicon index,
// e.g. after the lexicon was updated and meanings or levels changed.
type Importer struct {
	conn   *sql.DB
	index  *lexicon.Index
	Logger *slog.Logger
}

// NewImporter creates an importer for the given index.
func NewImporter(conn *sql.DB, idx *lexicon.Index) *Importer {
	return &Importer{conn: conn, index: idx, Logger: slog.Default()}
}

// ProcessUpdates rewrites the metadata of every stored phrase whose index
// entry differs, and returns the number of phrases updated. Phrases no
// longer in the index are left alone.
func (im *Importer) ProcessUpdates() (int, error) {
	phrases, err := db.ListPhrases(im.conn)
	if err != nil {
		return 0, err
	}

	updatedCount := 0
	for _, p := range phrases {
		e, ok := im.index.Lookup(p.Phrase)
		if !ok {
			continue
		}
		if e.Meaning == p.Meaning && e.Type == p.POS && e.Level == p.Level {
			continue
		}
		if err := db.UpdatePhraseMetadata(im.conn, p.ID, e.Meaning, e.Type, e.Level); err != nil {
			im.Logger.Warn("failed to update phrase", "phrase", p.Phrase, "error", err)
			continue
		}
		updatedCount++
	}
	return updatedCount, nil
}
