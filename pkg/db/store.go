package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// maxContextsPerLink caps the example sentences kept per phrase and source.
const maxContextsPerLink = 5

// isUniqueConstraintErr returns true when the error indicates a unique/constraint violation
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}

// CreateOrGetPhrase returns the id of a canonical phrase, inserting it if
// needed. Non-empty metadata refreshes what is stored.
func CreateOrGetPhrase(db DBExecutor, p Phrase) (int64, error) {
	trimmed := strings.TrimSpace(p.Phrase)
	if trimmed == "" {
		return 0, fmt.Errorf("phrase must be non-empty")
	}

	var id int64
	query := `INSERT INTO phrases (phrase, base_word, meaning, pos, level)
			  VALUES (?, ?, ?, ?, ?)
			  ON CONFLICT(phrase)
			  DO UPDATE SET
			    base_word = COALESCE(NULLIF(excluded.base_word, ''), phrases.base_word),
			    meaning = COALESCE(NULLIF(excluded.meaning, ''), phrases.meaning),
			    pos = COALESCE(NULLIF(excluded.pos, ''), phrases.pos),
			    level = CASE WHEN excluded.level <> 0 THEN excluded.level ELSE phrases.level END
			  RETURNING id`

	err := db.QueryRow(query, trimmed, p.BaseWord, p.Meaning, p.POS, p.Level).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert phrase: %w", err)
	}
	return id, nil
}

// CreateOrGetSource returns existing source id or inserts a new source and returns its id.
func CreateOrGetSource(db DBExecutor, sourceType, title, author, website, url, meta string) (int64, error) {
	trimmedSourceType := strings.TrimSpace(sourceType)
	if trimmedSourceType == "" {
		return 0, fmt.Errorf("sourceType must be non-empty")
	}

	const maxRetries = 3

	var id int64
	for attempt := 0; attempt < maxRetries; attempt++ {
		// First, try to find an existing source.
		err := db.QueryRow(
			`SELECT id FROM sources WHERE url = ? AND title = ? AND author = ?`,
			url, title, author,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}

		// No existing row; try to insert one.
		res, err := db.Exec(
			`INSERT INTO sources (source_type, title, author, website, url, meta) VALUES (?, ?, ?, ?, ?, ?)`,
			trimmedSourceType, title, author, website, url, meta,
		)
		if err != nil {
			// If another concurrent transaction inserted the same source, retry the SELECT.
			if isUniqueConstraintErr(err) {
				continue
			}
			return 0, err
		}
		return res.LastInsertId()
	}

	return 0, fmt.Errorf("could not create or get source after %d retries", maxRetries)
}

func getOrCreateSentence(db DBExecutor, text string) (int64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, nil
	}
	var id int64
	if err := db.QueryRow(`SELECT id FROM sentences WHERE text = ?`, trimmed).Scan(&id); err == nil {
		return id, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	// Insert if missing (concurrent-safe via UNIQUE constraint)
	if _, err := db.Exec(`INSERT OR IGNORE INTO sentences (text) VALUES (?)`, trimmed); err != nil {
		return 0, err
	}
	if err := db.QueryRow(`SELECT id FROM sentences WHERE text = ?`, trimmed).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// LinkPhraseToSource records count more occurrences of a phrase in a
// source, keeping up to five distinct context sentences.
func LinkPhraseToSource(db DBExecutor, phraseID, sourceID int64, context string, count int) error {
	if phraseID <= 0 {
		return fmt.Errorf("phraseID must be positive")
	}
	if sourceID <= 0 {
		return fmt.Errorf("sourceID must be positive")
	}
	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	ctxID, err := getOrCreateSentence(db, context)
	if err != nil {
		return fmt.Errorf("get/create context sentence: %w", err)
	}

	var linkID int64
	err = db.QueryRow(`INSERT INTO phrase_sources (phrase_id, source_id, context_sentence_id, occurrence_count, first_seen_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(phrase_id, source_id) DO UPDATE SET
	  occurrence_count = phrase_sources.occurrence_count + excluded.occurrence_count,
	  context_sentence_id = COALESCE(excluded.context_sentence_id, phrase_sources.context_sentence_id)
	RETURNING id`, phraseID, sourceID, nullableInt64(ctxID), count, time.Now()).Scan(&linkID)
	if err != nil {
		return fmt.Errorf("upsert phrase source: %w", err)
	}
	if ctxID == 0 {
		return nil
	}

	_, err = db.Exec(`
		INSERT INTO phrase_contexts (phrase_source_id, sentence_id)
		SELECT ?, ?
		WHERE (SELECT COUNT(*) FROM phrase_contexts WHERE phrase_source_id = ?) < ?
		ON CONFLICT DO NOTHING`,
		linkID, ctxID, linkID, maxContextsPerLink)
	return err
}

// nullableInt64 returns nil for 0 (meaning no sentence) else the value.
func nullableInt64(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}

// UpdatePhraseMetadata overwrites the stored meaning, part of speech and
// level of a phrase.
func UpdatePhraseMetadata(db DBExecutor, phraseID int64, meaning, pos string, level int) error {
	if phraseID <= 0 {
		return fmt.Errorf("phraseID must be positive")
	}
	_, err := db.Exec(`UPDATE phrases SET meaning = ?, pos = ?, level = ? WHERE id = ?`, meaning, pos, level, phraseID)
	return err
}

// ListPhrases returns every stored phrase ordered by id.
func ListPhrases(db DBExecutor) ([]Phrase, error) {
	return queryPhrases(db, `SELECT id, phrase, base_word, meaning, pos, level FROM phrases ORDER BY id`)
}

// GetPhrasesBySource returns phrases seen in the given source.
func GetPhrasesBySource(db DBExecutor, sourceID int64) ([]Phrase, error) {
	return queryPhrases(db, `SELECT p.id, p.phrase, p.base_word, p.meaning, p.pos, p.level
		FROM phrases p JOIN phrase_sources ps ON ps.phrase_id = p.id
		WHERE ps.source_id = ? ORDER BY p.id`, sourceID)
}

func queryPhrases(db DBExecutor, query string, args ...interface{}) ([]Phrase, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Phrase
	for rows.Next() {
		var p Phrase
		if err := rows.Scan(&p.ID, &p.Phrase, &p.BaseWord, &p.Meaning, &p.POS, &p.Level); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOccurrenceCount returns how often a phrase was seen in a source.
func GetOccurrenceCount(db DBExecutor, phraseID, sourceID int64) (int, error) {
	var n int
	err := db.QueryRow(`SELECT occurrence_count FROM phrase_sources WHERE phrase_id = ? AND source_id = ?`,
		phraseID, sourceID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

// GetSourceProgress returns the last processed paragraph index for a
// source, -1 when nothing has been processed.
func GetSourceProgress(db DBExecutor, sourceID int64) (int, error) {
	var index int
	err := db.QueryRow("SELECT last_processed_paragraph FROM sources WHERE id = ?", sourceID).Scan(&index)
	if err != nil {
		return 0, err
	}
	return index, nil
}

// UpdateSourceProgress updates the last processed paragraph index.
func UpdateSourceProgress(db DBExecutor, sourceID int64, index int) error {
	_, err := db.Exec("UPDATE sources SET last_processed_paragraph = ? WHERE id = ?", index, sourceID)
	return err
}
