package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/japaniel/ordlys/pkg/lexicon"
)

const settingIncludeOwn = "include_own"

// LoadDisabledWords returns the words the reader switched off. Stored
// values are normalized again and those without letters are dropped.
func LoadDisabledWords(db DBExecutor) (lexicon.WordSet, error) {
	rows, err := db.Query(`SELECT phrase FROM disabled_words`)
	if err != nil {
		return nil, fmt.Errorf("load disabled words: %w", err)
	}
	defer rows.Close()
	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lexicon.NewWordSet(words...), nil
}

// DisableWord stores the canonical form of word. It returns the canonical
// form, or "" when word has no letters and nothing was stored.
func DisableWord(db DBExecutor, word string) (string, error) {
	phrase := lexicon.Normalize(word)
	if phrase == "" {
		return "", nil
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO disabled_words (phrase) VALUES (?)`, phrase); err != nil {
		return "", fmt.Errorf("disable word %q: %w", phrase, err)
	}
	return phrase, nil
}

// RestoreWord removes word from the disabled set.
func RestoreWord(db DBExecutor, word string) error {
	_, err := db.Exec(`DELETE FROM disabled_words WHERE phrase = ?`, lexicon.Normalize(word))
	return err
}

// LoadDisabledLevels returns the switched-off difficulty levels.
func LoadDisabledLevels(db DBExecutor) (lexicon.LevelSet, error) {
	rows, err := db.Query(`SELECT level FROM disabled_levels`)
	if err != nil {
		return nil, fmt.Errorf("load disabled levels: %w", err)
	}
	defer rows.Close()
	set := lexicon.NewLevelSet()
	for rows.Next() {
		var level sql.NullInt64
		if err := rows.Scan(&level); err != nil {
			return nil, err
		}
		if level.Valid {
			set[int(level.Int64)] = struct{}{}
		}
	}
	return set, rows.Err()
}

// SetLevelEnabled switches a difficulty level on or off.
func SetLevelEnabled(db DBExecutor, level int, enabled bool) error {
	var err error
	if enabled {
		_, err = db.Exec(`DELETE FROM disabled_levels WHERE level = ?`, level)
	} else {
		_, err = db.Exec(`INSERT OR IGNORE INTO disabled_levels (level) VALUES (?)`, level)
	}
	if err != nil {
		return fmt.Errorf("set level %d enabled=%t: %w", level, enabled, err)
	}
	return nil
}

// LoadIncludeOwn reports whether the reader's own lexicon is merged in.
// It defaults to true when never set or stored malformed.
func LoadIncludeOwn(db DBExecutor) (bool, error) {
	return LoadIncludeOwnOr(db, true)
}

// LoadIncludeOwnOr is LoadIncludeOwn with a caller supplied default.
func LoadIncludeOwnOr(db DBExecutor, def bool) (bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = ?`, settingIncludeOwn).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	enabled, perr := strconv.ParseBool(value)
	if perr != nil {
		return def, nil
	}
	return enabled, nil
}

// SaveIncludeOwn stores the own-lexicon toggle.
func SaveIncludeOwn(db DBExecutor, enabled bool) error {
	_, err := db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingIncludeOwn, strconv.FormatBool(enabled))
	return err
}
