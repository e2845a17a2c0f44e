package db

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestInitDBCreatesSchema(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, table := range []string{"phrases", "sources", "sentences", "phrase_sources", "phrase_contexts", "disabled_words", "disabled_levels", "settings"} {
		var name string
		if err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}
	// Migrations are idempotent.
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
}

func TestCreateOrGetPhrase(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	id1, err := CreateOrGetPhrase(db, Phrase{Phrase: "rødt hus", BaseWord: "rødt hus", Meaning: "red house", Level: 1500})
	if err != nil {
		t.Fatalf("create phrase: %v", err)
	}
	id2, err := CreateOrGetPhrase(db, Phrase{Phrase: "rødt hus"})
	if err != nil {
		t.Fatalf("get phrase: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same id, got %d and %d", id1, id2)
	}
	phrases, err := ListPhrases(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(phrases) != 1 || phrases[0].Meaning != "red house" || phrases[0].Level != 1500 {
		t.Fatalf("empty upsert must keep metadata, got %+v", phrases)
	}
	if _, err := CreateOrGetPhrase(db, Phrase{Phrase: "  "}); err == nil {
		t.Fatalf("expected error for blank phrase")
	}
}

func TestCreateOrGetSource(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	id1, err := CreateOrGetSource(db, "website_article", "", "", "example.com", "https://example.com/a", "")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	id2, err := CreateOrGetSource(db, "website_article", "", "", "example.com", "https://example.com/a", "")
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same source id, got %d and %d", id1, id2)
	}
	progress, err := GetSourceProgress(db, id1)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress != -1 {
		t.Fatalf("expected fresh source progress -1, got %d", progress)
	}
}

func TestLinkAndQuery(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	pID, err := CreateOrGetPhrase(db, Phrase{Phrase: "katt", Meaning: "cat"})
	if err != nil {
		t.Fatalf("create phrase: %v", err)
	}
	sID, err := CreateOrGetSource(db, "website_article", "", "", "example.com", "https://example.com/b", "")
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	if err := LinkPhraseToSource(db, pID, sID, "Katten sover.", 1); err != nil {
		t.Fatalf("link: %v", err)
	}
	// Link again to test occurrence_count increment via upsert
	if err := LinkPhraseToSource(db, pID, sID, "En katt og en hund.", 2); err != nil {
		t.Fatalf("link 2: %v", err)
	}
	cnt, err := GetOccurrenceCount(db, pID, sID)
	if err != nil {
		t.Fatalf("query count: %v", err)
	}
	if cnt != 3 {
		t.Fatalf("expected occurrence_count=3, got %d", cnt)
	}

	phrases, err := GetPhrasesBySource(db, sID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(phrases) != 1 || phrases[0].Phrase != "katt" {
		t.Fatalf("expected [katt], got %+v", phrases)
	}

	if err := LinkPhraseToSource(db, pID, sID, "", 0); err == nil {
		t.Fatalf("expected error for zero count")
	}
}

func TestLinkKeepsAtMostFiveContexts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	pID, _ := CreateOrGetPhrase(db, Phrase{Phrase: "hus"})
	sID, _ := CreateOrGetSource(db, "test", "", "", "", "https://example.com/c", "")
	for i := 0; i < 8; i++ {
		ctx := "Setning nummer " + string(rune('a'+i)) + " om hus."
		if err := LinkPhraseToSource(db, pID, sID, ctx, 1); err != nil {
			t.Fatalf("link %d: %v", i, err)
		}
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM phrase_contexts`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != maxContextsPerLink {
		t.Fatalf("expected %d contexts, got %d", maxContextsPerLink, n)
	}
}

func TestCreateOrGetSourceConcurrency(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	const n = 8
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		go func() {
			id, err := CreateOrGetSource(db, "website_article", "Title", "Author", "example.com", "https://example.com/d", "")
			if err != nil {
				t.Errorf("create or get source: %v", err)
				ids <- 0
				return
			}
			ids <- id
		}()
	}
	var first int64
	for i := 0; i < n; i++ {
		id := <-ids
		if id == 0 {
			t.Fatalf("error in goroutine")
		}
		if i == 0 {
			first = id
		}
		if id != first {
			t.Fatalf("expected same id, got %d and %d", first, id)
		}
	}
	var cnt int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sources WHERE url = ?`, "https://example.com/d").Scan(&cnt); err != nil {
		t.Fatalf("count: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected 1 source row, got %d", cnt)
	}
}
