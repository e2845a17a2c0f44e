package db

import "time"

// Phrase is a canonical lexicon phrase that has been seen in a source.
type Phrase struct {
	ID       int64
	Phrase   string
	BaseWord string
	Meaning  string
	POS      string
	Level    int
}

// Source is a provenance record for where a phrase was seen.
type Source struct {
	ID         int64
	SourceType string
	Title      string
	Author     string
	Website    string
	URL        string
	Meta       string
	AddedAt    time.Time
}

// PhraseSource links a Phrase with a Source and holds contextual metadata.
type PhraseSource struct {
	ID              int64
	PhraseID        int64
	SourceID        int64
	ContextSentence string
	OccurrenceCount int
	FirstSeenAt     time.Time
}
