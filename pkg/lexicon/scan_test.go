package lexicon

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLongestMatch(t *testing.T) {
	idx := Build([]Record{
		{Word: "sol", Meaning: "sun"},
		{Word: "sol skinn", Meaning: "sunshine"},
	}, nil, nil)

	text := "sol skinn er varmt"
	matches := idx.Scan(text)
	require.Len(t, matches, 1)
	assert.Equal(t, "sol skinn", text[matches[0].Start:matches[0].End])
	assert.Equal(t, "sunshine", matches[0].Meaning)
}

func TestScanFallsBackToShorterPhrase(t *testing.T) {
	idx := Build([]Record{
		{Word: "sol", Meaning: "sun"},
		{Word: "sol skinn", Meaning: "sunshine"},
		{Word: "sol og regn i dag", Meaning: "weather"},
	}, nil, nil)

	text := "Sol og regn. Sol!"
	matches := idx.Scan(text)
	require.Len(t, matches, 2)
	assert.Equal(t, "Sol", text[matches[0].Start:matches[0].End])
	assert.Equal(t, "Sol", text[matches[1].Start:matches[1].End])
	assert.Equal(t, "sol", matches[0].Phrase)
}

func TestScanIsGreedy(t *testing.T) {
	// "a b" wins at position 0 even though "b c d" would cover more text.
	idx := Build([]Record{
		{Word: "a b"},
		{Word: "b c d"},
	}, nil, nil)

	text := "a b c d"
	matches := idx.Scan(text)
	require.Len(t, matches, 1)
	assert.Equal(t, "a b", matches[0].Phrase)
}

func TestScanRedHouse(t *testing.T) {
	records := []Record{
		{Word: "hus", Meaning: "house", Level: 500},
		{Word: "rødt hus", Meaning: "red house", Level: 1500},
	}
	text := "Det røde huset og det rødt hus der"

	idx := Build(records, nil, nil)
	matches := Scan(text, idx)
	require.Len(t, matches, 1)
	start := strings.Index(text, "rødt hus")
	assert.Equal(t, start, matches[0].Start)
	assert.Equal(t, start+len("rødt hus"), matches[0].End)
	assert.Equal(t, "red house", matches[0].Meaning)
	assert.Equal(t, 1500, matches[0].Level)
	assert.Equal(t, "rødt hus", matches[0].BaseWord)

	rebuilt := Build(records, nil, NewLevelSet(1500))
	for _, m := range rebuilt.Scan(text) {
		assert.NotEqual(t, "rødt hus", m.Phrase)
		assert.NotEqual(t, 1500, m.Level)
	}
	// "hus" alone is indexed, and the freed "hus" token now matches it.
	after := rebuilt.Scan(text)
	require.Len(t, after, 1)
	assert.Equal(t, "hus", after[0].Phrase)

	// Without a standalone "hus" entry nothing is left to match.
	onlyPhrase := Build(records[1:], nil, NewLevelSet(1500))
	assert.Empty(t, onlyPhrase.Scan(text))
}

func TestScanCarriesMetadata(t *testing.T) {
	idx := Build([]Record{{
		Word:        "gå",
		Meaning:     "walk",
		Type:        "verb",
		Inflection:  ListInflection("går", "gikk"),
		Ord:         "2",
		Level:       500,
		Description: "move on foot",
		Examples:    []Example{{NO: "Jeg går.", EN: "I walk."}},
	}}, nil, nil)

	matches := idx.Scan("Hun gikk hjem.")
	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, "gikk", m.Phrase)
	assert.Equal(t, "walk", m.Meaning)
	assert.Equal(t, "verb", m.Type)
	assert.Equal(t, "går, gikk", m.Inflection)
	assert.Equal(t, "gå", m.BaseWord)
	assert.Equal(t, "2", m.Ord)
	assert.Equal(t, "move on foot", m.Description)
	assert.Len(t, m.Examples, 1)
}

func TestScanNoLetters(t *testing.T) {
	idx := Build([]Record{{Word: "hus"}}, nil, nil)
	assert.Empty(t, idx.Scan(""))
	assert.Empty(t, idx.Scan("1234 ... !!"))
}

func TestScanNonOverlapping(t *testing.T) {
	vocab := []string{"a", "b", "c", "a b", "b c", "a b c", "c a", "b b b"}
	records := make([]Record, len(vocab))
	for i, w := range vocab {
		records[i] = Record{Word: w, Level: 500 * (i%3 + 1)}
	}
	idx := Build(records, NewWordSet("c a"), NewLevelSet(1500))
	excluded := map[string]bool{"c a": true}
	for i, w := range vocab {
		if records[i].Level == 1500 {
			excluded[w] = true
		}
	}

	words := []string{"a", "b", "c", "d", "A", "B"}
	seps := []string{" ", "  ", ", ", "-", "1"}
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 500; n++ {
		var sb strings.Builder
		for k := rng.Intn(12); k >= 0; k-- {
			sb.WriteString(words[rng.Intn(len(words))])
			sb.WriteString(seps[rng.Intn(len(seps))])
		}
		text := sb.String()
		matches := idx.Scan(text)
		for i, m := range matches {
			require.Less(t, m.Start, m.End, text)
			require.Equal(t, m.Phrase, Normalize(text[m.Start:m.End]), text)
			require.False(t, excluded[m.Phrase], "excluded phrase %q matched in %q", m.Phrase, text)
			if i > 0 {
				require.LessOrEqual(t, matches[i-1].End, m.Start, text)
			}
		}
	}
}
