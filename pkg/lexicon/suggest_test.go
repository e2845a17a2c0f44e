package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	idx := Build([]Record{
		{Word: "hus", Meaning: "house"},
		{Word: "husk", Meaning: "remember"},
		{Word: "hus og hjem", Meaning: "home"},
		{Word: "katt"},
	}, nil, nil)
	s := NewSuggester(idx)

	got := s.Suggest("HUS", 0)
	require.Len(t, got, 3)
	assert.Equal(t, "hus", got[0].Phrase)
	assert.Equal(t, "hus og hjem", got[1].Phrase)
	assert.Equal(t, "husk", got[2].Phrase)
	assert.Equal(t, "remember", got[2].Meaning)

	assert.Len(t, s.Suggest("hu", 2), 2)
	assert.Empty(t, s.Suggest("xyz", 0))
	assert.Empty(t, s.Suggest("  ", 0))
}
