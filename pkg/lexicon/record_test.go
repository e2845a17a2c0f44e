package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecordsShapes(t *testing.T) {
	doc := `[
	  {"word": "hus", "meaning": "house", "type": "subst", "inflection": "huset, hus, husene", "level": 500, "ord": "1"},
	  {"word": "gå", "meaning": "walk", "pos": "verb", "inflection": ["går", " gikk ", "gått"], "level": "1500"},
	  {"word": "stor", "inflection": {"komparativ": "større", "former": ["stort", "store"]}, "level": "x"},
	  {"word": "fin", "level": null, "ord": 2, "examples": [{"no": "Så fint!", "en": "How nice!"}, {}, {"en": "only en"}]},
	  {"word": "rar", "inflection": 42, "examples": "not a list"},
	  17,
	  "tekst"
	]`
	records, err := DecodeRecords([]byte(doc))
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, "hus", records[0].Word)
	assert.Equal(t, "subst", records[0].Type)
	assert.Equal(t, 500, records[0].Level)
	assert.Equal(t, "1", records[0].Ord)
	assert.Equal(t, InflectionText, records[0].Inflection.Kind)

	assert.Equal(t, "verb", records[1].Type, "pos is used when type is missing")
	assert.Equal(t, 1500, records[1].Level)
	assert.Equal(t, "går, gikk, gått", FlattenInflection(records[1].Inflection))

	assert.Equal(t, 0, records[2].Level, "malformed level falls back to 0")
	require.Equal(t, InflectionGroups, records[2].Inflection.Kind)
	assert.Equal(t, "komparativ", records[2].Inflection.Groups[0].Key)
	assert.Equal(t, "større, stort, store", FlattenInflection(records[2].Inflection))

	assert.Equal(t, "2", records[3].Ord)
	assert.Equal(t, []Example{{NO: "Så fint!", EN: "How nice!"}, {EN: "only en"}}, records[3].Examples)

	assert.Equal(t, InflectionNone, records[4].Inflection.Kind)
	assert.Nil(t, records[4].Examples)
}

func TestDecodeRecordsWrapper(t *testing.T) {
	records, err := DecodeRecords([]byte(`{"words": [{"word": "hus"}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hus", records[0].Word)
}

func TestDecodeRecordsRejectsUnusableRoots(t *testing.T) {
	_, err := DecodeRecords([]byte("   "))
	assert.ErrorIs(t, err, ErrEmptyLexicon)

	_, err = DecodeRecords([]byte(`{"ord": []}`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = DecodeRecords([]byte(`"hus"`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = DecodeRecords([]byte(`[{"word": "hus"`))
	assert.Error(t, err)
}

func TestLevelDecoding(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`500`, 500},
		{`"3000"`, 3000},
		{`" 5000 "`, 5000},
		{`1500.7`, 1500},
		{`""`, 0},
		{`"NaN"`, 0},
		{`"Infinity"`, 0},
		{`null`, 0},
		{`true`, 1},
		{`[1]`, 0},
		{`1e300`, 0},
	}
	for _, tt := range tests {
		records, err := DecodeRecords([]byte(`[{"word": "a", "level": ` + tt.raw + `}]`))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, tt.want, records[0].Level, "level %s", tt.raw)
	}
}
