package page

import (
	"strings"
	"testing"

	"github.com/japaniel/ordlys/pkg/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *lexicon.Index {
	return lexicon.Build([]lexicon.Record{
		{Word: "rødt hus", Meaning: "red house", Type: "subst", Level: 1500},
		{Word: "hus", Meaning: "house", Type: "subst", Level: 500, Inflection: lexicon.ListInflection("huset", "hus", "husene")},
		{Word: "og", Meaning: "and"},
	}, nil, nil)
}

func TestAnnotate(t *testing.T) {
	doc := `<html><head><title>hus</title><style>.hus{}</style></head>` +
		`<body><p>Det RØDE <b>HUSET</b> og 2 kr.</p>` +
		`<script>var hus = 1;</script><textarea>huset</textarea></body></html>`

	var out strings.Builder
	stats, err := Annotate(&out, strings.NewReader(doc), testIndex())
	require.NoError(t, err)

	html := out.String()
	assert.Contains(t, html, `<b><mark class="ordlys-word ordlys-level-500"`)
	assert.Contains(t, html, `data-meaning="house"`)
	assert.Contains(t, html, `data-base-word="hus"`)
	assert.Contains(t, html, `>HUSET</mark></b>`)
	assert.Contains(t, html, `data-level="0">og</mark>`)
	assert.Contains(t, html, "<title>hus</title>")
	assert.Contains(t, html, "var hus = 1;")
	assert.Contains(t, html, "<textarea>huset</textarea>")

	// Level 0 matches are marked but not counted.
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByLevel[500])
}

func TestAnnotateMultiWordPhrase(t *testing.T) {
	var out strings.Builder
	stats, err := Annotate(&out, strings.NewReader(`<p>Et rødt hus ved fjorden</p>`), testIndex())
	require.NoError(t, err)
	assert.Contains(t, out.String(), `Et <mark class="ordlys-word ordlys-level-1500"`)
	assert.Contains(t, out.String(), `>rødt hus</mark> ved fjorden`)
	assert.Equal(t, 1, stats.ByLevel[1500])
}

func TestAnnotateSkipsExistingMarks(t *testing.T) {
	var first strings.Builder
	_, err := Annotate(&first, strings.NewReader(`<p>huset og huset</p>`), testIndex())
	require.NoError(t, err)

	var second strings.Builder
	stats, err := Annotate(&second, strings.NewReader(first.String()), testIndex())
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
	assert.Zero(t, stats.Total)
}

func TestAnnotateEscapesMetadata(t *testing.T) {
	idx := lexicon.Build([]lexicon.Record{{Word: "hus", Meaning: `"house" <b>`}}, nil, nil)
	var out strings.Builder
	_, err := Annotate(&out, strings.NewReader(`<p>hus</p>`), idx)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `data-meaning="&#34;house&#34; &lt;b&gt;"`)
}
