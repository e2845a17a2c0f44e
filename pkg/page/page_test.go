package page

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
)

const sampleArticle = `<!DOCTYPE html>
<html><head><title>Det røde huset - Avisa</title></head>
<body>
<nav><a href="/">Forside</a> <a href="/nyheter">Nyheter</a></nav>
<article>
<h1>Det røde huset</h1>
<p class="byline">Av Kari Nordmann</p>
<p>Det røde huset ved fjorden har stått tomt i mange år. Naboene forteller at huset ble bygget
av en fisker som kom fra nord, og at familien hans bodde der i nesten hundre år før de flyttet inn til byen.</p>
<p>Nå har kommunen kjøpt huset, og planen er å gjøre det om til et lite museum for lokalhistorie.
Ordføreren sier at arbeidet starter til våren, og at museet skal åpne allerede neste sommer.</p>
<p>Mange i bygda er glade for planene. De mener det røde huset er en viktig del av historien til stedet,
og at det fortjener å bli tatt vare på for kommende generasjoner.</p>
</article>
<footer>Kontakt oss</footer>
</body></html>`

func TestExtract(t *testing.T) {
	fakeURL, _ := url.Parse("http://localhost/sample")
	article, err := Extract(strings.NewReader(sampleArticle), fakeURL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(article.Title, "Det røde huset") {
		t.Errorf("Expected title to contain %q, extracted: %q", "Det røde huset", article.Title)
	}
	if !strings.Contains(article.Text, "kommunen kjøpt huset") {
		t.Errorf("Extracted text misses article body: %q", article.Text)
	}
}

func TestParagraphs(t *testing.T) {
	text := "Det røde huset. Det koster 2 kr.!\n\n  Hva nå? Vi drar f.eks. hjem\n"
	got := Paragraphs(text)
	want := []string{
		"Det røde huset.",
		"Det koster 2 kr.!",
		"Hva nå?",
		"Vi drar f.eks. hjem",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Paragraphs() = %q, want %q", got, want)
	}
	if got := Paragraphs(" \n\t\n"); len(got) != 0 {
		t.Fatalf("expected no paragraphs for blank text, got %q", got)
	}
}

func TestSanitizeRuby(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple ruby",
			input:    "<ruby>漢字<rt>かんじ</rt></ruby>",
			expected: "<ruby>漢字</ruby>",
		},
		{
			name:     "Ruby with rp",
			input:    "<ruby>漢字<rp>(</rp><rt>かんじ</rt><rp>)</rp></ruby>",
			expected: "<ruby>漢字</ruby>",
		},
		{
			name:     "Attributes and case",
			input:    `<RUBY>字<RT class="x">じ</RT></RUBY>`,
			expected: "<RUBY>字</RUBY>",
		},
		{
			name:     "No ruby",
			input:    "<p>Det røde huset</p>",
			expected: "<p>Det røde huset</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(SanitizeRuby([]byte(tt.input)))
			if got != tt.expected {
				t.Errorf("SanitizeRuby() = %q, want %q", got, tt.expected)
			}
		})
	}
}
