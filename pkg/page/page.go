// Package page turns fetched web pages into text the lexicon can scan and
// renders scan results back into the page markup.
package page

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Article is the readable part of a page.
type Article struct {
	Title    string
	Byline   string
	SiteName string
	Text     string
}

// Extract pulls the main article out of an HTML document.
func Extract(r io.Reader, pageURL *url.URL) (Article, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Article{}, fmt.Errorf("read page: %w", err)
	}
	// Ruby annotations would otherwise be duplicated into the text.
	content = SanitizeRuby(content)

	article, err := readability.FromReader(bytes.NewReader(content), pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}
	return Article{
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Text:     article.TextContent,
	}, nil
}

// Paragraphs splits article text into the units scanned and stored as
// context: lines, further split after sentence-ending punctuation that is
// followed by whitespace. Blank units are dropped.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for _, s := range splitSentences(line) {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func splitSentences(line string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(line)
	for i, r := range runes {
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' && r != '…' {
			continue
		}
		// "2 kr.!" and "f.eks." stay together unless whitespace follows.
		if i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\t') {
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

var (
	// (?s) allows dot to match newlines
	// (?i) makes it case-insensitive
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby removes ruby text (<rt>...</rt>) and ruby parentheses
// (<rp>...</rp>) so readability does not merge them into the base text.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, []byte{})
	cleaned = reRP.ReplaceAll(cleaned, []byte{})
	return cleaned
}
