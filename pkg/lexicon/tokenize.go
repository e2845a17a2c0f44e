package lexicon

import (
	"iter"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Token is one lowercased letter run of a text. Start and End are byte
// offsets into the original text, End exclusive.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokens yields the letter runs of text from left to right. The sequence
// is lazy and holds no state between iterations: ranging over it twice
// scans text twice.
func Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		caser := cases.Lower(language.Und)
		start := -1
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			letter := r != utf8.RuneError && unicode.IsLetter(r)
			switch {
			case letter && start < 0:
				start = i
			case !letter && start >= 0:
				if !yield(Token{Text: caser.String(text[start:i]), Start: start, End: i}) {
					return
				}
				start = -1
			}
			i += size
		}
		if start >= 0 {
			yield(Token{Text: caser.String(text[start:]), Start: start, End: len(text)})
		}
	}
}

// Tokenize collects Tokens(text) into a slice.
func Tokenize(text string) []Token {
	var tokens []Token
	for t := range Tokens(text) {
		tokens = append(tokens, t)
	}
	return tokens
}
