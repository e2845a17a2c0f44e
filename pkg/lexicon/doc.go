/*
Package lexicon finds known vocabulary phrases in running text.

A lexicon is a list of dictionary records (base word, meaning, part of
speech, inflected forms, difficulty level). Build turns the records into an
immutable Index keyed by the first token of every phrase; Scan walks the
letter-run tokens of a text and reports a greedy, leftmost-longest,
non-overlapping list of matches together with the metadata of the entry
that matched.

Phrase identity is defined by Normalize: lowercase, parenthesised notes
removed, letter runs joined by single spaces. The same function is used
when the index is built and when text is scanned, so "Rødt hus (adj.)" in a
lexicon and "RØDT   hus" in a page are the same phrase.

The index is never updated in place. When the lexicon or the exclusion
sets change, build a new one and swap it in; an Index is safe for
concurrent use by any number of scanning goroutines.
*/
package lexicon

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ordlys.lexicon'
func tracer() tracing.Trace {
	return tracing.Select("ordlys.lexicon")
}
