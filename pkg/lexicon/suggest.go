package lexicon

import (
	"slices"

	"github.com/derekparker/trie"
)

// Suggester completes partial input to indexed phrases.
type Suggester struct {
	t *trie.Trie
}

// NewSuggester loads every phrase of idx into a prefix trie. The
// suggester reflects idx as it was built and must be recreated with it.
func NewSuggester(idx *Index) *Suggester {
	t := trie.New()
	idx.Each(func(e Entry) bool {
		t.Add(e.Phrase, e)
		return true
	})
	return &Suggester{t: t}
}

// Suggest returns up to limit entries whose phrase starts with the
// normalized prefix, in lexical order. limit <= 0 means no limit.
func (s *Suggester) Suggest(prefix string, limit int) []Entry {
	p := Normalize(prefix)
	if p == "" {
		return nil
	}
	keys := s.t.PrefixSearch(p)
	slices.Sort(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		node, ok := s.t.Find(k)
		if !ok {
			continue
		}
		if e, ok := node.Meta().(Entry); ok {
			out = append(out, e)
		}
	}
	return out
}
