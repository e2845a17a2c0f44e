package lexicon

import (
	"slices"
	"strings"
)

// Entry is the metadata stored for one canonical phrase.
type Entry struct {
	Phrase      string    `json:"phrase"` // canonical form the entry is keyed by
	Meaning     string    `json:"meaning"`
	Type        string    `json:"type"`
	Inflection  string    `json:"inflection"` // flattened display string
	BaseWord    string    `json:"baseWord"`
	Ord         string    `json:"ord"`
	Level       int       `json:"level"`
	Description string    `json:"description,omitempty"`
	Examples    []Example `json:"examples,omitempty"`
}

// headGroup holds every phrase that starts with one token, grouped by
// phrase length in tokens.
type headGroup struct {
	byLength    map[int]map[string]*Entry
	lengthsDesc []int
}

func (g *headGroup) addLength(n int) {
	i, found := slices.BinarySearchFunc(g.lengthsDesc, n, func(have, want int) int { return want - have })
	if !found {
		g.lengthsDesc = slices.Insert(g.lengthsDesc, i, n)
	}
}

// Index is a lexicon prepared for scanning. It is immutable once Build
// returns.
type Index struct {
	heads  map[string]*headGroup
	size   int
	maxLen int
}

// Len reports the number of distinct phrases in the index.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return idx.size
}

// MaxPhraseLen reports the token length of the longest indexed phrase.
func (idx *Index) MaxPhraseLen() int {
	if idx == nil {
		return 0
	}
	return idx.maxLen
}

// Lookup returns the entry stored under the canonical form of phrase.
func (idx *Index) Lookup(phrase string) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	canonical := Normalize(phrase)
	if canonical == "" {
		return Entry{}, false
	}
	head, _, _ := strings.Cut(canonical, " ")
	g, ok := idx.heads[head]
	if !ok {
		return Entry{}, false
	}
	e, ok := g.byLength[strings.Count(canonical, " ")+1][canonical]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Each calls fn for every indexed entry, in no particular order, until fn
// returns false.
func (idx *Index) Each(fn func(Entry) bool) {
	if idx == nil {
		return
	}
	for _, g := range idx.heads {
		for _, phrases := range g.byLength {
			for _, e := range phrases {
				if !fn(*e) {
					return
				}
			}
		}
	}
}

// WordSet is a set of canonical phrases.
type WordSet map[string]struct{}

// NewWordSet normalizes words and collects the non-empty results.
func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Has reports whether the canonical phrase is in the set.
func (s WordSet) Has(phrase string) bool {
	_, ok := s[phrase]
	return ok
}

// Sorted returns the members in lexical order.
func (s WordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// LevelSet is a set of difficulty levels.
type LevelSet map[int]struct{}

// NewLevelSet collects levels into a set.
func NewLevelSet(levels ...int) LevelSet {
	set := make(LevelSet, len(levels))
	for _, l := range levels {
		set[l] = struct{}{}
	}
	return set
}

// Has reports whether level is in the set.
func (s LevelSet) Has(level int) bool {
	_, ok := s[level]
	return ok
}

// BuildOption adjusts how Build expands records into phrases.
type BuildOption func(*buildConfig)

type buildConfig struct {
	inflectionTails bool
}

// WithInflectionTails also indexes the last token of every multi-word
// inflected form as a phrase of its own, so that "kom fram" can be found
// from a lone "fram". The tail is added after the full form and, like any
// phrase, loses to an identical phrase added earlier. Base forms are not
// expanded this way.
func WithInflectionTails(on bool) BuildOption {
	return func(c *buildConfig) { c.inflectionTails = on }
}

type builder struct {
	idx            *Index
	cfg            buildConfig
	disabledWords  WordSet
	disabledLevels LevelSet

	skipped    int
	duplicates int
	excluded   int
}

// Build indexes records, leaving out phrases in disabledWords and every
// phrase of a record whose level is in disabledLevels. Level 0 (unleveled)
// is never excluded. Both sets may be nil.
//
// For every record the base word is added (each alternative separately
// when it lists several), then each inflected form. When two records yield
// the same canonical phrase the first one wins. A record whose base word
// has no letters contributes nothing.
func Build(records []Record, disabledWords WordSet, disabledLevels LevelSet, opts ...BuildOption) *Index {
	b := &builder{
		idx:            &Index{heads: make(map[string]*headGroup)},
		disabledWords:  disabledWords,
		disabledLevels: disabledLevels,
	}
	for _, opt := range opts {
		opt(&b.cfg)
	}
	for i := range records {
		b.addRecord(&records[i])
	}
	tracer().Infof("lexicon: indexed %d phrases from %d records (%d unusable, %d duplicate, %d excluded)",
		b.idx.size, len(records), b.skipped, b.duplicates, b.excluded)
	return b.idx
}

func (b *builder) addRecord(r *Record) {
	if Normalize(r.Word) == "" {
		b.skipped++
		return
	}
	inflection := FlattenInflection(r.Inflection)
	meta := Entry{
		Meaning:     r.Meaning,
		Type:        r.Type,
		Inflection:  inflection,
		BaseWord:    r.Word,
		Ord:         r.Ord,
		Level:       r.Level,
		Description: r.Description,
		Examples:    r.Examples,
	}

	if hasVariantSeparator(r.Word) {
		for _, form := range SplitVariants(r.Word) {
			b.addPhrase(form, &meta)
		}
	} else {
		b.addPhrase(r.Word, &meta)
	}

	if inflection == "" {
		return
	}
	for _, variant := range SplitVariants(inflection) {
		b.addPhrase(variant, &meta)
		if b.cfg.inflectionTails {
			if _, tail, multi := cutLast(Normalize(variant)); multi {
				b.addPhrase(tail, &meta)
			}
		}
	}
}

func (b *builder) addPhrase(raw string, meta *Entry) {
	phrase := Normalize(raw)
	if phrase == "" {
		return
	}
	if b.disabledWords.Has(phrase) || (meta.Level != 0 && b.disabledLevels.Has(meta.Level)) {
		b.excluded++
		return
	}

	head, _, _ := strings.Cut(phrase, " ")
	n := strings.Count(phrase, " ") + 1

	g, ok := b.idx.heads[head]
	if !ok {
		g = &headGroup{byLength: make(map[int]map[string]*Entry)}
		b.idx.heads[head] = g
	}
	phrases, ok := g.byLength[n]
	if !ok {
		phrases = make(map[string]*Entry)
		g.byLength[n] = phrases
	}
	if _, dup := phrases[phrase]; dup {
		b.duplicates++
		return
	}

	e := *meta
	e.Phrase = phrase
	phrases[phrase] = &e
	g.addLength(n)
	b.idx.size++
	if n > b.idx.maxLen {
		b.idx.maxLen = n
	}
}

// cutLast splits a canonical phrase before its last token. multi is false
// for single-token phrases.
func cutLast(phrase string) (rest, last string, multi bool) {
	i := strings.LastIndexByte(phrase, ' ')
	if i < 0 {
		return "", phrase, false
	}
	return phrase[:i], phrase[i+1:], true
}
