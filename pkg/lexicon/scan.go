package lexicon

import "strings"

// Match is one phrase occurrence found by Scan. Start and End are byte
// offsets into the scanned text, aligned to the first and last matched
// token, End exclusive. The embedded Entry is a copy; its Examples slice
// is shared with the index and must not be modified.
type Match struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Entry
}

// Scan is shorthand for idx.Scan(text).
func Scan(text string, idx *Index) []Match {
	return idx.Scan(text)
}

// Scan finds indexed phrases in text. At each token it tries the phrase
// lengths registered for that token from longest to shortest and takes the
// first that matches; matched tokens are consumed and never reconsidered.
// The result is ordered by position and free of overlaps. Greedy is not
// optimal: an early long match can hide a better split, and that is the
// intended behaviour.
func (idx *Index) Scan(text string) []Match {
	if idx == nil || len(idx.heads) == 0 {
		return nil
	}
	tokens := Tokenize(text)

	var matches []Match
	var key strings.Builder
	for i := 0; i < len(tokens); {
		g, ok := idx.heads[tokens[i].Text]
		if !ok {
			i++
			continue
		}
		n, e := g.longestAt(tokens, i, &key)
		if e == nil {
			i++
			continue
		}
		matches = append(matches, Match{
			Start: tokens[i].Start,
			End:   tokens[i+n-1].End,
			Entry: *e,
		})
		i += n
	}
	return matches
}

// longestAt returns the longest phrase of g that matches tokens starting
// at i, with its length in tokens.
func (g *headGroup) longestAt(tokens []Token, i int, key *strings.Builder) (int, *Entry) {
	for _, n := range g.lengthsDesc {
		if i+n > len(tokens) {
			continue
		}
		key.Reset()
		for j := i; j < i+n; j++ {
			if j > i {
				key.WriteByte(' ')
			}
			key.WriteString(tokens[j].Text)
		}
		if e, ok := g.byLength[n][key.String()]; ok {
			return n, e
		}
	}
	return 0, nil
}
