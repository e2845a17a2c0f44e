package lexicon

import "slices"

// AllLevels returns the distinct positive levels used by records, ascending.
func AllLevels(records []Record) []int {
	seen := make(map[int]struct{})
	var levels []int
	for _, r := range records {
		if r.Level <= 0 {
			continue
		}
		if _, ok := seen[r.Level]; ok {
			continue
		}
		seen[r.Level] = struct{}{}
		levels = append(levels, r.Level)
	}
	slices.Sort(levels)
	return levels
}

// LevelCounts counts records per positive level.
func LevelCounts(records []Record) map[int]int {
	counts := make(map[int]int)
	for _, r := range records {
		if r.Level > 0 {
			counts[r.Level]++
		}
	}
	return counts
}

// PageStats counts leveled matches on a page. Unleveled matches are not
// counted at all, not even in Total.
type PageStats struct {
	ByLevel map[int]int `json:"byLevel"`
	Total   int         `json:"total"`
}

// NewPageStats returns empty statistics.
func NewPageStats() PageStats {
	return PageStats{ByLevel: make(map[int]int)}
}

// Add counts matches.
func (s *PageStats) Add(matches []Match) {
	if s.ByLevel == nil {
		s.ByLevel = make(map[int]int)
	}
	for _, m := range matches {
		if m.Level > 0 {
			s.ByLevel[m.Level]++
			s.Total++
		}
	}
}

// Merge adds the counts of other to s.
func (s *PageStats) Merge(other PageStats) {
	if s.ByLevel == nil {
		s.ByLevel = make(map[int]int)
	}
	for level, n := range other.ByLevel {
		s.ByLevel[level] += n
	}
	s.Total += other.Total
}

// Share returns the percentage of leveled matches at level, 0 for an empty page.
func (s PageStats) Share(level int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ByLevel[level]) / float64(s.Total) * 100
}

var levelColors = map[int]string{
	500:  "#26a69a",
	1500: "#42a5f5",
	3000: "#ffa726",
	5000: "#ef5350",
}

// LevelColor returns the highlight colour for a level.
func LevelColor(level int) string {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return "#9e9e9e"
}
