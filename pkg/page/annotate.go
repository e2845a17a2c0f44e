package page

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/japaniel/ordlys/pkg/lexicon"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MarkClass is the class carried by every mark Annotate inserts.
const MarkClass = "ordlys-word"

// Scanner finds phrase occurrences in a piece of text. *lexicon.Index and
// the highlighter both satisfy it.
type Scanner interface {
	Scan(text string) []lexicon.Match
}

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Textarea: true,
	atom.Input:    true,
	atom.Title:    true,
	atom.Template: true,
}

// Annotate parses the HTML document from r, wraps every phrase occurrence
// found in its text nodes in a mark element and writes the result to w.
// It returns the level statistics of the inserted marks.
func Annotate(w io.Writer, r io.Reader, s Scanner) (lexicon.PageStats, error) {
	stats := lexicon.NewPageStats()
	doc, err := html.Parse(r)
	if err != nil {
		return stats, fmt.Errorf("parse html: %w", err)
	}

	var targets []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (skipped[n.DataAtom] || isMark(n)) {
			return
		}
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			targets = append(targets, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, n := range targets {
		matches := s.Scan(n.Data)
		if len(matches) == 0 {
			continue
		}
		stats.Add(matches)
		replaceText(n, matches)
	}

	if err := html.Render(w, doc); err != nil {
		return stats, fmt.Errorf("render html: %w", err)
	}
	return stats, nil
}

func isMark(n *html.Node) bool {
	if n.DataAtom != atom.Mark {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == MarkClass {
					return true
				}
			}
		}
	}
	return false
}

// replaceText splits the text node n around matches, which must be sorted
// and non-overlapping.
func replaceText(n *html.Node, matches []lexicon.Match) {
	parent := n.Parent
	text := n.Data
	pos := 0
	for _, m := range matches {
		if m.Start > pos {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[pos:m.Start]}, n)
		}
		mark := markNode(m)
		mark.AppendChild(&html.Node{Type: html.TextNode, Data: text[m.Start:m.End]})
		parent.InsertBefore(mark, n)
		pos = m.End
	}
	if pos < len(text) {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[pos:]}, n)
	}
	parent.RemoveChild(n)
}

func markNode(m lexicon.Match) *html.Node {
	level := strconv.Itoa(m.Level)
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Mark,
		Data:     "mark",
		Attr: []html.Attribute{
			{Key: "class", Val: MarkClass + " ordlys-level-" + level},
			{Key: "style", Val: "background-color: " + lexicon.LevelColor(m.Level)},
			{Key: "data-phrase", Val: m.Phrase},
			{Key: "data-meaning", Val: m.Meaning},
			{Key: "data-type", Val: m.Type},
			{Key: "data-inflection", Val: m.Inflection},
			{Key: "data-base-word", Val: m.BaseWord},
			{Key: "data-ord", Val: m.Ord},
			{Key: "data-level", Val: level},
		},
	}
}
