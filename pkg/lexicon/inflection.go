package lexicon

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// InflectionKind tells which JSON shape an Inflection was decoded from.
type InflectionKind uint8

const (
	InflectionNone   InflectionKind = iota // absent, null or an unsupported shape
	InflectionText                         // "hus, huset, husene"
	InflectionList                         // ["huset", "husene"]
	InflectionGroups                       // {"bestemt": "huset", "flertall": ["hus", "husene"]}
)

// InflectionGroup is one keyed group of an object-shaped inflection. A
// scalar value becomes a single form.
type InflectionGroup struct {
	Key   string
	Forms []string
}

// Inflection holds the inflected forms of a lexicon entry in whichever
// shape the lexicon used. Only the field matching Kind is set.
type Inflection struct {
	Kind   InflectionKind
	Text   string
	List   []string
	Groups []InflectionGroup
}

// TextInflection is a convenience constructor for the plain string shape.
func TextInflection(s string) Inflection {
	return Inflection{Kind: InflectionText, Text: s}
}

// ListInflection is a convenience constructor for the list shape.
func ListInflection(forms ...string) Inflection {
	return Inflection{Kind: InflectionList, List: forms}
}

// FlattenInflection renders an inflection as one display string. Text is
// trimmed as-is; list and group forms are trimmed, emptied forms dropped,
// and the rest joined with ", " in source order.
func FlattenInflection(in Inflection) string {
	switch in.Kind {
	case InflectionText:
		return strings.TrimSpace(in.Text)
	case InflectionList:
		return joinForms(in.List)
	case InflectionGroups:
		var forms []string
		for _, g := range in.Groups {
			forms = append(forms, g.Forms...)
		}
		return joinForms(forms)
	}
	return ""
}

func joinForms(forms []string) string {
	kept := make([]string, 0, len(forms))
	for _, f := range forms {
		if f = strings.TrimSpace(f); f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, ", ")
}

// UnmarshalJSON accepts a string, an array of scalars or an object whose
// values are scalars or arrays of scalars. Object key order is kept. Any
// other shape decodes to InflectionNone rather than failing the record.
func (in *Inflection) UnmarshalJSON(data []byte) error {
	*in = Inflection{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*in = TextInflection(s)
		}
	case '[':
		forms, ok := scalarList(data)
		if ok {
			*in = Inflection{Kind: InflectionList, List: forms}
		}
	case '{':
		groups, ok := orderedGroups(data)
		if ok {
			*in = Inflection{Kind: InflectionGroups, Groups: groups}
		}
	}
	return nil
}

func orderedGroups(data []byte) ([]InflectionGroup, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	var groups []InflectionGroup
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		var forms []string
		if v := bytes.TrimSpace(value); len(v) > 0 && v[0] == '[' {
			forms, _ = scalarList(v)
		} else if s, ok := scalarText(v); ok {
			forms = []string{s}
		}
		groups = append(groups, InflectionGroup{Key: key, Forms: forms})
	}
	return groups, true
}

func scalarList(data []byte) ([]string, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	forms := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := scalarText(item); ok {
			forms = append(forms, s)
		}
	}
	return forms, true
}

// scalarText renders a JSON string, number or boolean as text. null,
// objects and arrays yield ok == false.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case c == 't' || c == 'f':
		b, err := strconv.ParseBool(string(raw))
		if err != nil {
			return "", false
		}
		return strconv.FormatBool(b), true
	case c == '-' || (c >= '0' && c <= '9'):
		return string(raw), true
	}
	return "", false
}
