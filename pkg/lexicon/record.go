package lexicon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Example is a usage sentence in the source language with its translation.
type Example struct {
	NO string `json:"no,omitempty"`
	EN string `json:"en,omitempty"`
}

// Record is one entry of a raw lexicon as published. Decoding is tolerant:
// a field of the wrong type falls back to its zero value instead of
// rejecting the record.
type Record struct {
	Word        string // base form, may list alternatives ("hus/huset")
	Meaning     string
	Type        string // part of speech; "pos" is accepted as an alias
	Inflection  Inflection
	Level       int // difficulty tier, 0 when unleveled
	Ord         string
	Description string
	Examples    []Example
}

var (
	// ErrEmptyLexicon is returned by DecodeRecords for blank input.
	ErrEmptyLexicon = errors.New("lexicon is empty")
	// ErrNotArray is returned by DecodeRecords when the document root is
	// neither an array nor an object with a "words" array.
	ErrNotArray = errors.New("lexicon root is not an array")
)

// DecodeRecords parses a raw lexicon document. The root may be an array of
// records or an object wrapping them as {"words": [...]}. Elements are
// decoded one by one; an element that is not an object is skipped.
func DecodeRecords(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyLexicon
	}

	var elems []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &elems); err != nil {
			return nil, fmt.Errorf("parse lexicon: %w", err)
		}
	case '{':
		var wrapper struct {
			Words []json.RawMessage `json:"words"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("parse lexicon: %w", err)
		}
		if wrapper.Words == nil {
			return nil, ErrNotArray
		}
		elems = wrapper.Words
	default:
		return nil, ErrNotArray
	}

	records := make([]Record, 0, len(elems))
	skipped := 0
	for _, raw := range elems {
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			skipped++
			continue
		}
		records = append(records, r)
	}
	if skipped > 0 {
		tracer().Infof("lexicon: skipped %d malformed records of %d", skipped, len(elems))
	}
	return records, nil
}

// UnmarshalJSON decodes a record object field by field.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Word        looseString     `json:"word"`
		Meaning     looseString     `json:"meaning"`
		Type        looseString     `json:"type"`
		POS         looseString     `json:"pos"`
		Inflection  Inflection      `json:"inflection"`
		Level       looseLevel      `json:"level"`
		Ord         looseString     `json:"ord"`
		Description looseString     `json:"description"`
		Examples    json.RawMessage `json:"examples"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{
		Word:        string(raw.Word),
		Meaning:     string(raw.Meaning),
		Type:        string(raw.Type),
		Inflection:  raw.Inflection,
		Level:       int(raw.Level),
		Ord:         string(raw.Ord),
		Description: string(raw.Description),
		Examples:    decodeExamples(raw.Examples),
	}
	if r.Type == "" {
		r.Type = string(raw.POS)
	}
	return nil
}

func decodeExamples(raw json.RawMessage) []Example {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []Example
	for _, item := range items {
		var ex struct {
			NO looseString `json:"no"`
			EN looseString `json:"en"`
		}
		if json.Unmarshal(item, &ex) != nil {
			continue
		}
		if ex.NO == "" && ex.EN == "" {
			continue
		}
		out = append(out, Example{NO: string(ex.NO), EN: string(ex.EN)})
	}
	return out
}

// looseString decodes strings, numbers and booleans as text and anything
// else as "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	text, _ := scalarText(data)
	*s = looseString(text)
	return nil
}

// looseLevel decodes a number or numeric string. Non-numeric and
// non-finite values become 0; fractions are truncated.
type looseLevel int

func (l *looseLevel) UnmarshalJSON(data []byte) error {
	*l = 0
	text, ok := scalarText(data)
	if !ok {
		return nil
	}
	switch text {
	case "true":
		*l = 1
		return nil
	case "false":
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	*l = looseLevel(int(f))
	return nil
}
