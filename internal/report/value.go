// Package report renders the free-form summary mapping served by the
// backend and forwards selected values to a text-summarization service.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ValueKind discriminates the two shapes a report value can take.
type ValueKind int

const (
	// KindScalar is a plain string, number, or boolean value.
	KindScalar ValueKind = iota
	// KindObject is a nested mapping rendered as structured text.
	KindObject
)

// Value is a tagged union over the shapes a report key can hold.
// Modeling the discrimination explicitly keeps rendering exhaustive
// instead of leaning on dynamic type inspection.
type Value struct {
	Object map[string]any
	Scalar string
	Kind   ValueKind
}

// Text returns the serialized form of the value, used both for display
// of nested objects and as the summarization input.
func (v Value) Text() string {
	if v.Kind == KindScalar {
		return v.Scalar
	}
	data, err := json.MarshalIndent(v.Object, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v.Object)
	}
	return string(data)
}

// Card is one renderable entry of the report.
type Card struct {
	Key   string
	Value Value
}

// Title returns the card heading derived from its key.
func (c Card) Title() string {
	return strings.ToUpper(strings.ReplaceAll(c.Key, "_", " "))
}

// statusRow matches the alternative array-shaped summary payload of
// per-status totals.
type statusRow struct {
	Status string      `json:"status"`
	Total  json.Number `json:"total"`
}

// ParseSummary decodes the free-form summary body into cards. Two
// shapes are accepted: a key→value mapping (cards ordered by key) and
// an array of status totals (one scalar card per status). Anything
// else yields no cards.
func ParseSummary(body []byte) []Card {
	var mapping map[string]json.RawMessage
	if err := json.Unmarshal(body, &mapping); err == nil && mapping != nil {
		keys := make([]string, 0, len(mapping))
		for k := range mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		cards := make([]Card, 0, len(keys))
		for _, k := range keys {
			cards = append(cards, Card{Key: k, Value: parseValue(mapping[k])})
		}
		return cards
	}

	var rows []statusRow
	if err := json.Unmarshal(body, &rows); err == nil {
		cards := make([]Card, 0, len(rows))
		for _, row := range rows {
			if row.Status == "" {
				continue
			}
			cards = append(cards, Card{
				Key:   row.Status,
				Value: Value{Kind: KindScalar, Scalar: row.Total.String()},
			})
		}
		return cards
	}

	return nil
}

func parseValue(raw json.RawMessage) Value {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		return Value{Kind: KindObject, Object: obj}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Value{Kind: KindScalar, Scalar: s}
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return Value{Kind: KindScalar, Scalar: n.String()}
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return Value{Kind: KindScalar, Scalar: fmt.Sprintf("%t", b)}
	}

	// Arrays and nulls render through their raw JSON.
	return Value{Kind: KindScalar, Scalar: strings.TrimSpace(string(raw))}
}
