// Package suggest filters candidate completions for a partially typed query.
package suggest

import (
	"strings"

	"github.com/kedare/lens/internal/search"
)

// MaxSuggestions is the number of suggestions returned at most.
const MaxSuggestions = 10

// Type tells where a suggestion came from.
type Type string

const (
	TypeHistory    Type = "history"
	TypeSuggestion Type = "suggestion"
)

// Suggestion is a candidate completion of the typed query.
type Suggestion struct {
	Text string `json:"text"`
	Type Type   `json:"type"`
}

// Get returns the candidates whose text contains query, ignoring case, in
// candidate order and at most MaxSuggestions of them. A blank query yields
// an empty list.
func Get(query string, candidates []Suggestion) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Suggestion{}
	}

	out := make([]Suggestion, 0, MaxSuggestions)
	for _, c := range candidates {
		if !strings.Contains(strings.ToLower(c.Text), q) {
			continue
		}

		out = append(out, c)
		if len(out) == MaxSuggestions {
			break
		}
	}

	return out
}

// FromTexts wraps plain strings as suggestions of the given type.
func FromTexts(texts []string, t Type) []Suggestion {
	out := make([]Suggestion, len(texts))
	for i, text := range texts {
		out[i] = Suggestion{Text: text, Type: t}
	}

	return out
}

// Catalog builds the candidate list for a typed query: past text searches
// first, then completions, then the remaining texts. Duplicate texts keep
// their first occurrence.
func Catalog(history []search.HistoryEntry, completions, extra []string) []Suggestion {
	seen := make(map[string]bool)

	var out []Suggestion
	add := func(text string, t Type) {
		key := strings.ToLower(text)
		if text == "" || seen[key] {
			return
		}

		seen[key] = true
		out = append(out, Suggestion{Text: text, Type: t})
	}

	for _, h := range history {
		if !h.IsImageSearch {
			add(h.Query, TypeHistory)
		}
	}

	for _, c := range completions {
		add(c, TypeSuggestion)
	}

	for _, e := range extra {
		add(e, TypeSuggestion)
	}

	return out
}
