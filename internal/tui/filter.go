package tui

import (
	"strings"

	"github.com/kedare/lens/internal/search"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// filterTerm is a single token: a literal (possibly OR-grouped) with optional negation.
type filterTerm struct {
	alternatives []string // "lake|beach" -> ["lake", "beach"]
	negate       bool
}

// filterExpr narrows the displayed results. All terms must match.
type filterExpr struct {
	terms []filterTerm
	fuzzy bool
}

// parseFilter splits a raw filter string into an expression.
// Spaces separate AND terms, "|" separates OR alternatives and a "-" prefix
// negates a term:
//
//	"mountain lake"   title mentions mountain and lake
//	"lake|beach"      lake or beach
//	"unsplash -city"  from Unsplash, excluding city shots
func parseFilter(raw string, fuzzyMode bool) filterExpr {
	expr := filterExpr{fuzzy: fuzzyMode}

	for _, token := range strings.Fields(raw) {
		negate := false
		if strings.HasPrefix(token, "-") {
			negate = true
			token = token[1:]
		}

		var alts []string
		for _, a := range strings.Split(strings.ToLower(token), "|") {
			if a != "" {
				alts = append(alts, a)
			}
		}

		if len(alts) > 0 {
			expr.terms = append(expr.terms, filterTerm{alternatives: alts, negate: negate})
		}
	}

	return expr
}

func (f filterExpr) empty() bool {
	return len(f.terms) == 0
}

// contains matches alt against v by substring, or as an in-order character
// subsequence in fuzzy mode ("mtn" matches "mountain").
func (f filterExpr) contains(v, alt string) bool {
	if f.fuzzy {
		return fuzzy.MatchFold(alt, v)
	}

	return strings.Contains(strings.ToLower(v), alt)
}

// matches reports whether the values satisfy every term.
func (f filterExpr) matches(values ...string) bool {
	for _, term := range f.terms {
		found := false

		for _, alt := range term.alternatives {
			for _, v := range values {
				if f.contains(v, alt) {
					found = true
					break
				}
			}

			if found {
				break
			}
		}

		if found == term.negate {
			return false
		}
	}

	return true
}

// matchesResult applies the expression to the visible fields of a result.
func (f filterExpr) matchesResult(r search.ImageResult) bool {
	return f.matches(r.Title, r.Source, r.Type, r.DetectedText)
}

// filterResults keeps the results matching f, with their position in the
// unfiltered list.
func filterResults(results []search.ImageResult, f filterExpr) ([]search.ImageResult, []int) {
	if f.empty() {
		idx := make([]int, len(results))
		for i := range results {
			idx[i] = i
		}

		return results, idx
	}

	var (
		out []search.ImageResult
		idx []int
	)

	for i, r := range results {
		if f.matchesResult(r) {
			out = append(out, r)
			idx = append(idx, i)
		}
	}

	return out, idx
}
