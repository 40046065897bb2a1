package backend

import (
	"context"
	"fmt"
)

// TrendingSearch is a popular query shown before the user types.
type TrendingSearch struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// TrendingSource lists trending searches.
type TrendingSource interface {
	Trending(ctx context.Context) ([]TrendingSearch, error)
}

// StaticTrending serves a fixed list.
type StaticTrending []TrendingSearch

// DefaultTrending is the built-in trending list.
var DefaultTrending = StaticTrending{
	{ID: 1, Text: "price of h&m tote bag", Category: "fashion"},
	{ID: 2, Text: "zara new launches", Category: "fashion"},
	{ID: 3, Text: "lululemon track pants red", Category: "clothing"},
	{ID: 4, Text: "nike air max 2024", Category: "shoes"},
	{ID: 5, Text: "uniqlo spring collection", Category: "fashion"},
	{ID: 6, Text: "adidas ultraboost sale", Category: "shoes"},
}

func (s StaticTrending) Trending(ctx context.Context) ([]TrendingSearch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return append([]TrendingSearch(nil), s...), nil
}

// TrendingTexts returns the query texts of the list.
func TrendingTexts(items []TrendingSearch) []string {
	out := make([]string, len(items))
	for i, t := range items {
		out[i] = t.Text
	}

	return out
}

// Completions returns the query completions offered for q.
func Completions(q string) []string {
	if q == "" {
		return nil
	}

	return []string{
		fmt.Sprintf("%s images", q),
		fmt.Sprintf("%s photos", q),
		fmt.Sprintf("%s pictures", q),
		fmt.Sprintf("free %s images", q),
		fmt.Sprintf("%s stock photos", q),
	}
}
