package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kedare/lens/internal/backend"
	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/suggest"
	"github.com/pterm/pterm"
)

// DisplaySuggestions renders suggestion candidates one per line.
func DisplaySuggestions(w io.Writer, items []suggest.Suggestion, format string) error {
	if strings.EqualFold(format, FormatJSON) {
		if items == nil {
			items = []suggest.Suggestion{}
		}

		return displayJSON(w, items)
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No suggestions.")
		return err
	}

	for _, s := range items {
		marker := " "
		if s.Type == suggest.TypeHistory {
			marker = "↺"
		}

		fmt.Fprintf(w, "%s %s\n", marker, s.Text)
	}

	return nil
}

// DisplayTrending renders the trending searches.
func DisplayTrending(w io.Writer, items []backend.TrendingSearch, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return displayJSON(w, items)
	case FormatText:
		for _, t := range items {
			fmt.Fprintf(w, "%s (%s)\n", t.Text, t.Category)
		}

		return nil
	}

	data := pterm.TableData{{"#", "Search", "Category"}}
	for _, t := range items {
		data = append(data, []string{fmt.Sprint(t.ID), t.Text, t.Category})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render trending searches: %w", err)
	}

	_, err = fmt.Fprintln(w, table)

	return err
}

// DisplayStoreInfo renders database details for `lens cache stats`.
func DisplayStoreInfo(w io.Writer, info *kv.Info, format string) error {
	if strings.EqualFold(format, FormatJSON) {
		return displayJSON(w, info)
	}

	fmt.Fprintf(w, "Path:           %s\n", info.Path)
	fmt.Fprintf(w, "Size:           %s\n", humanize.IBytes(uint64(max(info.SizeBytes, 0))))
	fmt.Fprintf(w, "Schema version: %d\n", info.SchemaVersion)
	fmt.Fprintf(w, "Keys:           %s\n", humanize.Comma(info.KeyCount))
	_, err := fmt.Fprintln(w, info.Stats.String())

	return err
}
