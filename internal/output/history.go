package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kedare/lens/internal/search"
	"github.com/pterm/pterm"
)

// DisplayHistory renders history entries with times relative to now.
func DisplayHistory(w io.Writer, entries []search.HistoryEntry, now time.Time, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		if entries == nil {
			entries = []search.HistoryEntry{}
		}

		return displayJSON(w, entries)
	case FormatText:
		if len(entries) == 0 {
			_, err := fmt.Fprintln(w, "No search history.")
			return err
		}

		for _, e := range entries {
			fmt.Fprintf(w, "%d  %s  %s (%s)\n", e.Timestamp, kindLabel(e), e.Query, When(e.Timestamp, now))
		}

		return nil
	default:
		return displayHistoryTable(w, entries, now)
	}
}

func displayHistoryTable(w io.Writer, entries []search.HistoryEntry, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No search history.")
		return err
	}

	data := pterm.TableData{{"ID", "Query", "Kind", "Filters", "When"}}
	width := titleWidth(70)

	for _, e := range entries {
		data = append(data, []string{
			strconv.FormatInt(e.Timestamp, 10),
			Truncate(e.Query, width),
			kindLabel(e),
			e.Filters.String(),
			When(e.Timestamp, now),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}

	_, err = fmt.Fprintln(w, table)

	return err
}

func kindLabel(e search.HistoryEntry) string {
	if e.IsImageSearch {
		return "image"
	}

	return "text"
}

// When formats a millisecond timestamp relative to now.
func When(ts int64, now time.Time) string {
	return humanize.RelTime(time.UnixMilli(ts), now, "ago", "from now")
}
