package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kedare/lens/internal/search"
	"github.com/pterm/pterm"
)

type resultsJSON struct {
	Query       string               `json:"query"`
	Filters     search.Filters       `json:"filters"`
	CurrentPage int                  `json:"currentPage"`
	TotalPages  int                  `json:"totalPages"`
	Results     []search.ImageResult `json:"results"`
}

// DisplaySearch renders the results held in a search snapshot.
func DisplaySearch(w io.Writer, snap search.Snapshot, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		results := snap.Results
		if results == nil {
			results = []search.ImageResult{}
		}

		return displayJSON(w, resultsJSON{
			Query:       snap.Query,
			Filters:     snap.Filters,
			CurrentPage: snap.CurrentPage,
			TotalPages:  snap.TotalPages,
			Results:     results,
		})
	case FormatText:
		return displayResultsText(w, snap)
	default:
		return displayResultsTable(w, snap)
	}
}

func displayResultsTable(w io.Writer, snap search.Snapshot) error {
	if len(snap.Results) == 0 {
		_, err := fmt.Fprintln(w, "No images found.")
		return err
	}

	width := titleWidth(60)
	data := pterm.TableData{{"#", "Title", "Source", "Dimensions", "Size", "Type"}}

	for i, r := range snap.Results {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			Truncate(r.Title, width),
			r.Source,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Size,
			r.Type,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}

	if _, err := fmt.Fprintln(w, table); err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, PageLine(snap.CurrentPage, snap.TotalPages))

	return err
}

func displayResultsText(w io.Writer, snap search.Snapshot) error {
	if len(snap.Results) == 0 {
		_, err := fmt.Fprintln(w, "No images found.")
		return err
	}

	fmt.Fprintf(w, "Found %d image(s) for %q:\n\n", len(snap.Results), snap.Query)

	for _, r := range snap.Results {
		fmt.Fprintf(w, "- %s\n", r.Title)
		fmt.Fprintf(w, "  URL:       %s\n", r.URL)
		fmt.Fprintf(w, "  Thumbnail: %s\n", r.ThumbnailURL)
		fmt.Fprintf(w, "  Source:    %s (%dx%d", r.Source, r.Width, r.Height)

		if r.Size != "" {
			fmt.Fprintf(w, ", %s", r.Size)
		}

		fmt.Fprintln(w, ")")
	}

	_, err := fmt.Fprintf(w, "\n%s\n", PageLine(snap.CurrentPage, snap.TotalPages))

	return err
}

// PageLine describes the current page and the pagination window, marking
// the current page with brackets.
func PageLine(current, total int) string {
	if total <= 0 {
		return "Page 0 of 0"
	}

	pages := search.VisiblePages(current, total, search.DefaultVisiblePages)
	parts := make([]string, len(pages))

	for i, p := range pages {
		if p == current {
			parts[i] = fmt.Sprintf("[%d]", p)
		} else {
			parts[i] = strconv.Itoa(p)
		}
	}

	return fmt.Sprintf("Page %d of %d  %s", current, total, strings.Join(parts, " "))
}

// DisplayImageResult renders the representative result of an image search.
func DisplayImageResult(w io.Writer, r search.ImageResult, format string) error {
	if strings.EqualFold(format, FormatJSON) {
		return displayJSON(w, r)
	}

	fmt.Fprintf(w, "%s\n", r.Title)
	fmt.Fprintf(w, "  ID:     %s\n", r.ID)
	fmt.Fprintf(w, "  URL:    %s\n", r.URL)
	fmt.Fprintf(w, "  Source: %s\n", r.Source)

	if r.Metadata != nil && r.Metadata.UploadedImage != nil {
		u := r.Metadata.UploadedImage
		fmt.Fprintf(w, "  Upload: %dx%d %s, %s\n", u.Width, u.Height, u.Type, u.Size)
	}

	if len(r.DetectedObjects) > 0 {
		fmt.Fprintln(w, "  Objects:")

		for _, o := range r.DetectedObjects {
			b := o.BoundingBox
			fmt.Fprintf(w, "    - %s %.0f%% at (%d,%d) %dx%d\n", o.Label, o.Confidence*100, b.X, b.Y, b.Width, b.Height)
		}
	}

	if r.DetectedText != "" {
		fmt.Fprintf(w, "  Text:   %s\n", r.DetectedText)
	}

	if r.TranslatedText != "" {
		fmt.Fprintf(w, "  Translation: %s\n", r.TranslatedText)
	}

	return nil
}
