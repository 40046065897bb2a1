package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kedare/lens/internal/search"
	"github.com/rivo/tview"
)

// ErrorHandler flashes messages in the status bar and restores it afterwards.
type ErrorHandler struct {
	Status          *tview.TextView
	App             *tview.Application
	OnRestoreStatus func()
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(status *tview.TextView, app *tview.Application, onRestore func()) *ErrorHandler {
	return &ErrorHandler{
		Status:          status,
		App:             app,
		OnRestoreStatus: onRestore,
	}
}

// ShowError displays an error message and restores status after a delay.
func (eh *ErrorHandler) ShowError(format string, args ...interface{}) {
	eh.Status.SetText(fmt.Sprintf(" [red]"+format+"[-]", args...))
	eh.restoreAfter(3 * time.Second)
}

// ShowSuccess displays a success message and restores status after a delay.
func (eh *ErrorHandler) ShowSuccess(format string, args ...interface{}) {
	eh.Status.SetText(fmt.Sprintf(" [green]"+format+"[-]", args...))
	eh.restoreAfter(2 * time.Second)
}

func (eh *ErrorHandler) restoreAfter(d time.Duration) {
	if eh.OnRestoreStatus == nil {
		return
	}

	time.AfterFunc(d, func() {
		eh.App.QueueUpdateDraw(func() {
			eh.OnRestoreStatus()
		})
	})
}

// typeColor returns the display color for an image format, given as a MIME
// type or a bare format name.
func typeColor(kind string) string {
	switch strings.TrimPrefix(strings.ToLower(kind), "image/") {
	case "jpeg", "jpg":
		return "blue"
	case "png":
		return "green"
	case "gif":
		return "magenta"
	case "webp":
		return "cyan"
	default:
		return "white"
	}
}

// highlightMatch highlights the first occurrence of the search term in the text.
// Returns the text with tview color markup for highlighting.
func highlightMatch(text, term string) string {
	if term == "" || text == "" {
		return text
	}

	termLower := strings.ToLower(strings.TrimSpace(term))
	if termLower == "" {
		return text
	}

	idx := strings.Index(strings.ToLower(text), termLower)
	if idx < 0 {
		return text
	}

	before := text[:idx]
	matched := text[idx : idx+len(termLower)]
	after := text[idx+len(termLower):]

	return before + "[yellow::b]" + matched + "[-:-:-]" + after
}

// firstTerm returns the first positive literal of a filter, used for highlighting.
func firstTerm(f filterExpr) string {
	for _, t := range f.terms {
		if !t.negate && len(t.alternatives) > 0 {
			return t.alternatives[0]
		}
	}

	return ""
}

// dimensions renders "1920×1080", or "-" when unknown.
func dimensions(r search.ImageResult) string {
	if r.Width <= 0 || r.Height <= 0 {
		return "-"
	}

	return fmt.Sprintf("%d×%d", r.Width, r.Height)
}

// detailsText renders every field of a result for the details modal.
func detailsText(r search.ImageResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[yellow::b]%s[-:-:-]\n\n", tview.Escape(r.Title))
	fmt.Fprintf(&b, "[white::b]ID:[-:-:-]         %s\n", r.ID)
	fmt.Fprintf(&b, "[white::b]Source:[-:-:-]     %s\n", tview.Escape(r.Source))
	fmt.Fprintf(&b, "[white::b]URL:[-:-:-]        %s\n", tview.Escape(r.URL))
	fmt.Fprintf(&b, "[white::b]Thumbnail:[-:-:-]  %s\n", tview.Escape(r.ThumbnailURL))
	fmt.Fprintf(&b, "[white::b]Dimensions:[-:-:-] %s\n", dimensions(r))
	fmt.Fprintf(&b, "[white::b]Size:[-:-:-]       %s\n", r.Size)
	fmt.Fprintf(&b, "[white::b]Type:[-:-:-]       [%s]%s[-]\n", typeColor(r.Type), r.Type)

	if r.Metadata != nil {
		b.WriteString("\n[darkcyan::b]Match[-:-:-]\n")
		fmt.Fprintf(&b, "  Similarity: %.0f%%\n", r.Metadata.Similarity*100)

		if up := r.Metadata.UploadedImage; up != nil {
			fmt.Fprintf(&b, "  Uploaded:   %d×%d %s, %s\n", up.Width, up.Height, up.Type, up.Size)
		}
	}

	if len(r.DetectedObjects) > 0 {
		b.WriteString("\n[darkcyan::b]Detected objects[-:-:-]\n")

		for _, o := range r.DetectedObjects {
			fmt.Fprintf(&b, "  %-12s %3.0f%%\n", tview.Escape(o.Label), o.Confidence*100)
		}
	}

	if r.DetectedText != "" {
		b.WriteString("\n[darkcyan::b]Detected text[-:-:-]\n")
		fmt.Fprintf(&b, "  %s\n", tview.Escape(r.DetectedText))

		if r.TranslatedText != "" {
			fmt.Fprintf(&b, "  [gray]Translation:[-] %s\n", tview.Escape(r.TranslatedText))
		}
	}

	return b.String()
}

// pageBar renders the pagination control with the current page highlighted.
func pageBar(current, total int) string {
	if total <= 1 {
		return ""
	}

	var b strings.Builder

	if current > 1 {
		b.WriteString("[white]‹ Prev[-]  ")
	} else {
		b.WriteString("[gray]‹ Prev[-]  ")
	}

	for _, p := range search.VisiblePages(current, total, search.DefaultVisiblePages) {
		if p == current {
			fmt.Fprintf(&b, "[black:aqua] %d [-:-] ", p)
		} else {
			fmt.Fprintf(&b, " %d  ", p)
		}
	}

	if current < total {
		b.WriteString(" [white]Next ›[-]")
	} else {
		b.WriteString(" [gray]Next ›[-]")
	}

	return b.String()
}

// statusText renders the status bar for a snapshot. frame is the spinner
// shown while loading.
func statusText(s search.Snapshot, shown int, filter, frame string) string {
	switch {
	case s.IsLoading:
		return " [yellow]" + frame + " Searching…[-]"
	case s.Error != "":
		return " [red]" + tview.Escape(s.Error) + "[-]"
	case s.Query == "" && len(s.Results) == 0:
		return " [gray]Type a query and press Enter  ? help  Ctrl+C quit[-]"
	}

	msg := fmt.Sprintf(" %s results for [white::b]%s[-:-:-]  page %d of %s",
		humanize.Comma(int64(len(s.Results))), tview.Escape(s.Query),
		max(s.CurrentPage, 1), humanize.Comma(int64(max(s.TotalPages, 1))))
	if !s.Filters.IsDefault() {
		msg += "  [gray](" + s.Filters.String() + ")[-]"
	}

	if filter != "" {
		msg += fmt.Sprintf("  [yellow]%d shown for /%s[-]", shown, tview.Escape(filter))
	}

	return msg
}
