package tui

import (
	"github.com/kedare/lens/internal/search"
)

// viewState is the UI-only state of the search screen. It is read and
// written on the tview event goroutine only.
type viewState struct {
	snap search.Snapshot

	filter     string
	fuzzy      bool
	filterMode bool

	// syncing is set while the input text is rewritten programmatically so
	// the change handler does not feed it back to the controller.
	syncing bool
}

func newViewState() *viewState {
	return &viewState{}
}

// filterExpr returns the active result filter.
func (s *viewState) filterExpr() filterExpr {
	return parseFilter(s.filter, s.fuzzy)
}

// pageOffset is the index of the first result of the current page.
func (s *viewState) pageOffset(perPage int) int {
	if s.snap.CurrentPage <= 1 || perPage <= 0 {
		return 0
	}

	return (s.snap.CurrentPage - 1) * perPage
}

// canPage reports whether page is a different, reachable page.
func (s *viewState) canPage(page int) bool {
	return !s.snap.IsLoading && page >= 1 && page <= s.snap.TotalPages && page != s.snap.CurrentPage
}

func (s *viewState) filterLabel() string {
	if s.fuzzy {
		return " Filter (fuzzy): "
	}

	return " Filter: "
}
