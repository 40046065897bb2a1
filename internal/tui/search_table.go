package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/kedare/lens/internal/search"
	"github.com/rivo/tview"
)

var resultHeaders = []string{"#", "Title", "Source", "Dimensions", "Size", "Type"}

// TableUpdater fills the results table and keeps the selection stable across
// refreshes.
type TableUpdater struct {
	Table  *tview.Table
	Styles *Styles

	rows []search.ImageResult // rows[i] is displayed at table row i+1
}

// NewTableUpdater creates a new table updater for the given table.
func NewTableUpdater(table *tview.Table) *TableUpdater {
	return &TableUpdater{
		Table:  table,
		Styles: DefaultStyles(),
	}
}

// Update renders the results that pass the filter. offset numbers the rows
// from the first result of the current page.
func (tu *TableUpdater) Update(results []search.ImageResult, f filterExpr, offset int) int {
	selectedID := tu.captureSelection()

	tu.clearRows()

	shown, indexes := filterResults(results, f)
	highlight := firstTerm(f)
	selectedRow := -1

	for i, r := range shown {
		row := i + 1

		tu.Table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", offset+indexes[i]+1)).SetTextColor(tu.Styles.MutedFg))
		tu.Table.SetCell(row, 1, tview.NewTableCell(highlightMatch(tview.Escape(r.Title), highlight)).SetExpansion(3))
		tu.Table.SetCell(row, 2, tview.NewTableCell(highlightMatch(tview.Escape(r.Source), highlight)).SetExpansion(1))
		tu.Table.SetCell(row, 3, tview.NewTableCell(dimensions(r)).SetExpansion(1))
		tu.Table.SetCell(row, 4, tview.NewTableCell(r.Size).SetExpansion(1))
		tu.Table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("[%s]%s[-]", typeColor(r.Type), r.Type)).SetExpansion(1))

		if selectedID != "" && r.ID == selectedID {
			selectedRow = row
		}
	}

	tu.rows = shown

	if selectedRow > 0 {
		tu.Table.Select(selectedRow, 0)
	}

	tu.updateTitle(len(results), len(shown), !f.empty(), results)
	tu.ensureSelection()

	return len(shown)
}

// Selected returns the result under the cursor.
func (tu *TableUpdater) Selected() (search.ImageResult, bool) {
	row, _ := tu.Table.GetSelection()
	if row <= 0 || row > len(tu.rows) {
		return search.ImageResult{}, false
	}

	return tu.rows[row-1], true
}

func (tu *TableUpdater) captureSelection() string {
	if r, ok := tu.Selected(); ok {
		return r.ID
	}

	return ""
}

// clearRows removes all data rows from the table, keeping only the header.
func (tu *TableUpdater) clearRows() {
	for row := tu.Table.GetRowCount() - 1; row > 0; row-- {
		tu.Table.RemoveRow(row)
	}
}

func (tu *TableUpdater) updateTitle(totalCount, matchCount int, filtered bool, results []search.ImageResult) {
	typeSummary := buildTypeSummary(results)

	if filtered {
		tu.Table.SetTitle(fmt.Sprintf(" Results (%d/%d matched)%s ", matchCount, totalCount, typeSummary))
	} else {
		tu.Table.SetTitle(fmt.Sprintf(" Results (%d)%s ", totalCount, typeSummary))
	}
}

// buildTypeSummary shows the three most common image formats by count.
func buildTypeSummary(results []search.ImageResult) string {
	typeCounts := make(map[string]int)
	for _, r := range results {
		if r.Type != "" {
			typeCounts[r.Type]++
		}
	}

	if len(typeCounts) == 0 {
		return ""
	}

	type typeCount struct {
		name  string
		count int
	}

	sorted := make([]typeCount, 0, len(typeCounts))
	for name, count := range typeCounts {
		sorted = append(sorted, typeCount{name: name, count: count})
	}

	slices.SortFunc(sorted, func(a, b typeCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}

		return cmp.Compare(a.name, b.name)
	})

	var parts []string

	for i, tc := range sorted {
		if i >= 3 {
			parts = append(parts, fmt.Sprintf("%d other", len(sorted)-3))
			break
		}

		parts = append(parts, fmt.Sprintf("%d %s", tc.count, strings.TrimPrefix(tc.name, "image/")))
	}

	return " [" + strings.Join(parts, ", ") + "]"
}

// ensureSelection keeps a data row selected whenever one exists.
func (tu *TableUpdater) ensureSelection() {
	count := tu.Table.GetRowCount()
	if count <= 1 {
		return
	}

	row, _ := tu.Table.GetSelection()

	switch {
	case row > 0 && row < count:
		return
	case row >= count:
		tu.Table.Select(count-1, 0)
	default:
		tu.Table.Select(1, 0)
	}
}
