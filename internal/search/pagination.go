package search

// DefaultVisiblePages is the width of the pagination window.
const DefaultVisiblePages = 5

// TotalPages returns ceil(total/perPage), or 0 when perPage is not positive.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}

	return (total + perPage - 1) / perPage
}

// VisiblePages returns the page numbers to offer around current: a window of
// at most maxVisible pages, centred on current where possible and clamped to
// [1, total].
func VisiblePages(current, total, maxVisible int) []int {
	if total <= 0 {
		return nil
	}

	if maxVisible <= 0 {
		maxVisible = DefaultVisiblePages
	}

	start := min(current-maxVisible/2, total-maxVisible+1)
	start = max(start, 1)
	end := min(start+maxVisible-1, total)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return pages
}
