package output

import (
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"
)

const defaultWidth = 100

func detectTerminalWidth() (int, bool) {
	if raw, ok := os.LookupEnv("COLUMNS"); ok {
		if width, err := strconv.Atoi(raw); err == nil && width > 0 {
			return width, true
		}
	}

	return systemTerminalWidth()
}

// titleWidth is the room left for titles once the fixed table columns are drawn.
func titleWidth(reserved int) int {
	width, ok := detectTerminalWidth()
	if !ok {
		width = defaultWidth
	}

	return max(width-reserved, 20)
}

// Truncate shortens s to at most width display cells, ending with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	if runewidth.StringWidth(s) <= width {
		return s
	}

	return runewidth.Truncate(s, width, "…")
}
