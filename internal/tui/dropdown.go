package tui

import (
	"fmt"
	"strings"

	"github.com/kedare/lens/internal/searchbar"
	"github.com/rivo/tview"
)

func panelTitle(p searchbar.Panel) string {
	switch p {
	case searchbar.PanelHistory:
		return " Recent searches  [gray]Del remove  Ctrl+L clear[-] "
	case searchbar.PanelTrending:
		return " Trending "
	case searchbar.PanelSuggestions:
		return " Suggestions "
	default:
		return ""
	}
}

func itemLabel(it searchbar.Item) string {
	text := tview.Escape(it.Text)

	switch it.Kind {
	case searchbar.KindHistory:
		if it.Image {
			return "[gray]▣[-] " + text + " [gray](image)[-]"
		}

		return "[gray]↺[-] " + text
	case searchbar.KindTrending:
		return "[red]↗[-] " + text
	default:
		return "[gray]⌕[-] " + text
	}
}

// dropdownText renders the open panel. It returns the body and the number of
// lines, zero when the panel is closed.
func dropdownText(v searchbar.View) (string, int) {
	if v.Panel == searchbar.PanelClosed || len(v.Items) == 0 {
		return "", 0
	}

	lines := make([]string, len(v.Items))
	for i, it := range v.Items {
		label := itemLabel(it)
		if i == v.Selected {
			label = fmt.Sprintf("[black:aqua]%s[-:-]", strings.ReplaceAll(label, "[-]", "[black]"))
		}

		lines[i] = " " + label
	}

	return strings.Join(lines, "\n"), len(lines)
}
