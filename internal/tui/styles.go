package tui

import (
	"github.com/gdamore/tcell/v2"
)

// Styles holds the color scheme of the search screen.
type Styles struct {
	BorderColor tcell.Color
	TitleFg     tcell.Color
	MutedFg     tcell.Color

	TableHeaderFg   tcell.Color
	TableSelectedBg tcell.Color
	TableSelectedFg tcell.Color
}

// DefaultStyles returns the dark theme.
func DefaultStyles() *Styles {
	return &Styles{
		BorderColor: tcell.ColorDarkCyan,
		TitleFg:     tcell.ColorAqua,
		MutedFg:     tcell.ColorGray,

		TableHeaderFg:   tcell.ColorYellow,
		TableSelectedBg: tcell.ColorDarkCyan,
		TableSelectedFg: tcell.ColorWhite,
	}
}
