package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kedare/lens/internal/search"
	"github.com/rivo/tview"
)

// ModalManager swaps fullscreen dialogs in and out of the application root.
type ModalManager struct {
	App      *tview.Application
	MainRoot tview.Primitive
	Keys     *KeyBindings
	OnClose  func()

	open     bool
	prevMode ViewMode
	prevFoc  tview.Primitive
}

// NewModalManager creates a new modal manager.
func NewModalManager(app *tview.Application, mainRoot tview.Primitive, keys *KeyBindings, onClose func()) *ModalManager {
	return &ModalManager{
		App:      app,
		MainRoot: mainRoot,
		Keys:     keys,
		OnClose:  onClose,
	}
}

// Open reports whether a dialog is showing.
func (m *ModalManager) Open() bool {
	return m.open
}

// Show replaces the root with body above a one-line hint bar.
func (m *ModalManager) Show(body, focus tview.Primitive, hints string) {
	if !m.open {
		m.prevMode = m.Keys.Mode()
		m.prevFoc = m.App.GetFocus()
	}

	status := tview.NewTextView().
		SetDynamicColors(true).
		SetText(hints)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(status, 1, 0, false)

	m.open = true
	m.Keys.SetMode(ModeModal)
	m.App.SetRoot(layout, true).SetFocus(focus)
}

// Close restores the main layout and the previously focused primitive.
func (m *ModalManager) Close() {
	if !m.open {
		return
	}

	m.open = false
	m.Keys.SetMode(m.prevMode)
	m.App.SetRoot(m.MainRoot, true)

	if m.prevFoc != nil {
		m.App.SetFocus(m.prevFoc)
	}

	if m.OnClose != nil {
		m.OnClose()
	}
}

// closeOn closes the modal when Esc or one of runes is pressed.
func (m *ModalManager) closeOn(runes ...rune) func(event *tcell.EventKey) *tcell.EventKey {
	return func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && slices.Contains(runes, event.Rune())) {
			m.Close()
			return nil
		}

		return event
	}
}

// showResultDetail displays every field of a result.
func showResultDetail(m *ModalManager, r search.ImageResult) {
	detailView := tview.NewTextView().
		SetDynamicColors(true).
		SetText(detailsText(r)).
		SetScrollable(true).
		SetWordWrap(true)
	detailView.SetBorder(true).SetTitle(fmt.Sprintf(" %s ", tview.Escape(r.Title)))
	detailView.SetInputCapture(m.closeOn('d'))

	m.Show(detailView, detailView, " [yellow]Esc[-] back  [yellow]↑/↓[-] scroll")
}

// helpText lists the bindings of every mode.
func helpText(keys *KeyBindings) string {
	sections := []struct {
		title string
		mode  ViewMode
	}{
		{"Search box", ModeInput},
		{"Results", ModeResults},
		{"Result filter", ModeFilter},
	}

	var b strings.Builder

	b.WriteString("[yellow::b]lens - Keyboard Shortcuts[-:-:-]\n")

	for _, s := range sections {
		fmt.Fprintf(&b, "\n[yellow]%s[-]\n", s.title)

		for _, e := range keys.HelpEntries(s.mode) {
			fmt.Fprintf(&b, "  [white]%-12s[-] %s\n", e.Key, e.Description)
		}
	}

	b.WriteString(`
[yellow]Result filter syntax[-]
  Spaces combine terms (AND), | separates alternatives (OR), - excludes
    Example: "lake|beach -city"
  Tab toggles fuzzy mode (characters in order, e.g. "mtn" matches "mountain")

[darkgray]Press Esc or ? to close this help[-]`)

	return b.String()
}

// showSearchHelp displays help for the search view
func showSearchHelp(m *ModalManager, keys *KeyBindings) {
	helpView := tview.NewTextView().
		SetDynamicColors(true).
		SetText(helpText(keys)).
		SetScrollable(true)
	helpView.SetBorder(true).
		SetTitle(" Search Help ").
		SetTitleAlign(tview.AlignCenter)
	helpView.SetInputCapture(m.closeOn('?'))

	m.Show(helpView, helpView, " [yellow]Esc[-] back  [yellow]?[-] close help")
}

// showFilterForm lets the user pick the four search filters.
func showFilterForm(m *ModalManager, current search.Filters, apply func(search.Filters)) {
	current = current.Normalize()
	picked := current

	form := tview.NewForm()
	form.AddDropDown("Size", search.SizeOptions, slices.Index(search.SizeOptions, current.Size), func(option string, _ int) {
		picked.Size = option
	})
	form.AddDropDown("Color", search.ColorOptions, slices.Index(search.ColorOptions, current.Color), func(option string, _ int) {
		picked.Color = option
	})
	form.AddDropDown("Type", search.TypeOptions, slices.Index(search.TypeOptions, current.Type), func(option string, _ int) {
		picked.Type = option
	})
	form.AddDropDown("Time", search.TimeOptions, slices.Index(search.TimeOptions, current.Time), func(option string, _ int) {
		picked.Time = option
	})
	form.AddButton("Apply", func() {
		m.Close()
		apply(picked)
	})
	form.AddButton("Reset", func() {
		m.Close()
		apply(search.DefaultFilters())
	})
	form.AddButton("Cancel", m.Close)
	form.SetCancelFunc(m.Close)
	form.SetBorder(true).SetTitle(" Filters ")

	m.Show(form, form, " [yellow]Tab[-] next field  [yellow]Enter[-] select  [yellow]Esc[-] cancel")
}

// showImagePrompt asks for the path of an image to search with.
func showImagePrompt(m *ModalManager, submit func(path string)) {
	form := tview.NewForm()
	form.AddInputField("Image path", "", 60, nil, nil)
	form.AddButton("Search", func() {
		path := strings.TrimSpace(form.GetFormItemByLabel("Image path").(*tview.InputField).GetText())
		m.Close()

		if path != "" {
			submit(path)
		}
	})
	form.AddButton("Cancel", m.Close)
	form.SetCancelFunc(m.Close)
	form.SetBorder(true).SetTitle(" Search by image ")

	m.Show(form, form, " [yellow]Enter[-] search  [yellow]Esc[-] cancel  [gray]jpeg, png or gif[-]")
}
