package tui

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/kedare/lens/internal/logger"
	"github.com/kedare/lens/internal/search"
	"github.com/kedare/lens/internal/searchbar"
	"github.com/rivo/tview"
)

// Deps are the collaborators of the interactive search screen.
type Deps struct {
	Orchestrator *search.Orchestrator
	Trending     []string
	Candidates   searchbar.CandidateSource
	PerPage      int
}

// searchView is the interactive search screen: a search bar with its
// suggestion panel above a paginated results table.
type searchView struct {
	ctx     context.Context
	cancel  context.CancelFunc
	app     *tview.Application
	queue   func(func())
	orch    *search.Orchestrator
	session *asyncSession
	ctl     *searchbar.Controller
	keys    *KeyBindings
	styles  *Styles
	state   *viewState
	perPage int

	input       *tview.InputField
	dropdown    *tview.TextView
	filterInput *tview.InputField
	table       *tview.Table
	pager       *tview.TextView
	status      *tview.TextView
	layout      *tview.Flex

	tableUpdater *TableUpdater
	modals       *ModalManager
	errors       *ErrorHandler
	loading      *loadingIndicator
}

// Run shows the search screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, deps Deps) error {
	restore := logger.Silence()
	defer restore()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := tview.NewApplication()
	v := newSearchView(ctx, cancel, app, deps)

	go func() {
		<-ctx.Done()
		app.Stop()
	}()

	err := app.SetRoot(v.layout, true).SetFocus(v.input).Run()

	v.loading.Stop()
	cancel()
	v.session.Wait()

	return err
}

func newSearchView(ctx context.Context, cancel context.CancelFunc, app *tview.Application, deps Deps) *searchView {
	session := newAsyncSession(ctx, deps.Orchestrator)

	v := &searchView{
		ctx:     ctx,
		cancel:  cancel,
		app:     app,
		queue:   func(f func()) { app.QueueUpdateDraw(f) },
		orch:    deps.Orchestrator,
		session: session,
		ctl:     searchbar.New(session, deps.Trending, deps.Candidates),
		keys:    NewKeyBindings(),
		styles:  DefaultStyles(),
		state:   newViewState(),
		perPage: deps.PerPage,
	}

	if v.perPage <= 0 {
		v.perPage = search.DefaultPerPage
	}

	v.build()
	v.registerKeys()

	v.state.snap = v.orch.Snapshot()
	v.syncInput(v.state.snap.Query)
	v.renderResults()

	// Listeners run on whichever goroutine changed the state. The redraw reads
	// the latest snapshot so queued updates cannot apply out of order. Once
	// the screen is shutting down nothing drains the update queue.
	v.orch.OnChange(func(search.Snapshot) {
		if v.closing() {
			return
		}

		go v.queue(func() {
			v.state.snap = v.orch.Snapshot()
			v.renderResults()
		})
	})

	return v
}

// closing reports whether the screen is shutting down.
func (v *searchView) closing() bool {
	return v.ctx.Err() != nil
}

// quit cancels the screen context; Run stops the application on it.
func (v *searchView) quit() {
	v.cancel()
}

func (v *searchView) build() {
	v.input = tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(0).
		SetFieldBackgroundColor(tcell.ColorBlack).
		SetLabelColor(v.styles.TableHeaderFg).
		SetPlaceholder("Search images, press Enter")
	v.input.SetBorder(true).SetBorderColor(v.styles.BorderColor)

	v.dropdown = tview.NewTextView().SetDynamicColors(true)
	v.dropdown.SetBorder(true).SetBorderColor(v.styles.MutedFg).SetTitleColor(v.styles.TitleFg)

	v.filterInput = tview.NewInputField().
		SetLabel(v.state.filterLabel()).
		SetFieldWidth(0).
		SetFieldBackgroundColor(tcell.ColorBlack).
		SetLabelColor(v.styles.TableHeaderFg)

	v.table = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSelectedStyle(tcell.StyleDefault.Background(v.styles.TableSelectedBg).Foreground(v.styles.TableSelectedFg))
	v.table.SetBorder(true).SetBorderColor(v.styles.BorderColor).SetTitle(" Results (0) ")

	for col, header := range resultHeaders {
		v.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(v.styles.TableHeaderFg).
			SetSelectable(false).
			SetExpansion(1))
	}

	v.tableUpdater = NewTableUpdater(v.table)
	v.tableUpdater.Styles = v.styles

	v.pager = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	v.status = tview.NewTextView().SetDynamicColors(true)

	v.layout = tview.NewFlex().SetDirection(tview.FlexRow)
	v.modals = NewModalManager(v.app, v.layout, v.keys, v.renderStatus)
	v.errors = NewErrorHandler(v.status, v.app, v.renderStatus)
	v.loading = newLoadingIndicator(func(f func()) { v.queue(f) }, v.renderStatus)

	v.input.SetChangedFunc(func(text string) {
		if v.state.syncing {
			return
		}

		v.ctl.SetText(text)
		v.renderDropdown()
	})
	v.input.SetFocusFunc(func() {
		v.keys.SetMode(ModeInput)
		v.ctl.Focus()
		v.renderDropdown()
	})
	v.input.SetBlurFunc(func() {
		v.ctl.Blur()
		v.renderDropdown()
	})
	v.input.SetInputCapture(v.capture)

	v.table.SetFocusFunc(func() {
		v.keys.SetMode(ModeResults)
	})
	v.table.SetInputCapture(v.capture)
	v.table.SetSelectedFunc(func(int, int) {
		v.showSelectedDetail()
	})

	v.filterInput.SetFocusFunc(func() {
		v.keys.SetMode(ModeFilter)
	})
	v.filterInput.SetChangedFunc(func(text string) {
		v.state.filter = text
		v.renderResults()
	})
	v.filterInput.SetInputCapture(v.capture)

	v.rebuildLayout(0)
}

// capture routes a key to the bindings of the focused area.
func (v *searchView) capture(event *tcell.EventKey) *tcell.EventKey {
	if v.keys.Handle(event) {
		return nil
	}

	return event
}

func (v *searchView) registerKeys() {
	input := []ViewMode{ModeInput}
	results := []ViewMode{ModeResults}
	filter := []ViewMode{ModeFilter}

	v.keys.RegisterSpecial(tcell.KeyDown, "Next suggestion", input, func() bool {
		if v.ctl.Panel() == searchbar.PanelClosed {
			return v.focusResults()
		}

		v.ctl.Down()
		v.renderDropdown()

		return true
	})
	v.keys.RegisterSpecial(tcell.KeyUp, "Previous suggestion", input, func() bool {
		v.ctl.Up()
		v.renderDropdown()

		return true
	})
	v.keys.RegisterSpecial(tcell.KeyEnter, "Search typed text or selected suggestion", input, func() bool {
		if q := v.ctl.Enter(v.ctx); q != "" {
			v.syncInput(q)
		}

		v.renderDropdown()

		return true
	})
	v.keys.RegisterSpecial(tcell.KeyEscape, "Close suggestions", input, func() bool {
		v.ctl.Escape()
		v.renderDropdown()

		return true
	})
	v.keys.RegisterSpecial(tcell.KeyTab, "Go to results", input, v.focusResults)
	v.keys.RegisterSpecial(tcell.KeyDelete, "Remove highlighted history entry", input, func() bool {
		if v.ctl.Panel() != searchbar.PanelHistory {
			return false
		}

		v.ctl.RemoveHistoryItem(v.ctl.Selected())
		v.renderDropdown()

		return true
	})
	v.keys.RegisterSpecial(tcell.KeyCtrlL, "Clear search history", input, func() bool {
		if v.ctl.Panel() != searchbar.PanelHistory {
			return false
		}

		v.ctl.ClearHistory()
		v.renderDropdown()

		return true
	})

	v.keys.RegisterKey('/', "Filter displayed results", results, func() bool {
		v.openFilter()
		return true
	})
	v.keys.RegisterKey('d', "Show result details", results, func() bool {
		v.showSelectedDetail()
		return true
	})
	v.keys.RegisterKey('f', "Search filters (size, color, type, time)", results, func() bool {
		showFilterForm(v.modals, v.state.snap.Filters, v.applyFilters)
		return true
	})
	v.keys.RegisterKey('i', "Search by image file", results, func() bool {
		showImagePrompt(v.modals, v.searchByImage)
		return true
	})
	v.keys.RegisterKey('[', "Previous page", results, func() bool {
		return v.goToPage(v.state.snap.CurrentPage - 1)
	})
	v.keys.RegisterKey(']', "Next page", results, func() bool {
		return v.goToPage(v.state.snap.CurrentPage + 1)
	})
	v.keys.RegisterKey('s', "Back to the search box", results, func() bool {
		v.app.SetFocus(v.input)
		return true
	})
	v.keys.RegisterSpecial(tcell.KeyEscape, "Clear filter or go back to the search box", results, func() bool {
		if v.state.filter != "" {
			v.clearFilter()
			return true
		}

		v.app.SetFocus(v.input)

		return true
	})
	v.keys.RegisterKey('?', "Show help", results, func() bool {
		showSearchHelp(v.modals, v.keys)
		return true
	})
	v.keys.RegisterKey('q', "Quit", results, func() bool {
		v.quit()
		return true
	})

	v.keys.RegisterSpecial(tcell.KeyTab, "Toggle fuzzy matching", filter, func() bool {
		v.state.fuzzy = !v.state.fuzzy
		v.filterInput.SetLabel(v.state.filterLabel())
		v.renderResults()

		return true
	})
	v.keys.RegisterSpecial(tcell.KeyEnter, "Apply filter", filter, func() bool {
		v.closeFilter()
		return true
	})
	v.keys.RegisterSpecial(tcell.KeyEscape, "Clear filter", filter, func() bool {
		v.clearFilter()
		return true
	})
}

func (v *searchView) focusResults() bool {
	if v.table.GetRowCount() <= 1 {
		return false
	}

	v.app.SetFocus(v.table)

	return true
}

func (v *searchView) openFilter() {
	v.state.filterMode = true
	v.filterInput.SetText(v.state.filter)
	v.rebuildLayout(v.dropdownHeight())
	v.app.SetFocus(v.filterInput)
}

func (v *searchView) closeFilter() {
	v.state.filterMode = false
	v.rebuildLayout(v.dropdownHeight())
	v.app.SetFocus(v.table)
	v.renderResults()
}

func (v *searchView) clearFilter() {
	v.state.filter = ""
	v.filterInput.SetText("")
	v.closeFilter()
}

func (v *searchView) goToPage(page int) bool {
	if !v.state.canPage(page) {
		return false
	}

	v.session.GoToPage(page)

	return true
}

func (v *searchView) applyFilters(f search.Filters) {
	v.orch.SetFilters(f)

	if q := v.state.snap.Query; q != "" {
		v.session.Submit(v.ctx, q)
	}
}

func (v *searchView) searchByImage(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		v.errors.ShowError("Cannot read %s: %v", path, err)
		return
	}

	file := search.ImageFile{Name: filepath.Base(path), Data: data}

	v.session.Go(func(ctx context.Context) {
		// Failures land in the snapshot error and the status bar.
		_, _ = v.orch.SearchByImage(ctx, file)
	})
}

func (v *searchView) showSelectedDetail() {
	if r, ok := v.tableUpdater.Selected(); ok {
		showResultDetail(v.modals, r)
	}
}

// syncInput replaces the input text without reopening the suggestion panel.
func (v *searchView) syncInput(text string) {
	if v.input.GetText() == text {
		return
	}

	v.state.syncing = true
	v.input.SetText(text)
	v.state.syncing = false
}

// panelHeight is the height of the bordered suggestion panel for a number
// of rows.
func panelHeight(lines int) int {
	if lines == 0 {
		return 0
	}

	return lines + 2
}

func (v *searchView) dropdownHeight() int {
	_, lines := dropdownText(v.ctl.View())
	return panelHeight(lines)
}

func (v *searchView) renderDropdown() {
	view := v.ctl.View()

	text, lines := dropdownText(view)
	v.dropdown.SetText(text)
	v.dropdown.SetTitle(panelTitle(view.Panel))

	v.rebuildLayout(panelHeight(lines))
}

// rebuildLayout stacks the widgets, showing the suggestion panel with the
// given height and the filter bar when filtering.
func (v *searchView) rebuildLayout(dropdownHeight int) {
	v.layout.Clear()
	v.layout.AddItem(v.input, 3, 0, true)

	if dropdownHeight > 0 {
		v.layout.AddItem(v.dropdown, dropdownHeight, 0, false)
	}

	if v.state.filterMode {
		v.layout.AddItem(v.filterInput, 1, 0, false)
	}

	v.layout.AddItem(v.table, 0, 1, false)
	v.layout.AddItem(v.pager, 1, 0, false)
	v.layout.AddItem(v.status, 1, 0, false)
}

func (v *searchView) renderResults() {
	snap := v.state.snap

	if snap.IsLoading {
		v.loading.Start()
	} else {
		v.loading.Stop()
	}

	v.tableUpdater.Update(snap.Results, v.state.filterExpr(), v.state.pageOffset(v.perPage))
	v.pager.SetText(pageBar(snap.CurrentPage, snap.TotalPages))
	v.renderStatus()
}

func (v *searchView) renderStatus() {
	shown := max(v.table.GetRowCount()-1, 0)
	v.status.SetText(statusText(v.state.snap, shown, v.state.filter, v.loading.Frame()))
}
