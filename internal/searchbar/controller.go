// Package searchbar implements the keyboard and focus behaviour of the
// search input: which dropdown panel is open, the selection cursor, and
// submission.
package searchbar

import (
	"context"
	"strings"
	"sync"

	"github.com/kedare/lens/internal/search"
	"github.com/kedare/lens/internal/suggest"
)

// Panel is the dropdown currently shown under the input. Only one panel can
// be open at a time.
type Panel int

const (
	PanelClosed Panel = iota
	PanelTrending
	PanelSuggestions
	PanelHistory
)

func (p Panel) String() string {
	switch p {
	case PanelTrending:
		return "trending"
	case PanelSuggestions:
		return "suggestions"
	case PanelHistory:
		return "history"
	default:
		return "closed"
	}
}

// ItemKind tells what a dropdown row represents.
type ItemKind string

const (
	KindTrending   ItemKind = "trending"
	KindSuggestion ItemKind = "suggestion"
	KindHistory    ItemKind = "history"
)

// Item is a row of the open panel. Timestamp is set for history rows.
type Item struct {
	Text      string
	Kind      ItemKind
	Timestamp int64
	Image     bool
}

// Session is the part of the search orchestrator the search bar drives.
type Session interface {
	Submit(ctx context.Context, query string)
	History() []search.HistoryEntry
	RemoveFromHistory(ts int64)
	ClearHistory()
}

// CandidateSource returns suggestion candidates for the typed text.
type CandidateSource func(text string) []suggest.Suggestion

// View is a consistent copy of the controller state for rendering.
type View struct {
	Text     string
	Focused  bool
	Panel    Panel
	Items    []Item
	Selected int
}

// Controller is the search bar state machine. It is safe for concurrent use.
type Controller struct {
	session    Session
	trending   []string
	candidates CandidateSource

	mu       sync.Mutex
	text     string
	focused  bool
	panel    Panel
	items    []Item
	selected int
}

// New creates a closed, unfocused controller. A nil candidates source
// suggests from history and trending only.
func New(session Session, trending []string, candidates CandidateSource) *Controller {
	c := &Controller{
		session:  session,
		trending: append([]string(nil), trending...),
		selected: -1,
	}

	if candidates == nil {
		candidates = func(string) []suggest.Suggestion {
			return suggest.Catalog(session.History(), nil, c.trending)
		}
	}
	c.candidates = candidates

	return c
}

// View returns the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		Text:     c.text,
		Focused:  c.focused,
		Panel:    c.panel,
		Items:    append([]Item(nil), c.items...),
		Selected: c.selected,
	}
}

func (c *Controller) Panel() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.panel
}

func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Item(nil), c.items...)
}

// Selected returns the cursor position, -1 when nothing is selected.
func (c *Controller) Selected() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selected
}

func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.text
}

// Focus opens the panel matching the typed text: history, else trending
// when the text is empty, suggestions otherwise.
func (c *Controller) Focus() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.focused = true
	c.selected = -1
	c.refreshLocked()
}

// SetText records typed text and reopens the matching panel.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = text
	c.focused = true
	c.selected = -1
	c.refreshLocked()
}

// Escape closes the panel and keeps focus.
func (c *Controller) Escape() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeLocked()
}

// Blur closes the panel and drops focus, as a click outside the bar does.
func (c *Controller) Blur() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.focused = false
	c.closeLocked()
}

// Down moves the cursor to the next row, stopping at the last one.
func (c *Controller) Down() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.panel == PanelClosed {
		return
	}

	c.selected = min(c.selected+1, len(c.items)-1)
}

// Up moves the cursor to the previous row, stopping at -1 (no selection).
func (c *Controller) Up() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.panel == PanelClosed {
		return
	}

	c.selected = max(c.selected-1, -1)
}

// Enter submits the selected row, or the typed text when nothing is
// selected. It returns the submitted query, empty when nothing was submitted.
func (c *Controller) Enter(ctx context.Context) string {
	c.mu.Lock()

	var query string
	if c.panel != PanelClosed && c.selected >= 0 && c.selected < len(c.items) {
		query = c.items[c.selected].Text
	} else {
		query = strings.TrimSpace(c.text)
	}

	c.mu.Unlock()

	if query == "" {
		return ""
	}

	c.Select(ctx, query)

	return query
}

// Select commits text as the query, closes the panel and searches. Focus
// stays on the input.
func (c *Controller) Select(ctx context.Context, text string) {
	c.mu.Lock()
	c.text = text
	c.focused = true
	c.closeLocked()
	c.mu.Unlock()

	c.session.Submit(ctx, text)
}

// RemoveHistoryItem deletes the i-th row of the history panel.
func (c *Controller) RemoveHistoryItem(i int) {
	c.mu.Lock()
	if c.panel != PanelHistory || i < 0 || i >= len(c.items) {
		c.mu.Unlock()
		return
	}
	ts := c.items[i].Timestamp
	c.mu.Unlock()

	c.session.RemoveFromHistory(ts)
	c.reopen()
}

// ClearHistory removes all history and refreshes the open panel.
func (c *Controller) ClearHistory() {
	c.session.ClearHistory()
	c.reopen()
}

// reopen recomputes the panel after history changed, keeping the cursor in range.
func (c *Controller) reopen() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.panel == PanelClosed {
		return
	}

	selected := c.selected
	c.refreshLocked()
	c.selected = min(selected, len(c.items)-1)
}

func (c *Controller) closeLocked() {
	c.panel = PanelClosed
	c.items = nil
	c.selected = -1
}

func (c *Controller) refreshLocked() {
	if !c.focused {
		c.closeLocked()
		return
	}

	text := strings.TrimSpace(c.text)
	if text != "" {
		matches := suggest.Get(text, c.candidates(text))
		if len(matches) == 0 {
			c.closeLocked()
			return
		}

		items := make([]Item, len(matches))
		for i, m := range matches {
			kind := KindSuggestion
			if m.Type == suggest.TypeHistory {
				kind = KindHistory
			}
			items[i] = Item{Text: m.Text, Kind: kind}
		}

		c.panel, c.items = PanelSuggestions, items

		return
	}

	if history := c.session.History(); len(history) > 0 {
		items := make([]Item, len(history))
		for i, h := range history {
			items[i] = Item{Text: h.Query, Kind: KindHistory, Timestamp: h.Timestamp, Image: h.IsImageSearch}
		}

		c.panel, c.items = PanelHistory, items

		return
	}

	if len(c.trending) > 0 {
		items := make([]Item, len(c.trending))
		for i, t := range c.trending {
			items[i] = Item{Text: t, Kind: KindTrending}
		}

		c.panel, c.items = PanelTrending, items

		return
	}

	c.closeLocked()
}
