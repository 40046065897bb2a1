package tui

import (
	"context"
	"sync"

	"github.com/kedare/lens/internal/search"
)

// asyncSession adapts the orchestrator for the search bar. Backend calls run
// off the UI goroutine; the view redraws from OnChange notifications.
type asyncSession struct {
	ctx  context.Context
	orch *search.Orchestrator
	wg   sync.WaitGroup
}

func newAsyncSession(ctx context.Context, orch *search.Orchestrator) *asyncSession {
	return &asyncSession{ctx: ctx, orch: orch}
}

// Go runs fn in the background with the session context.
func (s *asyncSession) Go(fn func(ctx context.Context)) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

func (s *asyncSession) Submit(_ context.Context, query string) {
	s.Go(func(ctx context.Context) {
		s.orch.Submit(ctx, query)
	})
}

// GoToPage loads another page of the current query.
func (s *asyncSession) GoToPage(page int) {
	s.Go(func(ctx context.Context) {
		s.orch.SetCurrentPage(page)
		s.orch.Search(ctx)
	})
}

func (s *asyncSession) History() []search.HistoryEntry {
	return s.orch.History()
}

func (s *asyncSession) RemoveFromHistory(ts int64) {
	s.orch.RemoveFromHistory(ts)
}

func (s *asyncSession) ClearHistory() {
	s.orch.ClearHistory()
}

// Wait blocks until every background call has returned.
func (s *asyncSession) Wait() {
	s.wg.Wait()
}
