package tui

import (
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// loadingIndicator animates a spinner frame in the status bar while a search
// is in flight. queue runs a redraw on the UI goroutine.
type loadingIndicator struct {
	queue  func(func())
	onTick func()

	mu   sync.Mutex
	idx  int
	done chan struct{}
}

func newLoadingIndicator(queue func(func()), onTick func()) *loadingIndicator {
	return &loadingIndicator{queue: queue, onTick: onTick}
}

// Frame returns the current spinner frame.
func (l *loadingIndicator) Frame() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return spinnerFrames[l.idx]
}

// Running reports whether the animation is active.
func (l *loadingIndicator) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.done != nil
}

// Start begins the animation. Calling it while running does nothing.
func (l *loadingIndicator) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done != nil {
		return
	}

	done := make(chan struct{})
	l.done = done

	go l.loop(done)
}

// Stop ends the animation. Calling it while stopped does nothing.
func (l *loadingIndicator) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done == nil {
		return
	}

	close(l.done)
	l.done = nil
}

func (l *loadingIndicator) advance() {
	l.mu.Lock()
	l.idx = (l.idx + 1) % len(spinnerFrames)
	l.mu.Unlock()
}

func (l *loadingIndicator) loop(done chan struct{}) {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.advance()
			l.queue(l.onTick)
		case <-done:
			return
		}
	}
}
