package tui

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLoadingIndicatorAdvance(t *testing.T) {
	l := newLoadingIndicator(func(f func()) { f() }, func() {})

	if got := l.Frame(); got != spinnerFrames[0] {
		t.Fatalf("first frame = %q", got)
	}

	for range spinnerFrames {
		l.advance()
	}

	if got := l.Frame(); got != spinnerFrames[0] {
		t.Errorf("frames should wrap around, got %q", got)
	}
}

func TestLoadingIndicatorStartStop(t *testing.T) {
	var ticks atomic.Int32

	l := newLoadingIndicator(func(f func()) { f() }, func() { ticks.Add(1) })

	l.Stop() // stopping an idle indicator is a no-op
	l.Start()
	l.Start()

	if !l.Running() {
		t.Fatal("indicator should be running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if ticks.Load() == 0 {
		t.Fatal("expected at least one tick")
	}

	l.Stop()
	l.Stop()

	if l.Running() {
		t.Error("indicator should be stopped")
	}
}
