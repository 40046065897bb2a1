package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Spinner wraps a pterm spinner that degrades to plain lines when stderr
// isn't a TTY and stays silent in JSON mode.
type Spinner struct {
	mu       sync.Mutex
	active   bool
	enabled  bool
	jsonMode bool
	sp       *pterm.SpinnerPrinter
	message  string
	writer   io.Writer
	stopped  bool
}

// NewSpinner creates a new spinner with the provided message. Call Start before using.
func NewSpinner(message string) *Spinner {
	json := IsJSONMode()

	return &Spinner{
		enabled:  !json && term.IsTerminal(int(os.Stderr.Fd())),
		jsonMode: json,
		message:  message,
		writer:   os.Stderr,
	}
}

// Start begins rendering the spinner.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.active {
		return
	}
	s.active = true

	if s.jsonMode {
		return
	}

	if s.enabled {
		sp, err := pterm.DefaultSpinner.
			WithWriter(s.writer).
			WithRemoveWhenDone(true).
			Start(s.message)
		if err == nil {
			s.sp = sp
			return
		}
	}

	_, _ = fmt.Fprintf(s.writer, "%s...\n", s.message)
}

// Update changes the spinner message.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	if !s.active || s.stopped || s.jsonMode {
		return
	}

	if s.sp != nil {
		s.sp.UpdateText(message)
		return
	}

	_, _ = fmt.Fprintf(s.writer, "%s...\n", message)
}

// Stop stops the spinner without printing an additional message.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true

	if s.sp != nil {
		_ = s.sp.Stop()
	}
}

// Success stops the spinner and prints a success message.
func (s *Spinner) Success(message string) {
	s.stopWithMessage("✓", message)
}

// Fail stops the spinner and prints a failure message.
func (s *Spinner) Fail(message string) {
	s.stopWithMessage("✗", message)
}

// Info stops the spinner and prints a neutral message.
func (s *Spinner) Info(message string) {
	s.stopWithMessage("ℹ", message)
}

func (s *Spinner) stopWithMessage(prefix, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stopped {
		s.stopped = true

		if s.sp != nil {
			_ = s.sp.Stop()
		}
	}

	if message == "" || s.jsonMode {
		return
	}

	_, _ = fmt.Fprintf(s.writer, "%s %s\n", prefix, message)
}
