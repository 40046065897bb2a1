package logger

import (
	"io"
	"os"

	"github.com/pterm/pterm"
)

// InitPterm sends all diagnostic output to stderr so stdout only carries
// result tables and JSON.
func InitPterm() {
	setWriters(os.Stderr)
}

// Silence discards diagnostic output while a full-screen view owns the
// terminal. The returned func restores the previous writers.
func Silence() (restore func()) {
	prev := []io.Writer{
		pterm.Info.Writer,
		pterm.Success.Writer,
		pterm.Warning.Writer,
		pterm.Error.Writer,
		pterm.Debug.Writer,
	}

	setWriters(io.Discard)

	return func() {
		pterm.Info.Writer = prev[0]
		pterm.Success.Writer = prev[1]
		pterm.Warning.Writer = prev[2]
		pterm.Error.Writer = prev[3]
		pterm.Debug.Writer = prev[4]
	}
}

func setWriters(w io.Writer) {
	pterm.Info.Writer = w
	pterm.Success.Writer = w
	pterm.Warning.Writer = w
	pterm.Error.Writer = w
	pterm.Debug.Writer = w
}
