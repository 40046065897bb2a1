//go:build !windows

package output

import (
	"os"

	"golang.org/x/sys/unix"
)

// systemTerminalWidth asks the kernel for the column count of stdout, then stderr.
func systemTerminalWidth() (int, bool) {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
		if err == nil && ws != nil && ws.Col > 0 {
			return int(ws.Col), true
		}
	}

	return 0, false
}
