// Package output renders lens results for the terminal.
package output

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

// Formats accepted by the -o flag.
const (
	FormatTable = "table"
	FormatText  = "text"
	FormatJSON  = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatTable, FormatText, FormatJSON}

var jsonMode atomic.Bool

// DefaultFormat returns the preferred output format unless LENS_OUTPUT is set to a supported value.
func DefaultFormat(preferred string, allowed []string) string {
	env := strings.TrimSpace(os.Getenv("LENS_OUTPUT"))
	if env == "" {
		return preferred
	}

	env = strings.ToLower(env)
	for _, option := range allowed {
		if env == option {
			return env
		}
	}

	return preferred
}

// SetFormat records the active format. JSON mode silences spinners so stdout
// stays machine-readable.
func SetFormat(format string) {
	jsonMode.Store(strings.EqualFold(format, FormatJSON))
}

// IsJSONMode reports whether the active format is JSON.
func IsJSONMode() bool {
	return jsonMode.Load()
}

func displayJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}
