package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpinner(message string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer

	s := NewSpinner(message)
	s.enabled = false
	s.writer = &buf

	return s, &buf
}

func TestNewSpinner(t *testing.T) {
	t.Cleanup(func() { SetFormat(FormatTable) })

	t.Run("creates spinner with message", func(t *testing.T) {
		SetFormat(FormatTable)
		s := NewSpinner("test message")
		require.NotNil(t, s)
		assert.Equal(t, "test message", s.message)
		assert.NotNil(t, s.writer)
		assert.False(t, s.active)
		assert.False(t, s.stopped)
		assert.False(t, s.jsonMode)
	})

	t.Run("disables spinner in JSON mode", func(t *testing.T) {
		SetFormat(FormatJSON)
		s := NewSpinner("test message")
		assert.True(t, s.jsonMode)
		assert.False(t, s.enabled)
	})
}

func TestSpinnerPlainOutput(t *testing.T) {
	s, buf := newTestSpinner("Searching")
	s.jsonMode = false

	s.Start()
	s.Start()
	s.Update("Analyzing")
	s.Success("done")

	assert.Equal(t, "Searching...\nAnalyzing...\n✓ done\n", buf.String())
	assert.True(t, s.stopped)
}

func TestSpinnerStopIsFinal(t *testing.T) {
	s, buf := newTestSpinner("x")
	s.jsonMode = false

	s.Start()
	s.Stop()
	s.Stop()
	s.Start()
	s.Update("ignored")

	assert.Equal(t, "x...\n", buf.String())
	assert.Equal(t, "ignored", s.message)
}

func TestSpinnerFailAndInfo(t *testing.T) {
	s, buf := newTestSpinner("x")
	s.jsonMode = false
	s.Fail("boom")
	s.Info("again")

	assert.Equal(t, "✗ boom\nℹ again\n", buf.String())
}

func TestSpinnerSilentInJSONMode(t *testing.T) {
	s, buf := newTestSpinner("x")
	s.jsonMode = true

	s.Start()
	s.Update("y")
	s.Success("done")

	assert.Empty(t, buf.String())
	assert.True(t, s.active)
	assert.True(t, s.stopped)
}
