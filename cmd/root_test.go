package cmd

import (
	"testing"
	"time"

	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	require.NotNil(t, rootCmd)

	assert.Equal(t, "lens", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"search", "image", "history", "suggest", "trending", "interactive", "cache", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommandFlags(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"log-level", "info"},
		{"config", ""},
		{"env-file", ".env"},
		{"no-cache", "false"},
		{"delay", "1s"},
	}

	for _, tt := range tests {
		flag := rootCmd.PersistentFlags().Lookup(tt.name)
		require.NotNil(t, flag, tt.name)
		assert.Equal(t, tt.def, flag.DefValue, tt.name)
		assert.NotEmpty(t, flag.Usage, tt.name)
	}
}

func TestPersistentPreRunAppliesFlags(t *testing.T) {
	t.Cleanup(func() { _ = logger.SetLevel("info") })

	_, err := runCLI(t, kv.NewMemory(), "--log-level", "debug", "--delay", "250ms", "--no-cache", "version")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.True(t, cfg.NoCache)
	assert.Equal(t, logger.LevelDebug, logger.Log.Level())
}

func TestPersistentPreRunRejectsInvalidLevel(t *testing.T) {
	_, err := runCLI(t, kv.NewMemory(), "--log-level", "loud", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestPersistentPreRunRejectsNegativeDelay(t *testing.T) {
	_, err := runCLI(t, kv.NewMemory(), "--delay", "-1s", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--delay")
}

func TestPersistentPreRunMissingExplicitConfig(t *testing.T) {
	_, err := runCLI(t, kv.NewMemory(), "--config", "/nonexistent/lens.yaml", "version")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, kv.NewMemory(), "version")
	require.NoError(t, err)

	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, "Go Version:")
}
