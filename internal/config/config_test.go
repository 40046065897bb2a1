package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	for _, name := range []string{"LENS_DB_PATH", "LENS_LOG_LEVEL", "LENS_OUTPUT", "LENS_PER_PAGE", "LENS_DELAY", "LENS_NO_CACHE", "LENS_TRANSLATE_TO"} {
		t.Setenv(name, "")
	}

	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDefaultLocation(t *testing.T) {
	home := isolate(t)
	writeFile(t, home, filepath.Join(".lens", FileName), "per_page: 4\ndelay: 250ms\noutput: json\n")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.PerPage)
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedYAML(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "bad.yaml", "per_page: [oops\n")

	_, err := Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "c.yaml", "per_page: 4\nlog_level: warn\ntranslate_to: fr\n")
	t.Setenv("LENS_PER_PAGE", "12")
	t.Setenv("LENS_TRANSLATE_TO", "de")
	t.Setenv("LENS_NO_CACHE", "true")
	t.Setenv("LENS_DELAY", "0s")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.PerPage)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.NoCache)
	assert.Zero(t, cfg.Delay)
	assert.Equal(t, "de", cfg.TranslateTo)
}

func TestDotEnvFile(t *testing.T) {
	isolate(t)
	os.Unsetenv("LENS_DB_PATH")
	t.Cleanup(func() { os.Unsetenv("LENS_DB_PATH") })

	envFile := writeFile(t, t.TempDir(), ".env", "LENS_DB_PATH=/tmp/lens-test.db\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lens-test.db", cfg.DBPath)
}

func TestMissingDotEnvIsIgnored(t *testing.T) {
	isolate(t)

	_, err := Load("", filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestInvalidEnvValues(t *testing.T) {
	tests := map[string]string{
		"LENS_PER_PAGE": "many",
		"LENS_DELAY":    "soon",
		"LENS_NO_CACHE": "maybe",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			t.Setenv(name, value)

			_, err := Load("", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestValidation(t *testing.T) {
	isolate(t)
	t.Setenv("LENS_PER_PAGE", "0")

	_, err := Load("", "")
	assert.ErrorContains(t, err, "per_page must be positive")
}
