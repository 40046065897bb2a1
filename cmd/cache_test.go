package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kedare/lens/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePath(t *testing.T) {
	out, err := runCLI(t, kv.NewMemory(), "cache", "path")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), filepath.Join(kv.Dir, kv.FileName)), out)
}

func TestCacheCommandsUseConfiguredDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lens.db")

	db, err := kv.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Set("search_history", "[]"))
	require.NoError(t, db.Set("other", "x"))
	require.NoError(t, db.Close())

	run := func(args ...string) string {
		t.Helper()

		out, err := runCLI(t, kv.NewMemory(), args...)
		require.NoError(t, err)

		return out
	}

	// runCLI blanks LENS_* variables, so the path comes from a config file.
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, cfgPath, "db_path: "+dbPath+"\n")

	out := run("--config", cfgPath, "cache", "stats", "-o", "json")

	var info kv.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, dbPath, info.Path)
	assert.Equal(t, int64(2), info.KeyCount)
	assert.Equal(t, kv.SchemaVersion, info.SchemaVersion)

	keys := strings.Fields(run("--config", cfgPath, "cache", "keys"))
	assert.ElementsMatch(t, []string{"search_history", "other"}, keys)

	run("--config", cfgPath, "cache", "clear")
	assert.Empty(t, strings.TrimSpace(run("--config", cfgPath, "cache", "keys")))

	assert.Equal(t, dbPath, strings.TrimSpace(run("--config", cfgPath, "cache", "path")))
}

func TestCacheStatsWithNoCache(t *testing.T) {
	_, err := runCLI(t, kv.NewMemory(), "--no-cache", "cache", "stats")
	assert.ErrorIs(t, err, errCacheDisabled)
}
