package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kedare/lens/internal/backend"
	"github.com/kedare/lens/internal/config"
	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so runs do not leak into
// each other through the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)

	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes lens with args against store and an instant mock backend,
// returning what the command wrote to stdout.
func runCLI(t *testing.T, store kv.Store, args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	for _, key := range []string{"LENS_DB_PATH", "LENS_LOG_LEVEL", "LENS_OUTPUT", "LENS_PER_PAGE", "LENS_DELAY", "LENS_NO_CACHE", "LENS_TRANSLATE_TO"} {
		t.Setenv(key, "")
	}

	prevStore, prevBackend, prevCfg := storeFactory, backendFactory, cfg
	storeFactory = func(config.Config) (kv.Store, func() error, error) {
		return store, func() error { return nil }, nil
	}
	backendFactory = func(c config.Config) search.Backend {
		m := backend.NewMock(0)
		m.NewID = func() string { return "upload-1" }
		m.TranslateTo = c.TranslateTo

		return m
	}
	t.Cleanup(func() {
		storeFactory, backendFactory, cfg = prevStore, prevBackend, prevCfg
	})

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--env-file", filepath.Join(home, "missing.env")}, args...))

	err := rootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
