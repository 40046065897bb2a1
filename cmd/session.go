package cmd

import (
	"fmt"
	"strings"

	"github.com/kedare/lens/internal/backend"
	"github.com/kedare/lens/internal/config"
	"github.com/kedare/lens/internal/history"
	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/logger"
	"github.com/kedare/lens/internal/output"
	"github.com/kedare/lens/internal/search"
)

// Factories are package variables so tests can swap in fakes.
var (
	storeFactory = func(c config.Config) (kv.Store, func() error, error) {
		if c.NoCache {
			logger.Log.Debug("History kept in memory (--no-cache)")
			return kv.NewMemory(), func() error { return nil }, nil
		}

		path, err := storePath(c)
		if err != nil {
			return nil, nil, err
		}

		db, err := kv.Open(path)
		if err != nil {
			return nil, nil, err
		}

		return db, db.Close, nil
	}
	backendFactory = func(c config.Config) search.Backend {
		m := backend.NewMock(c.Delay)
		m.TranslateTo = c.TranslateTo

		return m
	}
	trendingSource backend.TrendingSource = backend.DefaultTrending
)

// session is one CLI invocation's orchestrator and the store behind it.
type session struct {
	orch  *search.Orchestrator
	close func() error
}

func openSession(c config.Config) (*session, error) {
	store, closeStore, err := storeFactory(c)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}

	orch := search.New(backendFactory(c), history.New(store), search.WithPerPage(c.PerPage))

	return &session{orch: orch, close: closeStore}, nil
}

func (s *session) Close() {
	if err := s.close(); err != nil {
		logger.Log.Warnf("Failed to close history store: %v", err)
	}
}

func storePath(c config.Config) (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}

	return kv.DefaultPath()
}

// resolveFormat validates the -o flag, falling back to the configured format,
// and switches output into JSON mode when requested.
func resolveFormat(flag string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		format = output.DefaultFormat(cfg.Output, output.Formats)
	}

	for _, f := range output.Formats {
		if f == format {
			output.SetFormat(format)
			return format, nil
		}
	}

	return "", fmt.Errorf("unsupported output format %q (expected %s)", format, strings.Join(output.Formats, ", "))
}
