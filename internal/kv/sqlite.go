package kv

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kedare/lens/internal/logger"

	_ "modernc.org/sqlite"
)

const (
	// Dir is the directory under the user's home that holds lens state.
	Dir = ".lens"
	// FileName is the name of the SQLite database file.
	FileName = "lens.db"
	// FilePermissions restricts the database to its owner.
	FilePermissions = 0o600
)

// SQLite is a Store persisted in a local SQLite database.
type SQLite struct {
	db     *sql.DB
	dbPath string
	stats  *Stats
	mu     sync.Mutex
	closed bool
}

// DefaultPath returns ~/.lens/lens.db.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, Dir, FileName), nil
}

// Open opens (creating and migrating as needed) the database at dbPath.
func Open(dbPath string) (*SQLite, error) {
	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	logger.Log.Debugf("Store database path: %s", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := prepare(db, dbPath); err != nil {
		_ = db.Close()

		return nil, err
	}

	if err := os.Chmod(dbPath, FilePermissions); err != nil {
		logger.Log.Debugf("Failed to restrict database permissions: %v", err)
	}

	return &SQLite{db: db, dbPath: dbPath, stats: newStats()}, nil
}

func prepare(db *sql.DB, dbPath string) error {
	if err := initSchema(db); err != nil {
		return err
	}

	version, err := getSchemaVersion(db)
	if err != nil {
		return err
	}

	if version == 0 {
		return initNewDatabase(db)
	}

	return migrateSchema(db, version, dbPath)
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return s.dbPath
}

func (s *SQLite) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, ErrClosed
	}

	start := time.Now()
	defer func() {
		s.stats.recordOperation("Get", time.Since(start))
	}()

	var value string

	query := `SELECT value FROM kv WHERE key = ?`
	logSQL(query, key)

	err := s.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		s.stats.recordMiss()

		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	s.stats.recordHit()

	return value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	start := time.Now()
	defer func() {
		s.stats.recordOperation("Set", time.Since(start))
	}()

	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	now := time.Now().Unix()
	logSQL(query, key, len(value), now)

	if _, err := s.db.Exec(query, key, value, now); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	return nil
}

// Delete removes a key. Missing keys are ignored.
func (s *SQLite) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	start := time.Now()
	defer func() {
		s.stats.recordOperation("Delete", time.Since(start))
	}()

	query := `DELETE FROM kv WHERE key = ?`
	logSQL(query, key)

	if _, err := s.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}

// Keys returns the stored keys, most recently written first.
func (s *SQLite) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	query := `SELECT key FROM kv ORDER BY updated_at DESC, key ASC`
	logSQL(query)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			logger.Log.Warnf("Failed to scan key: %v", err)
			continue
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// Info describes the database for `lens cache stats`.
type Info struct {
	Path          string
	SizeBytes     int64
	SchemaVersion int
	KeyCount      int64
	Stats         StatsSnapshot
}

// Info returns detailed information about the database.
func (s *SQLite) Info() (*Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	info := &Info{
		Path:  s.dbPath,
		Stats: s.stats.Snapshot(),
	}

	if fi, err := os.Stat(s.dbPath); err == nil {
		info.SizeBytes = fi.Size()
	}

	if v, err := getSchemaVersion(s.db); err == nil {
		info.SchemaVersion = v
	}

	_ = s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&info.KeyCount)

	return info, nil
}

// Stats returns the operation statistics gathered since Open.
func (s *SQLite) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}

// Close logs statistics and closes the database.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	logStats(s.stats.Snapshot())

	return s.db.Close()
}

// logSQL traces statements when the log level is trace.
func logSQL(query string, args ...interface{}) {
	if !logger.Log.Enabled(logger.LevelTrace) {
		return
	}

	logger.Log.Tracef("SQL: %s %v", query, args)
}
