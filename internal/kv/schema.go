package kv

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kedare/lens/internal/kv/migrations"
	"github.com/kedare/lens/internal/logger"
)

// SchemaVersion is the current database schema version.
var SchemaVersion = migrations.Head()

const (
	createMetadataTable = `
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`

	createKVTable = `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`
)

// initSchema creates the base (v1) tables.
func initSchema(db *sql.DB) error {
	for _, stmt := range []string{createMetadataTable, createKVTable} {
		logSQL(stmt)

		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	logger.Log.Debug("Base database schema initialized")

	return nil
}

// getSchemaVersion returns the schema version, or 0 for a new database.
func getSchemaVersion(db *sql.DB) (int, error) {
	var version int

	query := "SELECT value FROM metadata WHERE key = 'schema_version'"
	logSQL(query)

	err := db.QueryRow(query).Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}

	return version, nil
}

func setSchemaVersion(db *sql.DB, version int) error {
	query := "INSERT OR REPLACE INTO metadata (key, value) VALUES ('schema_version', ?)"
	logSQL(query, version)

	if _, err := db.Exec(query, version); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

// backupDatabase copies the database file aside before a migration.
func backupDatabase(dbPath string) error {
	src, err := os.Open(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("failed to open database for backup: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(dbPath+".bak", os.O_RDWR|os.O_CREATE|os.O_TRUNC, FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy database to backup: %w", err)
	}

	logger.Log.Debugf("Created database backup at %s.bak", dbPath)

	return nil
}

func removeBackup(dbPath string) {
	if err := os.Remove(dbPath + ".bak"); err != nil && !os.IsNotExist(err) {
		logger.Log.Debugf("Failed to remove backup file: %v", err)
	}
}

// migrateSchema applies pending migrations to an existing database.
func migrateSchema(db *sql.DB, currentVersion int, dbPath string) error {
	pending := migrations.Since(currentVersion)
	if len(pending) == 0 {
		return nil
	}

	targetVersion := migrations.Head()
	logger.Log.Debugf("Migrating database schema from version %d to %d", currentVersion, targetVersion)

	if err := backupDatabase(dbPath); err != nil {
		logger.Log.Warnf("Failed to create backup before migration: %v", err)
	}

	for _, step := range pending {
		logger.Log.Debugf("Applying migration v%d: %s", step.Version, step.Description)

		if err := step.Apply(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	if err := setSchemaVersion(db, targetVersion); err != nil {
		return err
	}

	removeBackup(dbPath)
	logger.Log.Debugf("Successfully migrated to schema version %d", targetVersion)

	return nil
}

// initNewDatabase applies every migration to a fresh database.
func initNewDatabase(db *sql.DB) error {
	for _, step := range migrations.Steps() {
		if err := step.Apply(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return setSchemaVersion(db, migrations.Head())
}

// ensureDir creates the parent directory of the database file.
func ensureDir(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	return nil
}
