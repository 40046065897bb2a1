package cmd

import (
	"errors"
	"fmt"

	"github.com/kedare/lens/internal/kv"
	"github.com/kedare/lens/internal/logger"
	"github.com/kedare/lens/internal/output"
	"github.com/spf13/cobra"
)

var cacheOutput string

// errCacheDisabled is returned by cache commands run with --no-cache.
var errCacheDisabled = errors.New("local database disabled by --no-cache")

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local database",
	Long:  "Commands for the local SQLite database lens keeps its search history in.",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the database location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := storePath(cfg)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)

		return err
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"info"},
	Short:   "Show database size, schema version and key count",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat(cacheOutput)
		if err != nil {
			return err
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDatabase(db)

		info, err := db.Info()
		if err != nil {
			return fmt.Errorf("failed to get database info: %w", err)
		}

		return output.DisplayStoreInfo(cmd.OutOrStdout(), info, format)
	},
}

var cacheKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List stored keys, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDatabase(db)

		keys, err := db.Keys()
		if err != nil {
			return err
		}

		for _, k := range keys {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), k); err != nil {
				return err
			}
		}

		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDatabase(db)

		keys, err := db.Keys()
		if err != nil {
			return err
		}

		for _, k := range keys {
			if err := db.Delete(k); err != nil {
				return fmt.Errorf("failed to delete %s: %w", k, err)
			}
		}

		logger.Log.Infof("Deleted %d key(s)", len(keys))

		return nil
	},
}

func openDatabase() (*kv.SQLite, error) {
	if cfg.NoCache {
		return nil, errCacheDisabled
	}

	path, err := storePath(cfg)
	if err != nil {
		return nil, err
	}

	db, err := kv.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

func closeDatabase(db *kv.SQLite) {
	if err := db.Close(); err != nil {
		logger.Log.Warnf("Failed to close database: %v", err)
	}
}

func init() {
	cacheStatsCmd.Flags().StringVarP(&cacheOutput, "output", "o", "", "Output format: table, text, json")

	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheKeysCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
