// Package cmd provides the command-line interface for lens
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/kedare/lens/internal/config"
	"github.com/kedare/lens/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configFile string
	envFile    string
	noCache    bool
	delay      time.Duration

	// cfg is resolved once per invocation by the root PersistentPreRunE.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "lens",
	Short: "Search images from your terminal",
	Long: `lens searches images by text or by example image, keeps a short history of
recent searches and suggests queries as you type. Run 'lens interactive' for the
full-screen search view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile, envFile)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("log-level") {
			loaded.LogLevel = logLevel
		}

		if flags.Changed("no-cache") {
			loaded.NoCache = noCache
		}

		if flags.Changed("delay") {
			if delay < 0 {
				return fmt.Errorf("--delay must not be negative, got %v", delay)
			}

			loaded.Delay = delay
		}

		if err := logger.SetLevel(loaded.LogLevel); err != nil {
			return fmt.Errorf("invalid log level '%s': %w", loaded.LogLevel, err)
		}

		cfg = loaded
		logger.Log.Debugf("Log level set to: %s", cfg.LogLevel)

		return nil
	},
}

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set the logging level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.lens/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before LENS_* variables are read")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Keep history in memory instead of the local database")
	rootCmd.PersistentFlags().DurationVar(&delay, "delay", time.Second, "Simulated backend latency")
}
