package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kedare/lens/cmd"
	"github.com/kedare/lens/internal/logger"
)

func main() {
	// Diagnostics go to stderr so stdout stays clean for JSON output.
	logger.InitPterm()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Log.Error(err)
		os.Exit(1)
	}
}
