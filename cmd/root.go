// Package cmd wires configuration and services into the two entrypoints:
// the interactive bot and the one-shot monitor pass.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "librarywatch",
	Short: "Library loan-availability watcher with a Telegram frontend",
	Long: `librarywatch polls the data4library catalog for the loan status of
watched books and notifies a Telegram chat when one becomes available.

Run "librarywatch bot" for the interactive frontend, and schedule
"librarywatch monitor" externally (cron or similar) for periodic checks.
Monitor passes must not overlap: the state file has a single writer.`,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
