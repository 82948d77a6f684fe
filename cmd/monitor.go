package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"librarywatch/internal/config"
	"librarywatch/internal/monitor"
	"librarywatch/internal/naruapi"
	"librarywatch/internal/notify"
	"librarywatch/internal/state"
	"librarywatch/internal/watchlist"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run one polling pass over the watch list",
	Long: `Checks every watched book once, notifies on new availability, and
updates the local state file. Meant to be invoked by an external scheduler.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMonitor(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

// runMonitor treats only the catalog key and the sheet as fatal: a monitor
// pass without them has nothing to do. Telegram is best effort, because a
// pass with a broken notifier can still check books and record state.
func runMonitor(ctx context.Context) error {
	log := newLogger()
	cfg := config.Load()

	if cfg.LibraryAPIKey == "" {
		return fmt.Errorf("LIBRARY_API_KEY is not set")
	}
	if cfg.SheetID == "" {
		return fmt.Errorf("GOOGLE_SHEET_ID is not set")
	}
	creds, err := config.NormalizeCredentials(cfg.SheetCredentials)
	if err != nil {
		return fmt.Errorf("sheet credentials: %w", err)
	}

	wl, err := watchlist.NewSheetStore(ctx, creds, cfg.SheetID, log)
	if err != nil {
		return fmt.Errorf("connect sheet: %w", err)
	}

	var notifier monitor.Notifier = notify.NewDropper(log)
	if chatID, err := cfg.ChatID(); err != nil {
		log.Warn("telegram disabled", "error", err)
	} else if tg, err := notify.NewTelegram(cfg.TelegramToken, chatID, log); err != nil {
		log.Warn("telegram disabled", "error", err)
	} else {
		notifier = tg
	}

	runner := &monitor.Runner{
		Watchlist: wl,
		Catalog:   naruapi.NewClient(cfg.LibraryAPIKey, log),
		Notifier:  notifier,
		States:    state.NewStore(cfg.StatusFile, log),
		Log:       log,
	}
	return runner.Run(ctx)
}
