package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"librarywatch/internal/bot"
	"librarywatch/internal/config"
	"librarywatch/internal/naruapi"
	"librarywatch/internal/watchlist"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the interactive Telegram frontend",
	Long: `Long-polls Telegram for commands: book search, per-branch
availability fan-out, and watch-list management.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(ctx context.Context) error {
	log := newLogger()
	cfg := config.Load()

	if cfg.LibraryAPIKey == "" {
		return fmt.Errorf("LIBRARY_API_KEY is not set")
	}
	if cfg.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	registry := config.DefaultRegistry()
	if cfg.RegistryFile != "" {
		r, err := config.LoadRegistry(cfg.RegistryFile)
		if err != nil {
			return fmt.Errorf("library registry: %w", err)
		}
		registry = r
	}

	// The sheet store is optional here: catalog lookups keep working when
	// the credential is absent or broken, and watch-list commands answer
	// with an error reply instead.
	var wl watchlist.Store
	if creds, err := config.NormalizeCredentials(cfg.SheetCredentials); err != nil {
		log.Error("sheet credentials unusable, watch-list commands disabled", "error", err)
	} else if cfg.SheetID == "" {
		log.Error("GOOGLE_SHEET_ID not set, watch-list commands disabled")
	} else if store, err := watchlist.NewSheetStore(ctx, creds, cfg.SheetID, log); err != nil {
		log.Error("sheet connection failed, watch-list commands disabled", "error", err)
	} else {
		wl = store
	}

	if cfg.Port != "" {
		go bot.ServeLiveness(cfg.Port, log)
	}

	front, err := bot.New(cfg.TelegramToken, naruapi.NewClient(cfg.LibraryAPIKey, log), wl, registry, log)
	if err != nil {
		return err
	}
	front.Run(ctx)
	return nil
}
