// Package config reads process configuration from the environment and
// repairs the service-account credential payload secret stores tend to
// mangle.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the commands can read from the environment.
// Each command validates only the keys it actually needs: the interactive
// frontend keeps serving catalog lookups even when the sheet credential is
// absent, while the monitor treats that as fatal.
type Config struct {
	LibraryAPIKey    string
	TelegramToken    string
	TelegramChatID   string
	SheetCredentials string
	SheetID          string
	StatusFile       string
	RegistryFile     string
	Port             string
}

// Load reads the environment after a best-effort .env load for local runs.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		LibraryAPIKey:    os.Getenv("LIBRARY_API_KEY"),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		SheetCredentials: os.Getenv("GOOGLE_SHEET_CREDENTIALS"),
		SheetID:          os.Getenv("GOOGLE_SHEET_ID"),
		StatusFile:       os.Getenv("STATUS_FILE"),
		RegistryFile:     os.Getenv("LIBRARY_REGISTRY"),
		Port:             os.Getenv("PORT"),
	}
	if cfg.StatusFile == "" {
		cfg.StatusFile = "status.json"
	}
	return cfg
}

// ChatID parses the notification recipient.
func (c *Config) ChatID() (int64, error) {
	if c.TelegramChatID == "" {
		return 0, fmt.Errorf("TELEGRAM_CHAT_ID is not set")
	}
	id, err := strconv.ParseInt(c.TelegramChatID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("TELEGRAM_CHAT_ID %q is not numeric: %w", c.TelegramChatID, err)
	}
	return id, nil
}
