// Package notify delivers availability alerts to a single preconfigured
// Telegram chat.
package notify

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends plain-text messages to one fixed chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

func NewTelegram(token string, chatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, log: log}, nil
}

// Send posts one message. Failure is logged and reported, never escalated:
// a dropped notification must not abort the rest of a monitor pass.
func (t *Telegram) Send(message string) bool {
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, message)); err != nil {
		t.log.Error("send notification", "error", err)
		return false
	}
	t.log.Info("notification sent")
	return true
}

// Dropper stands in when Telegram is not configured. Every alert is logged
// and dropped so a monitor pass can still check books and record state.
type Dropper struct {
	log *slog.Logger
}

func NewDropper(log *slog.Logger) *Dropper {
	return &Dropper{log: log}
}

func (d *Dropper) Send(message string) bool {
	d.log.Warn("telegram not configured, dropping notification", "message", message)
	return false
}
