// Package bot is the interactive Telegram frontend: search, availability
// fan-out across all registered branches, and watch-list management.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"librarywatch/internal/config"
	"librarywatch/internal/naruapi"
	"librarywatch/internal/watchlist"
)

// Catalog is the slice of the catalog client the frontend needs.
type Catalog interface {
	SearchBooks(ctx context.Context, title string, pageSize int) []naruapi.BookDoc
	CheckAvailability(ctx context.Context, libCode, isbn13 string) *naruapi.Availability
}

// Bot handles inbound commands one at a time. Handlers are stateless:
// every command re-reads whatever it needs. The watch store may be nil
// when the sheet credential is absent; catalog commands keep working and
// watch-list commands answer with an error reply.
type Bot struct {
	api       *tgbotapi.BotAPI
	catalog   Catalog
	watchlist watchlist.Store
	registry  config.Registry
	log       *slog.Logger
}

func New(token string, catalog Catalog, wl watchlist.Store, registry config.Registry, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Bot{api: api, catalog: catalog, watchlist: wl, registry: registry, log: log}, nil
}

var isbnCommand = regexp.MustCompile(`^/isbn(\d{13})$`)

// Run long-polls for updates until the context is cancelled. One update is
// handled to completion, outbound HTTP calls included, before the next.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)
	b.log.Info("bot polling for updates", "account", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.dispatch(ctx, update.Message)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	if m := isbnCommand.FindStringSubmatch(text); m != nil {
		b.checkByISBN(ctx, msg, m[1], "ISBN "+m[1], "")
		return
	}

	switch cmd, args := splitCommand(text); cmd {
	case "s", "search":
		b.handleSearch(ctx, msg, args)
	case "st", "status":
		b.handleStatus(ctx, msg)
	case "l", "list":
		b.handleList(ctx, msg)
	case "a", "add":
		b.handleAdd(ctx, msg, args)
	case "d", "delete":
		b.handleDelete(ctx, msg, args)
	case "h", "help", "start":
		b.reply(msg, helpText)
	case "":
		// Plain text is an implicit search.
		b.handleSearch(ctx, msg, text)
	default:
		b.reply(msg, "알 수 없는 명령어입니다. /h 를 입력해 보세요.")
	}
}

// splitCommand separates "/cmd args" into name and argument string.
// Non-command text returns an empty name with the text as argument.
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, args, _ := strings.Cut(text[1:], " ")
	// Telegram appends @botname to commands in group chats.
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

// ParseISBN reports whether the input is a 13-digit ISBN, dashes allowed.
func ParseISBN(s string) (string, bool) {
	stripped := strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(stripped) != 13 {
		return "", false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return stripped, true
}
