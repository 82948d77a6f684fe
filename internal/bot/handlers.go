package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"librarywatch/internal/config"
	"librarywatch/internal/title"
	"librarywatch/internal/watchlist"
)

const helpText = `📚 부천 도서관 봇 명령어

/s 책제목 - 책 대출 가능 여부 조회 (ISBN 입력 가능)
/st - 모니터링 중인 책들 현재 상태
/l - 모니터링 목록 보기
/a 책제목 - 모니터링에 책 추가
/d 책제목 - 모니터링에서 책 제거
/h - 이 도움말 보기

⏰ 자동 모니터링: 스케줄러 주기마다 체크
⚠️ API 데이터는 전날 기준입니다 (실시간 아님)`

// reply sends a plain-text answer; send failures are logged only.
func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, text)); err != nil {
		b.log.Error("send reply", "error", err)
	}
}

// replyWorking posts a placeholder and returns an editor that rewrites it
// in place once the real answer is ready. When the placeholder itself
// fails to send, the editor degrades to a fresh message.
func (b *Bot) replyWorking(msg *tgbotapi.Message, text string) func(string) {
	sent, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, text))
	if err != nil {
		b.log.Error("send placeholder", "error", err)
		return func(final string) { b.reply(msg, final) }
	}
	return func(final string) {
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, final)
		if _, err := b.api.Send(edit); err != nil {
			b.log.Error("edit reply", "error", err)
		}
	}
}

// watchEntries reads the watch list, replying with an error when the store
// is unavailable. The bool reports whether the caller should proceed.
func (b *Bot) watchEntries(ctx context.Context, msg *tgbotapi.Message) ([]watchlist.Entry, bool) {
	if b.watchlist == nil {
		b.reply(msg, "❌ 시트 연결이 설정되지 않았습니다.")
		return nil, false
	}
	entries, err := b.watchlist.List(ctx)
	if err != nil {
		b.log.Error("read watchlist", "error", err)
		b.reply(msg, "❌ 모니터링 목록을 읽지 못했습니다.")
		return nil, false
	}
	return entries, true
}

func (b *Bot) handleSearch(ctx context.Context, msg *tgbotapi.Message, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		b.reply(msg, "사용법: /s 책제목\n또는: /s ISBN번호")
		return
	}
	b.log.Info("search requested", "query", query)

	if isbn, ok := ParseISBN(query); ok {
		b.checkByISBN(ctx, msg, isbn, "ISBN "+isbn, "")
		return
	}

	edit := b.replyWorking(msg, fmt.Sprintf("🔍 '%s' 검색 중...", query))

	docs := b.catalog.SearchBooks(ctx, query, interactivePageSize)
	switch {
	case len(docs) == 0:
		edit(fmt.Sprintf("❌ '%s' 검색 결과가 없습니다.", query))
	case len(docs) == 1:
		available, onLoan := b.fanOut(ctx, docs[0].ISBN13)
		edit(fanOutReport(docs[0].Title, docs[0].Authors, docs[0].ISBN13, available, onLoan))
	default:
		edit(searchResultList(query, docs))
	}
}

// checkByISBN runs the full-registry availability fan-out for one ISBN.
func (b *Bot) checkByISBN(ctx context.Context, msg *tgbotapi.Message, isbn, bookTitle, author string) {
	edit := b.replyWorking(msg, fmt.Sprintf("🔍 %s 소장 도서관 확인 중...", bookTitle))
	available, onLoan := b.fanOut(ctx, isbn)
	edit(fanOutReport(bookTitle, author, isbn, available, onLoan))
}

// fanOut queries every branch in the registry for the ISBN, splitting the
// holders into loanable and on-loan. Branches without the book, and
// branches whose answer is unknown, are left out of both lists.
func (b *Bot) fanOut(ctx context.Context, isbn string) (available, onLoan []string) {
	for _, code := range b.registry.SortedCodes() {
		avail := b.catalog.CheckAvailability(ctx, code, isbn)
		if avail == nil || !avail.HasBook {
			continue
		}
		if avail.LoanAvailable {
			available = append(available, b.registry[code])
		} else {
			onLoan = append(onLoan, b.registry[code])
		}
	}
	return available, onLoan
}

func (b *Bot) handleStatus(ctx context.Context, msg *tgbotapi.Message) {
	entries, ok := b.watchEntries(ctx, msg)
	if !ok {
		return
	}
	if len(entries) == 0 {
		b.reply(msg, "📭 모니터링 중인 책이 없습니다.")
		return
	}

	edit := b.replyWorking(msg, fmt.Sprintf("🔍 %d권 상태 확인 중...", len(entries)))
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, statusLine(ctx, b.catalog, e))
	}
	edit("📚 모니터링 상태\n\n" + strings.Join(lines, "\n") +
		"\n\n✅=대출가능 ❌=대출중 📭=미소장 ❓=확인불가")
}

func (b *Bot) handleList(ctx context.Context, msg *tgbotapi.Message) {
	entries, ok := b.watchEntries(ctx, msg)
	if !ok {
		return
	}
	if len(entries) == 0 {
		b.reply(msg, "📭 모니터링 중인 책이 없습니다.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📚 모니터링 목록\n\n")
	for i, e := range entries {
		name := e.LibraryName
		if name == "" {
			name = "도서관 미지정"
		}
		fmt.Fprintf(&sb, "%d. %s @ %s\n", i+1, e.Title, name)
	}
	b.reply(msg, sb.String())
}

func (b *Bot) handleAdd(ctx context.Context, msg *tgbotapi.Message, bookTitle string) {
	if bookTitle == "" {
		b.reply(msg, "사용법: /a 책제목")
		return
	}
	if b.watchlist == nil {
		b.reply(msg, "❌ 시트 연결이 설정되지 않았습니다.")
		return
	}

	edit := b.replyWorking(msg, fmt.Sprintf("📝 '%s' 모니터링 추가 중...", bookTitle))

	// Best effort: an unresolved ISBN is stored empty and looked up again
	// by each monitor pass.
	var isbn string
	if docs := b.catalog.SearchBooks(ctx, bookTitle, 1); len(docs) > 0 {
		isbn = docs[0].ISBN13
	}

	entry := watchlist.Entry{
		Title:       bookTitle,
		LibraryCode: config.DefaultLibCode,
		LibraryName: config.DefaultLibName,
		ISBN:        isbn,
	}
	if err := b.watchlist.Append(ctx, entry); err != nil {
		b.log.Error("append watch entry", "error", err)
		edit("❌ 추가하지 못했습니다. 잠시 후 다시 시도해 주세요.")
		return
	}
	edit(fmt.Sprintf("✅ '%s' 모니터링 목록에 추가했습니다.", bookTitle))
}

func (b *Bot) handleDelete(ctx context.Context, msg *tgbotapi.Message, bookTitle string) {
	if bookTitle == "" {
		b.reply(msg, "사용법: /d 책제목")
		return
	}
	if b.watchlist == nil {
		b.reply(msg, "❌ 시트 연결이 설정되지 않았습니다.")
		return
	}

	removed, err := b.watchlist.DeleteByTitle(ctx, bookTitle)
	if err != nil {
		b.log.Error("delete watch entry", "error", err)
		b.reply(msg, "❌ 삭제 중 오류가 발생했습니다.")
		return
	}
	if removed {
		b.reply(msg, fmt.Sprintf("✅ '%s' 모니터링 목록에서 삭제했습니다.", bookTitle))
		return
	}

	answer := fmt.Sprintf("❌ '%s'을(를) 찾을 수 없습니다.", bookTitle)
	if entries, err := b.watchlist.List(ctx); err == nil {
		if hint, ok := title.Suggest(bookTitle, watchlist.Titles(entries)); ok {
			answer += fmt.Sprintf("\n혹시 '%s' 말씀이신가요?", hint)
		}
	}
	b.reply(msg, answer)
}
