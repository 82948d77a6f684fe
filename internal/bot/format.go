package bot

import (
	"context"
	"fmt"
	"strings"

	"librarywatch/internal/naruapi"
	"librarywatch/internal/watchlist"
)

const interactivePageSize = 5

// searchResultList renders an ambiguous search as a numbered list with
// /isbn quick-pick tokens the user can tap to resolve one entry.
func searchResultList(query string, docs []naruapi.BookDoc) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 '%s' 검색 결과 (%d건)\n\n", query, len(docs))
	for i, d := range docs {
		fmt.Fprintf(&sb, "%d. %s\n   👤 %s\n   /isbn%s\n\n",
			i+1, truncate(d.Title, 40), truncate(d.Authors, 20), d.ISBN13)
	}
	sb.WriteString("👆 원하는 책의 /isbn... 클릭")
	return sb.String()
}

// fanOutReport renders the availability fan-out: which branches can lend
// the book now, which hold it but have it on loan, and a site link plus
// the previous-day-data caveat.
func fanOutReport(bookTitle, author, isbn string, available, onLoan []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📖 %s\n", bookTitle)
	if author != "" {
		fmt.Fprintf(&sb, "👤 %s\n", author)
	}
	fmt.Fprintf(&sb, "🔢 ISBN: %s\n", isbn)

	if len(available) > 0 {
		sb.WriteString("\n✅ 대출 가능:\n")
		for _, lib := range available {
			fmt.Fprintf(&sb, "  • %s\n", lib)
		}
	}
	if len(onLoan) > 0 {
		sb.WriteString("\n❌ 대출 중:\n")
		for _, lib := range onLoan {
			fmt.Fprintf(&sb, "  • %s\n", lib)
		}
	}
	if len(available) == 0 && len(onLoan) == 0 {
		sb.WriteString("\n📭 등록된 도서관에 소장하지 않음\n")
	}

	fmt.Fprintf(&sb, "\n🔗 실제 확인: https://alpasq.bcl.go.kr/search/keyword/%s", isbn)
	sb.WriteString("\n⚠️ 전날 기준 데이터입니다")
	return sb.String()
}

// statusLine resolves and checks one watch entry, rendering it as a single
// marker + title line for the /st overview.
func statusLine(ctx context.Context, catalog Catalog, e watchlist.Entry) string {
	marker := "❓"

	isbn := e.ISBN
	if isbn == "" {
		if docs := catalog.SearchBooks(ctx, e.Title, 1); len(docs) > 0 {
			isbn = docs[0].ISBN13
		}
	}
	if isbn != "" {
		if avail := catalog.CheckAvailability(ctx, e.LibraryCode, isbn); avail != nil {
			switch {
			case !avail.HasBook:
				marker = "📭"
			case avail.LoanAvailable:
				marker = "✅"
			default:
				marker = "❌"
			}
		}
	}
	return fmt.Sprintf("%s %s @ %s", marker, e.Title, e.LibraryName)
}

// truncate cuts a string to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
