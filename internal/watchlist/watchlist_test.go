package watchlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var header = []any{"Title", "LibraryCode", "LibraryName", "ISBN"}

func TestEntriesFromRows(t *testing.T) {
	rows := [][]any{
		header,
		{"해리포터와 마법사의 돌", "141652", "별빛마루도서관", "9780000000002"},
		{" 데미안 ", "141321", "상동도서관"},
		{"", "141043", "심곡도서관", "9780000000003"},
	}

	entries := entriesFromRows(rows)
	assert.Equal(t, []Entry{
		{Title: "해리포터와 마법사의 돌", LibraryCode: "141652", LibraryName: "별빛마루도서관", ISBN: "9780000000002"},
		{Title: "데미안", LibraryCode: "141321", LibraryName: "상동도서관"},
	}, entries)
}

func TestEntriesFromRowsEmptySheet(t *testing.T) {
	assert.Empty(t, entriesFromRows(nil))
	assert.Empty(t, entriesFromRows([][]any{header}))
}

func TestMatchRow(t *testing.T) {
	rows := [][]any{
		header,
		{"Clean Code", "141652", "별빛마루도서관", ""},
		{"데미안", "141321", "상동도서관", ""},
		{"clean code", "141043", "심곡도서관", ""},
	}

	// Case-insensitive, trimmed; first occurrence wins on duplicates.
	assert.Equal(t, 1, matchRow(rows, "  CLEAN CODE "))
	assert.Equal(t, 2, matchRow(rows, "데미안"))
	assert.Equal(t, -1, matchRow(rows, "없는 책"))
	assert.Equal(t, -1, matchRow(rows, ""))

	// The header row is data-free territory.
	assert.Equal(t, -1, matchRow(rows, "Title"))
}

func TestTitles(t *testing.T) {
	entries := []Entry{{Title: "a"}, {Title: "b"}}
	assert.Equal(t, []string{"a", "b"}, Titles(entries))
}
