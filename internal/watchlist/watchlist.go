// Package watchlist keeps the user-curated list of (book, branch) pairs to
// monitor in a Google spreadsheet.
package watchlist

import (
	"context"
	"strings"

	"librarywatch/internal/title"
)

// Entry is one watched (book, branch) row. ISBN may be empty; the monitor
// resolves it by search on every pass until someone fills it in.
type Entry struct {
	Title       string
	LibraryCode string
	LibraryName string
	ISBN        string
}

// Store is the watch list. Row order is append order. Title uniqueness is a
// convention, not a constraint: DeleteByTitle removes only the first match.
type Store interface {
	List(ctx context.Context) ([]Entry, error)
	Append(ctx context.Context, e Entry) error
	DeleteByTitle(ctx context.Context, t string) (bool, error)
}

// Titles lists entry titles, for suggestion ranking.
func Titles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

// entriesFromRows maps raw sheet rows, header included, to entries. Rows
// with a blank title are dropped; a malformed or empty sheet is an empty
// list.
func entriesFromRows(rows [][]any) []Entry {
	if len(rows) < 2 {
		return nil
	}
	entries := make([]Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		e := Entry{
			Title:       cell(row, 0),
			LibraryCode: cell(row, 1),
			LibraryName: cell(row, 2),
			ISBN:        cell(row, 3),
		}
		if e.Title == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return strings.TrimSpace(s)
}

// matchRow finds the first data row whose title cell matches t after
// trimming and case/width folding, returning its zero-based sheet row
// index, or -1. The header row never matches.
func matchRow(rows [][]any, t string) int {
	want := title.Normalize(t)
	if want == "" || len(rows) < 2 {
		return -1
	}
	for i, row := range rows[1:] {
		if title.Normalize(cell(row, 0)) == want {
			return i + 1
		}
	}
	return -1
}
