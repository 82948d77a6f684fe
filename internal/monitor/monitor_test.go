package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarywatch/internal/naruapi"
	"librarywatch/internal/notify"
	"librarywatch/internal/watchlist"
)

type fakeWatchlist struct {
	entries []watchlist.Entry
	err     error
}

func (f *fakeWatchlist) List(ctx context.Context) ([]watchlist.Entry, error) {
	return f.entries, f.err
}
func (f *fakeWatchlist) Append(ctx context.Context, e watchlist.Entry) error { return nil }
func (f *fakeWatchlist) DeleteByTitle(ctx context.Context, t string) (bool, error) {
	return false, nil
}

type fakeCatalog struct {
	isbnByTitle  map[string]string
	availability map[string]*naruapi.Availability // keyed by libCode+"/"+isbn
}

func (f *fakeCatalog) FirstISBN(ctx context.Context, title string) (string, bool) {
	isbn, ok := f.isbnByTitle[title]
	return isbn, ok
}

func (f *fakeCatalog) CheckAvailability(ctx context.Context, libCode, isbn13 string) *naruapi.Availability {
	return f.availability[libCode+"/"+isbn13]
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Send(message string) bool {
	f.messages = append(f.messages, message)
	return true
}

type fakeStates struct {
	loaded map[string]string
	saved  map[string]string
}

func (f *fakeStates) Load() map[string]string {
	if f.loaded == nil {
		return map[string]string{}
	}
	return f.loaded
}

func (f *fakeStates) Save(m map[string]string) error {
	f.saved = m
	return nil
}

func loanable(yes bool) *naruapi.Availability {
	return &naruapi.Availability{HasBook: true, LoanAvailable: yes}
}

func newRunner(wl *fakeWatchlist, cat *fakeCatalog, n *fakeNotifier, st *fakeStates) *Runner {
	return &Runner{
		Watchlist: wl,
		Catalog:   cat,
		Notifier:  n,
		States:    st,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

var bookA = watchlist.Entry{
	Title:       "Book A",
	LibraryCode: "141652",
	LibraryName: "별빛마루도서관",
	ISBN:        "9780000000002",
}

func TestRunFirstObservationAvailableNotifies(t *testing.T) {
	// A pair never recorded before defaults to "N", so an already loanable
	// book notifies on first sight.
	n := &fakeNotifier{}
	st := &fakeStates{}
	r := newRunner(
		&fakeWatchlist{entries: []watchlist.Entry{bookA}},
		&fakeCatalog{availability: map[string]*naruapi.Availability{
			"141652/9780000000002": loanable(true),
		}},
		n, st,
	)

	require.NoError(t, r.Run(context.Background()))
	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "Book A")
	assert.Contains(t, n.messages[0], "별빛마루도서관")
	assert.Equal(t, map[string]string{"9780000000002_141652": "Y"}, st.saved)
}

func TestRunRepeatAvailabilityIsSilentAndSkipsWrite(t *testing.T) {
	n := &fakeNotifier{}
	st := &fakeStates{loaded: map[string]string{"9780000000002_141652": "Y"}}
	r := newRunner(
		&fakeWatchlist{entries: []watchlist.Entry{bookA}},
		&fakeCatalog{availability: map[string]*naruapi.Availability{
			"141652/9780000000002": loanable(true),
		}},
		n, st,
	)

	require.NoError(t, r.Run(context.Background()))
	assert.Empty(t, n.messages)
	assert.Nil(t, st.saved, "unchanged mapping must not be rewritten")
}

func TestRunTransitionTable(t *testing.T) {
	tests := []struct {
		name       string
		last       string // "" means never recorded
		current    bool
		wantNotify bool
	}{
		{"N to Y notifies", "N", true, true},
		{"unseen to Y notifies", "", true, true},
		{"Y to Y silent", "Y", true, false},
		{"Y to N silent", "Y", false, false},
		{"N to N silent", "N", false, false},
		{"unseen to N silent", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded := map[string]string{}
			if tt.last != "" {
				loaded["9780000000002_141652"] = tt.last
			}
			n := &fakeNotifier{}
			st := &fakeStates{loaded: loaded}
			r := newRunner(
				&fakeWatchlist{entries: []watchlist.Entry{bookA}},
				&fakeCatalog{availability: map[string]*naruapi.Availability{
					"141652/9780000000002": loanable(tt.current),
				}},
				n, st,
			)

			require.NoError(t, r.Run(context.Background()))
			if tt.wantNotify {
				assert.Len(t, n.messages, 1)
			} else {
				assert.Empty(t, n.messages)
			}
		})
	}
}

func TestRunResolvesISBNBySearch(t *testing.T) {
	entry := watchlist.Entry{Title: "데미안", LibraryCode: "141321", LibraryName: "상동도서관"}
	n := &fakeNotifier{}
	st := &fakeStates{}
	r := newRunner(
		&fakeWatchlist{entries: []watchlist.Entry{entry}},
		&fakeCatalog{
			isbnByTitle: map[string]string{"데미안": "9791162243077"},
			availability: map[string]*naruapi.Availability{
				"141321/9791162243077": loanable(true),
			},
		},
		n, st,
	)

	require.NoError(t, r.Run(context.Background()))
	assert.Len(t, n.messages, 1)
	assert.Equal(t, map[string]string{"9791162243077_141321": "Y"}, st.saved)
}

func TestRunSkipsUnresolvableAndUnknownEntries(t *testing.T) {
	entries := []watchlist.Entry{
		{Title: "미지의 책", LibraryCode: "141321"},                        // no ISBN, search finds nothing
		{Title: "확인 불가", LibraryCode: "141043", ISBN: "9780000000009"}, // availability unknown
		bookA, // healthy
	}
	n := &fakeNotifier{}
	st := &fakeStates{}
	r := newRunner(
		&fakeWatchlist{entries: entries},
		&fakeCatalog{availability: map[string]*naruapi.Availability{
			"141652/9780000000002": loanable(true),
		}},
		n, st,
	)

	require.NoError(t, r.Run(context.Background()))
	assert.Len(t, n.messages, 1)
	// Only the healthy entry reaches the state mapping.
	assert.Equal(t, map[string]string{"9780000000002_141652": "Y"}, st.saved)
}

func TestRunSkipsBlankTitleOrBranch(t *testing.T) {
	entries := []watchlist.Entry{
		{Title: "", LibraryCode: "141321", ISBN: "9780000000001"},
		{Title: "무지점", LibraryCode: "", ISBN: "9780000000001"},
	}
	n := &fakeNotifier{}
	st := &fakeStates{}
	r := newRunner(&fakeWatchlist{entries: entries}, &fakeCatalog{}, n, st)

	require.NoError(t, r.Run(context.Background()))
	assert.Empty(t, n.messages)
	assert.Nil(t, st.saved)
}

func TestRunPreservesOrphanedStateEntries(t *testing.T) {
	// Entries for watch rows that no longer exist are never pruned.
	st := &fakeStates{loaded: map[string]string{"9999999999999_141043": "N"}}
	r := newRunner(
		&fakeWatchlist{entries: []watchlist.Entry{bookA}},
		&fakeCatalog{availability: map[string]*naruapi.Availability{
			"141652/9780000000002": loanable(false),
		}},
		&fakeNotifier{}, st,
	)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, map[string]string{
		"9999999999999_141043": "N",
		"9780000000002_141652": "N",
	}, st.saved)
}

func TestRunWithoutTelegramStillRecordsState(t *testing.T) {
	// Telegram being unconfigured drops the alert but must not stop the
	// pass: the observed status still lands in the state mapping.
	st := &fakeStates{}
	r := &Runner{
		Watchlist: &fakeWatchlist{entries: []watchlist.Entry{bookA}},
		Catalog: &fakeCatalog{availability: map[string]*naruapi.Availability{
			"141652/9780000000002": loanable(true),
		}},
		Notifier: notify.NewDropper(slog.New(slog.NewTextHandler(io.Discard, nil))),
		States:   st,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, map[string]string{"9780000000002_141652": "Y"}, st.saved)
}

func TestRunWatchlistFailureAborts(t *testing.T) {
	r := newRunner(
		&fakeWatchlist{err: errors.New("credential rejected")},
		&fakeCatalog{}, &fakeNotifier{}, &fakeStates{},
	)
	assert.Error(t, r.Run(context.Background()))
}
