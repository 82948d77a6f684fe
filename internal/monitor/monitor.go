// Package monitor implements the periodic availability pass: every watched
// (book, branch) pair is checked once and a notification fires when a book
// flips from unavailable to loanable.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/url"

	"github.com/google/uuid"

	"librarywatch/internal/naruapi"
	"librarywatch/internal/state"
	"librarywatch/internal/watchlist"
)

// Catalog is the slice of the catalog client the monitor needs.
type Catalog interface {
	FirstISBN(ctx context.Context, title string) (string, bool)
	CheckAvailability(ctx context.Context, libCode, isbn13 string) *naruapi.Availability
}

// Notifier delivers one availability alert.
type Notifier interface {
	Send(message string) bool
}

// States is the persisted availability mapping.
type States interface {
	Load() map[string]string
	Save(map[string]string) error
}

// Runner performs one polling pass over the watch list. It is built for
// one external scheduler invocation at a time: the state file is rewritten
// wholesale, so overlapping passes would lose updates.
type Runner struct {
	Watchlist watchlist.Store
	Catalog   Catalog
	Notifier  Notifier
	States    States
	Log       *slog.Logger
}

// Run walks every watch entry once. A pair's previous flag defaults to "N"
// when it has never been recorded, so a book that is already loanable on
// its very first check notifies immediately; every other transition than
// N to Y stays silent. The state file is only rewritten when the mapping
// actually changed.
//
// Per-entry failures (unresolvable ISBN, unknown availability) skip that
// entry without touching its state; only an unreadable watch list aborts
// the pass.
func (r *Runner) Run(ctx context.Context) error {
	log := r.Log.With("run_id", uuid.NewString())
	log.Info("monitor pass starting")

	entries, err := r.Watchlist.List(ctx)
	if err != nil {
		return fmt.Errorf("read watchlist: %w", err)
	}

	last := r.States.Load()
	next := maps.Clone(last)

	for _, e := range entries {
		if e.Title == "" || e.LibraryCode == "" {
			continue
		}
		elog := log.With("title", e.Title, "library", e.LibraryName, "libCode", e.LibraryCode)

		isbn := e.ISBN
		if isbn == "" {
			var ok bool
			if isbn, ok = r.Catalog.FirstISBN(ctx, e.Title); !ok {
				elog.Warn("could not resolve isbn, skipping")
				continue
			}
		}

		avail := r.Catalog.CheckAvailability(ctx, e.LibraryCode, isbn)
		if avail == nil {
			elog.Warn("availability unknown, skipping")
			continue
		}

		key := state.Key(isbn, e.LibraryCode)
		lastFlag, seen := last[key]
		if !seen {
			lastFlag = "N"
		}
		current := avail.Flag()
		elog.Info("checked", "current", current, "last", lastFlag)

		if lastFlag == "N" && current == "Y" {
			r.Notifier.Send(alertMessage(e))
		}
		next[key] = current
	}

	if maps.Equal(last, next) {
		log.Info("no availability changes")
		return nil
	}
	if err := r.States.Save(next); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	log.Info("state updated")
	return nil
}

// alertMessage renders the notification for a newly loanable book, with a
// library site link for manual confirmation.
func alertMessage(e watchlist.Entry) string {
	searchURL := "https://library.bucheon.go.kr/library/search/page1.do?title=" + url.QueryEscape(e.Title)
	return fmt.Sprintf("📚 대출 가능!\n\n📖 %s\n📍 %s\n\n확인: %s", e.Title, e.LibraryName, searchURL)
}
