package watchlist

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// The first sheet carries a Title, LibraryCode, LibraryName, ISBN header
// row followed by one row per watched book.
const readRange = "A:D"

// SheetStore implements Store on the Google Sheets API.
type SheetStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetID       *int64
	log           *slog.Logger
}

// NewSheetStore authenticates with a service-account JSON payload. The
// payload should already have passed credential normalization.
func NewSheetStore(ctx context.Context, credentials []byte, spreadsheetID string, log *slog.Logger) (*SheetStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentials),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}
	return &SheetStore{svc: svc, spreadsheetID: spreadsheetID, log: log}, nil
}

// List returns every watch row in sheet order.
func (s *SheetStore) List(ctx context.Context) ([]Entry, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return entriesFromRows(resp.Values), nil
}

// Append adds one row at the end of the sheet.
func (s *SheetStore) Append(ctx context.Context, e Entry) error {
	vr := &sheets.ValueRange{
		Values: [][]any{{e.Title, e.LibraryCode, e.LibraryName, e.ISBN}},
	}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, readRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	s.log.Info("watch entry added", "title", e.Title, "library", e.LibraryName)
	return nil
}

// DeleteByTitle removes the first row whose title matches, reporting
// whether one was found. Duplicate titles keep all but the lowest row.
func (s *SheetStore) DeleteByTitle(ctx context.Context, t string) (bool, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("read sheet: %w", err)
	}

	rowIdx := matchRow(resp.Values, t)
	if rowIdx < 0 {
		return false, nil
	}

	sheetID, err := s.firstSheetID(ctx)
	if err != nil {
		return false, err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIdx),
					EndIndex:   int64(rowIdx + 1),
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return false, fmt.Errorf("delete row: %w", err)
	}
	s.log.Info("watch entry removed", "title", t, "row", rowIdx+1)
	return true, nil
}

// firstSheetID resolves the ID of the tab the watch rows live on. The first
// tab usually keeps ID 0, but recreating it assigns a new one, so the ID is
// looked up once per store instead of being assumed.
func (s *SheetStore) firstSheetID(ctx context.Context) (int64, error) {
	if s.sheetID != nil {
		return *s.sheetID, nil
	}
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.sheetId").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read spreadsheet metadata: %w", err)
	}
	if len(meta.Sheets) == 0 || meta.Sheets[0].Properties == nil {
		return 0, fmt.Errorf("spreadsheet %s has no sheets", s.spreadsheetID)
	}
	id := meta.Sheets[0].Properties.SheetId
	s.sheetID = &id
	return id, nil
}
