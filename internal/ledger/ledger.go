package ledger

import (
	"context"
	"errors"
	"fmt"

	"absensi-bot/internal/models"

	"go.uber.org/multierr"
)

// Sales_Data worksheet columns, 1-indexed. Column 8 being empty marks a
// record as open.
const (
	colUserID = iota + 1
	colAlias
	colCabang
	colNamaToko
	colDaerah
	colMapsLink
	colCheckin
	colCheckout
	colOrder
	colTagihan
	colKendala
)

// RowStore is the slice of the sheet gateway the ledger needs.
type RowStore interface {
	AppendRow(ctx context.Context, sheet string, row []string) error
	ReadRows(ctx context.Context, sheet string) ([][]string, error)
	UpdateCell(ctx context.Context, sheet string, row, col int, value string) error
}

// RecordHandle addresses one attendance row by position. Position is not
// identity: the handle is only valid until the sheet is mutated, so resolve
// and consume it within a single operation.
type RecordHandle struct {
	Sheet string
	Row   int
}

// Service owns the attendance invariant: at most one row per user with an
// empty checkout timestamp.
type Service struct {
	store RowStore
	sheet string
}

func New(store RowStore, sheet string) *Service {
	return &Service{store: store, sheet: sheet}
}

// FindOpenRecord scans from the newest row to the oldest and returns the
// first open record for the user. Tail-first is deliberate: if an old row
// was never closed by some anomaly, the agent's current check-in is still
// the one found.
func (s *Service) FindOpenRecord(ctx context.Context, userID string) (RecordHandle, error) {
	rows, err := s.store.ReadRows(ctx, s.sheet)
	if err != nil {
		return RecordHandle{}, err
	}

	for i := len(rows) - 1; i >= 0; i-- {
		rec, err := parseRecordRow(rows[i])
		if err != nil || rec.UserID != userID {
			continue
		}
		if rec.Open() {
			return RecordHandle{Sheet: s.sheet, Row: i + 2}, nil
		}
	}

	return RecordHandle{}, fmt.Errorf("user %s: %w", userID, models.ErrNoOpenRecord)
}

// parseRecordRow turns a raw row into a typed record. Only the user id is
// mandatory; a row cut off before the checkout columns is a record that was
// never closed, so everything past the id is optional and defaults to empty.
func parseRecordRow(row []string) (models.CheckinRecord, error) {
	if len(row) == 0 {
		return models.CheckinRecord{}, fmt.Errorf("empty row: %w", models.ErrMalformedRow)
	}

	cell := func(col int) string {
		if col <= len(row) {
			return row[col-1]
		}
		return ""
	}

	return models.CheckinRecord{
		UserID:     cell(colUserID),
		Alias:      cell(colAlias),
		Cabang:     cell(colCabang),
		NamaToko:   cell(colNamaToko),
		Daerah:     cell(colDaerah),
		MapsLink:   cell(colMapsLink),
		CheckinAt:  cell(colCheckin),
		CheckoutAt: cell(colCheckout),
		Order:      cell(colOrder),
		Tagihan:    cell(colTagihan),
		Kendala:    cell(colKendala),
	}, nil
}

// OpenCheckin appends a new attendance row with empty checkout fields. It
// refuses to create a second open record for the same user; the check and
// the append are two remote calls, so a race between two concurrent
// check-ins of one user is only prevented by per-user event ordering
// upstream.
func (s *Service) OpenCheckin(ctx context.Context, rec models.CheckinRecord) error {
	if _, err := s.FindOpenRecord(ctx, rec.UserID); err == nil {
		return fmt.Errorf("user %s: %w", rec.UserID, models.ErrDuplicateOpenRecord)
	} else if !errors.Is(err, models.ErrNoOpenRecord) {
		return err
	}

	row := []string{
		rec.UserID, rec.Alias, rec.Cabang,
		rec.NamaToko, rec.Daerah, rec.MapsLink,
		rec.CheckinAt, "", "", "", "",
	}
	if err := s.store.AppendRow(ctx, s.sheet, row); err != nil {
		return fmt.Errorf("open checkin for %s: %w", rec.UserID, err)
	}
	return nil
}

// CloseCheckin resolves the user's open record and writes the four checkout
// columns. The cell writes are not atomic; every write is attempted and the
// failures reported together, so a partial close is detectable (checkout
// timestamp set, some report fields blank) rather than silently retried.
func (s *Service) CloseCheckin(ctx context.Context, userID string, report models.CheckoutReport, timestamp string) error {
	handle, err := s.FindOpenRecord(ctx, userID)
	if err != nil {
		return err
	}

	var werr error
	werr = multierr.Append(werr, s.store.UpdateCell(ctx, handle.Sheet, handle.Row, colCheckout, timestamp))
	werr = multierr.Append(werr, s.store.UpdateCell(ctx, handle.Sheet, handle.Row, colOrder, report.Order))
	werr = multierr.Append(werr, s.store.UpdateCell(ctx, handle.Sheet, handle.Row, colTagihan, report.Tagihan))
	werr = multierr.Append(werr, s.store.UpdateCell(ctx, handle.Sheet, handle.Row, colKendala, report.Kendala))
	if werr != nil {
		return fmt.Errorf("close checkin for %s at row %d: %w", userID, handle.Row, werr)
	}
	return nil
}
