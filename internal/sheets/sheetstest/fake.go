// Package sheetstest provides an in-memory stand-in for the sheets gateway,
// honoring the same contract: header row excluded from reads, 1-indexed
// cell updates with row 1 reserved for the header.
package sheetstest

import (
	"context"
	"fmt"

	"absensi-bot/internal/models"
)

type FakeStore struct {
	// Rows holds data rows per sheet, header excluded. Data index i is
	// sheet row i+2.
	Rows map[string][][]string

	AppendErr error
	ReadErr   error
	UpdateErr error

	Appends int
	Updates int
}

func New() *FakeStore {
	return &FakeStore{Rows: make(map[string][][]string)}
}

func (f *FakeStore) AppendRow(_ context.Context, sheet string, row []string) error {
	if f.AppendErr != nil {
		return f.AppendErr
	}
	cp := make([]string, len(row))
	copy(cp, row)
	f.Rows[sheet] = append(f.Rows[sheet], cp)
	f.Appends++
	return nil
}

func (f *FakeStore) ReadRows(_ context.Context, sheet string) ([][]string, error) {
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	return f.Rows[sheet], nil
}

func (f *FakeStore) UpdateCell(_ context.Context, sheet string, row, col int, value string) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	idx := row - 2
	if idx < 0 || idx >= len(f.Rows[sheet]) || col < 1 {
		return fmt.Errorf("cell %s!%d/%d: %w", sheet, row, col, models.ErrMalformedRow)
	}
	for len(f.Rows[sheet][idx]) < col {
		f.Rows[sheet][idx] = append(f.Rows[sheet][idx], "")
	}
	f.Rows[sheet][idx][col-1] = value
	return nil
}
