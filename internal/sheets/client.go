package sheets

import (
	"context"
	"fmt"
	"time"

	"absensi-bot/internal/models"
	"absensi-bot/pkg/logger"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	readBackoffBase = 200 * time.Millisecond
	readMaxRetries  = 3
)

// Client is the row-store gateway over one Google Spreadsheet. Rows are
// 1-indexed with row 1 reserved as a header; ReadRows strips the header so
// callers translate data index i back to sheet row i+2.
//
// The remote API has no transactions: a failed AppendRow may or may not have
// landed, so appends are never retried here. Reads are idempotent and get a
// bounded backoff.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

func New(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Ping verifies the spreadsheet is reachable with the loaded credentials.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).
		Do()
	if err != nil {
		return storeErr("ping spreadsheet", err)
	}
	return nil
}

// AppendRow appends one row after the last non-empty row of the sheet.
// Never retried: a transport error leaves it unknown whether the row landed,
// and a blind retry could duplicate a record.
func (c *Client) AppendRow(ctx context.Context, sheet string, row []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(row)}}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, sheet, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		zap.L().Error("append row failed",
			zap.String(logger.FieldSheet, sheet), zap.Error(err))
		return storeErr(fmt.Sprintf("append to %s", sheet), err)
	}
	return nil
}

// ReadRows returns all data rows of the sheet, header excluded, each cell as
// a string. Data index i corresponds to sheet row i+2.
func (c *Client) ReadRows(ctx context.Context, sheet string) ([][]string, error) {
	var resp *sheets.ValueRange

	backoff := retry.WithMaxRetries(readMaxRetries, retry.NewFibonacci(readBackoffBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		resp, err = c.svc.Spreadsheets.Values.Get(c.spreadsheetID, sheet).
			Context(ctx).
			Do()
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("read rows failed",
			zap.String(logger.FieldSheet, sheet), zap.Error(err))
		return nil, storeErr(fmt.Sprintf("read %s", sheet), err)
	}

	if len(resp.Values) <= 1 {
		return nil, nil
	}

	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// UpdateCell writes a single cell. Row and column are 1-indexed sheet
// coordinates, header row included.
func (c *Client) UpdateCell(ctx context.Context, sheet string, row, col int, value string) error {
	if row < 2 || col < 1 {
		return fmt.Errorf("cell %d/%d out of range: %w", row, col, models.ErrMalformedRow)
	}

	rng := fmt.Sprintf("%s!%s%d", sheet, columnName(col), row)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}

	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		zap.L().Error("update cell failed",
			zap.String(logger.FieldSheet, sheet),
			zap.Int(logger.FieldRow, row),
			zap.Error(err))
		return storeErr(fmt.Sprintf("update %s", rng), err)
	}
	return nil
}

// columnName converts a 1-indexed column number to its A1 letter form.
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, models.ErrStoreUnavailable)
}
