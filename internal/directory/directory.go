package directory

import (
	"context"
	"fmt"

	"absensi-bot/internal/models"
)

// RowStore is the slice of the sheet gateway the directory needs.
type RowStore interface {
	AppendRow(ctx context.Context, sheet string, row []string) error
	ReadRows(ctx context.Context, sheet string) ([][]string, error)
}

// Service resolves and registers users against the users worksheet.
//
// Lookups are linear scans in store order; the first row with a matching id
// wins. Registration performs no server-side uniqueness check, so callers
// must verify absence first.
type Service struct {
	store RowStore
	sheet string
}

func New(store RowStore, sheet string) *Service {
	return &Service{store: store, sheet: sheet}
}

// Register appends the user as a new row. It does not check for an existing
// row with the same id.
func (s *Service) Register(ctx context.Context, user models.User) error {
	row := []string{user.ID, user.Alias, user.Cabang, string(user.Role)}
	if err := s.store.AppendRow(ctx, s.sheet, row); err != nil {
		return fmt.Errorf("register user %s: %w", user.ID, err)
	}
	return nil
}

// FindByID returns the first user row matching the id, or ErrNotRegistered.
func (s *Service) FindByID(ctx context.Context, id string) (models.User, error) {
	rows, err := s.store.ReadRows(ctx, s.sheet)
	if err != nil {
		return models.User{}, err
	}

	for i, row := range rows {
		if len(row) == 0 || row[0] != id {
			continue
		}
		user, err := parseUserRow(row)
		if err != nil {
			return models.User{}, fmt.Errorf("users row %d: %w", i+2, err)
		}
		return user, nil
	}

	return models.User{}, fmt.Errorf("user %s: %w", id, models.ErrNotRegistered)
}

// RoleOf resolves the user's role. An absent user carries no role at all,
// which callers must treat as "no permission" rather than RoleUser.
func (s *Service) RoleOf(ctx context.Context, id string) (models.Role, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func parseUserRow(row []string) (models.User, error) {
	if len(row) < 4 {
		return models.User{}, fmt.Errorf("want 4 columns, got %d: %w",
			len(row), models.ErrMalformedRow)
	}
	return models.User{
		ID:     row[0],
		Alias:  row[1],
		Cabang: row[2],
		Role:   models.Role(row[3]),
	}, nil
}
