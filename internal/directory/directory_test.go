package directory

import (
	"context"
	"testing"

	"absensi-bot/internal/models"
	"absensi-bot/internal/sheets/sheetstest"

	"github.com/stretchr/testify/require"
)

const sheet = "users"

func TestFindByID_FirstMatchWins(t *testing.T) {
	store := sheetstest.New()
	store.Rows[sheet] = [][]string{
		{"111", "Andi", "Kandangan", "user"},
		{"222", "Budi", "Amuntai", "admin"},
		{"111", "Andi Baru", "Barabai", "owner"},
	}

	svc := New(store, sheet)

	user, err := svc.FindByID(context.Background(), "111")
	require.NoError(t, err)
	require.Equal(t, "Andi", user.Alias)
	require.Equal(t, models.RoleUser, user.Role)
}

func TestFindByID_Absent(t *testing.T) {
	store := sheetstest.New()
	store.Rows[sheet] = [][]string{{"111", "Andi", "Kandangan", "user"}}

	svc := New(store, sheet)

	_, err := svc.FindByID(context.Background(), "999")
	require.ErrorIs(t, err, models.ErrNotRegistered)
}

func TestFindByID_MalformedRow(t *testing.T) {
	store := sheetstest.New()
	store.Rows[sheet] = [][]string{{"111", "Andi"}}

	svc := New(store, sheet)

	_, err := svc.FindByID(context.Background(), "111")
	require.ErrorIs(t, err, models.ErrMalformedRow)
}

func TestRoleOf(t *testing.T) {
	store := sheetstest.New()
	store.Rows[sheet] = [][]string{
		{"222", "Budi", "Amuntai", "admin"},
	}

	svc := New(store, sheet)

	role, err := svc.RoleOf(context.Background(), "222")
	require.NoError(t, err)
	require.True(t, role.CanApprove())

	_, err = svc.RoleOf(context.Background(), "333")
	require.ErrorIs(t, err, models.ErrNotRegistered)
}

func TestRegister(t *testing.T) {
	store := sheetstest.New()
	svc := New(store, sheet)

	err := svc.Register(context.Background(), models.User{
		ID: "444", Alias: "Citra", Cabang: "Kandangan", Role: models.RoleUser,
	})
	require.NoError(t, err)
	require.Equal(t, [][]string{{"444", "Citra", "Kandangan", "user"}}, store.Rows[sheet])
}

func TestRegister_StoreUnavailable(t *testing.T) {
	store := sheetstest.New()
	store.AppendErr = models.ErrStoreUnavailable
	svc := New(store, sheet)

	err := svc.Register(context.Background(), models.User{ID: "444"})
	require.ErrorIs(t, err, models.ErrStoreUnavailable)
}
