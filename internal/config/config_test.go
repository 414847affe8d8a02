package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	t.Setenv("SPREADSHEET_ID", "1abcDEF")
}

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "users", cfg.UsersSheet)
	require.Equal(t, "Sales_Data", cfg.SalesSheet)
	require.Equal(t, "Asia/Jakarta", cfg.Timezone)
	require.Equal(t, "info", cfg.LogLevel)
	require.Zero(t, cfg.AdminID)
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	require.NoError(t, os.Unsetenv("BOT_TOKEN"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_AdminID(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("DEFAULT_ADMIN_ID", "987654321")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, int64(987654321), cfg.AdminID)
}
