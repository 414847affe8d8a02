package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full process configuration, loaded from the environment
// (optionally seeded from a .env file by the caller).
type Config struct {
	// BotToken authenticates against the Telegram Bot API.
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`

	// AdminID receives registration requests. Zero means no admin is
	// configured and /reg notifications are skipped.
	AdminID int64 `envconfig:"DEFAULT_ADMIN_ID"`

	CredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE" required:"true"`
	SpreadsheetID   string `envconfig:"SPREADSHEET_ID" required:"true"`
	UsersSheet      string `envconfig:"USERS_SHEET" default:"users"`
	SalesSheet      string `envconfig:"SALES_SHEET" default:"Sales_Data"`

	// Timezone controls check-in/check-out timestamp formatting.
	Timezone string `envconfig:"TIMEZONE" default:"Asia/Jakarta"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogOutput string `envconfig:"LOG_OUTPUT" default:"stdout"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
