package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"absensi-bot/internal/bot"
	"absensi-bot/internal/config"
	"absensi-bot/internal/directory"
	"absensi-bot/internal/handlers"
	"absensi-bot/internal/ledger"
	"absensi-bot/internal/sheets"
	"absensi-bot/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	loggerConfig := &logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	}
	zapLogger, err := logger.New(loggerConfig, logger.DefaultServiceName)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	zap.ReplaceGlobals(zapLogger)

	if cfg.AdminID == 0 {
		zap.L().Warn("DEFAULT_ADMIN_ID not set, registration requests will not be forwarded")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		zap.L().Warn("invalid TIMEZONE, falling back to UTC",
			zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sheets.New(ctx, cfg.CredentialsFile, cfg.SpreadsheetID)
	if err != nil {
		zap.L().Fatal("failed to create sheets client", zap.Error(err))
	}
	if err := store.Ping(ctx); err != nil {
		zap.L().Fatal("spreadsheet unreachable", zap.Error(err))
	}
	zap.L().Info("connected to spreadsheet", zap.String("spreadsheet_id", cfg.SpreadsheetID))

	b, err := bot.New(cfg.BotToken)
	if err != nil {
		zap.L().Fatal("failed to create bot", zap.Error(err))
	}

	handler := handlers.New(
		directory.New(store, cfg.UsersSheet),
		ledger.New(store, cfg.SalesSheet),
		b,
		cfg.AdminID,
		loc,
	)
	dispatcher := bot.NewDispatcher(ctx, handler)

	zap.L().Info("bot started")

	updates := b.Updates()
	go func() {
		<-ctx.Done()
		b.Stop()
	}()

	for update := range updates {
		dispatcher.Dispatch(update)
	}

	if err := dispatcher.Wait(); err != nil {
		zap.L().Error("dispatcher shutdown", zap.Error(err))
	}
	zap.L().Info("bot stopped")
}
