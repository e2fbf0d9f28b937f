package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"staff-tracker/internal/config"
	"staff-tracker/internal/db"
	"staff-tracker/internal/display"
	"staff-tracker/internal/menu"
	"staff-tracker/internal/prompt"
	"staff-tracker/internal/service"
	"staff-tracker/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "staff",
	Short: "Browse and edit departments, roles and employees",
	Long: `staff is an interactive menu over the staff database.

Connection settings come from the environment or a .env file:
  DB_DRIVER     postgres (default), mysql or sqlite
  DATABASE_URL  full DSN, or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME
  LOG_LEVEL     debug, info, warn (default) or error

Press ctrl+c at any prompt to quit.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	return cfg.Build()
}

func run(ctx context.Context) error {
	// -- Configs preload --
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// -- Logger --
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// -- Connect to DB --
	database, err := db.Connect(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", zap.String("driver", cfg.Driver), zap.Error(err))
		return fmt.Errorf("database connection error: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}()
	logger.Info("connected to database", zap.String("driver", cfg.Driver))

	staffService := service.NewStaffService(store.NewGormExecutor(database), logger)
	loop := menu.New(
		staffService,
		prompt.NewTeaPrompter(os.Stdin, os.Stdout),
		display.NewPresenter(os.Stdout),
		logger,
	)

	// -- Interactive loop --
	err = loop.Run(ctx)
	if errors.Is(err, prompt.ErrInterrupted) || errors.Is(err, prompt.ErrInputClosed) {
		logger.Info("session ended", zap.Error(err))
		return nil
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
