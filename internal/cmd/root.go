package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/strrl/cleantime/internal/clock"
	"github.com/strrl/cleantime/internal/config"
	"github.com/strrl/cleantime/internal/db"
	"github.com/strrl/cleantime/internal/logger"
	"github.com/strrl/cleantime/internal/store"
)

var (
	configPath string
	dbPath     string
	logMode    string

	cfg config.Config
	log = logger.Nop()

	// Overridden in tests.
	clk clock.Clock = clock.System
)

var rootCmd = &cobra.Command{
	Use:   "cleantime",
	Short: "Track clean time, relapses and moods during cannabis recovery",
	Long: `cleantime tracks clean time since your last use, shows what you have saved
and avoided, analyzes relapse and mood history for patterns, and keeps the
missions, rewards and achievements that make progress visible.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = false

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default: $"+config.EnvConfig+")")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the DuckDB database (default: ~/.cleantime/cleantime.duckdb)")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "Log mode: quiet, dev or prod")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		loaded.DBPath = dbPath
	}
	if logMode != "" {
		loaded.LogMode = logMode
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded

	l, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	log = l.With("command", cmd.Name())
	log.Debug("config loaded", "db", cfg.DBPath, "currency", cfg.Currency)
	return nil
}

// openStore opens the configured database. Callers must invoke the returned
// close func.
func openStore(ctx context.Context) (*store.Store, func(), error) {
	conn, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(ctx, conn, log)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, func() { conn.Close() }, nil
}
