package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"portfolioScope/internal/config"
	"portfolioScope/internal/ingest"
	"portfolioScope/internal/ocean"
	"portfolioScope/internal/storage/postgres"
)

func main() {
	// Credentials may live in a local .env file; a missing file is fine.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "ingester",
		Short:        "DeFiChain portfolio snapshot ingester",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("db-user", "", "Postgres user")
	root.PersistentFlags().String("db-password", "", "Postgres password")
	root.PersistentFlags().String("db-host", "", "Postgres host")
	root.PersistentFlags().Int("db-port", 5432, "Postgres port")
	root.PersistentFlags().String("db-name", "", "Postgres database name")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one ingestion cycle",
		RunE:  runIngest,
	}

	runCmd.Flags().String("ocean-url", "https://ocean.defichain.com/v0/mainnet", "Ocean API base URL")
	runCmd.Flags().String("address", "", "wallet address to snapshot")
	runCmd.Flags().String("vault-id", "", "vault id to snapshot")
	runCmd.Flags().Duration("retry-delay", time.Second, "delay between fetch retries")
	runCmd.Flags().Int("max-attempts", 0, "maximum fetch attempts, 0 retries forever")

	root.AddCommand(runCmd)

	initCmd := &cobra.Command{
		Use:   "initdb",
		Short: "Create the snapshot tables if they do not exist",
		RunE:  runInitDB,
	}
	root.AddCommand(initCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the most recent snapshot",
		RunE:  runReport,
	}
	root.AddCommand(reportCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.WalletAddress == "" {
		return fmt.Errorf("wallet address is required")
	}
	if cfg.VaultID == "" {
		return fmt.Errorf("vault id is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// An unreachable database is fatal before any fetch happens.
	store, err := postgres.NewStore(ctx, cfg.DSN(), logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	api := ocean.NewClient(cfg.OceanURL, ocean.Options{
		RetryDelay:  cfg.RetryDelay,
		MaxAttempts: cfg.MaxAttempts,
	}, logger)

	runner := ingest.NewRunner(ingest.RunConfig{
		WalletAddress: cfg.WalletAddress,
		VaultID:       cfg.VaultID,
	}, api, store, logger)

	logger.Info("ingester start",
		zap.String("ocean_url", cfg.OceanURL),
		zap.String("address", cfg.WalletAddress),
		zap.String("vault_id", cfg.VaultID),
		zap.String("pg_dsn", redactDSN(cfg.DSN())),
		zap.Duration("retry_delay", cfg.RetryDelay),
		zap.Int("max_attempts", cfg.MaxAttempts),
	)

	return runner.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
