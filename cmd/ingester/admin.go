package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolioScope/internal/config"
	"portfolioScope/internal/storage/postgres"
)

func runInitDB(cmd *cobra.Command, _ []string) error {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.DSN(), logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		return err
	}
	logger.Info("schema ready", zap.String("db", cfg.DBName))
	return nil
}

func runReport(cmd *cobra.Command, _ []string) error {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.DSN(), logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	holdings, err := store.LatestHoldings(ctx)
	if err != nil {
		return fmt.Errorf("load holdings: %w", err)
	}
	prices, err := store.LatestPrices(ctx)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}
	priceBySymbol := make(map[string]float64, len(prices))
	for _, price := range prices {
		priceBySymbol[price.Symbol] = price.Price
	}

	fmt.Printf("%-10s %16s %16s\n", "TOKEN", "AMOUNT", "VALUE (USD)")
	var total float64
	for _, holding := range holdings {
		value := holding.Amount * priceBySymbol[holding.Symbol]
		total += value
		fmt.Printf("%-10s %16.8f %16.2f\n", holding.Symbol, holding.Amount, value)
	}
	fmt.Printf("%-10s %16s %16.2f\n", "TOTAL", "", total)

	vault, ok, err := store.LatestVault(ctx)
	if err != nil {
		return fmt.Errorf("load vault: %w", err)
	}
	if ok {
		fmt.Printf("\nVault %s: ratio %.2f%%, collateral %.2f, loans %.2f, interest %.2f (as of %s)\n",
			vault.VaultID, vault.CollateralRatio, vault.CollateralValue,
			vault.LoanValue, vault.InterestValue, vault.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
