package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolioScope/internal/mapper"
	"portfolioScope/internal/ocean"
	"portfolioScope/internal/storage"
)

// Source is the slice of the Ocean API the pipeline consumes.
type Source interface {
	WalletTokens(ctx context.Context, address string) ([]ocean.WalletToken, error)
	PoolPair(ctx context.Context, id string) (ocean.PoolPair, error)
	Vault(ctx context.Context, id string) (ocean.Vault, error)
	Prices(ctx context.Context) ([]ocean.PriceTicker, error)
}

// RunConfig holds runtime settings for one ingestion cycle.
type RunConfig struct {
	WalletAddress string
	VaultID       string
}

// Runner executes one poll cycle: wallet tokens, then the vault, then
// prices. Stages run strictly in sequence; a failed record write is counted
// and skipped, never fatal.
type Runner struct {
	cfg    RunConfig
	api    Source
	writer storage.Writer
	logger *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, api Source, writer storage.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		api:    api,
		writer: writer,
		logger: logger,
	}
}

// Run executes the three ingestion stages and returns once the price batch
// has committed. The returned error covers fetch/cancellation failures only;
// per-record write failures are reported in the summary log.
func (r *Runner) Run(ctx context.Context) error {
	if r.api == nil {
		return fmt.Errorf("api source is nil")
	}
	if r.writer == nil {
		return fmt.Errorf("writer is nil")
	}
	if r.cfg.WalletAddress == "" {
		return fmt.Errorf("wallet address is required")
	}
	if r.cfg.VaultID == "" {
		return fmt.Errorf("vault id is required")
	}

	wrote, failed := 0, 0

	tokens, err := r.api.WalletTokens(ctx, r.cfg.WalletAddress)
	if err != nil {
		return fmt.Errorf("wallet tokens: %w", err)
	}
	snapshots, err := mapper.WalletTokens(ctx, tokens, r.api)
	if err != nil {
		return fmt.Errorf("map wallet tokens: %w", err)
	}
	for _, snapshot := range snapshots {
		amount := snapshot.Amount
		if res := r.writer.PutToken(ctx, snapshot.Detail, &amount); res.OK() {
			wrote++
		} else {
			failed++
			r.logger.Warn("token write skipped",
				zap.String("token_id", snapshot.Detail.TokenID),
				zap.Error(res.Err),
			)
		}
	}
	r.logger.Info("wallet tokens done", zap.Int("tokens", len(snapshots)))

	vault, err := r.api.Vault(ctx, r.cfg.VaultID)
	if err != nil {
		return fmt.Errorf("vault: %w", err)
	}
	detail, legs := mapper.VaultSnapshot(vault)
	if res := r.writer.PutVault(ctx, detail, legs); res.OK() {
		wrote++
	} else {
		failed++
		r.logger.Warn("vault write skipped",
			zap.String("vault_id", detail.VaultID),
			zap.Error(res.Err),
		)
	}
	r.logger.Info("vault done", zap.String("vault_id", detail.VaultID), zap.Int("legs", len(legs)))

	tickers, err := r.api.Prices(ctx)
	if err != nil {
		return fmt.Errorf("prices: %w", err)
	}
	prices := mapper.Prices(tickers)
	if res := r.writer.PutPrices(ctx, prices); res.OK() {
		wrote++
	} else {
		failed++
		r.logger.Warn("price batch skipped", zap.Error(res.Err))
	}
	r.logger.Info("prices done", zap.Int("prices", len(prices)))

	r.logger.Info("run complete", zap.Int("writes", wrote), zap.Int("failures", failed))
	return nil
}
