package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portfolioScope/internal/model"
	"portfolioScope/internal/storage"
)

// Store provides Postgres persistence for portfolio snapshots.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	now    func() time.Time
}

// NewStore connects to Postgres and verifies the connection. An unreachable
// database is a startup error, not something to retry.
func NewStore(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool, logger: logger, now: time.Now}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutToken stores a token reference record and, when amount is non-nil, one
// holding snapshot. The token insert is a no-op when the token id already
// exists; the holding insert always appends.
func (s *Store) PutToken(ctx context.Context, detail model.TokenDetail, amount *model.TokenAmount) storage.WriteResult {
	createdAt := s.now().UTC()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return s.failed("begin token tx", err)
	}
	defer tx.Rollback(ctx)

	if err := insertToken(ctx, tx, createdAt, detail); err != nil {
		return s.failed("insert token", err)
	}
	if amount != nil {
		if err := insertHolding(ctx, tx, createdAt, *amount); err != nil {
			return s.failed("insert holding", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return s.failed("commit token tx", err)
	}
	return storage.Wrote()
}

// PutVault stores one vault snapshot with all its collateral and loan legs.
// The vault insert returns the generated row id, which every leg row carries
// as its foreign key; the whole group commits once.
func (s *Store) PutVault(ctx context.Context, detail model.VaultDetail, legs []model.VaultLeg) storage.WriteResult {
	createdAt := s.now().UTC()

	ratio, err := realArg(detail.CollateralRatio)
	if err != nil {
		return s.failed("parse vault ratio", err)
	}
	collateral, err := realArg(detail.CollateralValue)
	if err != nil {
		return s.failed("parse collateral value", err)
	}
	loan, err := realArg(detail.LoanValue)
	if err != nil {
		return s.failed("parse loan value", err)
	}
	interest, err := realArg(detail.InterestValue)
	if err != nil {
		return s.failed("parse interest value", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return s.failed("begin vault tx", err)
	}
	defer tx.Rollback(ctx)

	var vaultRef int64
	err = tx.QueryRow(ctx, `
		INSERT INTO vaults (vault_id, created_at, collateral_ratio, collateral_value, loan_value, interest_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, detail.VaultID, createdAt, ratio, collateral, loan, interest).Scan(&vaultRef)
	if err != nil {
		return s.failed("insert vault", err)
	}

	for _, leg := range legs {
		if err := insertToken(ctx, tx, createdAt, leg.Token); err != nil {
			return s.failed("insert vault token", err)
		}
		leg.Amount.VaultRef = vaultRef
		if err := insertVaultAmount(ctx, tx, createdAt, leg.Amount); err != nil {
			return s.failed("insert vault amount", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return s.failed("commit vault tx", err)
	}
	return storage.Wrote()
}

// PutPrices appends the full price batch in a single transaction.
func (s *Store) PutPrices(ctx context.Context, prices []model.CoinPrice) storage.WriteResult {
	if len(prices) == 0 {
		return storage.Wrote()
	}
	createdAt := s.now().UTC()

	batch := &pgx.Batch{}
	for _, price := range prices {
		value, err := realArg(price.Price)
		if err != nil {
			return s.failed("parse price "+price.Symbol, err)
		}
		batch.Queue(`
			INSERT INTO coin_prices (symbol, created_at, pair, price)
			VALUES ($1, $2, $3, $4)
		`, price.Symbol, createdAt, price.Pair, value)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return s.failed("begin price tx", err)
	}
	defer tx.Rollback(ctx)

	br := tx.SendBatch(ctx, batch)
	for range prices {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return s.failed("insert price", err)
		}
	}
	if err := br.Close(); err != nil {
		return s.failed("close price batch", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.failed("commit price tx", err)
	}
	return storage.Wrote()
}

func insertToken(ctx context.Context, tx pgx.Tx, createdAt time.Time, detail model.TokenDetail) error {
	tokenID, err := tokenIDArg(detail.TokenID)
	if err != nil {
		return err
	}
	tokenA, err := tokenIDPtrArg(detail.TokenAID)
	if err != nil {
		return err
	}
	tokenB, err := tokenIDPtrArg(detail.TokenBID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO defichain_tokens (created_at, token_id, symbol, name, isdat, islps, isloantoken, tokena_id, tokenb_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (token_id) DO NOTHING
	`, createdAt, tokenID, detail.Symbol, detail.Name, detail.IsDAT, detail.IsLPS, detail.IsLoanToken, tokenA, tokenB)
	return err
}

func insertHolding(ctx context.Context, tx pgx.Tx, createdAt time.Time, amount model.TokenAmount) error {
	tokenID, err := tokenIDArg(amount.TokenID)
	if err != nil {
		return err
	}
	held, err := realArg(amount.Amount)
	if err != nil {
		return err
	}
	reserveA, err := realPtrArg(amount.TokenAReserve)
	if err != nil {
		return err
	}
	reserveB, err := realPtrArg(amount.TokenBReserve)
	if err != nil {
		return err
	}
	ratioAB, err := realPtrArg(amount.PriceRatioAB)
	if err != nil {
		return err
	}
	ratioBA, err := realPtrArg(amount.PriceRatioBA)
	if err != nil {
		return err
	}
	liquidityToken, err := realPtrArg(amount.TotalLiquidityToken)
	if err != nil {
		return err
	}
	liquidityUSD, err := realPtrArg(amount.TotalLiquidityUSD)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO defichain_holdings (
			created_at, token_id, amount, tokena_reserve, tokenb_reserve,
			priceratio_ab, priceratio_ba, total_liquidity_token, total_liquidity_usd,
			apr_reward, apr_commission, volume_h24, volume_d30
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, createdAt, tokenID, held, reserveA, reserveB, ratioAB, ratioBA, liquidityToken, liquidityUSD,
		amount.APRReward, amount.APRCommission, amount.VolumeH24, amount.VolumeD30)
	return err
}

func insertVaultAmount(ctx context.Context, tx pgx.Tx, createdAt time.Time, amount model.VaultAmount) error {
	tokenID, err := tokenIDArg(amount.TokenID)
	if err != nil {
		return err
	}
	held, err := realArg(amount.Amount)
	if err != nil {
		return err
	}
	activePrice, err := realPtrArg(amount.ActivePrice)
	if err != nil {
		return err
	}
	nextPrice, err := realPtrArg(amount.NextPrice)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO vault_amounts (vault_id, created_at, token_id, token_type, amount, price_key, active_price, next_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, amount.VaultRef, createdAt, tokenID, amount.TokenType, held, textArg(amount.PriceKey), activePrice, nextPrice)
	return err
}

// failed logs a write failure with its diagnostic detail and wraps it into a
// WriteResult. Postgres errors additionally carry their SQLSTATE and the
// server-side detail text.
func (s *Store) failed(op string, err error) storage.WriteResult {
	fields := []zap.Field{zap.Error(err)}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		fields = append(fields,
			zap.String("pg_code", pgErr.Code),
			zap.String("pg_detail", pgErr.Detail),
			zap.Int32("pg_line", pgErr.Line),
		)
	}
	s.logger.Error("write failed: "+op, fields...)
	return storage.FailedWrite(fmt.Errorf("%s: %w", op, err))
}

// tokenIDArg converts an API token id into the SMALLINT column value.
func tokenIDArg(id string) (int16, error) {
	value, err := strconv.ParseInt(id, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("token id %q: %w", id, err)
	}
	return int16(value), nil
}

func tokenIDPtrArg(id *string) (*int16, error) {
	if id == nil {
		return nil, nil
	}
	value, err := tokenIDArg(*id)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// realArg parses an API decimal string for a REAL column.
func realArg(value string) (float64, error) {
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("decimal %q: %w", value, err)
	}
	f, _ := dec.Float64()
	return f, nil
}

func realPtrArg(value *string) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	f, err := realArg(*value)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// textArg maps an empty string to NULL.
func textArg(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
