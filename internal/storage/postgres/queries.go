package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// Holding is one row of the latest holdings report.
type Holding struct {
	Symbol    string
	Amount    float64
	CreatedAt time.Time
}

// Price is one row of the latest price snapshot.
type Price struct {
	Symbol    string
	Pair      string
	Price     float64
	CreatedAt time.Time
}

// VaultState is the most recent vault snapshot.
type VaultState struct {
	VaultID         string
	CollateralRatio float64
	CollateralValue float64
	LoanValue       float64
	InterestValue   float64
	CreatedAt       time.Time
}

// LatestHoldings returns the holdings written by the most recent poll,
// joined to their token symbols.
func (s *Store) LatestHoldings(ctx context.Context) ([]Holding, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.symbol, h.amount, h.created_at
		FROM defichain_holdings h
		JOIN defichain_tokens t ON t.token_id = h.token_id
		WHERE h.created_at = (SELECT max(created_at) FROM defichain_holdings)
		ORDER BY t.symbol
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []Holding
	for rows.Next() {
		var h Holding
		if err := rows.Scan(&h.Symbol, &h.Amount, &h.CreatedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// LatestPrices returns the price rows written by the most recent poll.
func (s *Store) LatestPrices(ctx context.Context) ([]Price, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT symbol, pair, price, created_at
		FROM coin_prices
		WHERE created_at = (SELECT max(created_at) FROM coin_prices)
		ORDER BY symbol
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []Price
	for rows.Next() {
		var p Price
		if err := rows.Scan(&p.Symbol, &p.Pair, &p.Price, &p.CreatedAt); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// LatestVault returns the most recent vault snapshot. The second result is
// false when no vault has been written yet.
func (s *Store) LatestVault(ctx context.Context) (VaultState, bool, error) {
	var v VaultState
	row := s.pool.QueryRow(ctx, `
		SELECT vault_id, collateral_ratio, collateral_value, loan_value, interest_value, created_at
		FROM vaults
		ORDER BY id DESC
		LIMIT 1
	`)
	err := row.Scan(&v.VaultID, &v.CollateralRatio, &v.CollateralValue, &v.LoanValue, &v.InterestValue, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VaultState{}, false, nil
		}
		return VaultState{}, false, err
	}
	return v, true, nil
}
