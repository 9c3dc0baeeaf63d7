package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS defichain_tokens (
		token_id SMALLINT UNIQUE,
		created_at TIMESTAMP WITH TIME ZONE,
		symbol VARCHAR,
		name VARCHAR,
		isdat BOOL DEFAULT FALSE,
		islps BOOL DEFAULT FALSE,
		isloantoken BOOL DEFAULT FALSE,
		tokena_id SMALLINT REFERENCES defichain_tokens(token_id),
		tokenb_id SMALLINT REFERENCES defichain_tokens(token_id)
	)`,
	`CREATE TABLE IF NOT EXISTS defichain_holdings (
		token_id SMALLINT REFERENCES defichain_tokens(token_id),
		created_at TIMESTAMP WITH TIME ZONE,
		amount REAL,
		tokena_reserve REAL,
		tokenb_reserve REAL,
		priceratio_ab REAL,
		priceratio_ba REAL,
		total_liquidity_token REAL,
		total_liquidity_usd REAL,
		apr_reward REAL,
		apr_commission REAL,
		volume_h24 REAL,
		volume_d30 REAL
	)`,
	`CREATE TABLE IF NOT EXISTS vaults (
		id INTEGER UNIQUE GENERATED ALWAYS AS IDENTITY,
		vault_id VARCHAR,
		created_at TIMESTAMP WITH TIME ZONE,
		collateral_ratio REAL,
		collateral_value REAL,
		loan_value REAL,
		interest_value REAL
	)`,
	`CREATE TABLE IF NOT EXISTS vault_amounts (
		vault_id INTEGER REFERENCES vaults(id),
		created_at TIMESTAMP WITH TIME ZONE,
		token_id SMALLINT REFERENCES defichain_tokens(token_id),
		token_type VARCHAR,
		amount REAL,
		price_key VARCHAR,
		active_price REAL,
		next_price REAL
	)`,
	`CREATE TABLE IF NOT EXISTS coin_prices (
		symbol VARCHAR,
		created_at TIMESTAMP WITH TIME ZONE,
		pair VARCHAR,
		price REAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_defichain_tokens_token_id ON defichain_tokens(token_id)`,
	`CREATE INDEX IF NOT EXISTS idx_defichain_tokens_symbol ON defichain_tokens(symbol)`,
}

// Init creates the snapshot tables and indexes if they do not exist yet.
// One-time setup, not a migration mechanism: existing tables are left as
// they are.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
