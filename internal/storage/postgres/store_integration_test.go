//go:build integration

package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"portfolioScope/internal/model"
)

// These tests exercise the SQL contract against a live database. Run with
//
//	TEST_PG_DSN=postgres://... go test -tags integration ./internal/storage/postgres/
//
// Token ids are drawn from the clock to keep reruns from colliding on the
// unique constraint.

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.Init(ctx); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return store
}

func freshTokenID() string {
	return fmt.Sprintf("%d", 10000+time.Now().UnixNano()%20000)
}

func TestPutTokenIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tokenID := freshTokenID()

	first := model.TokenDetail{TokenID: tokenID, Symbol: "ITA", Name: "Integration A", IsDAT: true}
	if res := store.PutToken(ctx, first, nil); !res.OK() {
		t.Fatalf("first write failed: %v", res.Err)
	}

	// Same id again, different symbol: must be a no-op, not an error.
	second := model.TokenDetail{TokenID: tokenID, Symbol: "ITB", Name: "Integration B"}
	if res := store.PutToken(ctx, second, nil); !res.OK() {
		t.Fatalf("second write failed: %v", res.Err)
	}

	var count int
	var symbol string
	row := store.pool.QueryRow(ctx, `SELECT count(*), min(symbol) FROM defichain_tokens WHERE token_id = $1`, tokenID)
	if err := row.Scan(&count, &symbol); err != nil {
		t.Fatalf("count tokens: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one token row, got %d", count)
	}
	if symbol != "ITA" {
		t.Fatalf("second write must not overwrite, got symbol %q", symbol)
	}
}

func TestPutTokenAppendsHoldings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tokenID := freshTokenID()

	detail := model.TokenDetail{TokenID: tokenID, Symbol: "ITH", Name: "Integration Holdings"}
	for i := 0; i < 3; i++ {
		amount := model.TokenAmount{TokenID: tokenID, Amount: fmt.Sprintf("%d.5", i)}
		if res := store.PutToken(ctx, detail, &amount); !res.OK() {
			t.Fatalf("write %d failed: %v", i, res.Err)
		}
	}

	var count int
	row := store.pool.QueryRow(ctx, `SELECT count(*) FROM defichain_holdings WHERE token_id = $1`, tokenID)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count holdings: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 holding rows, got %d", count)
	}
}

func TestPutVaultLinksLegs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	collateralID := freshTokenID()
	vaultID := fmt.Sprintf("it-%d", time.Now().UnixNano())

	detail := model.VaultDetail{
		VaultID:         vaultID,
		CollateralRatio: "305.5",
		CollateralValue: "1500.25",
		LoanValue:       "491.1",
		InterestValue:   "0.8",
	}
	one := "1"
	legs := []model.VaultLeg{{
		Token: model.TokenDetail{TokenID: collateralID, Symbol: "ITV", Name: "Integration Vault", IsDAT: true},
		Amount: model.VaultAmount{
			TokenType:   model.TokenTypeCollateral,
			TokenID:     collateralID,
			Amount:      "100",
			PriceKey:    "DUSD-USD",
			ActivePrice: &one,
			NextPrice:   &one,
		},
	}}

	if res := store.PutVault(ctx, detail, legs); !res.OK() {
		t.Fatalf("vault write failed: %v", res.Err)
	}

	var surrogate int64
	row := store.pool.QueryRow(ctx, `SELECT id FROM vaults WHERE vault_id = $1 ORDER BY id DESC LIMIT 1`, vaultID)
	if err := row.Scan(&surrogate); err != nil {
		t.Fatalf("load vault row: %v", err)
	}

	var count int
	var amount float64
	row = store.pool.QueryRow(ctx, `
		SELECT count(*), min(amount) FROM vault_amounts WHERE vault_id = $1
	`, surrogate)
	if err := row.Scan(&count, &amount); err != nil {
		t.Fatalf("load vault amounts: %v", err)
	}
	if count != len(legs) {
		t.Fatalf("expected %d legs linked to vault %d, got %d", len(legs), surrogate, count)
	}
	if amount != 100 {
		t.Fatalf("expected stored amount 100, got %v", amount)
	}
}
