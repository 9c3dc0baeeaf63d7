package storage

import (
	"context"

	"portfolioScope/internal/model"
)

// WriteResult is the outcome of one logical snapshot write. A failed write
// carries its reason but is not an error return: the caller inspects it and
// moves on, so one bad record cannot unwind a run.
type WriteResult struct {
	Err error
}

// OK reports whether the write succeeded.
func (r WriteResult) OK() bool {
	return r.Err == nil
}

// Wrote is a successful WriteResult.
func Wrote() WriteResult {
	return WriteResult{}
}

// FailedWrite wraps a write failure in a WriteResult.
func FailedWrite(err error) WriteResult {
	return WriteResult{Err: err}
}

// Writer persists mapped snapshot records, one transaction per call.
type Writer interface {
	// PutToken stores a token reference record (insert-or-ignore on the
	// token id) and, when amount is non-nil, appends a holding row.
	PutToken(ctx context.Context, detail model.TokenDetail, amount *model.TokenAmount) WriteResult

	// PutVault stores a vault snapshot and all its legs, linking each
	// amount row to the vault's generated row id.
	PutVault(ctx context.Context, detail model.VaultDetail, legs []model.VaultLeg) WriteResult

	// PutPrices appends the full price batch.
	PutPrices(ctx context.Context, prices []model.CoinPrice) WriteResult
}
