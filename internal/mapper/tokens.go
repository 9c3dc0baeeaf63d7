package mapper

import (
	"context"
	"fmt"

	"portfolioScope/internal/model"
	"portfolioScope/internal/ocean"
)

// PoolPairSource resolves pool statistics for an LP share token id. The
// production implementation is the ocean client; tests inject a fake.
type PoolPairSource interface {
	PoolPair(ctx context.Context, id string) (ocean.PoolPair, error)
}

// TokenSnapshot pairs a token's reference record with its holding snapshot.
type TokenSnapshot struct {
	Detail model.TokenDetail
	Amount model.TokenAmount
}

// WalletTokens converts wallet token balances into snapshot records. Plain
// tokens map directly; LP share tokens additionally pull pool economics and
// the two leg token ids from pools.
func WalletTokens(ctx context.Context, tokens []ocean.WalletToken, pools PoolPairSource) ([]TokenSnapshot, error) {
	snapshots := make([]TokenSnapshot, 0, len(tokens))
	for _, token := range tokens {
		snapshot := TokenSnapshot{
			Detail: model.TokenDetail{
				TokenID:     token.ID,
				Symbol:      token.Symbol,
				Name:        token.Name,
				IsDAT:       token.IsDAT,
				IsLPS:       token.IsLPS,
				IsLoanToken: token.IsLoanToken,
			},
			Amount: model.TokenAmount{
				TokenID: token.ID,
				Amount:  token.Amount,
			},
		}

		if token.IsLPS {
			if pools == nil {
				return nil, fmt.Errorf("pool pair source required for LP token %s", token.ID)
			}
			pair, err := pools.PoolPair(ctx, token.ID)
			if err != nil {
				return nil, fmt.Errorf("resolve pool pair for token %s: %w", token.ID, err)
			}
			applyPoolPair(&snapshot, pair)
		}

		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func applyPoolPair(snapshot *TokenSnapshot, pair ocean.PoolPair) {
	snapshot.Detail.TokenAID = strPtr(pair.TokenA.ID)
	snapshot.Detail.TokenBID = strPtr(pair.TokenB.ID)

	snapshot.Amount.TokenAReserve = strPtr(pair.TokenA.Reserve)
	snapshot.Amount.TokenBReserve = strPtr(pair.TokenB.Reserve)
	snapshot.Amount.PriceRatioAB = strPtr(pair.PriceRatio.AB)
	snapshot.Amount.PriceRatioBA = strPtr(pair.PriceRatio.BA)
	snapshot.Amount.TotalLiquidityToken = strPtr(pair.TotalLiquidity.Token)
	snapshot.Amount.TotalLiquidityUSD = strPtr(pair.TotalLiquidity.USD)
	snapshot.Amount.APRReward = floatPtr(pair.APR.Reward)
	snapshot.Amount.APRCommission = floatPtr(pair.APR.Commission)
	snapshot.Amount.VolumeH24 = floatPtr(pair.Volume.H24)
	snapshot.Amount.VolumeD30 = floatPtr(pair.Volume.D30)
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}
