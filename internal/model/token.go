package model

// TokenDetail is the reference record for a token, written at most once per
// token id. TokenAID/TokenBID identify the two legs of a liquidity pair and
// are only set when IsLPS is true.
type TokenDetail struct {
	TokenID     string
	Symbol      string
	Name        string
	IsDAT       bool
	IsLPS       bool
	IsLoanToken bool
	TokenAID    *string
	TokenBID    *string
}

// TokenAmount is one wallet-holding snapshot for a token. The pool economics
// fields are only populated for liquidity-pool share tokens; for plain tokens
// they stay nil and land as NULL columns.
type TokenAmount struct {
	TokenID             string
	Amount              string
	TokenAReserve       *string
	TokenBReserve       *string
	PriceRatioAB        *string
	PriceRatioBA        *string
	TotalLiquidityToken *string
	TotalLiquidityUSD   *string
	APRReward           *float64
	APRCommission       *float64
	VolumeH24           *float64
	VolumeD30           *float64
}
