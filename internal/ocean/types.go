package ocean

import "encoding/json"

// Page carries the cursor for the next page of a paginated endpoint. Its
// absence marks the last page.
type Page struct {
	Next string `json:"next"`
}

// PageBody is the generic envelope of a paginated response.
type PageBody struct {
	Data []json.RawMessage `json:"data"`
	Page *Page             `json:"page,omitempty"`
}

// TokensResponse is the body of /address/{address}/tokens.
type TokensResponse struct {
	Data []WalletToken `json:"data"`
	Page *Page         `json:"page,omitempty"`
}

// WalletToken is one token balance held by an address.
type WalletToken struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	IsDAT       bool   `json:"isDAT"`
	IsLPS       bool   `json:"isLPS"`
	IsLoanToken bool   `json:"isLoanToken"`
}

// PoolPairResponse is the body of /poolpairs/{id}.
type PoolPairResponse struct {
	Data PoolPair `json:"data"`
}

// PoolPair describes a two-asset liquidity pool.
type PoolPair struct {
	ID             string         `json:"id"`
	Symbol         string         `json:"symbol"`
	TokenA         PoolSide       `json:"tokenA"`
	TokenB         PoolSide       `json:"tokenB"`
	PriceRatio     PriceRatio     `json:"priceRatio"`
	TotalLiquidity TotalLiquidity `json:"totalLiquidity"`
	APR            PoolAPR        `json:"apr"`
	Volume         PoolVolume     `json:"volume"`
}

// PoolSide is one leg of a pool pair.
type PoolSide struct {
	ID      string `json:"id"`
	Symbol  string `json:"symbol"`
	Reserve string `json:"reserve"`
}

// PriceRatio holds the pool's reserve ratios in both directions.
type PriceRatio struct {
	AB string `json:"ab"`
	BA string `json:"ba"`
}

// TotalLiquidity holds the pool's total liquidity in share tokens and USD.
type TotalLiquidity struct {
	Token string `json:"token"`
	USD   string `json:"usd"`
}

// PoolAPR splits the pool's annualized return into reward and commission.
type PoolAPR struct {
	Reward     float64 `json:"reward"`
	Commission float64 `json:"commission"`
}

// PoolVolume holds 24h and 30d trade volume in USD.
type PoolVolume struct {
	H24 float64 `json:"h24"`
	D30 float64 `json:"d30"`
}

// VaultResponse is the body of /loans/vaults/{id}.
type VaultResponse struct {
	Data Vault `json:"data"`
}

// Vault is a collateralized loan position as reported by the API.
type Vault struct {
	VaultID           string       `json:"vaultId"`
	State             string       `json:"state"`
	InformativeRatio  string       `json:"informativeRatio"`
	CollateralValue   string       `json:"collateralValue"`
	LoanValue         string       `json:"loanValue"`
	InterestValue     string       `json:"interestValue"`
	CollateralAmounts []VaultToken `json:"collateralAmounts"`
	LoanAmounts       []VaultToken `json:"loanAmounts"`
}

// VaultToken is one collateral or loan amount inside a vault. ActivePrice is
// omitted by the API for tokens without an oracle feed.
type VaultToken struct {
	ID          string       `json:"id"`
	Symbol      string       `json:"symbol"`
	Name        string       `json:"name"`
	Amount      string       `json:"amount"`
	ActivePrice *OraclePrice `json:"activePrice,omitempty"`
}

// OraclePrice is the oracle feed state for a token: the effective price and
// the next scheduled one.
type OraclePrice struct {
	Key    string      `json:"key"`
	Active *OracleTick `json:"active"`
	Next   *OracleTick `json:"next"`
}

// OracleTick is a single oracle price point.
type OracleTick struct {
	Amount string `json:"amount"`
}

// PriceTicker is one entry of the paginated /prices listing. ID is the pair,
// e.g. "DFI-USD".
type PriceTicker struct {
	ID    string      `json:"id"`
	Price TickerPrice `json:"price"`
}

// TickerPrice carries the token symbol and its aggregated oracle price.
type TickerPrice struct {
	Token      string          `json:"token"`
	Aggregated AggregatedPrice `json:"aggregated"`
}

// AggregatedPrice is the median oracle price as a decimal string.
type AggregatedPrice struct {
	Amount string `json:"amount"`
}
