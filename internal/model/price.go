package model

// CoinPrice is one oracle price snapshot, keyed by token symbol.
type CoinPrice struct {
	Symbol string
	Pair   string
	Price  string
}
