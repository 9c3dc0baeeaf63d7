package mapper

import (
	"portfolioScope/internal/model"
	"portfolioScope/internal/ocean"
)

// Prices flattens price tickers into price rows keyed by token symbol. The
// API reports no DUSD price, so a synthetic 1.0 entry is appended.
func Prices(tickers []ocean.PriceTicker) []model.CoinPrice {
	prices := make([]model.CoinPrice, 0, len(tickers)+1)
	for _, ticker := range tickers {
		prices = append(prices, model.CoinPrice{
			Symbol: ticker.Price.Token,
			Pair:   ticker.ID,
			Price:  ticker.Price.Aggregated.Amount,
		})
	}

	prices = append(prices, model.CoinPrice{
		Symbol: "DUSD",
		Pair:   stablecoinPriceKey,
		Price:  "1.000000",
	})
	return prices
}
