package ocean

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Paginate walks a cursor-paginated endpoint, invoking fn once per page in
// request order. Fetching continues while the response carries a next
// cursor; a page without one terminates the walk. An empty first page is
// still delivered to fn. Each call starts over at page 1; no cursor state is
// kept across calls.
func (c *Client) Paginate(ctx context.Context, baseURL string, fn func(PageBody) error) error {
	next := ""
	for {
		target := baseURL
		if next != "" {
			target = baseURL + "?next=" + url.QueryEscape(next)
		}

		var body PageBody
		if err := c.Get(ctx, target, &body); err != nil {
			return err
		}
		if err := fn(body); err != nil {
			return err
		}

		if body.Page == nil || body.Page.Next == "" {
			return nil
		}
		next = body.Page.Next
	}
}

// Prices walks the paginated /prices listing and returns all tickers
// flattened into one slice.
func (c *Client) Prices(ctx context.Context) ([]PriceTicker, error) {
	var tickers []PriceTicker
	err := c.Paginate(ctx, c.baseURL+"/prices", func(page PageBody) error {
		for _, raw := range page.Data {
			var ticker PriceTicker
			if err := json.Unmarshal(raw, &ticker); err != nil {
				return fmt.Errorf("parse price ticker: %w", err)
			}
			tickers = append(tickers, ticker)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	return tickers, nil
}
