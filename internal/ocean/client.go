package ocean

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 1 * time.Second

	// Courtesy delay before each pool-pair lookup, so a wallet full of LP
	// tokens does not hammer the endpoint.
	poolPairDelay = 300 * time.Millisecond
)

// Options configures the API client. The zero value gives the production
// policy: 10s per-attempt timeout, 1s fixed retry delay, unbounded attempts.
type Options struct {
	Timeout     time.Duration
	RetryDelay  time.Duration
	MaxAttempts int                 // 0 means retry forever
	Sleep       func(time.Duration) // injectable for tests
}

// Client fetches JSON from the Ocean REST API. Requests are retried with a
// fixed delay until they succeed; persistent upstream failure blocks the
// caller rather than surfacing an error.
type Client struct {
	http        *resty.Client
	baseURL     string
	logger      *zap.Logger
	retryDelay  time.Duration
	maxAttempts int
	sleep       func(time.Duration)
}

// NewClient builds a Client for the given API base URL, e.g.
// "https://ocean.defichain.com/v0/mainnet".
func NewClient(baseURL string, opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	httpClient := resty.New().SetTimeout(opts.Timeout)

	return &Client{
		http:        httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger,
		retryDelay:  opts.RetryDelay,
		maxAttempts: opts.MaxAttempts,
		sleep:       opts.Sleep,
	}
}

// Get fetches url and unmarshals the JSON body into out. Non-2xx responses
// and transport errors (timeouts included) are retried on a fixed delay; the
// call only fails once the context is cancelled or the optional attempt
// bound is reached.
func (c *Client) Get(ctx context.Context, url string, out any) error {
	for attempt := 1; ; attempt++ {
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(out).
			Get(url)

		if err == nil && resp.IsSuccess() {
			return nil
		}

		if err != nil {
			c.logger.Warn("request failed", zap.String("url", url), zap.Error(err))
		} else {
			c.logger.Warn("request failed",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode()),
			)
			err = fmt.Errorf("unexpected status %d for %s", resp.StatusCode(), url)
		}

		if c.maxAttempts > 0 && attempt >= c.maxAttempts {
			return fmt.Errorf("giving up after %d attempts: %w", attempt, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.sleep(c.retryDelay)
	}
}

// WalletTokens returns all token balances held by address. The endpoint fits
// in one page for a single wallet, so no pagination is needed here.
func (c *Client) WalletTokens(ctx context.Context, address string) ([]WalletToken, error) {
	var resp TokensResponse
	url := fmt.Sprintf("%s/address/%s/tokens", c.baseURL, address)
	if err := c.Get(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("fetch wallet tokens: %w", err)
	}
	return resp.Data, nil
}

// PoolPair returns pool statistics for an LP share token id, sleeping the
// courtesy delay before the request.
func (c *Client) PoolPair(ctx context.Context, id string) (PoolPair, error) {
	c.sleep(poolPairDelay)

	var resp PoolPairResponse
	url := fmt.Sprintf("%s/poolpairs/%s", c.baseURL, id)
	if err := c.Get(ctx, url, &resp); err != nil {
		return PoolPair{}, fmt.Errorf("fetch poolpair %s: %w", id, err)
	}
	return resp.Data, nil
}

// Vault returns the vault with the given id.
func (c *Client) Vault(ctx context.Context, id string) (Vault, error) {
	var resp VaultResponse
	url := fmt.Sprintf("%s/loans/vaults/%s", c.baseURL, id)
	if err := c.Get(ctx, url, &resp); err != nil {
		return Vault{}, fmt.Errorf("fetch vault %s: %w", id, err)
	}
	return resp.Data, nil
}
