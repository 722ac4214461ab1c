// Package hyperliquid talks to the Hyperliquid Info API: one JSON endpoint
// that answers a POSTed {"type": ...} query with a schema keyed to the type.
package hyperliquid

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/web3-frozen/hypurr-exporter/internal/upstream"
)

const MainnetInfoAPI = "https://api.hyperliquid.xyz/info"

type Client struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient returns an Info API client. An empty baseURL selects mainnet, a
// nil httpClient gets upstream.DefaultTimeout and a nil logger the default.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = MainnetInfoAPI
	}
	if httpClient == nil {
		httpClient = upstream.NewHTTPClient(upstream.DefaultTimeout)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{client: httpClient, baseURL: baseURL, logger: logger}
}

// Send posts req and decodes the response into the schema bound to it.
// Failures wrap upstream.ErrTransport or upstream.ErrDecode.
func Send[T any](ctx context.Context, c *Client, req Request[T]) (T, error) {
	var out T
	body, err := upstream.PostJSON(ctx, c.client, c.baseURL, req)
	if err != nil {
		return out, err
	}
	c.logger.Debug("info api response", "request", req.Type(), "bytes", len(body))
	if err := upstream.Decode(body, &out); err != nil {
		return out, err
	}
	return out, nil
}
