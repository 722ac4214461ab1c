// Package evm issues JSON-RPC calls against an EVM node and decodes the
// hex-quantity results.
package evm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/web3-frozen/hypurr-exporter/internal/upstream"
)

const AlchemyHyperEVM = "https://hyperliquid-mainnet.g.alchemy.com/v2/"

const (
	MethodBlockNumber = "eth_blockNumber"
	MethodGasPrice    = "eth_gasPrice"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Client calls one RPC endpoint. The API key is appended to the base URL
// per call, as Alchemy expects (<base>/<key>).
type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = AlchemyHyperEVM
	}
	if httpClient == nil {
		httpClient = upstream.NewHTTPClient(upstream.DefaultTimeout)
	}
	return &Client{client: httpClient, baseURL: baseURL}
}

// Call invokes method and decodes its "0x"-prefixed hex result.
func (c *Client) Call(ctx context.Context, apiKey, method string, params ...any) (uint64, error) {
	if params == nil {
		params = []any{}
	}
	body, err := upstream.PostJSON(ctx, c.client, c.endpoint(apiKey), rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", method, err)
	}

	var resp rpcResponse
	if err := upstream.Decode(body, &resp); err != nil {
		return 0, fmt.Errorf("%s: %w", method, err)
	}

	var hex string
	if len(resp.Result) == 0 || string(resp.Result) == "null" || json.Unmarshal(resp.Result, &hex) != nil {
		if resp.Error != nil {
			return 0, fmt.Errorf("%s: %w (rpc error %d: %s)", method,
				upstream.Field("result", upstream.ErrMissingOrWrongType), resp.Error.Code, resp.Error.Message)
		}
		return 0, fmt.Errorf("%s: %w", method, upstream.Field("result", upstream.ErrMissingOrWrongType))
	}

	n, err := ParseHexUint64(hex)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", method, err)
	}
	return n, nil
}

// BlockNumber returns the latest block number.
func (c *Client) BlockNumber(ctx context.Context, apiKey string) (uint64, error) {
	return c.Call(ctx, apiKey, MethodBlockNumber)
}

// GasPrice returns the current base fee in wei.
func (c *Client) GasPrice(ctx context.Context, apiKey string) (uint64, error) {
	return c.Call(ctx, apiKey, MethodGasPrice)
}

func (c *Client) endpoint(apiKey string) string {
	if strings.HasSuffix(c.baseURL, "/") {
		return c.baseURL + apiKey
	}
	return c.baseURL + "/" + apiKey
}

// ParseHexUint64 decodes a "0x"-prefixed base-16 quantity.
func ParseHexUint64(s string) (uint64, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", upstream.ErrInvalidHex, s)
	}
	return n, nil
}
