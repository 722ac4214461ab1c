package hyperliquid

import "encoding/json"

// Request is one Info API query. The type parameter is the response schema
// the endpoint returns for it, so Send decodes into the right shape without
// the caller naming it twice. Requests are only built by the constructors
// below.
type Request[T any] struct {
	body requestBody
}

type requestBody struct {
	Type         string `json:"type"`
	User         string `json:"user,omitempty"`
	VaultAddress string `json:"vaultAddress,omitempty"`
}

// VaultDetails asks for the state of a single vault.
func VaultDetails(vaultAddress string) Request[VaultDetailsResponse] {
	return Request[VaultDetailsResponse]{body: requestBody{Type: "vaultDetails", VaultAddress: vaultAddress}}
}

// Portfolio asks for the per-period account value and PnL histories of user.
func Portfolio(user string) Request[[]PortfolioEntry] {
	return Request[[]PortfolioEntry]{body: requestBody{Type: "portfolio", User: user}}
}

// DelegatorSummary asks for the staking summary of user.
func DelegatorSummary(user string) Request[DelegatorSummaryResponse] {
	return Request[DelegatorSummaryResponse]{body: requestBody{Type: "delegatorSummary", User: user}}
}

// OpenOrders asks for the resting orders of user.
func OpenOrders(user string) Request[[]OpenOrder] {
	return Request[[]OpenOrder]{body: requestBody{Type: "openOrders", User: user}}
}

// SpotMeta asks for the spot token list.
func SpotMeta() Request[SpotMetaResponse] {
	return Request[SpotMetaResponse]{body: requestBody{Type: "spotMeta"}}
}

// Meta asks for the perp universe.
func Meta() Request[PerpMetaResponse] {
	return Request[PerpMetaResponse]{body: requestBody{Type: "meta"}}
}

// Type returns the wire discriminator of the request.
func (r Request[T]) Type() string { return r.body.Type }

func (r Request[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.body)
}
