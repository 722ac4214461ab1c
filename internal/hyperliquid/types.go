package hyperliquid

import (
	"encoding/json"
	"fmt"
)

type VaultDetailsResponse struct {
	Name                  string           `json:"name"`
	VaultAddress          string           `json:"vaultAddress"`
	Leader                string           `json:"leader"`
	Description           string           `json:"description"`
	Portfolio             []PortfolioEntry `json:"portfolio"`
	APR                   float64          `json:"apr"`
	FollowerState         json.RawMessage  `json:"followerState,omitempty"`
	LeaderFraction        float64          `json:"leaderFraction"`
	LeaderCommission      float64          `json:"leaderCommission"`
	Followers             []Follower       `json:"followers"`
	MaxDistributable      float64          `json:"maxDistributable"`
	MaxWithdrawable       float64          `json:"maxWithdrawable"`
	IsClosed              bool             `json:"isClosed"`
	Relationship          Relationship     `json:"relationship"`
	AllowDeposits         bool             `json:"allowDeposits"`
	AlwaysCloseOnWithdraw bool             `json:"alwaysCloseOnWithdraw"`
}

type Follower struct {
	User           string `json:"user"`
	VaultEquity    string `json:"vaultEquity"`
	PnL            string `json:"pnl"`
	AllTimePnL     string `json:"allTimePnl"`
	DaysFollowing  int64  `json:"daysFollowing"`
	VaultEntryTime uint64 `json:"vaultEntryTime"`
	LockupUntil    uint64 `json:"lockupUntil"`
}

type Relationship struct {
	Type string `json:"type"`
	Data struct {
		ChildAddresses []string `json:"childAddresses"`
	} `json:"data"`
}

// PortfolioEntry is the history of one reporting period ("day", "week",
// "month", "allTime", ...).
type PortfolioEntry struct {
	Period string        `json:"period"`
	Data   PortfolioData `json:"data"`
}

// UnmarshalJSON accepts both the object form and the ["day", {...}] tuple
// form the Info API actually sends.
func (p *PortfolioEntry) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err == nil {
		if len(tuple) != 2 {
			return fmt.Errorf("portfolio entry: want 2 elements, got %d", len(tuple))
		}
		if err := json.Unmarshal(tuple[0], &p.Period); err != nil {
			return fmt.Errorf("portfolio period: %w", err)
		}
		return json.Unmarshal(tuple[1], &p.Data)
	}

	type plain PortfolioEntry
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = PortfolioEntry(v)
	return nil
}

type PortfolioData struct {
	AccountValueHistory []HistoryPoint `json:"accountValueHistory"`
	PnLHistory          []HistoryPoint `json:"pnlHistory"`
	Vlm                 string         `json:"vlm"`
}

// HistoryPoint is a (timestamp, decimal string) pair, sent as [ts, "value"].
type HistoryPoint struct {
	Timestamp uint64
	Value     string
}

func (h *HistoryPoint) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return fmt.Errorf("history point: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("history point: want 2 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &h.Timestamp); err != nil {
		return fmt.Errorf("history timestamp: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &h.Value); err != nil {
		return fmt.Errorf("history value: %w", err)
	}
	return nil
}

func (h HistoryPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{h.Timestamp, h.Value})
}

type DelegatorSummaryResponse struct {
	Delegated              string `json:"delegated"`
	Undelegated            string `json:"undelegated"`
	TotalPendingWithdrawal string `json:"totalPendingWithdrawal"`
	NPendingWithdrawals    int64  `json:"nPendingWithdrawals"`
}

type OpenOrder struct {
	Coin      string `json:"coin"`
	LimitPx   string `json:"limitPx"`
	Oid       int64  `json:"oid"`
	Side      string `json:"side"`
	Sz        string `json:"sz"`
	Timestamp int64  `json:"timestamp"`
}

type SpotMetaResponse struct {
	Tokens   []SpotToken        `json:"tokens"`
	Universe []SpotUniversePair `json:"universe"`
}

type SpotToken struct {
	Name        string          `json:"name"`
	SzDecimals  uint8           `json:"szDecimals"`
	WeiDecimals uint8           `json:"weiDecimals"`
	Index       uint32          `json:"index"`
	TokenID     string          `json:"tokenId"`
	IsCanonical bool            `json:"isCanonical"`
	EvmContract json.RawMessage `json:"evmContract,omitempty"`
	FullName    *string         `json:"fullName"`
}

type SpotUniversePair struct {
	Name        string   `json:"name"`
	Tokens      []uint32 `json:"tokens"`
	Index       uint32   `json:"index"`
	IsCanonical bool     `json:"isCanonical"`
}

type PerpMetaResponse struct {
	Universe []PerpAsset `json:"universe"`
}

type PerpAsset struct {
	Name         string `json:"name"`
	SzDecimals   uint8  `json:"szDecimals"`
	MaxLeverage  uint32 `json:"maxLeverage"`
	OnlyIsolated *bool  `json:"onlyIsolated,omitempty"`
	IsDelisted   *bool  `json:"isDelisted,omitempty"`
}

// Listed reports whether the asset is still tradable. Only an explicit
// isDelisted=true removes it.
func (a PerpAsset) Listed() bool {
	return a.IsDelisted == nil || !*a.IsDelisted
}
