package monitor

import "time"

// Market is the token-market group.
type Market struct {
	Price             float64
	MarketCap         int64
	FDV               int64
	TVL               int64
	CirculatingSupply float64
	TotalSupply       float64
}

// Protocol is the chain and exchange metadata group.
type Protocol struct {
	BlockNumber uint64
	BaseFee     uint64
	// AssistanceFundValue is the account value of the reference fund.
	AssistanceFundValue float64
	SpotTokens          int
	// PerpTokens excludes delisted assets.
	PerpTokens int
}

// Vault is the parsed view of a vault's details.
type Vault struct {
	Value            float64
	PnL              float64
	APR              float64
	LeaderFraction   float64
	LeaderCommission float64
	Followers        int
	MaxDistributable float64
	MaxWithdrawable  float64
	IsClosed         bool
	AllowDeposits    bool
}

// User is the parsed view of one account.
type User struct {
	AccountValue             float64
	PnL                      float64
	StakingDelegated         float64
	StakingUndelegated       float64
	StakingPendingWithdrawal float64
	OpenOrders               int
	OpenOrdersValue          float64
}

// Snapshot is the complete result of one scrape. Every group is either
// fully populated from its source or left at its zero value.
type Snapshot struct {
	Market    Market
	Protocol  Protocol
	Vault     Vault
	User      User
	FetchedAt time.Time
}
