package exporter

import "github.com/web3-frozen/hypurr-exporter/internal/monitor"

type instrument struct {
	name  string
	help  string
	value func(s *monitor.Snapshot) float64
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// instruments is the fixed set of exported gauges, in exposition order.
var instruments = []instrument{
	// Token market
	{"hyperliquid_price", "The current market price of the Hyperliquid token (HYPE) in USD",
		func(s *monitor.Snapshot) float64 { return s.Market.Price }},
	{"hyperliquid_marketcap", "The total market value of Hyperliquid's circulating supply",
		func(s *monitor.Snapshot) float64 { return float64(s.Market.MarketCap) }},
	{"hyperliquid_fdv", "The theoretical market capitalization of a coin if the entirety of its supply is in circulation, based on its current market price",
		func(s *monitor.Snapshot) float64 { return float64(s.Market.FDV) }},
	{"hyperliquid_tvl", "Capital deposited into the platform in the form of loan collateral or liquidity trading pool",
		func(s *monitor.Snapshot) float64 { return float64(s.Market.TVL) }},
	{"hyperliquid_circulating_supply", "The amount of coins that are circulating in the market and are tradeable by the public",
		func(s *monitor.Snapshot) float64 { return s.Market.CirculatingSupply }},
	{"hyperliquid_total_supply", "The amount of coins that have already been created, minus any coins that have been burned",
		func(s *monitor.Snapshot) float64 { return s.Market.TotalSupply }},

	// Protocol
	{"hyperliquid_block_number", "The current block number of the HyperEVM",
		func(s *monitor.Snapshot) float64 { return float64(s.Protocol.BlockNumber) }},
	{"hyperliquid_base_fee", "The current base fee for the next small block on HyperEVM",
		func(s *monitor.Snapshot) float64 { return float64(s.Protocol.BaseFee) }},
	{"hyperliquid_af_account_value", "The current account value of the Hyperliquid Assistance Fund",
		func(s *monitor.Snapshot) float64 { return s.Protocol.AssistanceFundValue }},
	{"hyperliquid_num_spot_tokens", "The current number of spot tokens on Hyperliquid",
		func(s *monitor.Snapshot) float64 { return float64(s.Protocol.SpotTokens) }},
	{"hyperliquid_num_perp_tokens", "The current number of perp tokens on Hyperliquid",
		func(s *monitor.Snapshot) float64 { return float64(s.Protocol.PerpTokens) }},

	// Vault
	{"vault_value", "The total value locked (TVL) of the vault",
		func(s *monitor.Snapshot) float64 { return s.Vault.Value }},
	{"vault_pnl", "The profitability of the vault",
		func(s *monitor.Snapshot) float64 { return s.Vault.PnL }},
	{"vault_apr", "The annual percentage rate (APR) for the vault",
		func(s *monitor.Snapshot) float64 { return s.Vault.APR }},
	{"vault_leader_fraction", "The fraction of the vault controlled or owned by the leader",
		func(s *monitor.Snapshot) float64 { return s.Vault.LeaderFraction }},
	{"vault_leader_comission", "The commission that the leader earns",
		func(s *monitor.Snapshot) float64 { return s.Vault.LeaderCommission }},
	{"vault_num_followers", "The number of followers of the vault",
		func(s *monitor.Snapshot) float64 { return float64(s.Vault.Followers) }},
	{"vault_max_distributable", "The maximum amount that can be distributed from the vault",
		func(s *monitor.Snapshot) float64 { return s.Vault.MaxDistributable }},
	{"vault_max_withdrawable", "The maximum amount that can be withdrawn from the vault",
		func(s *monitor.Snapshot) float64 { return s.Vault.MaxWithdrawable }},
	{"vault_is_closed", "A flag indicating whether the vault is closed or not",
		func(s *monitor.Snapshot) float64 { return boolGauge(s.Vault.IsClosed) }},
	{"vault_allow_deposits", "A flag indicating whether new deposits are allowed into the vault",
		func(s *monitor.Snapshot) float64 { return boolGauge(s.Vault.AllowDeposits) }},

	// User
	{"user_account_value", "The value of the user wallet",
		func(s *monitor.Snapshot) float64 { return s.User.AccountValue }},
	{"user_pnl", "The profitability of the user",
		func(s *monitor.Snapshot) float64 { return s.User.PnL }},
	{"user_staking_delegated", "The value of funds delegated to stakers",
		func(s *monitor.Snapshot) float64 { return s.User.StakingDelegated }},
	{"user_staking_undelegated", "The value of funds undelegated from stakers",
		func(s *monitor.Snapshot) float64 { return s.User.StakingUndelegated }},
	{"user_staking_pending_withdrawal", "The value of funds which are waiting be unstaked",
		func(s *monitor.Snapshot) float64 { return s.User.StakingPendingWithdrawal }},
	{"user_num_open_orders", "The number of open orders by a user",
		func(s *monitor.Snapshot) float64 { return float64(s.User.OpenOrders) }},
	{"user_value_open_orders", "The value of open orders by a user",
		func(s *monitor.Snapshot) float64 { return s.User.OpenOrdersValue }},
}

// Names returns the exported gauge names in exposition order.
func Names() []string {
	names := make([]string, len(instruments))
	for i, in := range instruments {
		names[i] = in.name
	}
	return names
}
