package sources

import (
	"context"
	"fmt"

	"github.com/web3-frozen/hypurr-exporter/internal/hyperliquid"
	"github.com/web3-frozen/hypurr-exporter/internal/monitor"
)

// Vault reads a single vault's details from the Info API.
type Vault struct {
	info *hyperliquid.Client
}

func NewVault(info *hyperliquid.Client) *Vault {
	return &Vault{info: info}
}

func (v *Vault) Name() string { return "vault" }

func (v *Vault) Fetch(ctx context.Context, vaultAddress string) (monitor.Vault, error) {
	d, err := hyperliquid.Send(ctx, v.info, hyperliquid.VaultDetails(vaultAddress))
	if err != nil {
		return monitor.Vault{}, fmt.Errorf("vault details: %w", err)
	}

	cur, err := hyperliquid.CurrentDaily(d.Portfolio)
	if err != nil {
		return monitor.Vault{}, fmt.Errorf("vault %s portfolio: %w", vaultAddress, err)
	}

	return monitor.Vault{
		Value:            cur.AccountValue,
		PnL:              cur.PnL,
		APR:              d.APR,
		LeaderFraction:   d.LeaderFraction,
		LeaderCommission: d.LeaderCommission,
		Followers:        len(d.Followers),
		MaxDistributable: d.MaxDistributable,
		MaxWithdrawable:  d.MaxWithdrawable,
		IsClosed:         d.IsClosed,
		AllowDeposits:    d.AllowDeposits,
	}, nil
}
