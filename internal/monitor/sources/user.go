package sources

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/web3-frozen/hypurr-exporter/internal/hyperliquid"
	"github.com/web3-frozen/hypurr-exporter/internal/monitor"
	"github.com/web3-frozen/hypurr-exporter/internal/upstream"
)

// User reads portfolio, staking and open orders of one account.
type User struct {
	info *hyperliquid.Client
}

func NewUser(info *hyperliquid.Client) *User {
	return &User{info: info}
}

func (u *User) Name() string { return "user" }

func (u *User) Fetch(ctx context.Context, user string) (monitor.User, error) {
	var (
		portfolio []hyperliquid.PortfolioEntry
		staking   hyperliquid.DelegatorSummaryResponse
		orders    []hyperliquid.OpenOrder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		portfolio, err = hyperliquid.Send(gctx, u.info, hyperliquid.Portfolio(user))
		if err != nil {
			return fmt.Errorf("portfolio: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		staking, err = hyperliquid.Send(gctx, u.info, hyperliquid.DelegatorSummary(user))
		if err != nil {
			return fmt.Errorf("delegator summary: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		orders, err = hyperliquid.Send(gctx, u.info, hyperliquid.OpenOrders(user))
		if err != nil {
			return fmt.Errorf("open orders: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return monitor.User{}, fmt.Errorf("user %s: %w", user, err)
	}

	cur, err := hyperliquid.CurrentDaily(portfolio)
	if err != nil {
		return monitor.User{}, fmt.Errorf("user %s portfolio: %w", user, err)
	}

	out := monitor.User{
		AccountValue:    cur.AccountValue,
		PnL:             cur.PnL,
		OpenOrders:      len(orders),
		OpenOrdersValue: openOrdersValue(orders),
	}
	if out.StakingDelegated, err = upstream.ParseDecimal("delegated", staking.Delegated); err != nil {
		return monitor.User{}, fmt.Errorf("delegator summary: %w", err)
	}
	if out.StakingUndelegated, err = upstream.ParseDecimal("undelegated", staking.Undelegated); err != nil {
		return monitor.User{}, fmt.Errorf("delegator summary: %w", err)
	}
	if out.StakingPendingWithdrawal, err = upstream.ParseDecimal("totalPendingWithdrawal", staking.TotalPendingWithdrawal); err != nil {
		return monitor.User{}, fmt.Errorf("delegator summary: %w", err)
	}
	return out, nil
}

// openOrdersValue sums limitPx*sz. Orders whose price or size does not parse
// are left out of the sum but still counted as open.
func openOrdersValue(orders []hyperliquid.OpenOrder) float64 {
	total := decimal.Zero
	for _, o := range orders {
		px, err := decimal.NewFromString(o.LimitPx)
		if err != nil {
			continue
		}
		sz, err := decimal.NewFromString(o.Sz)
		if err != nil {
			continue
		}
		total = total.Add(px.Mul(sz))
	}
	return total.InexactFloat64()
}
