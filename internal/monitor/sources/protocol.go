package sources

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/web3-frozen/hypurr-exporter/internal/evm"
	"github.com/web3-frozen/hypurr-exporter/internal/hyperliquid"
	"github.com/web3-frozen/hypurr-exporter/internal/monitor"
)

// AssistanceFundAddress is the Hyperliquid Assistance Fund account.
const AssistanceFundAddress = "0xfefefefefefefefefefefefefefefefefefefefe"

// Protocol combines HyperEVM chain state with exchange-wide metadata.
type Protocol struct {
	info *hyperliquid.Client
	rpc  *evm.Client
}

func NewProtocol(info *hyperliquid.Client, rpc *evm.Client) *Protocol {
	return &Protocol{info: info, rpc: rpc}
}

func (p *Protocol) Name() string { return "protocol" }

func (p *Protocol) Fetch(ctx context.Context, alchemyKey string) (monitor.Protocol, error) {
	var out monitor.Protocol
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.BlockNumber, err = p.rpc.BlockNumber(gctx, alchemyKey)
		return err
	})
	g.Go(func() (err error) {
		out.BaseFee, err = p.rpc.GasPrice(gctx, alchemyKey)
		return err
	})
	g.Go(func() error {
		portfolio, err := hyperliquid.Send(gctx, p.info, hyperliquid.Portfolio(AssistanceFundAddress))
		if err != nil {
			return fmt.Errorf("assistance fund portfolio: %w", err)
		}
		day, err := hyperliquid.DailyEntry(portfolio)
		if err != nil {
			return fmt.Errorf("assistance fund portfolio: %w", err)
		}
		out.AssistanceFundValue, err = hyperliquid.LatestValue("accountValueHistory", day.Data.AccountValueHistory)
		if err != nil {
			return fmt.Errorf("assistance fund portfolio: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		spot, err := hyperliquid.Send(gctx, p.info, hyperliquid.SpotMeta())
		if err != nil {
			return fmt.Errorf("spot meta: %w", err)
		}
		out.SpotTokens = len(spot.Tokens)
		return nil
	})
	g.Go(func() error {
		perp, err := hyperliquid.Send(gctx, p.info, hyperliquid.Meta())
		if err != nil {
			return fmt.Errorf("perp meta: %w", err)
		}
		out.PerpTokens = countListed(perp.Universe)
		return nil
	})

	if err := g.Wait(); err != nil {
		return monitor.Protocol{}, err
	}
	return out, nil
}

func countListed(universe []hyperliquid.PerpAsset) int {
	n := 0
	for _, a := range universe {
		if a.Listed() {
			n++
		}
	}
	return n
}
