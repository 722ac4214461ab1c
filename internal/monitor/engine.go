package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/web3-frozen/hypurr-exporter/internal/config"
	"github.com/web3-frozen/hypurr-exporter/internal/metrics"
)

const defaultScrapeTimeout = 10 * time.Second

// Engine collects one Snapshot per scrape from the four registered sources.
// A source that is unconfigured or fails leaves its group at the zero value;
// no source error escapes Collect.
type Engine struct {
	logger   *slog.Logger
	timeout  time.Duration
	market   Source[Market]
	protocol Source[Protocol]
	vault    Source[Vault]
	user     Source[User]
}

// Sources groups the adapters an Engine runs. Nil entries are always skipped.
type Sources struct {
	Market   Source[Market]
	Protocol Source[Protocol]
	Vault    Source[Vault]
	User     Source[User]
}

// NewEngine returns an Engine whose Collect gives up on sources after
// timeout. A non-positive timeout uses the default.
func NewEngine(logger *slog.Logger, timeout time.Duration, src Sources) *Engine {
	if timeout <= 0 {
		timeout = defaultScrapeTimeout
	}
	e := &Engine{
		logger:   logger,
		timeout:  timeout,
		market:   src.Market,
		protocol: src.Protocol,
		vault:    src.Vault,
		user:     src.User,
	}
	for _, name := range e.SourceNames() {
		metrics.InitSource(name)
		logger.Info("registered source", "source", name)
	}
	return e
}

// SourceNames returns names of all registered sources.
func (e *Engine) SourceNames() []string {
	var names []string
	for _, s := range []interface{ Name() string }{e.market, e.protocol, e.vault, e.user} {
		if s != nil {
			names = append(names, s.Name())
		}
	}
	return names
}

// Collect runs every source concurrently and folds their results into one
// Snapshot. It always returns a complete Snapshot.
func (e *Engine) Collect(ctx context.Context, t config.Targets) Snapshot {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	log := e.logger.With("scrape_id", uuid.NewString())
	start := time.Now()

	var (
		snap Snapshot
		wg   sync.WaitGroup
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		snap.Market = collect(ctx, log, e.market, "coingecko key", t.CoinGeckoKey)
	}()
	go func() {
		defer wg.Done()
		snap.Protocol = collect(ctx, log, e.protocol, "alchemy key", t.AlchemyKey)
	}()
	go func() {
		defer wg.Done()
		snap.Vault = collect(ctx, log, e.vault, "vault address", t.VaultAddress)
	}()
	go func() {
		defer wg.Done()
		snap.User = collect(ctx, log, e.user, "user address", t.UserAddress)
	}()
	wg.Wait()

	snap.FetchedAt = time.Now()
	log.Info("scrape collected", "duration", time.Since(start).String())
	return snap
}

// collect applies the default-on-failure policy to one source.
func collect[T any](ctx context.Context, log *slog.Logger, src Source[T], keyName, key string) (out T) {
	var zero T
	if src == nil {
		return zero
	}
	name := src.Name()
	defer func() {
		if r := recover(); r != nil {
			log.Error("source panicked", "source", name, "panic", r)
			metrics.SourceFetchTotal.WithLabelValues(name, metrics.StatusError).Inc()
			out = zero
		}
	}()
	if key == "" {
		log.Info("no "+keyName+" configured, skipping source", "source", name)
		metrics.SourceFetchTotal.WithLabelValues(name, metrics.StatusSkipped).Inc()
		return zero
	}

	start := time.Now()
	v, err := src.Fetch(ctx, key)
	metrics.SourceFetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("fetch source failed", "source", name, "error", err)
		metrics.SourceFetchTotal.WithLabelValues(name, metrics.StatusError).Inc()
		return zero
	}
	metrics.SourceFetchTotal.WithLabelValues(name, metrics.StatusOK).Inc()
	return v
}
