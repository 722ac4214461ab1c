package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/web3-frozen/hypurr-exporter/internal/config"
	"github.com/web3-frozen/hypurr-exporter/internal/monitor"
)

// Collector produces one Snapshot per scrape.
type Collector interface {
	Collect(ctx context.Context, t config.Targets) monitor.Snapshot
}

// Exposition stores a Snapshot and renders the registry.
type Exposition interface {
	Update(s monitor.Snapshot) error
	Render() ([]byte, error)
	ContentType() string
}

// Metrics serves one scrape: collect from every source, write the gauges,
// render the exposition. Source failures never fail the request; only a
// registry failure answers 500.
func Metrics(c Collector, reg Exposition, targets config.Targets, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// A disconnecting scraper must not leave the gauges half written.
		snap := c.Collect(context.WithoutCancel(r.Context()), targets)

		if err := reg.Update(snap); err != nil {
			logger.Error("update registry failed", "error", err)
			http.Error(w, "registry error", http.StatusInternalServerError)
			return
		}
		body, err := reg.Render()
		if err != nil {
			logger.Error("render metrics failed", "error", err)
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", reg.ContentType())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		logger.Debug("scrape served",
			"fetched_at", snap.FetchedAt.UTC().Format(time.RFC3339Nano),
			"age", time.Since(snap.FetchedAt).String(),
			"bytes", len(body),
		)
	}
}
