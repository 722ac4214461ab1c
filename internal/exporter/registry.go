// Package exporter owns the process-wide registry that a scrape's Snapshot
// is written into and rendered from.
package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"

	"github.com/web3-frozen/hypurr-exporter/internal/metrics"
	"github.com/web3-frozen/hypurr-exporter/internal/monitor"
)

// ErrRegistry marks a registration or gauge lookup failure. It is the only
// error a scrape surfaces to its caller.
var ErrRegistry = errors.New("registry error")

var textFormat = expfmt.NewFormat(expfmt.TypeTextPlain)

// Registry holds the exported gauges for the process lifetime.
type Registry struct {
	reg *prometheus.Registry

	mu     sync.Mutex
	gauges map[string]prometheus.Gauge
}

// NewRegistry registers every gauge, the exporter's own collectors and the
// Go runtime collectors. Every gauge carries the process start time as its
// "timestamp" label.
func NewRegistry(startedAt time.Time) (*Registry, error) {
	r := &Registry{
		reg:    prometheus.NewRegistry(),
		gauges: make(map[string]prometheus.Gauge, len(instruments)),
	}
	labels := prometheus.Labels{"timestamp": startedAt.UTC().Format("2006-01-02 15:04:05.999999999 UTC")}

	for _, in := range instruments {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        in.name,
			Help:        in.help,
			ConstLabels: labels,
		})
		if err := r.reg.Register(g); err != nil {
			return nil, fmt.Errorf("%w: register %s: %v", ErrRegistry, in.name, err)
		}
		r.gauges[in.name] = g
	}

	own := append(metrics.Collectors(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, c := range own {
		if err := r.reg.Register(c); err != nil {
			return nil, fmt.Errorf("%w: register collector: %v", ErrRegistry, err)
		}
	}
	return r, nil
}

// Update overwrites every gauge from s. On error no gauge is touched.
func (r *Registry) Update(s monitor.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	gauges := make([]prometheus.Gauge, len(instruments))
	for i, in := range instruments {
		g, ok := r.gauges[in.name]
		if !ok {
			return fmt.Errorf("%w: gauge %s not registered", ErrRegistry, in.name)
		}
		gauges[i] = g
	}
	for i, in := range instruments {
		gauges[i].Set(in.value(&s))
	}
	return nil
}

// Render encodes every registered metric in the text exposition format.
func (r *Registry) Render() ([]byte, error) {
	mfs, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("%w: gather: %v", ErrRegistry, err)
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, textFormat)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return nil, fmt.Errorf("%w: encode %s: %v", ErrRegistry, mf.GetName(), err)
		}
	}
	return buf.Bytes(), nil
}

// ContentType is the media type of Render's output.
func (r *Registry) ContentType() string { return string(textFormat) }
