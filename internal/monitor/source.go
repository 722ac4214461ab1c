package monitor

import "context"

// Source defines the interface that every data source implements. T is the
// group of the Snapshot the source fills; key is the address or API key the
// source needs, taken from config.Targets.
type Source[T any] interface {
	// Name returns a unique identifier for this source (e.g., "vault").
	Name() string

	// Fetch collects the current state of the group.
	Fetch(ctx context.Context, key string) (T, error)
}
