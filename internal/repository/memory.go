// Package repository provides the in-memory data layer. Collections live in
// mutex-guarded maps keyed by ID, are seeded from embedded JSON, and every
// operation returns copies so callers can never mutate the stored records.
// A configurable artificial latency stands in for the network round-trip a
// real backend would cost.
package repository

import (
	"context"
	"time"
)

// simulateLatency blocks for d or until the context is done, whichever comes
// first. A non-positive d only checks the context.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
