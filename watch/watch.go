// Package watch provides the cancellable periodic fetch loop behind the
// live dashboard and alerts views.
package watch

import (
	"context"
	"time"
)

// DefaultInterval matches the dashboard's refresh cadence.
const DefaultInterval = 10 * time.Second

// Result is one completed fetch. Seq is the issue order of the fetch that
// produced it.
type Result[T any] struct {
	Value T
	Err   error
	Seq   uint64
}

// Poller repeatedly runs a fetch function on a fixed interval.
type Poller[T any] struct {
	interval time.Duration
	fetch    func(context.Context) (T, error)
}

// New creates a Poller. A non-positive interval falls back to
// DefaultInterval.
func New[T any](interval time.Duration, fetch func(context.Context) (T, error)) *Poller[T] {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller[T]{interval: interval, fetch: fetch}
}

// Run fetches immediately and then on every tick until ctx is cancelled.
// Fetches may overlap when one runs long; a result is delivered only if no
// result from a later-issued fetch has been delivered yet, so a view never
// renders data from an earlier-issued, later-arriving response. The
// returned channel is closed when ctx is cancelled — nothing is delivered
// to a torn-down view.
func (p *Poller[T]) Run(ctx context.Context) <-chan Result[T] {
	out := make(chan Result[T])
	results := make(chan Result[T])

	launch := func(seq uint64) {
		go func() {
			v, err := p.fetch(ctx)
			select {
			case results <- Result[T]{Value: v, Err: err, Seq: seq}:
			case <-ctx.Done():
			}
		}()
	}

	go func() {
		defer close(out)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		var issued, newest uint64
		issued++
		launch(issued)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				issued++
				launch(issued)
			case r := <-results:
				if r.Seq <= newest {
					continue // superseded by a later-issued fetch
				}
				newest = r.Seq
				select {
				case out <- r:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
