// Package feed contains the price feed simulator: a background loop that
// perturbs every instrument's price on a fixed cadence and publishes the
// resulting snapshot to observers.
package feed

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/efreitasn/stocksim/internal/registry"
)

// Simulator advances instrument prices with a bounded symmetric random
// walk. Each tick commits a full snapshot through the registry's single
// write lock and broadcasts it through the hub; it reads no state besides
// the previous prices.
type Simulator struct {
	interval time.Duration
	maxDelta int64 // cents, per tick, per instrument
	floor    int64 // cents, minimum price
	registry *registry.Registry
	hub      *Hub

	mu  sync.Mutex // protects rng
	rng *rand.Rand
}

// NewSimulator creates a Simulator. hub may be nil when no push delivery
// is wanted (e.g. in tests).
func NewSimulator(interval time.Duration, maxDelta, floor int64, reg *registry.Registry, hub *Hub) *Simulator {
	return &Simulator{
		interval: interval,
		maxDelta: maxDelta,
		floor:    floor,
		registry: reg,
		hub:      hub,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Start launches a background goroutine that ticks at the configured
// interval. It stops when ctx is cancelled.
func (s *Simulator) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

// tick applies currentPrice = max(floor, currentPrice + delta) to every
// instrument as one atomic commit, then broadcasts the new snapshot.
func (s *Simulator) tick() {
	s.registry.ApplyTick(func(_ string, price int64) int64 {
		next := price + s.delta()
		if next < s.floor {
			next = s.floor
		}
		return next
	})

	if s.hub != nil {
		s.hub.Broadcast(s.registry.Snapshot())
	}
}

// delta draws uniformly from [-maxDelta, +maxDelta].
func (s *Simulator) delta() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int64N(2*s.maxDelta+1) - s.maxDelta
}
