// Package registry holds the instrument set and is the single price
// authority: the feed simulator is its only writer and the trading engine
// settles at the same value the feed broadcasts.
package registry

import (
	"sync"

	"github.com/google/btree"

	"github.com/efreitasn/stocksim/internal/domain"
)

// Registry is a thread-safe collection of instruments ordered by symbol.
// The instrument set is fixed at construction; only current prices change.
type Registry struct {
	mu    sync.RWMutex
	items *btree.BTreeG[*domain.Instrument]
}

func instrumentLess(a, b *domain.Instrument) bool {
	return a.Symbol < b.Symbol
}

// New creates a Registry seeded with the given instruments. CurrentPrice
// starts at BasePrice when unset. Duplicate symbols keep the last entry.
func New(instruments []domain.Instrument) *Registry {
	tree := btree.NewG(2, instrumentLess)
	for _, in := range instruments {
		item := in
		if item.CurrentPrice == 0 {
			item.CurrentPrice = item.BasePrice
		}
		tree.ReplaceOrInsert(&item)
	}
	return &Registry{items: tree}
}

// Get returns a copy of the instrument for the given symbol, or
// domain.ErrInstrumentNotFound.
func (r *Registry) Get(symbol string) (domain.Instrument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items.Get(&domain.Instrument{Symbol: symbol})
	if !ok {
		return domain.Instrument{}, domain.ErrInstrumentNotFound
	}
	return *item, nil
}

// Price returns the current price for the given symbol, or
// domain.ErrInstrumentNotFound.
func (r *Registry) Price(symbol string) (int64, error) {
	in, err := r.Get(symbol)
	if err != nil {
		return 0, err
	}
	return in.CurrentPrice, nil
}

// Snapshot returns every instrument's current price in symbol order.
// The snapshot is taken under one read lock, so it never interleaves with
// a partially applied tick.
func (r *Registry) Snapshot() []domain.Quote {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quotes := make([]domain.Quote, 0, r.items.Len())
	r.items.Ascend(func(item *domain.Instrument) bool {
		quotes = append(quotes, domain.Quote{Symbol: item.Symbol, Price: item.CurrentPrice})
		return true
	})
	return quotes
}

// ApplyTick sets every instrument's current price to next(symbol, price)
// under a single write lock: readers see either the whole tick or none
// of it. Only the feed simulator calls this.
func (r *Registry) ApplyTick(next func(symbol string, price int64) int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items.Ascend(func(item *domain.Instrument) bool {
		item.CurrentPrice = next(item.Symbol, item.CurrentPrice)
		return true
	})
}

// Len returns the number of registered instruments.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items.Len()
}
