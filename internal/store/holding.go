package store

import (
	"sort"
	"sync"

	"github.com/efreitasn/stocksim/internal/domain"
)

// HoldingStore is a thread-safe in-memory store for holdings, keyed by
// (user_id, symbol). A holding with quantity <= 0 never exists in the
// store: Remove deletes the record when the quantity reaches zero.
type HoldingStore struct {
	mu       sync.RWMutex
	holdings map[string]map[string]int64 // user_id → symbol → quantity
}

// NewHoldingStore creates an empty HoldingStore.
func NewHoldingStore() *HoldingStore {
	return &HoldingStore{
		holdings: make(map[string]map[string]int64),
	}
}

// Get returns the quantity held by the user in the given symbol, or
// domain.ErrNoSuchHolding if the user holds no position.
func (s *HoldingStore) Get(userID, symbol string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qty, ok := s.holdings[userID][symbol]
	if !ok {
		return 0, domain.ErrNoSuchHolding
	}
	return qty, nil
}

// Add creates the holding with the given quantity, or increments an
// existing one. It returns the new quantity.
func (s *HoldingStore) Add(userID, symbol string, quantity int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	bySymbol, ok := s.holdings[userID]
	if !ok {
		bySymbol = make(map[string]int64)
		s.holdings[userID] = bySymbol
	}
	bySymbol[symbol] += quantity
	return bySymbol[symbol]
}

// Remove decrements the holding by quantity and returns the remaining
// quantity. The record is deleted (not set to zero) when the quantity
// reaches exactly zero. It returns domain.ErrNoSuchHolding when the user
// holds no position and domain.ErrInsufficientQuantity when the held
// quantity is smaller than requested; the holding is unchanged on error.
func (s *HoldingStore) Remove(userID, symbol string, quantity int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bySymbol := s.holdings[userID]
	held, ok := bySymbol[symbol]
	if !ok {
		return 0, domain.ErrNoSuchHolding
	}
	if held < quantity {
		return 0, domain.ErrInsufficientQuantity
	}

	remaining := held - quantity
	if remaining == 0 {
		delete(bySymbol, symbol)
		if len(bySymbol) == 0 {
			delete(s.holdings, userID)
		}
		return 0, nil
	}
	bySymbol[symbol] = remaining
	return remaining, nil
}

// ListByUser returns the user's holdings sorted by symbol. Returns an
// empty slice when the user holds nothing.
func (s *HoldingStore) ListByUser(userID string) []domain.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bySymbol := s.holdings[userID]
	result := make([]domain.Holding, 0, len(bySymbol))
	for symbol, qty := range bySymbol {
		result = append(result, domain.Holding{UserID: userID, Symbol: symbol, Quantity: qty})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Symbol < result[j].Symbol
	})
	return result
}
