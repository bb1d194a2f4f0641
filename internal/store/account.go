package store

import (
	"sync"

	"github.com/efreitasn/stocksim/internal/domain"
)

// AccountStore is a thread-safe in-memory store for accounts,
// keyed by user_id.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

// Create adds an account to the store. It returns
// domain.ErrAccountAlreadyExists if the user_id is taken.
func (s *AccountStore) Create(a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[a.UserID]; exists {
		return domain.ErrAccountAlreadyExists
	}
	s.accounts[a.UserID] = a
	return nil
}

// Get returns a copy of the account, or domain.ErrAccountNotFound.
func (s *AccountStore) Get(userID string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[userID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return *a, nil
}

// Exists returns true if an account with the given user_id exists.
func (s *AccountStore) Exists(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[userID]
	return ok
}

// Debit subtracts amount cents from the account's balance and returns the
// new balance. It returns domain.ErrInsufficientFunds when the balance
// would go negative; the balance is left unchanged on any error.
func (s *AccountStore) Debit(userID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[userID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if a.Balance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	a.Balance -= amount
	return a.Balance, nil
}

// Credit adds amount cents to the account's balance and returns the
// new balance.
func (s *AccountStore) Credit(userID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[userID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	a.Balance += amount
	return a.Balance, nil
}
