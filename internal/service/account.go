package service

import (
	"regexp"
	"time"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/registry"
	"github.com/efreitasn/stocksim/internal/store"
)

var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// CreateAccountRequest represents the input for account provisioning.
type CreateAccountRequest struct {
	UserID  string
	Balance float64 // dollars
}

// PortfolioPosition is one holding joined with the instrument's current
// price for display.
type PortfolioPosition struct {
	Symbol       string
	Quantity     int64
	CurrentPrice int64 // cents
	MarketValue  int64 // cents, CurrentPrice × Quantity
}

// AccountService handles account provisioning and read models.
type AccountService struct {
	accounts *store.AccountStore
	holdings *store.HoldingStore
	registry *registry.Registry
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts *store.AccountStore, holdings *store.HoldingStore, reg *registry.Registry) *AccountService {
	return &AccountService{
		accounts: accounts,
		holdings: holdings,
		registry: reg,
	}
}

// Create validates the request and provisions a new account.
func (s *AccountService) Create(req CreateAccountRequest) (*domain.Account, error) {
	if !userIDRegex.MatchString(req.UserID) {
		return nil, &domain.ValidationError{
			Message: "user_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if req.Balance < 0 {
		return nil, &domain.ValidationError{
			Message: "balance must be >= 0",
		}
	}
	cents, err := domain.DollarsToCents(req.Balance)
	if err != nil {
		return nil, &domain.ValidationError{
			Message: "balance must have at most 2 decimal places",
		}
	}

	account := &domain.Account{
		UserID:    req.UserID,
		Balance:   cents,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.accounts.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

// Get returns the account with its live balance.
func (s *AccountService) Get(userID string) (domain.Account, error) {
	return s.accounts.Get(userID)
}

// Portfolio returns the user's holdings joined with current prices, in
// symbol order. An instrument missing from the registry is skipped; the
// registry's instrument set is fixed at startup, so holdings can only
// reference known symbols.
func (s *AccountService) Portfolio(userID string) ([]PortfolioPosition, error) {
	if !s.accounts.Exists(userID) {
		return nil, domain.ErrAccountNotFound
	}

	holdings := s.holdings.ListByUser(userID)
	positions := make([]PortfolioPosition, 0, len(holdings))
	for _, h := range holdings {
		price, err := s.registry.Price(h.Symbol)
		if err != nil {
			continue
		}
		positions = append(positions, PortfolioPosition{
			Symbol:       h.Symbol,
			Quantity:     h.Quantity,
			CurrentPrice: price,
			MarketValue:  price * h.Quantity,
		})
	}
	return positions, nil
}
