package service

import (
	"context"
	"regexp"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/engine"
	"github.com/efreitasn/stocksim/internal/store"
)

var tradeSymbolRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)

// PlaceOrderRequest represents the input for order placement.
type PlaceOrderRequest struct {
	UserID   string
	Symbol   string
	Quantity int64
	Side     string
}

// TradeService validates order requests, hands them to the engine, and
// serves the ledger read model.
type TradeService struct {
	engine   *engine.Engine
	ledger   *store.LedgerStore
	accounts *store.AccountStore
}

// NewTradeService creates a new TradeService.
func NewTradeService(eng *engine.Engine, ledger *store.LedgerStore, accounts *store.AccountStore) *TradeService {
	return &TradeService{
		engine:   eng,
		ledger:   ledger,
		accounts: accounts,
	}
}

// PlaceOrder validates the request shape and executes it. Business-rule
// rejections (insufficient funds, no such holding, insufficient quantity)
// come back verbatim from the engine with no state mutated.
func (s *TradeService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*engine.OrderResult, error) {
	if !userIDRegex.MatchString(req.UserID) {
		return nil, &domain.ValidationError{
			Message: "user_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if !tradeSymbolRegex.MatchString(req.Symbol) {
		return nil, &domain.ValidationError{
			Message: "symbol must match ^[A-Z]{1,10}$",
		}
	}

	return s.engine.ExecuteOrder(ctx, engine.OrderRequest{
		UserID:   req.UserID,
		Symbol:   req.Symbol,
		Quantity: req.Quantity,
		Side:     domain.Side(req.Side),
	})
}

// Ledger returns up to limit of the user's ledger entries, newest first.
// limit defaults to 50 and is capped at 100.
func (s *TradeService) Ledger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if !s.accounts.Exists(userID) {
		return nil, domain.ErrAccountNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		return nil, &domain.ValidationError{
			Message: "limit must be between 1 and 100",
		}
	}
	return s.ledger.ListByUser(ctx, userID, limit)
}
