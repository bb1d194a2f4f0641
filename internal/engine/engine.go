// Package engine contains the trading engine: the sole entry point for
// mutating account, holding, and ledger state in response to buy/sell
// orders, with all-or-nothing semantics per order.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/registry"
	"github.com/efreitasn/stocksim/internal/store"
)

// MaxOrderQuantity bounds a single order. Keeps price×quantity far from
// int64 overflow for any plausible price.
const MaxOrderQuantity = 1_000_000

// appendRetries bounds transparent retries of the ledger append on
// storage conflicts before surfacing ErrTransientFailure.
const appendRetries = 3

// OrderRequest is a buy or sell intent against the market.
type OrderRequest struct {
	UserID   string
	Symbol   string
	Quantity int64
	Side     domain.Side
}

// OrderResult reports the committed outcome of an order. HoldingQuantity
// is the user's position in the instrument after settlement (0 when the
// sell closed the position and the holding record was deleted).
type OrderResult struct {
	Entry           domain.LedgerEntry
	NewBalance      int64
	HoldingQuantity int64
}

// Engine orchestrates order execution. The registry it reads settlement
// prices from is the same price authority the feed broadcasts, so the
// price charged is the price displayed at the execution instant.
//
// The engine provides no idempotency key: a caller that retries after a
// network failure may double-execute. Callers needing exactly-once
// semantics must deduplicate upstream.
type Engine struct {
	accounts *store.AccountStore
	holdings *store.HoldingStore
	ledger   *store.LedgerStore
	registry *registry.Registry
	locks    *accountLocks
}

// New creates an Engine over the given stores and price authority.
func New(accounts *store.AccountStore, holdings *store.HoldingStore, ledger *store.LedgerStore, reg *registry.Registry) *Engine {
	return &Engine{
		accounts: accounts,
		holdings: holdings,
		ledger:   ledger,
		registry: reg,
		locks:    newAccountLocks(),
	}
}

// ExecuteOrder validates the request, reads the settlement price once, and
// applies the three mutations (balance, holding, ledger entry) as one
// atomic unit under the account's lock. A rejected or failed order leaves
// all three stores unchanged.
func (e *Engine) ExecuteOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	// Preconditions, before any state access.
	if !req.Side.Valid() {
		return nil, &domain.ValidationError{Message: "side must be 'BUY' or 'SELL'"}
	}
	if req.Quantity <= 0 {
		return nil, &domain.ValidationError{Message: "quantity must be a positive integer"}
	}
	if req.Quantity > MaxOrderQuantity {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("quantity must be at most %d", MaxOrderQuantity)}
	}
	if _, err := e.registry.Get(req.Symbol); err != nil {
		return nil, err
	}
	if !e.accounts.Exists(req.UserID) {
		return nil, domain.ErrAccountNotFound
	}

	// Serialize per account. Orders for other accounts do not contend,
	// and the tick loop never takes this lock.
	lock := e.locks.get(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	// A cancelled order must leave no partial state; bail before the
	// first mutation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Settlement price: one read, at the execution instant, from the same
	// authority the feed publishes.
	price, err := e.registry.Price(req.Symbol)
	if err != nil {
		return nil, err
	}

	if req.Side == domain.SideBuy {
		return e.buy(ctx, req, price)
	}
	return e.sell(ctx, req, price)
}

func (e *Engine) buy(ctx context.Context, req OrderRequest, price int64) (*OrderResult, error) {
	cost := price * req.Quantity

	newBalance, err := e.accounts.Debit(req.UserID, cost)
	if err != nil {
		return nil, err
	}
	newQuantity := e.holdings.Add(req.UserID, req.Symbol, req.Quantity)

	entry := e.newEntry(req, price)
	if err := e.appendWithRetry(ctx, &entry); err != nil {
		// Roll back under the still-held account lock so no other
		// operation observes the partial order.
		e.accounts.Credit(req.UserID, cost)
		e.holdings.Remove(req.UserID, req.Symbol, req.Quantity)
		return nil, err
	}

	return &OrderResult{Entry: entry, NewBalance: newBalance, HoldingQuantity: newQuantity}, nil
}

func (e *Engine) sell(ctx context.Context, req OrderRequest, price int64) (*OrderResult, error) {
	remaining, err := e.holdings.Remove(req.UserID, req.Symbol, req.Quantity)
	if err != nil {
		return nil, err
	}
	proceeds := price * req.Quantity
	newBalance, err := e.accounts.Credit(req.UserID, proceeds)
	if err != nil {
		e.holdings.Add(req.UserID, req.Symbol, req.Quantity)
		return nil, err
	}

	entry := e.newEntry(req, price)
	if err := e.appendWithRetry(ctx, &entry); err != nil {
		e.accounts.Debit(req.UserID, proceeds)
		e.holdings.Add(req.UserID, req.Symbol, req.Quantity)
		return nil, err
	}

	return &OrderResult{Entry: entry, NewBalance: newBalance, HoldingQuantity: remaining}, nil
}

func (e *Engine) newEntry(req OrderRequest, price int64) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:        domain.NewID(),
		UserID:    req.UserID,
		Symbol:    req.Symbol,
		Quantity:  req.Quantity,
		Price:     price,
		Side:      req.Side,
		CreatedAt: time.Now().UTC(),
	}
}

// appendWithRetry commits the ledger entry, transparently retrying
// storage conflicts up to appendRetries times before surfacing
// ErrTransientFailure.
func (e *Engine) appendWithRetry(ctx context.Context, entry *domain.LedgerEntry) error {
	var err error
	for attempt := 0; attempt <= appendRetries; attempt++ {
		err = e.ledger.Append(ctx, entry)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrStorageConflict) {
			return err
		}
	}
	return fmt.Errorf("%w: ledger append kept conflicting: %v", domain.ErrTransientFailure, err)
}
