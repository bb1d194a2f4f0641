package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/service"
)

// AccountHandler handles HTTP requests for account endpoints.
type AccountHandler struct {
	accountSvc *service.AccountService
	tradeSvc   *service.TradeService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc *service.AccountService, tradeSvc *service.TradeService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc, tradeSvc: tradeSvc}
}

// createAccountRequest is the JSON request body for POST /accounts.
type createAccountRequest struct {
	UserID  string  `json:"user_id"`
	Balance float64 `json:"balance"`
}

// accountResponse is the JSON response for account endpoints.
type accountResponse struct {
	UserID    string  `json:"user_id"`
	Balance   float64 `json:"balance"`
	CreatedAt string  `json:"created_at"`
}

// positionResponse is one portfolio position in the portfolio response.
type positionResponse struct {
	Symbol       string  `json:"symbol"`
	Quantity     int64   `json:"quantity"`
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`
}

// ledgerEntryResponse is one entry in the ledger response.
type ledgerEntryResponse struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Side      string  `json:"side"`
	CreatedAt string  `json:"created_at"`
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	account, err := h.accountSvc.Create(service.CreateAccountRequest{
		UserID:  req.UserID,
		Balance: req.Balance,
	})
	if err != nil {
		mapAccountError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildAccountResponse(*account))
}

// Get handles GET /accounts/{user_id}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	account, err := h.accountSvc.Get(userID)
	if err != nil {
		mapAccountError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildAccountResponse(account))
}

// Portfolio handles GET /accounts/{user_id}/portfolio.
func (h *AccountHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	positions, err := h.accountSvc.Portfolio(userID)
	if err != nil {
		mapAccountError(w, err)
		return
	}

	resp := make([]positionResponse, len(positions))
	for i, p := range positions {
		resp[i] = positionResponse{
			Symbol:       p.Symbol,
			Quantity:     p.Quantity,
			CurrentPrice: domain.CentsToDollars(p.CurrentPrice),
			MarketValue:  domain.CentsToDollars(p.MarketValue),
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"user_id":   userID,
		"positions": resp,
	})
}

// Ledger handles GET /accounts/{user_id}/ledger.
func (h *AccountHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "limit must be an integer")
			return
		}
		limit = n
	}

	entries, err := h.tradeSvc.Ledger(r.Context(), userID, limit)
	if err != nil {
		mapAccountError(w, err)
		return
	}

	resp := make([]ledgerEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = buildLedgerEntryResponse(e)
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"entries": resp,
	})
}

func buildAccountResponse(a domain.Account) accountResponse {
	return accountResponse{
		UserID:    a.UserID,
		Balance:   domain.CentsToDollars(a.Balance),
		CreatedAt: a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func buildLedgerEntryResponse(e domain.LedgerEntry) ledgerEntryResponse {
	return ledgerEntryResponse{
		ID:        e.ID,
		Symbol:    e.Symbol,
		Quantity:  e.Quantity,
		Price:     domain.CentsToDollars(e.Price),
		Side:      string(e.Side),
		CreatedAt: e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// mapAccountError maps domain errors to HTTP responses for account endpoints.
func mapAccountError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrAccountAlreadyExists):
		WriteError(w, http.StatusConflict, "account_already_exists", err.Error())
	case errors.Is(err, domain.ErrAccountNotFound):
		WriteError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "Storage is unavailable")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
