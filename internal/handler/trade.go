package handler

import (
	"errors"
	"net/http"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/service"
)

// TradeHandler handles HTTP requests for order placement.
type TradeHandler struct {
	tradeSvc *service.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeSvc *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeSvc: tradeSvc}
}

// placeOrderRequest is the JSON request body for POST /orders.
type placeOrderRequest struct {
	UserID   string `json:"user_id"`
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
	Side     string `json:"side"`
}

// orderResponse is the JSON response for a settled order.
type orderResponse struct {
	LedgerEntryID   string  `json:"ledger_entry_id"`
	UserID          string  `json:"user_id"`
	Symbol          string  `json:"symbol"`
	Quantity        int64   `json:"quantity"`
	Side            string  `json:"side"`
	Price           float64 `json:"price"`
	NewBalance      float64 `json:"new_balance"`
	HoldingQuantity int64   `json:"holding_quantity"`
	SettledAt       string  `json:"settled_at"`
}

// PlaceOrder handles POST /orders.
func (h *TradeHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.tradeSvc.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		UserID:   req.UserID,
		Symbol:   req.Symbol,
		Quantity: req.Quantity,
		Side:     req.Side,
	})
	if err != nil {
		mapOrderError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, orderResponse{
		LedgerEntryID:   result.Entry.ID,
		UserID:          result.Entry.UserID,
		Symbol:          result.Entry.Symbol,
		Quantity:        result.Entry.Quantity,
		Side:            string(result.Entry.Side),
		Price:           domain.CentsToDollars(result.Entry.Price),
		NewBalance:      domain.CentsToDollars(result.NewBalance),
		HoldingQuantity: result.HoldingQuantity,
		SettledAt:       result.Entry.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// mapOrderError maps domain errors to HTTP responses for order endpoints.
func mapOrderError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		WriteError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, domain.ErrInstrumentNotFound):
		WriteError(w, http.StatusNotFound, "instrument_not_found", err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		WriteError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, domain.ErrNoSuchHolding):
		WriteError(w, http.StatusConflict, "no_such_holding", err.Error())
	case errors.Is(err, domain.ErrInsufficientQuantity):
		WriteError(w, http.StatusConflict, "insufficient_quantity", err.Error())
	case errors.Is(err, domain.ErrTransientFailure):
		WriteError(w, http.StatusServiceUnavailable, "transient_failure", "Order could not be committed, final state unknown until the ledger is re-queried")
	case errors.Is(err, domain.ErrStorageUnavailable):
		WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "Storage is unavailable")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
