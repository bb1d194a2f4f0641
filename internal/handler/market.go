package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/service"
)

// MarketHandler handles pull-style price queries.
type MarketHandler struct {
	marketSvc *service.MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketSvc *service.MarketService) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// quoteResponse is one instrument's price in the snapshot response.
type quoteResponse struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// instrumentResponse is the JSON response for a single instrument.
type instrumentResponse struct {
	Symbol       string  `json:"symbol"`
	BasePrice    float64 `json:"base_price"`
	CurrentPrice float64 `json:"current_price"`
}

// Snapshot handles GET /prices.
func (h *MarketHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, buildQuoteResponses(h.marketSvc.Snapshot()))
}

// GetInstrument handles GET /instruments/{symbol}.
func (h *MarketHandler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	in, err := h.marketSvc.GetInstrument(symbol)
	if err != nil {
		if errors.Is(err, domain.ErrInstrumentNotFound) {
			WriteError(w, http.StatusNotFound, "instrument_not_found", err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, instrumentResponse{
		Symbol:       in.Symbol,
		BasePrice:    domain.CentsToDollars(in.BasePrice),
		CurrentPrice: domain.CentsToDollars(in.CurrentPrice),
	})
}

func buildQuoteResponses(quotes []domain.Quote) []quoteResponse {
	resp := make([]quoteResponse, len(quotes))
	for i, q := range quotes {
		resp[i] = quoteResponse{
			Symbol: q.Symbol,
			Price:  domain.CentsToDollars(q.Price),
		}
	}
	return resp
}
