package service

import (
	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/registry"
)

// MarketService serves pull-style price queries. Push delivery of the
// same snapshots happens through the feed hub.
type MarketService struct {
	registry *registry.Registry
}

// NewMarketService creates a new MarketService.
func NewMarketService(reg *registry.Registry) *MarketService {
	return &MarketService{registry: reg}
}

// Snapshot returns every instrument's current price in symbol order.
func (s *MarketService) Snapshot() []domain.Quote {
	return s.registry.Snapshot()
}

// GetInstrument returns one instrument with its base and current price.
func (s *MarketService) GetInstrument(symbol string) (domain.Instrument, error) {
	return s.registry.Get(symbol)
}
