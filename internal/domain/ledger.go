package domain

import "time"

// Side indicates whether an order buys from or sells to the market.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid reports whether s is a known order side.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// LedgerEntry is the immutable audit record of one settled order.
// ID is a ULID: unique, monotonic within a process, and lexicographically
// time-sortable, so sorting by ID gives settlement order.
type LedgerEntry struct {
	ID        string
	UserID    string
	Symbol    string
	Quantity  int64
	Price     int64 // settlement price in cents
	Side      Side
	CreatedAt time.Time
}

// Notional returns the cash amount moved by the entry (price × quantity).
func (e *LedgerEntry) Notional() int64 {
	return e.Price * e.Quantity
}
