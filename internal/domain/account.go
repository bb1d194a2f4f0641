package domain

import "time"

// Account holds a user's cash balance in cents. Balance is mutated only by
// the trading engine inside its per-account critical section and never goes
// negative as the result of an order.
type Account struct {
	UserID    string
	Balance   int64 // cents
	CreatedAt time.Time
}

// Holding is a user's position in a single instrument. Quantity is always
// > 0 in storage: a decrement that reaches zero deletes the record.
type Holding struct {
	UserID   string
	Symbol   string
	Quantity int64
}
