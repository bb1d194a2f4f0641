package domain

// Instrument is a tradable symbol with its reference prices.
// BasePrice is the seeded starting price; CurrentPrice is advanced by the
// price feed simulator and is the price every order settles at.
// All prices are in integer cents.
type Instrument struct {
	Symbol       string
	BasePrice    int64
	CurrentPrice int64
}

// Quote is one instrument's current price as published by the feed.
type Quote struct {
	Symbol string
	Price  int64 // cents
}
