package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceLevel is one row of a book side.
type PriceLevel struct {
	Price      decimal.Decimal `json:"price"`
	Quantity   decimal.Decimal `json:"quantity"`
	OrderCount int             `json:"order_count"`
}

// Spread is derived by the backend from the top of both sides. Percentage is
// display-only, so it stays a plain float.
type Spread struct {
	BestBid    decimal.Decimal `json:"best_bid"`
	BestAsk    decimal.Decimal `json:"best_ask"`
	Absolute   decimal.Decimal `json:"absolute"`
	Percentage float64         `json:"percentage"`
}

// OrderBookSnapshot is the full book state for one instrument. Every poll
// replaces the previous snapshot wholesale; bids arrive sorted descending,
// asks ascending. The level slices are never mutated in place, only swapped
// along with the struct.
type OrderBookSnapshot struct {
	Instrument Instrument   `json:"instrument"`
	Bids       []PriceLevel `json:"bids"`
	Asks       []PriceLevel `json:"asks"`
	Spread     *Spread      `json:"spread"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// TopLevels returns at most limit rows of a side without touching the
// underlying slice.
func TopLevels(side []PriceLevel, limit int) []PriceLevel {
	if limit > 0 && len(side) > limit {
		return side[:limit]
	}
	return side
}
