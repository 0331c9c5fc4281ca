package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade as returned by the trades endpoint.
type Trade struct {
	ID               int64           `json:"id"`
	TradeID          string          `json:"trade_id"`
	InstrumentID     int64           `json:"instrument"`
	InstrumentSymbol string          `json:"instrument_symbol"`
	Quantity         decimal.Decimal `json:"quantity"`
	TradeValue       decimal.Decimal `json:"trade_value"`
	CreatedAt        time.Time       `json:"created_at"`
}
