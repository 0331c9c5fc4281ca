package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// HistoryQuery is the (page, filter) unit sent to the history endpoint.
// Empty string fields mean "no constraint".
type HistoryQuery struct {
	Page             int
	Days             string
	Status           OrderStatus
	OrderType        OrderType
	InstrumentSymbol string
}

// OrdersQuery filters the plain order listing.
type OrdersQuery struct {
	Status           OrderStatus
	OrderType        OrderType
	InstrumentSymbol string
}

// TradesQuery filters the trade listing.
type TradesQuery struct {
	InstrumentSymbol string
}

// InstrumentStatsResponse is the raw per-instrument stats payload.
type InstrumentStatsResponse struct {
	Instrument     Instrument       `json:"instrument"`
	OrderCount     int              `json:"order_count"`
	ActiveOrders   int              `json:"active_orders"`
	TotalVolume    decimal.Decimal  `json:"total_volume"`
	AvgPrice       decimal.Decimal  `json:"avg_price"`
	LastTradePrice *decimal.Decimal `json:"last_trade_price"`
	LastTradeTime  *time.Time       `json:"last_trade_time"`
}

// SyncAPI is the boundary to the remote order book service. Every failure
// comes back as *RemoteError. Implementations do not retry; the poll cadence
// is the retry policy.
type SyncAPI interface {
	Instruments(ctx context.Context) ([]Instrument, error)
	Instrument(ctx context.Context, id int64) (*Instrument, error)
	InstrumentStats(ctx context.Context, id int64) (*InstrumentStatsResponse, error)

	Orders(ctx context.Context, q OrdersQuery) ([]Order, error)
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error)
	Order(ctx context.Context, id int64) (*Order, error)
	CancelOrder(ctx context.Context, id int64) (*Order, error)
	OrderHistory(ctx context.Context, q HistoryQuery) (*OrderPage, error)
	OrderStats(ctx context.Context) (*AggregateStats, error)

	OrderBookSnapshot(ctx context.Context, instrumentID int64) (*OrderBookSnapshot, error)
	Trades(ctx context.Context, q TradesQuery) ([]Trade, error)
	Health(ctx context.Context) error
}
