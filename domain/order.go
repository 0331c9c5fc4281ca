package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string
type OrderStatus string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"

	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusPartial   OrderStatus = "PARTIAL"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeBuy || t == OrderTypeSell
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusActive, OrderStatusFilled, OrderStatusCancelled, OrderStatusPartial:
		return true
	}
	return false
}

// Order as returned by the history and detail endpoints. Status transitions
// happen only on the remote side; the client never mutates one locally.
type Order struct {
	ID               int64           `json:"id"`
	OrderID          string          `json:"order_id"`
	InstrumentSymbol string          `json:"instrument_symbol"`
	OrderType        OrderType       `json:"order_type"`
	Price            decimal.Decimal `json:"price"`
	OriginalQuantity decimal.Decimal `json:"original_quantity"`
	FilledQuantity   decimal.Decimal `json:"filled_quantity"`
	Status           OrderStatus     `json:"status"`
	ClientOrderID    string          `json:"client_order_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// OrderPage is one 50-row window of the history endpoint.
type OrderPage struct {
	Count   int     `json:"count"`
	Results []Order `json:"results"`
}

const HistoryPageSize = 50

// TotalPages derives the page count for client-side clamping.
func (p *OrderPage) TotalPages() int {
	if p.Count <= 0 {
		return 1
	}
	return (p.Count + HistoryPageSize - 1) / HistoryPageSize
}

// CreateOrderRequest carries the submission body. Price and quantity stay
// strings on the wire, matching the backend's decimal fields.
type CreateOrderRequest struct {
	InstrumentSymbol string    `json:"instrument_symbol"`
	OrderType        OrderType `json:"order_type"`
	Price            string    `json:"price"`
	OriginalQuantity string    `json:"original_quantity"`
	ClientOrderID    string    `json:"client_order_id,omitempty"`
}

// Validate rejects a submission before it reaches the boundary.
func (r *CreateOrderRequest) Validate() error {
	if strings.TrimSpace(r.InstrumentSymbol) == "" {
		return &ValidationError{Field: "instrument_symbol", Reason: "must not be empty"}
	}

	if !r.OrderType.Valid() {
		return &ValidationError{Field: "order_type", Reason: "must be BUY or SELL"}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return &ValidationError{Field: "price", Reason: "must be a decimal number"}
	}
	if !price.IsPositive() {
		return &ValidationError{Field: "price", Reason: "must be greater than 0"}
	}

	qty, err := strconv.ParseInt(strings.TrimSpace(r.OriginalQuantity), 10, 64)
	if err != nil {
		return &ValidationError{Field: "original_quantity", Reason: "must be an integer"}
	}
	if qty <= 0 {
		return &ValidationError{Field: "original_quantity", Reason: "must be greater than 0"}
	}

	return nil
}

// CreateOrderResponse is the creation ack, carrying the remote order id.
type CreateOrderResponse struct {
	ID                int64           `json:"id"`
	OrderID           string          `json:"order_id"`
	InstrumentSymbol  string          `json:"instrument_symbol"`
	OrderType         OrderType       `json:"order_type"`
	Price             decimal.Decimal `json:"price"`
	OriginalQuantity  decimal.Decimal `json:"original_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	Status            OrderStatus     `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
}
