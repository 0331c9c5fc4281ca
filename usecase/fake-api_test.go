package usecase

import (
	"context"
	"sync"

	"github.com/finwatch/go-orderbook-dashboard/domain"
)

// fakeSyncAPI is a programmable stand-in for the remote service. Unset
// function fields fall back to empty successful responses, and every call is
// counted so tests can assert on traffic.
type fakeSyncAPI struct {
	mu    sync.Mutex
	calls map[string]int

	instrumentsFn     func(ctx context.Context) ([]domain.Instrument, error)
	instrumentFn      func(ctx context.Context, id int64) (*domain.Instrument, error)
	instrumentStatsFn func(ctx context.Context, id int64) (*domain.InstrumentStatsResponse, error)
	createOrderFn     func(ctx context.Context, req *domain.CreateOrderRequest) (*domain.CreateOrderResponse, error)
	cancelOrderFn     func(ctx context.Context, id int64) (*domain.Order, error)
	orderHistoryFn    func(ctx context.Context, q domain.HistoryQuery) (*domain.OrderPage, error)
	orderStatsFn      func(ctx context.Context) (*domain.AggregateStats, error)
	orderBookFn       func(ctx context.Context, instrumentID int64) (*domain.OrderBookSnapshot, error)
	tradesFn          func(ctx context.Context, q domain.TradesQuery) ([]domain.Trade, error)
	healthFn          func(ctx context.Context) error
}

var _ domain.SyncAPI = (*fakeSyncAPI)(nil)

func newFakeSyncAPI() *fakeSyncAPI {
	return &fakeSyncAPI{calls: map[string]int{}}
}

func (f *fakeSyncAPI) count(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
}

func (f *fakeSyncAPI) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeSyncAPI) Instruments(ctx context.Context) ([]domain.Instrument, error) {
	f.count("Instruments")
	if f.instrumentsFn != nil {
		return f.instrumentsFn(ctx)
	}
	return nil, nil
}

func (f *fakeSyncAPI) Instrument(ctx context.Context, id int64) (*domain.Instrument, error) {
	f.count("Instrument")
	if f.instrumentFn != nil {
		return f.instrumentFn(ctx, id)
	}
	return &domain.Instrument{ID: id}, nil
}

func (f *fakeSyncAPI) InstrumentStats(ctx context.Context, id int64) (*domain.InstrumentStatsResponse, error) {
	f.count("InstrumentStats")
	if f.instrumentStatsFn != nil {
		return f.instrumentStatsFn(ctx, id)
	}
	return &domain.InstrumentStatsResponse{}, nil
}

func (f *fakeSyncAPI) Orders(ctx context.Context, q domain.OrdersQuery) ([]domain.Order, error) {
	f.count("Orders")
	return nil, nil
}

func (f *fakeSyncAPI) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*domain.CreateOrderResponse, error) {
	f.count("CreateOrder")
	if f.createOrderFn != nil {
		return f.createOrderFn(ctx, req)
	}
	return &domain.CreateOrderResponse{}, nil
}

func (f *fakeSyncAPI) Order(ctx context.Context, id int64) (*domain.Order, error) {
	f.count("Order")
	return &domain.Order{ID: id}, nil
}

func (f *fakeSyncAPI) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	f.count("CancelOrder")
	if f.cancelOrderFn != nil {
		return f.cancelOrderFn(ctx, id)
	}
	return &domain.Order{ID: id, Status: domain.OrderStatusCancelled}, nil
}

func (f *fakeSyncAPI) OrderHistory(ctx context.Context, q domain.HistoryQuery) (*domain.OrderPage, error) {
	f.count("OrderHistory")
	if f.orderHistoryFn != nil {
		return f.orderHistoryFn(ctx, q)
	}
	return &domain.OrderPage{}, nil
}

func (f *fakeSyncAPI) OrderStats(ctx context.Context) (*domain.AggregateStats, error) {
	f.count("OrderStats")
	if f.orderStatsFn != nil {
		return f.orderStatsFn(ctx)
	}
	return &domain.AggregateStats{}, nil
}

func (f *fakeSyncAPI) OrderBookSnapshot(ctx context.Context, instrumentID int64) (*domain.OrderBookSnapshot, error) {
	f.count("OrderBookSnapshot")
	if f.orderBookFn != nil {
		return f.orderBookFn(ctx, instrumentID)
	}
	return &domain.OrderBookSnapshot{}, nil
}

func (f *fakeSyncAPI) Trades(ctx context.Context, q domain.TradesQuery) ([]domain.Trade, error) {
	f.count("Trades")
	if f.tradesFn != nil {
		return f.tradesFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeSyncAPI) Health(ctx context.Context) error {
	f.count("Health")
	if f.healthFn != nil {
		return f.healthFn(ctx)
	}
	return nil
}
