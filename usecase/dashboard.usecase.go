package usecase

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/finwatch/go-orderbook-dashboard/config"
	"github.com/finwatch/go-orderbook-dashboard/domain"
	promclient "github.com/finwatch/go-orderbook-dashboard/infrastructure/prometheus"
)

var logger = log.New(os.Stdout, "[dashboard] ", log.LstdFlags)

type ViewTag string

const (
	ViewOrderBook  ViewTag = "orderbook"
	ViewOrderEntry ViewTag = "orders"
	ViewHistory    ViewTag = "history"
	ViewStats      ViewTag = "stats"
)

const tradeTapeCapacity = 50

// historySyncInterval is how often the history view runs its scheduling
// check against the refresh trigger.
const historySyncInterval = time.Second

// Dashboard is the composition root of one dashboard session. It owns the
// instrument collection, the current selection, the active view tag and the
// refresh trigger, and wires the pollers and views together. Polling cadence
// and aggregation policy live in the components it composes, not here.
type Dashboard struct {
	api     domain.SyncAPI
	trigger *domain.RefreshTrigger
	statsUC *InstrumentStatsUseCase

	mu          sync.Mutex
	instruments []domain.Instrument
	selected    int64
	activeView  ViewTag

	BookPoller   *domain.Poller[*domain.OrderBookSnapshot]
	StatsPoller  *domain.Poller[*StatsBundle]
	TradesPoller *domain.Poller[[]domain.Trade]
	History      *domain.HistoryView
	Tape         *domain.TradeTape

	cancel context.CancelFunc
}

func NewDashboard(api domain.SyncAPI) *Dashboard {
	trigger := domain.NewRefreshTrigger()

	d := &Dashboard{
		api:        api,
		trigger:    trigger,
		statsUC:    NewInstrumentStatsUseCase(api),
		activeView: ViewOrderBook,
		History:    domain.NewHistoryView(api, trigger),
		Tape:       domain.NewTradeTape(tradeTapeCapacity),
	}

	d.BookPoller = domain.NewPoller("orderbook", config.OrderBookPollInterval,
		func(ctx context.Context) (*domain.OrderBookSnapshot, error) {
			return d.api.OrderBookSnapshot(ctx, d.Selected())
		})

	d.StatsPoller = domain.NewPoller("stats", config.StatsPollInterval,
		func(ctx context.Context) (*StatsBundle, error) {
			return d.statsUC.FetchStatsBundle(ctx)
		})

	d.TradesPoller = domain.NewPoller("trades", config.TradesPollInterval,
		func(ctx context.Context) ([]domain.Trade, error) {
			trades, err := d.api.Trades(ctx, domain.TradesQuery{
				InstrumentSymbol: d.selectedSymbol(),
			})
			if err != nil {
				return nil, err
			}
			d.Tape.Append(trades)
			return trades, nil
		})

	d.BookPoller.OnCycle(promclient.ObservePollCycle)
	d.StatsPoller.OnCycle(promclient.ObservePollCycle)
	d.TradesPoller.OnCycle(promclient.ObservePollCycle)

	return d
}

// Init loads the instrument collection and activates the views. The
// instrument fetch is the one session-fatal failure: it is returned to the
// caller, who may call Init again to retry.
func (d *Dashboard) Init(ctx context.Context) error {
	if err := d.api.Health(ctx); err != nil {
		logger.Printf("health check failed: %s", err)
	}

	instruments, err := d.api.Instruments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load instruments: %w", err)
	}

	d.mu.Lock()
	d.instruments = instruments
	if len(instruments) > 0 {
		d.selected = instruments[0].ID
	}
	selected := d.selected
	d.mu.Unlock()

	logger.Printf("session ready, %d instruments, selected id=%d", len(instruments), selected)

	runCtx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	d.Tape.Reset(d.selectedSymbol())
	d.BookPoller.Start(bookKey(selected))
	d.TradesPoller.Start(tradesKey(selected))
	d.StatsPoller.Start("stats")

	d.History.SetSelection(selected)
	go d.History.Run(runCtx, historySyncInterval)

	return nil
}

// Close tears the session down. Pending timers are cancelled; in-flight
// fetches are discarded when they resolve.
func (d *Dashboard) Close() {
	if d.cancel != nil {
		d.cancel()
	}

	d.BookPoller.Stop()
	d.StatsPoller.Stop()
	d.TradesPoller.Stop()
	d.History.Close()
}

// SelectInstrument switches the session to another instrument and restarts
// every view keyed by the selection.
func (d *Dashboard) SelectInstrument(id int64) error {
	d.mu.Lock()
	found := false
	for _, inst := range d.instruments {
		if inst.ID == id {
			found = true
			break
		}
	}
	if !found {
		d.mu.Unlock()
		return fmt.Errorf("unknown instrument id %d", id)
	}
	d.selected = id
	d.mu.Unlock()

	d.Tape.Reset(d.selectedSymbol())
	d.BookPoller.Restart(bookKey(id))
	d.TradesPoller.Restart(tradesKey(id))
	d.History.SetSelection(id)

	return nil
}

// SubmitOrder validates client-side, posts the order, and bumps the refresh
// trigger so every subscribed view refetches on its next scheduling check.
func (d *Dashboard) SubmitOrder(ctx context.Context, req *domain.CreateOrderRequest) (*domain.CreateOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := d.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	promclient.OrdersSubmittedTotal.Inc()
	d.bump()

	logger.Printf("order %s accepted for %s", resp.OrderID, req.InstrumentSymbol)
	return resp, nil
}

// CancelOrder asks the service to cancel and bumps the trigger on success.
func (d *Dashboard) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := d.api.CancelOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	d.bump()
	return order, nil
}

func (d *Dashboard) SetActiveView(tag ViewTag) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.activeView = tag
}

func (d *Dashboard) ActiveView() ViewTag {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activeView
}

func (d *Dashboard) Instruments() []domain.Instrument {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.instruments
}

func (d *Dashboard) Selected() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// RefreshToken exposes the trigger's current value for observers.
func (d *Dashboard) RefreshToken() int64 {
	return d.trigger.Current()
}

func (d *Dashboard) bump() {
	d.trigger.Bump()
	promclient.RefreshBumpsTotal.Inc()
}

func (d *Dashboard) selectedSymbol() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, inst := range d.instruments {
		if inst.ID == d.selected {
			return inst.Symbol
		}
	}
	return ""
}

func bookKey(id int64) string {
	return fmt.Sprintf("orderbook:%d", id)
}

func tradesKey(id int64) string {
	return fmt.Sprintf("trades:%d", id)
}
