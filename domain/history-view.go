package domain

import (
	"context"
	"sync"
	"time"
)

// HistoryFilter is the user-facing filter set. Zero values mean "no
// constraint"; Days is the string the backend expects ("1", "7", "30", "").
type HistoryFilter struct {
	Status    OrderStatus
	OrderType OrderType
	Days      string
}

// historyDep is the dependency tuple of the view. A fetch is issued exactly
// when a freshly snapshotted tuple differs from the last one fetched.
type historyDep struct {
	filter    HistoryFilter
	page      int
	selection int64 // instrument id, 0 when none
	token     int64 // refresh trigger value
}

// HistoryState is the observable state of the view. An empty Orders slice
// with a nil Err is a valid terminal state, distinct from both the loading
// and the error state.
type HistoryState struct {
	Orders     []Order
	Page       int
	TotalPages int
	Err        error
	Loading    bool
}

// HistoryView manages one page of filtered order history. Filter and page
// travel together: any filter change resets the page to 1. The view also
// subscribes to the refresh trigger, so a mutation elsewhere in the session
// forces a refetch on its next scheduling check.
type HistoryView struct {
	api     SyncAPI
	trigger *RefreshTrigger

	mu         sync.Mutex
	filter     HistoryFilter
	page       int
	totalPages int
	selection  int64
	orders     []Order
	err        error
	loading    bool
	lastDep    historyDep
	fetched    bool
	generation uint64
}

func NewHistoryView(api SyncAPI, trigger *RefreshTrigger) *HistoryView {
	return &HistoryView{
		api:        api,
		trigger:    trigger,
		filter:     HistoryFilter{Days: "7"},
		page:       1,
		totalPages: 1,
	}
}

// SetFilter replaces the filter set and unconditionally resets the page to 1.
func (v *HistoryView) SetFilter(f HistoryFilter) {
	v.mu.Lock()
	v.filter = f
	v.page = 1
	v.mu.Unlock()

	v.Sync()
}

// SetSelection changes the external instrument selection. It does not reset
// the page but does refetch, since the query depends on the translated
// symbol. id 0 clears the selection.
func (v *HistoryView) SetSelection(id int64) {
	v.mu.Lock()
	v.selection = id
	v.mu.Unlock()

	v.Sync()
}

// NextPage advances one page, clamped to the last known page count. At the
// boundary it is a no-op, not an error.
func (v *HistoryView) NextPage() {
	v.mu.Lock()
	if v.page < v.totalPages {
		v.page++
	}
	v.mu.Unlock()

	v.Sync()
}

// PrevPage goes back one page; a no-op at page 1.
func (v *HistoryView) PrevPage() {
	v.mu.Lock()
	if v.page > 1 {
		v.page--
	}
	v.mu.Unlock()

	v.Sync()
}

// Sync is the scheduling check: it snapshots the dependency tuple and issues
// a fetch only if the tuple changed since the last fetch. Any number of
// trigger bumps between two calls collapse into a single refetch.
func (v *HistoryView) Sync() {
	v.mu.Lock()

	dep := historyDep{
		filter:    v.filter,
		page:      v.page,
		selection: v.selection,
		token:     v.trigger.Current(),
	}

	if v.fetched && dep == v.lastDep {
		v.mu.Unlock()
		return
	}

	v.lastDep = dep
	v.fetched = true
	v.loading = true
	v.generation++
	gen := v.generation
	v.mu.Unlock()

	go v.fetchPage(gen, dep)
}

// Run calls Sync on a fixed cadence until the context is cancelled. This is
// how the view notices trigger bumps that happen between user interactions.
func (v *HistoryView) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v.Sync()
		}
	}
}

// Close invalidates the current generation; in-flight results are dropped on
// arrival.
func (v *HistoryView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
}

// State returns a copy of the current view state.
func (v *HistoryView) State() HistoryState {
	v.mu.Lock()
	defer v.mu.Unlock()

	return HistoryState{
		Orders:     v.orders,
		Page:       v.page,
		TotalPages: v.totalPages,
		Err:        v.err,
		Loading:    v.loading,
	}
}

func (v *HistoryView) fetchPage(gen uint64, dep historyDep) {
	ctx := context.Background()

	query := HistoryQuery{
		Page:      dep.page,
		Days:      dep.filter.Days,
		Status:    dep.filter.Status,
		OrderType: dep.filter.OrderType,
	}

	// A selection is translated to the symbol the history endpoint expects.
	// Failing the lookup surfaces exactly like a history-fetch failure.
	if dep.selection != 0 {
		inst, err := v.api.Instrument(ctx, dep.selection)
		if err != nil {
			v.apply(gen, nil, err)
			return
		}
		query.InstrumentSymbol = inst.Symbol
	}

	page, err := v.api.OrderHistory(ctx, query)
	if err != nil {
		v.apply(gen, nil, err)
		return
	}

	v.apply(gen, page, nil)
}

func (v *HistoryView) apply(gen uint64, page *OrderPage, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		return
	}

	v.loading = false
	if err != nil {
		v.err = err
		v.orders = nil
		return
	}

	v.err = nil
	v.orders = page.Results
	v.totalPages = page.TotalPages()
}
