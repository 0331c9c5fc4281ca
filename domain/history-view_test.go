package domain

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistoryAPI struct {
	SyncAPI

	mu              sync.Mutex
	historyCalls    int
	instrumentCalls int
	lastQuery       HistoryQuery
	page            *OrderPage
	historyErr      error
	instrumentErr   error
}

func (f *fakeHistoryAPI) Instrument(ctx context.Context, id int64) (*Instrument, error) {
	f.mu.Lock()
	f.instrumentCalls++
	err := f.instrumentErr
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &Instrument{ID: id, Symbol: "AAPL", Name: "Apple Inc."}, nil
}

func (f *fakeHistoryAPI) OrderHistory(ctx context.Context, q HistoryQuery) (*OrderPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.historyCalls++
	f.lastQuery = q

	if f.historyErr != nil {
		return nil, f.historyErr
	}
	if f.page != nil {
		return f.page, nil
	}
	return &OrderPage{}, nil
}

func (f *fakeHistoryAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.historyCalls
}

func (f *fakeHistoryAPI) query() HistoryQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func waitSettled(t *testing.T, v *HistoryView) {
	t.Helper()
	assert.Eventually(t, func() bool { return !v.State().Loading }, time.Second, 2*time.Millisecond)
}

func TestHistoryView_FilterResetsPage(t *testing.T) {
	api := &fakeHistoryAPI{page: &OrderPage{Count: 200}} // 4 pages
	view := NewHistoryView(api, NewRefreshTrigger())

	view.Sync()
	waitSettled(t, view)
	require.Equal(t, 4, view.State().TotalPages)

	view.NextPage()
	waitSettled(t, view)
	view.NextPage()
	waitSettled(t, view)
	require.Equal(t, 3, view.State().Page)

	view.SetFilter(HistoryFilter{Status: OrderStatusFilled, Days: "30"})
	waitSettled(t, view)

	assert.Equal(t, 1, view.State().Page, "filter change must reset the page")
	assert.Equal(t, 1, api.query().Page, "the reissued query starts at page 1")
}

func TestHistoryView_PageClamping(t *testing.T) {
	api := &fakeHistoryAPI{page: &OrderPage{Count: 80}} // 2 pages
	view := NewHistoryView(api, NewRefreshTrigger())

	view.Sync()
	waitSettled(t, view)

	view.PrevPage()
	assert.Equal(t, 1, view.State().Page, "previous at page 1 is a no-op")

	view.NextPage()
	waitSettled(t, view)
	assert.Equal(t, 2, view.State().Page)

	calls := api.calls()
	view.NextPage()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 2, view.State().Page, "next at the last page is a no-op")
	assert.Equal(t, calls, api.calls(), "a no-op page move does not refetch")
}

func TestHistoryView_BumpCoalescing(t *testing.T) {
	api := &fakeHistoryAPI{}
	trigger := NewRefreshTrigger()
	view := NewHistoryView(api, trigger)

	view.Sync()
	waitSettled(t, view)
	calls := api.calls()

	// several mutations happen before the view's next scheduling check
	trigger.Bump()
	trigger.Bump()
	trigger.Bump()

	view.Sync()
	assert.Eventually(t, func() bool { return api.calls() == calls+1 },
		time.Second, 2*time.Millisecond, "all bumps collapse into one refetch")

	view.Sync()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls+1, api.calls(), "unchanged tuple does not refetch")
}

func TestHistoryView_SelectionTranslatedToSymbol(t *testing.T) {
	api := &fakeHistoryAPI{}
	view := NewHistoryView(api, NewRefreshTrigger())

	view.SetSelection(42)
	waitSettled(t, view)

	q := api.query()
	assert.Equal(t, "AAPL", q.InstrumentSymbol)
	assert.Equal(t, "7", q.Days, "default period is the last 7 days")
}

func TestHistoryView_TranslationFailureSurfaces(t *testing.T) {
	api := &fakeHistoryAPI{
		instrumentErr: NewRemoteError(404, "No Instrument matches the given query."),
		page:          &OrderPage{Count: 1, Results: []Order{{ID: 1}}},
	}
	view := NewHistoryView(api, NewRefreshTrigger())

	view.SetSelection(999)
	assert.Eventually(t, func() bool { return view.State().Err != nil }, time.Second, 2*time.Millisecond)

	state := view.State()
	assert.Nil(t, state.Orders, "result set is cleared on failure")
	assert.Equal(t, 0, api.calls(), "history is not queried when translation fails")
}

func TestHistoryView_EmptyResultIsNotAnError(t *testing.T) {
	api := &fakeHistoryAPI{page: &OrderPage{Count: 0, Results: []Order{}}}
	view := NewHistoryView(api, NewRefreshTrigger())

	view.Sync()
	waitSettled(t, view)

	state := view.State()
	assert.NoError(t, state.Err)
	assert.Empty(t, state.Orders)
	assert.False(t, state.Loading)
}

func TestHistoryView_FailureAfterSuccessClearsOrders(t *testing.T) {
	api := &fakeHistoryAPI{page: &OrderPage{Count: 1, Results: []Order{{ID: 1}}}}
	trigger := NewRefreshTrigger()
	view := NewHistoryView(api, trigger)

	view.Sync()
	waitSettled(t, view)
	require.Len(t, view.State().Orders, 1)

	api.mu.Lock()
	api.historyErr = NewRemoteError(500, "Internal Server Error")
	api.mu.Unlock()

	trigger.Bump()
	view.Sync()
	assert.Eventually(t, func() bool { return view.State().Err != nil }, time.Second, 2*time.Millisecond)
	assert.Nil(t, view.State().Orders)
}
