package bookservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/finwatch/go-orderbook-dashboard/config"
	"github.com/finwatch/go-orderbook-dashboard/domain"
)

var logger = log.New(os.Stdout, "[bookservice] ", log.LstdFlags)

var _ domain.SyncAPI = (*SyncAPI)(nil)

// SyncAPI is the typed client for the order book REST service. All failures,
// transport-level or HTTP-level, are normalized into *domain.RemoteError so
// callers deal with a single error shape. No retries here: poll cadence is
// the retry policy of every consumer.
type SyncAPI struct {
	baseURL string
	client  *http.Client
}

// Option configures a SyncAPI.
type Option func(*SyncAPI)

// WithBaseURL overrides the configured service URL.
func WithBaseURL(u string) Option {
	return func(api *SyncAPI) {
		api.baseURL = u
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(api *SyncAPI) {
		api.client = c
	}
}

func NewSyncAPI(opts ...Option) *SyncAPI {
	api := &SyncAPI{
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: config.HTTPTimeout},
	}

	for _, opt := range opts {
		opt(api)
	}

	return api
}

func (api *SyncAPI) Instruments(ctx context.Context) ([]domain.Instrument, error) {
	var out []domain.Instrument
	if err := api.request(ctx, http.MethodGet, "/instruments/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) Instrument(ctx context.Context, id int64) (*domain.Instrument, error) {
	out := &domain.Instrument{}
	path := fmt.Sprintf("/instruments/%d/", id)
	if err := api.request(ctx, http.MethodGet, path, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) InstrumentStats(ctx context.Context, id int64) (*domain.InstrumentStatsResponse, error) {
	out := &domain.InstrumentStatsResponse{}
	path := fmt.Sprintf("/instruments/%d/stats/", id)
	if err := api.request(ctx, http.MethodGet, path, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) Orders(ctx context.Context, q domain.OrdersQuery) ([]domain.Order, error) {
	query := url.Values{}
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}
	if q.OrderType != "" {
		query.Set("order_type", string(q.OrderType))
	}
	if q.InstrumentSymbol != "" {
		query.Set("instrument_symbol", q.InstrumentSymbol)
	}

	var out []domain.Order
	if err := api.request(ctx, http.MethodGet, "/orders/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*domain.CreateOrderResponse, error) {
	out := &domain.CreateOrderResponse{}
	if err := api.request(ctx, http.MethodPost, "/orders/", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) Order(ctx context.Context, id int64) (*domain.Order, error) {
	out := &domain.Order{}
	path := fmt.Sprintf("/orders/%d/", id)
	if err := api.request(ctx, http.MethodGet, path, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	out := &domain.Order{}
	path := fmt.Sprintf("/orders/%d/cancel/", id)
	if err := api.request(ctx, http.MethodPatch, path, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) OrderHistory(ctx context.Context, q domain.HistoryQuery) (*domain.OrderPage, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", fmt.Sprintf("%d", q.Page))
	}
	if q.Days != "" {
		query.Set("days", q.Days)
	}
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}
	if q.OrderType != "" {
		query.Set("order_type", string(q.OrderType))
	}
	if q.InstrumentSymbol != "" {
		query.Set("instrument_symbol", q.InstrumentSymbol)
	}

	out := &domain.OrderPage{}
	if err := api.request(ctx, http.MethodGet, "/orders/history/", query, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) OrderStats(ctx context.Context) (*domain.AggregateStats, error) {
	out := &domain.AggregateStats{}
	if err := api.request(ctx, http.MethodGet, "/orders/stats/", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) OrderBookSnapshot(ctx context.Context, instrumentID int64) (*domain.OrderBookSnapshot, error) {
	out := &domain.OrderBookSnapshot{}
	path := fmt.Sprintf("/orderbook/%d/", instrumentID)
	if err := api.request(ctx, http.MethodGet, path, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) Trades(ctx context.Context, q domain.TradesQuery) ([]domain.Trade, error) {
	query := url.Values{}
	if q.InstrumentSymbol != "" {
		query.Set("instrument_symbol", q.InstrumentSymbol)
	}

	var out []domain.Trade
	if err := api.request(ctx, http.MethodGet, "/trades/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (api *SyncAPI) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return api.request(ctx, http.MethodGet, "/health/", nil, nil, &out)
}

// request builds, sends and decodes one JSON call against the service.
func (api *SyncAPI) request(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := api.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.NewRemoteError(0, fmt.Sprintf("failed to encode request body: %s", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return domain.NewRemoteError(0, fmt.Sprintf("failed to build request: %s", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := api.client.Do(req)
	if err != nil {
		return domain.NewRemoteError(0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if config.DebugMode {
			logger.Printf("%s %s failed with status %d", method, path, resp.StatusCode)
		}
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewRemoteError(0, fmt.Sprintf("failed to decode response body: %s", err))
	}

	return nil
}

// decodeError tries the structured {"detail": ...} body first and falls back
// to the status line.
func decodeError(resp *http.Response) *domain.RemoteError {
	var payload struct {
		Detail string `json:"detail"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		return domain.NewRemoteError(resp.StatusCode, payload.Detail)
	}

	return domain.NewRemoteError(resp.StatusCode, http.StatusText(resp.StatusCode))
}
