package domain

import "github.com/shopspring/decimal"

// AggregateStats mirrors the order stats endpoint.
type AggregateStats struct {
	TotalOrders      int             `json:"total_orders"`
	ActiveOrders     int             `json:"active_orders"`
	FilledOrders     int             `json:"filled_orders"`
	PartialOrders    int             `json:"partial_orders"`
	CancelledOrders  int             `json:"cancelled_orders"`
	TotalVolume      decimal.Decimal `json:"total_volume"`
	AvgOrderSize     decimal.Decimal `json:"avg_order_size"`
	InstrumentsCount int             `json:"instruments_count"`
}

// DistributionBars holds the status distribution as percentages of all
// orders. Derived, never stored.
type DistributionBars struct {
	Active    float64
	Filled    float64
	Cancelled float64
}

// Bars computes the distribution. An empty book (total_orders == 0) yields
// all-zero bars rather than a division error.
func (s *AggregateStats) Bars() DistributionBars {
	if s.TotalOrders == 0 {
		return DistributionBars{}
	}

	total := float64(s.TotalOrders)
	return DistributionBars{
		Active:    float64(s.ActiveOrders) / total * 100,
		Filled:    float64(s.FilledOrders) / total * 100,
		Cancelled: float64(s.CancelledOrders) / total * 100,
	}
}

// InstrumentStat is the per-instrument row of the stats view. When the
// source request for a member fails it is substituted with ZeroInstrumentStat,
// never omitted from the result collection.
type InstrumentStat struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	OrderCount  int             `json:"order_count"`
	TotalVolume decimal.Decimal `json:"total_volume"`
	AvgPrice    decimal.Decimal `json:"avg_price"`
}

// ZeroInstrumentStat keeps the member's identity and zeroes everything else.
func ZeroInstrumentStat(inst Instrument) InstrumentStat {
	return InstrumentStat{
		Symbol: inst.Symbol,
		Name:   inst.Name,
	}
}
