package usecase

import (
	"context"
	"sync"

	"github.com/finwatch/go-orderbook-dashboard/domain"
)

// StatsSampleSize bounds the per-instrument fan-out. Instruments beyond the
// sample simply do not appear in the stats view; that is a documented
// limitation, not an error.
const StatsSampleSize = 8

// StatsBundle is everything the statistics view shows in one fetch.
type StatsBundle struct {
	Aggregate   *domain.AggregateStats
	Instruments []domain.InstrumentStat
}

// InstrumentStatsUseCase aggregates per-instrument statistics with a
// two-tier failure policy: the instrument listing is a hard precondition,
// while each member request fails softly into a zero-valued record that
// keeps the member's identity. The output always has the sample's length
// and order.
type InstrumentStatsUseCase struct {
	api domain.SyncAPI
}

func NewInstrumentStatsUseCase(api domain.SyncAPI) *InstrumentStatsUseCase {
	return &InstrumentStatsUseCase{api: api}
}

// InstrumentStatsSample fans out one stats request per sampled instrument
// and joins on all of them, whatever their outcome.
func (uc *InstrumentStatsUseCase) InstrumentStatsSample(ctx context.Context) ([]domain.InstrumentStat, error) {
	instruments, err := uc.api.Instruments(ctx)
	if err != nil {
		return nil, err
	}

	sample := instruments
	if len(sample) > StatsSampleSize {
		sample = sample[:StatsSampleSize]
	}

	results := make([]domain.InstrumentStat, len(sample))

	wg := sync.WaitGroup{}
	for i, inst := range sample {
		wg.Add(1)
		go func(i int, inst domain.Instrument) {
			defer wg.Done()
			results[i] = uc.memberStat(ctx, inst)
		}(i, inst)
	}
	wg.Wait()

	return results, nil
}

// FetchStatsBundle fetches the aggregate order stats together with the
// per-instrument sample. This is the stats poller's fetch.
func (uc *InstrumentStatsUseCase) FetchStatsBundle(ctx context.Context) (*StatsBundle, error) {
	aggregate, err := uc.api.OrderStats(ctx)
	if err != nil {
		return nil, err
	}

	instruments, err := uc.InstrumentStatsSample(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsBundle{
		Aggregate:   aggregate,
		Instruments: instruments,
	}, nil
}

func (uc *InstrumentStatsUseCase) memberStat(ctx context.Context, inst domain.Instrument) domain.InstrumentStat {
	stats, err := uc.api.InstrumentStats(ctx, inst.ID)
	if err != nil {
		// soft failure: substitute zeros, keep identity
		return domain.ZeroInstrumentStat(inst)
	}

	return domain.InstrumentStat{
		Symbol:      inst.Symbol,
		Name:        inst.Name,
		OrderCount:  stats.OrderCount,
		TotalVolume: stats.TotalVolume,
		AvgPrice:    stats.AvgPrice,
	}
}
