package service

import (
	"sort"
	"time"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// Aggregator groups a cleaned dataset into daily, weekly and monthly buckets.
type Aggregator struct{}

// NewAggregator creates a new Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate sums every metric per period of granularity g. Buckets come back in
// calendar order. The daily view keeps one bucket per record.
func (a *Aggregator) Aggregate(ds *entity.Dataset, g entity.Granularity) (entity.Aggregation, error) {
	if ds.Len() == 0 {
		return entity.Aggregation{}, types.ErrNoData
	}

	agg := entity.Aggregation{Granularity: g}

	if g == entity.Daily {
		agg.Buckets = make([]entity.Bucket, len(ds.Records))
		for i, r := range ds.Records {
			agg.Buckets[i] = entity.Bucket{Period: entity.DayPeriod(r.Date), Count: 1, Sums: r.Values}
		}
		return agg, nil
	}

	byStart := make(map[time.Time]int)
	for _, r := range ds.Records {
		p := entity.PeriodOf(g, r.Date)
		i, ok := byStart[p.Start]
		if !ok {
			i = len(agg.Buckets)
			byStart[p.Start] = i
			agg.Buckets = append(agg.Buckets, entity.Bucket{Period: p})
		}
		agg.Buckets[i].Count++
		agg.Buckets[i].Sums.Add(r.Values)
	}

	sort.SliceStable(agg.Buckets, func(i, j int) bool {
		return agg.Buckets[i].Period.Start.Before(agg.Buckets[j].Period.Start)
	})
	return agg, nil
}

// AggregateAll runs Aggregate for each granularity, in the given order.
func (a *Aggregator) AggregateAll(ds *entity.Dataset, grans []entity.Granularity) ([]entity.Aggregation, error) {
	out := make([]entity.Aggregation, 0, len(grans))
	for _, g := range grans {
		agg, err := a.Aggregate(ds, g)
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, nil
}
