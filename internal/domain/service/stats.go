package service

import (
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// Total returns the sum of the values. The sum of nothing is zero.
func Total(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// Mean returns the arithmetic mean of the values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, types.ErrNoData
	}
	return Total(values) / float64(len(values)), nil
}

// Max returns the largest value and its period. Ties keep the first point.
func Max(s entity.Series) (entity.Extremum, error) {
	return extremum(s, func(v, best float64) bool { return v > best })
}

// Min returns the smallest value and its period. Ties keep the first point.
func Min(s entity.Series) (entity.Extremum, error) {
	return extremum(s, func(v, best float64) bool { return v < best })
}

func extremum(s entity.Series, better func(v, best float64) bool) (entity.Extremum, error) {
	if len(s.Points) == 0 {
		return entity.Extremum{}, types.ErrNoData
	}
	best := entity.Extremum{Value: s.Points[0].Value, Period: s.Points[0].Period}
	for _, p := range s.Points[1:] {
		if better(p.Value, best.Value) {
			best = entity.Extremum{Value: p.Value, Period: p.Period}
		}
	}
	return best, nil
}

// Summarize computes count, total, mean and extrema of a series.
func Summarize(s entity.Series) (entity.MetricSummary, error) {
	values := s.Values()
	mean, err := Mean(values)
	if err != nil {
		return entity.MetricSummary{}, err
	}
	maxE, err := Max(s)
	if err != nil {
		return entity.MetricSummary{}, err
	}
	minE, err := Min(s)
	if err != nil {
		return entity.MetricSummary{}, err
	}
	return entity.MetricSummary{
		Metric:      s.Metric,
		Granularity: s.Granularity,
		Count:       len(values),
		Total:       Total(values),
		Mean:        mean,
		Max:         maxE,
		Min:         minE,
	}, nil
}

// SplitByMean separates the points strictly above the mean from the points at or below it.
// A point exactly on the mean belongs to BelowOrEqual.
func SplitByMean(s entity.Series) (entity.MeanSplit, error) {
	mean, err := Mean(s.Values())
	if err != nil {
		return entity.MeanSplit{}, err
	}
	split := entity.MeanSplit{Mean: mean}
	for _, p := range s.Points {
		if p.Value > mean {
			split.Above = append(split.Above, p)
		} else {
			split.BelowOrEqual = append(split.BelowOrEqual, p)
		}
	}
	return split, nil
}
