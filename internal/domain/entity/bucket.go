package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// Granularity is the time resolution of a series.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// AllGranularities lists the granularities in report order.
var AllGranularities = []Granularity{Daily, Weekly, Monthly}

// Title returns the capitalized name used in chart titles ("Weekly").
func (g Granularity) Title() string {
	s := string(g)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// AxisLabel returns the x-axis label used for the granularity.
func (g Granularity) AxisLabel() string {
	switch g {
	case Weekly:
		return "Week"
	case Monthly:
		return "Month"
	}
	return "Date"
}

// ParseGranularities parses a list of granularity names, returning all of them for an empty list.
func ParseGranularities(names []string) ([]Granularity, error) {
	if len(names) == 0 {
		return AllGranularities, nil
	}
	seen := make(map[Granularity]bool, len(names))
	for _, name := range names {
		g := Granularity(strings.ToLower(strings.TrimSpace(name)))
		switch g {
		case Daily, Weekly, Monthly:
			seen[g] = true
		default:
			return nil, fmt.Errorf("%w: %q", types.ErrUnknownGranularity, name)
		}
	}
	out := make([]Granularity, 0, len(seen))
	for _, g := range AllGranularities {
		if seen[g] {
			out = append(out, g)
		}
	}
	return out, nil
}

// Period identifies a day, an ISO week or a calendar month. End is inclusive.
type Period struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p Period) String() string { return p.Label }

// DayPeriod returns the period covering the calendar day of t.
func DayPeriod(t time.Time) Period {
	d := truncateDay(t)
	return Period{Label: d.Format("2006-01-02"), Start: d, End: d}
}

// WeekPeriod returns the ISO week (Monday to Sunday) containing t.
func WeekPeriod(t time.Time) Period {
	d := truncateDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	year, week := d.ISOWeek()
	return Period{
		Label: fmt.Sprintf("%04d-W%02d", year, week),
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}

// MonthPeriod returns the calendar month containing t.
func MonthPeriod(t time.Time) Period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Label: start.Format("2006-01"),
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}

// PeriodOf maps t to its period at granularity g.
func PeriodOf(g Granularity, t time.Time) Period {
	switch g {
	case Weekly:
		return WeekPeriod(t)
	case Monthly:
		return MonthPeriod(t)
	}
	return DayPeriod(t)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Bucket is the sum of every metric over the records of one period.
type Bucket struct {
	Period Period `json:"period"`
	Count  int    `json:"count"`
	Sums   Values `json:"sums"`
}

// Aggregation holds the chronologically ordered buckets of one granularity.
type Aggregation struct {
	Granularity Granularity `json:"granularity"`
	Buckets     []Bucket    `json:"buckets"`
}

// Series extracts the (period, value) points of metric m.
func (a Aggregation) Series(m Metric) Series {
	s := Series{Metric: m, Granularity: a.Granularity, Points: make([]Point, 0, len(a.Buckets))}
	for _, b := range a.Buckets {
		s.Points = append(s.Points, Point{Period: b.Period, Value: b.Sums.Get(m)})
	}
	return s
}

// Point is one value of a series.
type Point struct {
	Period Period  `json:"period"`
	Value  float64 `json:"value"`
}

// Series is the ordered list of values of one metric at one granularity.
type Series struct {
	Metric      Metric      `json:"metric"`
	Granularity Granularity `json:"granularity"`
	Points      []Point     `json:"points"`
}

// Values returns the y values of the series.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Labels returns the period labels of the series.
func (s Series) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Period.Label
	}
	return out
}
