package entity

import (
	"fmt"
	"strings"

	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// Metric identifies one of the four daily counters of the dataset.
type Metric int

const (
	MetricTests Metric = iota
	MetricCases
	MetricRecoveries
	MetricDeaths
)

// ColumnDate is the header of the date column.
const ColumnDate = "Date"

// AllMetrics lists the metrics in report order.
var AllMetrics = []Metric{MetricTests, MetricCases, MetricRecoveries, MetricDeaths}

var metricInfo = [...]struct {
	key, column, label string
}{
	MetricTests:      {"tests", "Daily Tests", "Tests"},
	MetricCases:      {"cases", "Daily Cases", "Cases"},
	MetricRecoveries: {"recoveries", "Daily Recoveries", "Recoveries"},
	MetricDeaths:     {"deaths", "Daily Deaths", "Deaths"},
}

// Key is the short lowercase name used in flags and config files.
func (m Metric) Key() string { return metricInfo[m].key }

// Column is the header of the metric column in the input file.
func (m Metric) Column() string { return metricInfo[m].column }

// Label is the human readable name used in titles.
func (m Metric) Label() string { return metricInfo[m].label }

func (m Metric) String() string { return m.Column() }

// MarshalText encodes the metric by its key.
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.Key()), nil
}

// UnmarshalText decodes a metric from its key or column name.
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMetric accepts a key ("cases") or a column name ("Daily Cases").
func ParseMetric(s string) (Metric, error) {
	s = strings.TrimSpace(s)
	for _, m := range AllMetrics {
		if strings.EqualFold(s, m.Key()) || strings.EqualFold(s, m.Column()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", types.ErrUnknownMetric, s)
}

// ParseMetrics parses a list of metric names, returning AllMetrics for an empty list.
func ParseMetrics(names []string) ([]Metric, error) {
	if len(names) == 0 {
		return AllMetrics, nil
	}
	seen := make(map[Metric]bool, len(names))
	for _, name := range names {
		m, err := ParseMetric(name)
		if err != nil {
			return nil, err
		}
		seen[m] = true
	}
	// Mantém a ordem canônica independentemente da ordem informada.
	metrics := make([]Metric, 0, len(seen))
	for _, m := range AllMetrics {
		if seen[m] {
			metrics = append(metrics, m)
		}
	}
	return metrics, nil
}

// Values holds one number per metric.
type Values struct {
	Tests      float64 `json:"daily_tests"`
	Cases      float64 `json:"daily_cases"`
	Recoveries float64 `json:"daily_recoveries"`
	Deaths     float64 `json:"daily_deaths"`
}

// Get returns the value of metric m.
func (v Values) Get(m Metric) float64 {
	switch m {
	case MetricTests:
		return v.Tests
	case MetricCases:
		return v.Cases
	case MetricRecoveries:
		return v.Recoveries
	case MetricDeaths:
		return v.Deaths
	}
	return 0
}

// Set stores x as the value of metric m.
func (v *Values) Set(m Metric, x float64) {
	switch m {
	case MetricTests:
		v.Tests = x
	case MetricCases:
		v.Cases = x
	case MetricRecoveries:
		v.Recoveries = x
	case MetricDeaths:
		v.Deaths = x
	}
}

// Add accumulates o into v.
func (v *Values) Add(o Values) {
	v.Tests += o.Tests
	v.Cases += o.Cases
	v.Recoveries += o.Recoveries
	v.Deaths += o.Deaths
}
