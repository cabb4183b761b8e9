package entity

import "time"

// Extremum is a maximum or minimum value together with the period it occurs in.
type Extremum struct {
	Value  float64 `json:"value"`
	Period Period  `json:"period"`
}

// MetricSummary holds the totals and extrema of one metric at one granularity.
type MetricSummary struct {
	Metric      Metric      `json:"metric"`
	Granularity Granularity `json:"granularity"`
	Count       int         `json:"count"`
	Total       float64     `json:"total"`
	Mean        float64     `json:"mean"`
	Max         Extremum    `json:"max"`
	Min         Extremum    `json:"min"`
}

// MeanSplit partitions a series around its mean: Above holds points strictly
// greater than the mean, BelowOrEqual holds the rest.
type MeanSplit struct {
	Mean         float64 `json:"mean"`
	Above        []Point `json:"above"`
	BelowOrEqual []Point `json:"below_or_equal"`
}

// DescribeTable is a rendered descriptive-statistics table (first row is the header).
type DescribeTable [][]string

// AnalysisReport is everything one run produced; exporters consume it.
type AnalysisReport struct {
	RunID        string          `json:"run_id"`
	Source       string          `json:"source"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Clean        CleanStats      `json:"clean"`
	Describe     DescribeTable   `json:"describe"`
	Aggregations []Aggregation   `json:"aggregations"`
	Summaries    []MetricSummary `json:"summaries"`
	Charts       []ChartFile     `json:"charts,omitempty"`
}

// Aggregation returns the aggregation of granularity g, if present.
func (r *AnalysisReport) Aggregation(g Granularity) (Aggregation, bool) {
	for _, a := range r.Aggregations {
		if a.Granularity == g {
			return a, true
		}
	}
	return Aggregation{}, false
}
