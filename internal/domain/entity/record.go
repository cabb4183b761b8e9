package entity

import "time"

// RawTable is the untyped content of an input file: a header and string cells.
type RawTable struct {
	Source string
	Header []string
	Rows   []RawRow
}

// RawRow is one data line of the input with its 1-based line number in the source.
type RawRow struct {
	Line  int
	Cells []string
}

// Record is one cleaned row of the dataset.
type Record struct {
	Date   time.Time `json:"date"`
	Values Values    `json:"values"`
}

// Dataset is the cleaned, date-ordered sequence of records.
// Every record has a valid date and all four metric values.
type Dataset struct {
	Source  string   `json:"source"`
	Records []Record `json:"records"`
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Column extracts the values of metric m in dataset order.
func (d *Dataset) Column(m Metric) []float64 {
	out := make([]float64, 0, d.Len())
	for _, r := range d.Records {
		out = append(out, r.Values.Get(m))
	}
	return out
}

// ColumnInfo describes one input column after coercion.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	NonNull  int    `json:"non_null"`
	Nulls    int    `json:"nulls"`
	Required bool   `json:"required"`
}

// CleanStats summarizes what the cleaner did to the raw table.
type CleanStats struct {
	RowsRead       int          `json:"rows_read"`
	RowsKept       int          `json:"rows_kept"`
	RowsDropped    int          `json:"rows_dropped"`
	InvalidDates   int          `json:"invalid_dates"`
	InvalidMetrics int          `json:"invalid_metrics"`
	Columns        []ColumnInfo `json:"columns"`
}
