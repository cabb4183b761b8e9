package service

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// DefaultDateLayouts are tried in order when no layouts are configured.
// Ambiguous slashed dates are read month first unless CleanOptions.DayFirst is set.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/06",
	"01-02-2006",
	"2-Jan-06",
	"2-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var dayFirstLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/06",
	"02-01-2006",
	"2-Jan-06",
	"2-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// CleanOptions configures the cleaner.
type CleanOptions struct {
	// DateLayouts overrides the built-in layouts when non-empty.
	DateLayouts []string
	DayFirst    bool
	// Strict turns the first malformed value into an error instead of dropping the row.
	Strict bool
}

// Cleaner turns a raw table into a Dataset.
type Cleaner struct {
	layouts []string
	strict  bool
}

// NewCleaner creates a cleaner for the given options.
func NewCleaner(opts CleanOptions) *Cleaner {
	layouts := opts.DateLayouts
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
		if opts.DayFirst {
			layouts = dayFirstLayouts
		}
	}
	return &Cleaner{layouts: layouts, strict: opts.Strict}
}

// Clean normalizes the header, coerces the date and metric cells and drops every
// row holding a null. Malformed cells never fail the run unless the cleaner is strict;
// a missing required column always does.
func (c *Cleaner) Clean(raw *entity.RawTable) (*entity.Dataset, entity.CleanStats, error) {
	var stats entity.CleanStats

	header := NormalizeHeader(raw.Header)
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	dateIdx, ok := index[entity.ColumnDate]
	if !ok {
		return nil, stats, &types.ColumnError{Column: entity.ColumnDate}
	}
	metricIdx := make([]int, len(entity.AllMetrics))
	for _, m := range entity.AllMetrics {
		i, ok := index[m.Column()]
		if !ok {
			return nil, stats, &types.ColumnError{Column: m.Column()}
		}
		metricIdx[m] = i
	}

	nonNull := make([]int, len(header))
	ds := &entity.Dataset{Source: raw.Source, Records: make([]entity.Record, 0, len(raw.Rows))}

	for _, row := range raw.Rows {
		stats.RowsRead++

		for i := range header {
			if i != dateIdx && !isMetricIndex(metricIdx, i) && strings.TrimSpace(cell(row, i)) != "" {
				nonNull[i]++
			}
		}

		complete := true
		date, ok := c.ParseDate(cell(row, dateIdx))
		if ok {
			nonNull[dateIdx]++
		} else {
			stats.InvalidDates++
			complete = false
			if c.strict {
				return nil, stats, &types.ValueError{Line: row.Line, Column: entity.ColumnDate, Value: cell(row, dateIdx)}
			}
		}

		var values entity.Values
		metricsOK := true
		for _, m := range entity.AllMetrics {
			text := cell(row, metricIdx[m])
			v, ok := ParseNumber(text)
			if !ok {
				metricsOK = false
				if c.strict {
					return nil, stats, &types.ValueError{Line: row.Line, Column: m.Column(), Value: text}
				}
				continue
			}
			nonNull[metricIdx[m]]++
			values.Set(m, v)
		}
		if !metricsOK {
			stats.InvalidMetrics++
			complete = false
		}

		if complete {
			ds.Records = append(ds.Records, entity.Record{Date: date, Values: values})
		}
	}

	sort.SliceStable(ds.Records, func(i, j int) bool {
		return ds.Records[i].Date.Before(ds.Records[j].Date)
	})

	stats.RowsKept = len(ds.Records)
	stats.RowsDropped = stats.RowsRead - stats.RowsKept
	stats.Columns = make([]entity.ColumnInfo, len(header))
	for i, name := range header {
		info := entity.ColumnInfo{Name: name, Type: "string", NonNull: nonNull[i], Nulls: stats.RowsRead - nonNull[i]}
		switch {
		case i == dateIdx:
			info.Type, info.Required = "date", true
		case isMetricIndex(metricIdx, i):
			info.Type, info.Required = "float64", true
		}
		stats.Columns[i] = info
	}

	return ds, stats, nil
}

// ParseDate parses s with the configured layouts. The result is the calendar day in UTC.
func (c *Cleaner) ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range c.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a metric cell. Empty, non-numeric, NaN and infinite values are null.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NormalizeHeader strips surrounding whitespace (and a UTF-8 BOM) from every column name.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}

func cell(row entity.RawRow, i int) string {
	if i < 0 || i >= len(row.Cells) {
		return ""
	}
	return row.Cells[i]
}

func isMetricIndex(idx []int, i int) bool {
	for _, j := range idx {
		if j == i {
			return true
		}
	}
	return false
}
