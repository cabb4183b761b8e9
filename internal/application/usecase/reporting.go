package usecase

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
	"github.com/diillson/covid-stats-dashboard-go/pkg/console"
)

// displayCleanStats prints the column info, the null counts and the dropped rows.
func (uc *AnalysisUseCase) displayCleanStats(stats entity.CleanStats) {
	names := make([]string, len(stats.Columns))
	for i, c := range stats.Columns {
		names[i] = c.Name
	}
	uc.console.LogInfo("Columns: %v", names)

	table := uc.console.CreateTable()
	table.AddColumn("#")
	table.AddColumn("Column")
	table.AddColumn("Non-Null Count")
	table.AddColumn("Null Count")
	table.AddColumn("Dtype")
	for i, c := range stats.Columns {
		table.AddRow(i, c.Name, c.NonNull, c.Nulls, c.Type)
	}
	uc.console.Println("\nColumn info:")
	uc.console.Print(table.Render())

	if stats.RowsDropped > 0 {
		uc.console.LogWarning("Dropped %d of %d rows (invalid dates: %d, invalid metrics: %d)",
			stats.RowsDropped, stats.RowsRead, stats.InvalidDates, stats.InvalidMetrics)
	} else {
		uc.console.LogSuccess("All %d rows are complete", stats.RowsRead)
	}
}

func (uc *AnalysisUseCase) displayDescribe(describe entity.DescribeTable) {
	if len(describe) == 0 {
		return
	}

	table := uc.console.CreateTable()
	for _, h := range describe[0] {
		table.AddColumn(h)
	}
	for _, row := range describe[1:] {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		table.AddRow(cells...)
	}
	uc.console.Println("\nDescriptive statistics:")
	uc.console.Print(table.Render())
}

// displaySummaries prints the totals and the extrema of every metric at granularity g.
func (uc *AnalysisUseCase) displaySummaries(g entity.Granularity, summaries []entity.MetricSummary, ds *entity.Dataset) {
	if len(summaries) == 0 {
		return
	}
	lastDate := ds.Records[ds.Len()-1].Date.Format("January 02, 2006")

	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn(fmt.Sprintf("Total till %s", lastDate))
	table.AddColumn("Mean")
	table.AddColumn("Max")
	table.AddColumn(fmt.Sprintf("Max %s", g.AxisLabel()))
	table.AddColumn("Min")
	table.AddColumn(fmt.Sprintf("Min %s", g.AxisLabel()))

	for _, s := range summaries {
		table.AddRow(
			s.Metric.Column(),
			s.Total,
			s.Mean,
			console.BoldRed(console.FormatNumber(s.Max.Value)),
			s.Max.Period.Label,
			console.BrightGreen(console.FormatNumber(s.Min.Value)),
			s.Min.Period.Label,
		)
	}

	uc.console.Printf("\n%s\n", console.BrightCyan(fmt.Sprintf("%s totals and extrema", g.Title())))
	uc.console.Print(table.Render())
}

// displayTrends prints terminal bars of the weekly and monthly totals of every metric.
func (uc *AnalysisUseCase) displayTrends(aggregations []entity.Aggregation, metrics []entity.Metric) {
	for _, agg := range aggregations {
		if agg.Granularity == entity.Daily {
			continue
		}
		for _, m := range metrics {
			series := agg.Series(m)
			bars := make([]types.BarValue, len(series.Points))
			for i, p := range series.Points {
				bars[i] = types.BarValue{Label: p.Period.Label, Value: p.Value}
			}
			uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("%s %s", agg.Granularity.Title(), m.Column()))
			uc.console.DisplayTrendBars(fmt.Sprintf("%s %s Trend", agg.Granularity.Title(), m.Label()), bars)
		}
	}
}
