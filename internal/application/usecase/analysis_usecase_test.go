package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

var header = []string{"Date ", " Daily Tests", "Daily Cases", "Daily Recoveries", "Daily Deaths"}

func rawTable(rows ...[]string) *entity.RawTable {
	t := &entity.RawTable{Source: "covid.csv", Header: header}
	for i, r := range rows {
		t.Rows = append(t.Rows, entity.RawRow{Line: i + 2, Cells: r})
	}
	return t
}

func sampleTable() *entity.RawTable {
	return rawTable(
		[]string{"2020-01-01", "10", "1", "0", "0"},
		[]string{"2020-01-02", "20", "2", "1", "0"},
		[]string{"not a date", "99", "9", "9", "9"},
		[]string{"2020-01-08", "5", "3", "1", "1"},
	)
}

type harness struct {
	uc         *AnalysisUseCase
	console    *fakeConsole
	dataset    *fakeDataset
	charts     *fakeCharts
	export     *fakeExport
	storage    *fakeStorage
	storageNew int
}

func newHarness(table *entity.RawTable) *harness {
	h := &harness{
		console: &fakeConsole{},
		dataset: &fakeDataset{table: table},
		charts:  &fakeCharts{},
		export:  &fakeExport{},
		storage: &fakeStorage{},
	}
	h.uc = NewAnalysisUseCase(
		&fakeConfigRepo{},
		h.export,
		h.console,
		func(profile, region string) repository.StorageRepository {
			h.storageNew++
			return h.storage
		},
		func(storage repository.StorageRepository) repository.DatasetRepository {
			h.dataset.gotStorage = storage
			return h.dataset
		},
		func(outputDir, format string, width, height int) repository.ChartRepository {
			return h.charts
		},
	)
	h.uc.now = func() time.Time { return time.Date(2020, 9, 1, 10, 0, 0, 0, time.UTC) }
	h.uc.newRunID = func() string { return "run-1" }
	return h
}

func baseConfig() *types.Config {
	return &types.Config{
		Input:       "covid.csv",
		Dir:         "/tmp/out",
		ReportType:  []string{"csv"},
		ChartFormat: "png",
		ChartWidth:  1000,
		ChartHeight: 600,
	}
}

func TestRunAnalysisPipeline(t *testing.T) {
	h := newHarness(sampleTable())

	report, err := h.uc.RunAnalysis(context.Background(), baseConfig())
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, "covid.csv", report.Source)
	assert.Equal(t, 4, report.Clean.RowsRead)
	assert.Equal(t, 3, report.Clean.RowsKept)
	assert.Equal(t, 1, report.Clean.InvalidDates)

	require.Len(t, report.Aggregations, 3)
	weekly, ok := report.Aggregation(entity.Weekly)
	require.True(t, ok)
	tests := weekly.Series(entity.MetricTests)
	assert.Equal(t, []string{"2020-W01", "2020-W02"}, tests.Labels())
	assert.Equal(t, []float64{30, 5}, tests.Values())

	assert.Len(t, report.Summaries, 3*len(entity.AllMetrics))
	for _, s := range report.Summaries {
		if s.Granularity == entity.Daily && s.Metric == entity.MetricTests {
			assert.Equal(t, 35.0, s.Total)
			assert.Equal(t, "2020-01-02", s.Max.Period.Label)
			assert.Equal(t, "2020-01-08", s.Min.Period.Label)
		}
	}

	assert.Equal(t, "count", report.Describe[1][0])

	expectedCharts := 3 * len(entity.AllMetrics) * len(entity.AllChartKinds)
	assert.Len(t, h.charts.specs, expectedCharts)
	assert.Len(t, report.Charts, expectedCharts)
	assert.Equal(t, expectedCharts, h.console.progressTotal)
	assert.Equal(t, expectedCharts, h.console.progressSteps)

	assert.Empty(t, h.export.calls, "no report name means no export")
	assert.Zero(t, h.storageNew, "local input without upload needs no storage")
	assert.Nil(t, h.dataset.gotStorage)
	assert.Empty(t, h.console.errors)
}

func TestRunAnalysisFilters(t *testing.T) {
	h := newHarness(sampleTable())
	cfg := baseConfig()
	cfg.Metrics = []string{"deaths", "cases"}
	cfg.Granularity = []string{"monthly"}

	report, err := h.uc.RunAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, report.Aggregations, 1)
	assert.Equal(t, entity.Monthly, report.Aggregations[0].Granularity)
	require.Len(t, report.Summaries, 2)
	assert.Equal(t, entity.MetricCases, report.Summaries[0].Metric)
	assert.Equal(t, entity.MetricDeaths, report.Summaries[1].Metric)
	assert.Len(t, report.Charts, 2*len(entity.AllChartKinds))
	assert.Equal(t, []string{"Daily Cases", "Daily Deaths"}, report.Describe[0][1:])
}

func TestRunAnalysisLoadOptions(t *testing.T) {
	h := newHarness(sampleTable())
	cfg := baseConfig()
	cfg.Delimiter = ";"
	cfg.Sheet = "Data"

	_, err := h.uc.RunAnalysis(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "covid.csv", h.dataset.gotSource)
	assert.Equal(t, repository.LoadOptions{Delimiter: ';', Sheet: "Data"}, h.dataset.gotOpts)
}

func TestRunAnalysisNoCharts(t *testing.T) {
	h := newHarness(sampleTable())
	cfg := baseConfig()
	disabled := false
	cfg.Charts = &disabled

	report, err := h.uc.RunAnalysis(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, report.Charts)
	assert.Empty(t, h.charts.specs)
}

func TestRunAnalysisTrend(t *testing.T) {
	h := newHarness(sampleTable())
	cfg := baseConfig()
	cfg.Trend = true
	cfg.Metrics = []string{"tests"}

	_, err := h.uc.RunAnalysis(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Weekly Tests Trend", "Monthly Tests Trend"}, h.console.trendTitles)
}

func TestRunAnalysisReportsEachGranularityInOrder(t *testing.T) {
	h := newHarness(sampleTable())
	cfg := baseConfig()
	cfg.Granularity = []string{"monthly", "daily", "weekly"}

	report, err := h.uc.RunAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	var headers []string
	for _, line := range h.console.printed {
		for _, g := range entity.AllGranularities {
			if strings.Contains(line, g.Title()+" totals and extrema") {
				headers = append(headers, g.Title())
			}
		}
	}
	assert.Equal(t, []string{"Daily", "Weekly", "Monthly"}, headers)

	var order []entity.Granularity
	for _, s := range report.Summaries {
		if len(order) == 0 || order[len(order)-1] != s.Granularity {
			order = append(order, s.Granularity)
		}
	}
	assert.Equal(t, entity.AllGranularities, order)
}

func TestRunAnalysisEmptyDataset(t *testing.T) {
	h := newHarness(rawTable([]string{"bad", "1", "1", "1", "1"}))

	_, err := h.uc.RunAnalysis(context.Background(), baseConfig())
	assert.ErrorIs(t, err, types.ErrNoData)
}

func TestRunAnalysisMissingColumn(t *testing.T) {
	table := &entity.RawTable{Header: []string{"Date", "Daily Tests"}}
	h := newHarness(table)

	_, err := h.uc.RunAnalysis(context.Background(), baseConfig())
	assert.ErrorIs(t, err, types.ErrMissingColumn)
}

func TestRunAnalysisStrict(t *testing.T) {
	h := newHarness(sampleTable())
	cfg := baseConfig()
	cfg.Strict = true

	_, err := h.uc.RunAnalysis(context.Background(), cfg)
	var valueErr *types.ValueError
	require.ErrorAs(t, err, &valueErr)
	assert.Equal(t, 4, valueErr.Line)
	assert.ErrorIs(t, err, types.ErrMalformedValue)
}

func TestRunAnalysisLoadError(t *testing.T) {
	h := newHarness(nil)
	h.dataset.err = types.ErrUnsupportedFormat

	_, err := h.uc.RunAnalysis(context.Background(), baseConfig())
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
	assert.ErrorContains(t, err, "error loading dataset")
}

func TestRunAnalysisUnknownMetric(t *testing.T) {
	h := newHarness(sampleTable())
	cfg := baseConfig()
	cfg.Metrics = []string{"hospitalized"}

	_, err := h.uc.RunAnalysis(context.Background(), cfg)
	assert.ErrorIs(t, err, types.ErrUnknownMetric)
}

func TestRunAnalysisExportContinuesAfterFailure(t *testing.T) {
	h := newHarness(sampleTable())
	h.export.failOn = "pdf"
	cfg := baseConfig()
	cfg.ReportName = "covid"
	cfg.ReportType = []string{"pdf", "csv", "json", "xlsx"}

	_, err := h.uc.RunAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"pdf", "csv", "json", "xlsx"}, h.export.calls)
	require.Len(t, h.console.errors, 1)
	assert.Contains(t, h.console.errors[0], "Failed to export to pdf")
}

func TestRunAnalysisChartFailureIsLogged(t *testing.T) {
	h := newHarness(sampleTable())
	h.charts.failOn = entity.ChartBar
	cfg := baseConfig()
	cfg.Granularity = []string{"weekly"}

	report, err := h.uc.RunAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	assert.Len(t, report.Charts, len(entity.AllMetrics)*(len(entity.AllChartKinds)-1))
	assert.Len(t, h.console.errors, len(entity.AllMetrics))
}

func TestRunAnalysisUpload(t *testing.T) {
	h := newHarness(sampleTable())
	cfg := baseConfig()
	cfg.ReportName = "covid"
	cfg.ReportType = []string{"csv", "json"}
	cfg.Granularity = []string{"monthly"}
	cfg.Metrics = []string{"cases"}
	cfg.Upload = "s3://bucket/runs"
	h.storage.failOn = "covid.json"

	_, err := h.uc.RunAnalysis(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, h.storageNew)
	assert.Same(t, h.storage, h.dataset.gotStorage)
	assert.Len(t, h.storage.uploaded, 1+len(entity.AllChartKinds))
	assert.Equal(t, "covid.csv", h.storage.uploaded[0])
	assert.Contains(t, h.console.infos, "Uploading to s3://bucket/runs (account 123456789012)")
	assert.Len(t, h.console.errors, 1)
}

func TestRunResolvesConfig(t *testing.T) {
	h := newHarness(sampleTable())
	h.uc.configRepo = &fakeConfigRepo{err: errors.New("invalid configuration")}

	err := h.uc.Run(context.Background(), &types.CLIArgs{})
	assert.ErrorContains(t, err, "invalid configuration")

	h.uc.configRepo = &fakeConfigRepo{cfg: baseConfig()}
	assert.NoError(t, h.uc.Run(context.Background(), &types.CLIArgs{}))
}

func TestBuildChartSpecs(t *testing.T) {
	day := func(d int) entity.Period {
		return entity.DayPeriod(time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC))
	}
	agg := entity.Aggregation{Granularity: entity.Daily, Buckets: []entity.Bucket{
		{Period: day(1), Count: 1, Sums: entity.Values{Tests: 1}},
		{Period: day(2), Count: 1, Sums: entity.Values{Tests: 5}},
		{Period: day(3), Count: 1, Sums: entity.Values{Tests: 5}},
		{Period: day(4), Count: 1, Sums: entity.Values{Tests: 2}},
	}}

	specs, err := BuildChartSpecs([]entity.Aggregation{agg}, []entity.Metric{entity.MetricTests}, "caption")
	require.NoError(t, err)
	require.Len(t, specs, len(entity.AllChartKinds))

	titles := make([]string, len(specs))
	for i, s := range specs {
		titles[i] = s.Title
		assert.Equal(t, "Date", s.XLabel)
		assert.Equal(t, "Daily Tests", s.YLabel)
		assert.Equal(t, "caption", s.Caption)
	}
	assert.Equal(t, []string{
		"Daily Tests Trend Line Graph",
		"Scattered Diagram of Daily Tests",
		"Bar Graph of Daily Tests",
		"Scatter Diagram of Above and Below Average Daily Tests",
	}, titles)

	split := specs[3].Split
	require.NotNil(t, split)
	assert.Equal(t, 3.25, split.Mean)
	assert.Len(t, split.Above, 2)
	assert.Len(t, split.BelowOrEqual, 2)
	assert.Nil(t, specs[0].Split)
}

func TestChartTitleMonthly(t *testing.T) {
	assert.Equal(t, "Bar Graph of Monthly Deaths", ChartTitle(entity.ChartBar, entity.Monthly, entity.MetricDeaths))
	assert.Equal(t, "Weekly Recoveries Trend Line Graph", ChartTitle(entity.ChartLine, entity.Weekly, entity.MetricRecoveries))
}
