package export

import (
	"encoding/csv"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
)

var fixedNow = time.Date(2020, 4, 1, 12, 30, 0, 0, time.UTC)

func newTestRepo() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{now: func() time.Time { return fixedNow }}
}

func values(tests, cases, recoveries, deaths float64) entity.Values {
	return entity.Values{Tests: tests, Cases: cases, Recoveries: recoveries, Deaths: deaths}
}

func sampleReport(t *testing.T) *entity.AnalysisReport {
	t.Helper()

	d1 := time.Date(2020, 3, 30, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	day1, day2 := entity.DayPeriod(d1), entity.DayPeriod(d2)
	week := entity.WeekPeriod(d1)

	report := &entity.AnalysisReport{
		RunID:       "6f1c2f7e-1111-4c1a-9a7e-000000000001",
		Source:      "COVID-19 Daily.csv",
		GeneratedAt: fixedNow,
		Clean: entity.CleanStats{
			RowsRead: 3, RowsKept: 2, RowsDropped: 1, InvalidMetrics: 1,
			Columns: []entity.ColumnInfo{
				{Name: "Date", Type: "date", NonNull: 3, Required: true},
				{Name: "Daily Tests", Type: "float64", NonNull: 2, Nulls: 1, Required: true},
			},
		},
		Describe: entity.DescribeTable{
			{"", "Daily Tests", "Daily Cases"},
			{"count", "2", "2"},
			{"mean", "150", "15"},
		},
		Aggregations: []entity.Aggregation{
			{Granularity: entity.Daily, Buckets: []entity.Bucket{
				{Period: day1, Count: 1, Sums: values(100, 10, 1, 0)},
				{Period: day2, Count: 1, Sums: values(200, 20, 2, 1)},
			}},
			{Granularity: entity.Weekly, Buckets: []entity.Bucket{
				{Period: week, Count: 2, Sums: values(300, 30, 3, 1)},
			}},
		},
	}

	for _, m := range entity.AllMetrics {
		report.Summaries = append(report.Summaries,
			entity.MetricSummary{
				Metric: m, Granularity: entity.Daily, Count: 2,
				Total: 1, Mean: 0.5,
				Max: entity.Extremum{Value: 1, Period: day2},
				Min: entity.Extremum{Value: 0, Period: day1},
			},
			entity.MetricSummary{
				Metric: m, Granularity: entity.Weekly, Count: 1,
				Total: 1, Mean: 1,
				Max: entity.Extremum{Value: 1, Period: week},
				Min: entity.Extremum{Value: 1, Period: week},
			},
		)
	}
	return report
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 120))
	for x := 0; x < 200; x++ {
		img.Set(x, 60, color.RGBA{R: 255, A: 255})
	}
	path := filepath.Join(dir, "daily_cases_line.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestGenerateFilename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	name, err := newTestRepo().generateFilename("covid", dir, "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "covid_20200401_123000.csv"), name)
	assert.DirExists(t, dir)
}

func TestExportToCSV(t *testing.T) {
	path, err := newTestRepo().ExportToCSV(sampleReport(t), "covid", t.TempDir())
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// header + 3 buckets * 4 metrics + 8 summaries * 4 rows
	require.Len(t, records, 1+12+32)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{"bucket", "daily", "Daily Tests", "2020-03-30", "2020-03-30", "2020-03-30", "1", "100"}, records[1])

	var maxRows int
	for _, rec := range records[1:] {
		if rec[0] == "max" {
			maxRows++
		}
	}
	assert.Equal(t, 8, maxRows)
}

func TestExportToJSON(t *testing.T) {
	report := sampleReport(t)
	path, err := newTestRepo().ExportToJSON(report, "covid", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.AnalysisReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Len(t, decoded.Aggregations, 2)
	assert.Equal(t, report.Summaries[3].Metric, decoded.Summaries[3].Metric)
	assert.Equal(t, "2020-W14", decoded.Aggregations[1].Buckets[0].Period.Label)
}

func TestExportToXLSX(t *testing.T) {
	path, err := newTestRepo().ExportToXLSX(sampleReport(t), "covid", t.TempDir())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetDescribe, SheetColumns, "Daily", "Weekly"}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Len(t, summary, 1+8)
	assert.Equal(t, "Granularity", summary[0][0])

	weekly, err := f.GetRows("Weekly")
	require.NoError(t, err)
	require.Len(t, weekly, 2)
	assert.Equal(t, []string{"Week", "Start", "End", "Count", "Daily Tests", "Daily Cases", "Daily Recoveries", "Daily Deaths"}, weekly[0])
	assert.Equal(t, "2020-W14", weekly[1][0])
	assert.Equal(t, "300", weekly[1][4])
}

func TestExportToPDF(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport(t)
	report.Charts = []entity.ChartFile{
		{Kind: entity.ChartLine, Metric: entity.MetricCases, Granularity: entity.Daily, Title: "Daily Cases", Path: writePNG(t, dir)},
		{Kind: entity.ChartBar, Metric: entity.MetricCases, Granularity: entity.Daily, Title: "svg chart", Path: filepath.Join(dir, "ignored.svg")},
	}

	path, err := newTestRepo().ExportToPDF(report, "covid", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportToPDFMissingChart(t *testing.T) {
	report := sampleReport(t)
	report.Charts = []entity.ChartFile{{Path: filepath.Join(t.TempDir(), "missing.png")}}

	_, err := newTestRepo().ExportToPDF(report, "covid", t.TempDir())
	assert.ErrorContains(t, err, "error loading chart")
}
