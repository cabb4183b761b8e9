package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
)

// CSVHeader is the header of the exported CSV. Every row carries the same columns:
// bucket rows hold one period sum, summary rows hold a total, mean or extremum.
var CSVHeader = []string{"Section", "Granularity", "Metric", "Period", "Start", "End", "Count", "Value"}

// ExportToCSV writes the buckets of every granularity followed by the metric summaries.
func (r *ExportRepositoryImpl) ExportToCSV(report *entity.AnalysisReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(CSVHeader); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, agg := range report.Aggregations {
		for _, b := range agg.Buckets {
			for _, m := range entity.AllMetrics {
				record := []string{
					"bucket",
					string(agg.Granularity),
					m.Column(),
					b.Period.Label,
					formatDate(b.Period.Start),
					formatDate(b.Period.End),
					strconv.Itoa(b.Count),
					formatFloat(b.Sums.Get(m)),
				}
				if err := writer.Write(record); err != nil {
					return "", fmt.Errorf("error writing CSV record: %w", err)
				}
			}
		}
	}

	for _, s := range report.Summaries {
		rows := [][]string{
			{"total", string(s.Granularity), s.Metric.Column(), "", "", "", strconv.Itoa(s.Count), formatFloat(s.Total)},
			{"mean", string(s.Granularity), s.Metric.Column(), "", "", "", strconv.Itoa(s.Count), formatFloat(s.Mean)},
			{"max", string(s.Granularity), s.Metric.Column(), s.Max.Period.Label, formatDate(s.Max.Period.Start), formatDate(s.Max.Period.End), "", formatFloat(s.Max.Value)},
			{"min", string(s.Granularity), s.Metric.Column(), s.Min.Period.Label, formatDate(s.Min.Period.Start), formatDate(s.Min.Period.End), "", formatFloat(s.Min.Value)},
		}
		if err := writer.WriteAll(rows); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}
