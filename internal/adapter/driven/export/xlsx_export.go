package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
)

// Sheet names of the exported workbook; one bucket sheet per granularity follows them.
const (
	SheetSummary  = "Summary"
	SheetDescribe = "Describe"
	SheetColumns  = "Columns"
)

// ExportToXLSX writes the summaries, the descriptive statistics, the column info and
// one sheet of buckets per granularity.
func (r *ExportRepositoryImpl) ExportToXLSX(report *entity.AnalysisReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return "", fmt.Errorf("error preparing workbook: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("error creating workbook style: %w", err)
	}

	summary := [][]interface{}{{"Granularity", "Metric", "Count", "Total", "Mean", "Max", "Max period", "Min", "Min period"}}
	for _, s := range report.Summaries {
		summary = append(summary, []interface{}{
			s.Granularity.Title(), s.Metric.Column(), s.Count, s.Total, s.Mean,
			s.Max.Value, s.Max.Period.Label, s.Min.Value, s.Min.Period.Label,
		})
	}
	if err := writeSheet(f, SheetSummary, summary, bold); err != nil {
		return "", err
	}

	if len(report.Describe) > 0 {
		describe := make([][]interface{}, len(report.Describe))
		for i, row := range report.Describe {
			describe[i] = make([]interface{}, len(row))
			for j, cell := range row {
				describe[i][j] = cell
			}
		}
		if err := writeSheet(f, SheetDescribe, describe, bold); err != nil {
			return "", err
		}
	}

	columns := [][]interface{}{{"Column", "Type", "Non-null", "Null", "Required"}}
	for _, c := range report.Clean.Columns {
		columns = append(columns, []interface{}{c.Name, c.Type, c.NonNull, c.Nulls, c.Required})
	}
	if err := writeSheet(f, SheetColumns, columns, bold); err != nil {
		return "", err
	}

	for _, agg := range report.Aggregations {
		header := []interface{}{agg.Granularity.AxisLabel(), "Start", "End", "Count"}
		for _, col := range metricColumns() {
			header = append(header, col)
		}
		rows := [][]interface{}{header}
		for _, b := range agg.Buckets {
			row := []interface{}{b.Period.Label, formatDate(b.Period.Start), formatDate(b.Period.End), b.Count}
			for _, m := range entity.AllMetrics {
				row = append(row, b.Sums.Get(m))
			}
			rows = append(rows, row)
		}
		if err := writeSheet(f, agg.Granularity.Title(), rows, bold); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// writeSheet writes rows from A1, creating the sheet when needed, with a bold header row.
func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("error creating sheet %s: %w", sheet, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing sheet %s: %w", sheet, err)
		}
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("error styling sheet %s: %w", sheet, err)
		}
	}
	return nil
}
