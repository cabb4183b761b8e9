package export

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
)

const (
	pageWidth    = 190.0
	pageBottom   = 277.0
	chartSpacing = 6.0
)

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
	stripeColor       = [3]int{240, 240, 240}
)

// ExportToPDF writes the data quality summary, the descriptive statistics, one totals
// table per granularity and every PNG chart of the run.
func (r *ExportRepositoryImpl) ExportToPDF(report *entity.AnalysisReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	generated := report.GeneratedAt.Format("2006-01-02 15:04")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(pageWidth/2, 10, tr(fmt.Sprintf("Generated by COVID Stats Dashboard (Go) | %s", generated)), "", 0, "L", false, 0, "")
		pdf.CellFormat(pageWidth/2, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	sectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+pageWidth, pdf.GetY())
		pdf.Ln(4)
	}

	drawTable := func(headers []string, widths []float64, rows [][]string) {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, tr(h), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		pdf.SetFillColor(stripeColor[0], stripeColor[1], stripeColor[2])
		for n, row := range rows {
			for i, cell := range row {
				align := "L"
				if i > 0 {
					align = "R"
				}
				pdf.CellFormat(widths[i], 6, tr(cell), "", 0, align, n%2 == 1, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  COVID-19 Daily Statistics"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(stripeColor[0], stripeColor[1], stripeColor[2])
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Source: %s", report.Source)), "", 1, "L", true, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Run: %s", report.RunID)), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	sectionTitle("Data Quality")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(pageWidth, 5, tr(fmt.Sprintf(
		"Rows read: %d\nRows kept: %d\nRows dropped: %d (invalid dates: %d, invalid metrics: %d)",
		report.Clean.RowsRead, report.Clean.RowsKept, report.Clean.RowsDropped,
		report.Clean.InvalidDates, report.Clean.InvalidMetrics,
	)), "", "L", false)
	pdf.Ln(4)

	columnRows := make([][]string, 0, len(report.Clean.Columns))
	for _, c := range report.Clean.Columns {
		columnRows = append(columnRows, []string{c.Name, c.Type, strconv.Itoa(c.NonNull), strconv.Itoa(c.Nulls)})
	}
	drawTable([]string{"Column", "Type", "Non-null", "Null"}, []float64{70, 40, 40, 40}, columnRows)

	if len(report.Describe) > 1 {
		sectionTitle("Descriptive Statistics")
		header := report.Describe[0]
		widths := make([]float64, len(header))
		widths[0] = 30
		for i := 1; i < len(widths); i++ {
			widths[i] = (pageWidth - widths[0]) / float64(len(widths)-1)
		}
		drawTable(header, widths, report.Describe[1:])
	}

	for _, agg := range report.Aggregations {
		rows := summaryRows(report.Summaries, agg.Granularity)
		if len(rows) == 0 {
			continue
		}
		sectionTitle(fmt.Sprintf("%s Totals and Extrema (%d periods)", agg.Granularity.Title(), len(agg.Buckets)))
		drawTable(
			[]string{"Metric", "Total", "Mean", "Max", "Max period", "Min", "Min period"},
			[]float64{34, 28, 26, 24, 28, 22, 28},
			rows,
		)
	}

	pngCharts := make([]entity.ChartFile, 0, len(report.Charts))
	for _, c := range report.Charts {
		if strings.EqualFold(filepath.Ext(c.Path), ".png") {
			pngCharts = append(pngCharts, c)
		}
	}

	if len(pngCharts) > 0 {
		pdf.AddPage()
		sectionTitle("Charts")

		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		for _, c := range pngCharts {
			info := pdf.RegisterImageOptions(c.Path, opts)
			if pdf.Err() {
				return "", fmt.Errorf("error loading chart %s: %w", c.Path, pdf.Error())
			}
			height := pageWidth * info.Height() / info.Width()
			if pdf.GetY()+height > pageBottom {
				pdf.AddPage()
			}
			y := pdf.GetY()
			pdf.ImageOptions(c.Path, 10, y, pageWidth, height, false, opts, 0, "")
			pdf.SetY(y + height + chartSpacing)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func summaryRows(summaries []entity.MetricSummary, g entity.Granularity) [][]string {
	var rows [][]string
	for _, s := range summaries {
		if s.Granularity != g {
			continue
		}
		rows = append(rows, []string{
			s.Metric.Column(),
			fmt.Sprintf("%.0f", s.Total),
			fmt.Sprintf("%.2f", s.Mean),
			fmt.Sprintf("%.0f", s.Max.Value),
			s.Max.Period.Label,
			fmt.Sprintf("%.0f", s.Min.Value),
			s.Min.Period.Label,
		})
	}
	return rows
}
