package usecase

import (
	"fmt"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/service"
)

// ChartTitle returns the title of a chart, e.g. "Weekly Cases Trend Line Graph".
func ChartTitle(kind entity.ChartKind, g entity.Granularity, m entity.Metric) string {
	subject := fmt.Sprintf("%s %s", g.Title(), m.Label())
	switch kind {
	case entity.ChartLine:
		return subject + " Trend Line Graph"
	case entity.ChartScatter:
		return "Scattered Diagram of " + subject
	case entity.ChartBar:
		return "Bar Graph of " + subject
	case entity.ChartMeanSplit:
		return "Scatter Diagram of Above and Below Average " + subject
	}
	return subject
}

// BuildChartSpecs describes every chart of the run: for each granularity and metric,
// a trend line, a scatter plot, a bar chart and the mean split scatter.
func BuildChartSpecs(aggregations []entity.Aggregation, metrics []entity.Metric, caption string) ([]entity.ChartSpec, error) {
	specs := make([]entity.ChartSpec, 0, len(aggregations)*len(metrics)*len(entity.AllChartKinds))
	for _, agg := range aggregations {
		for _, m := range metrics {
			series := agg.Series(m)
			split, err := service.SplitByMean(series)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", agg.Granularity, m.Column(), err)
			}

			for _, kind := range entity.AllChartKinds {
				spec := entity.ChartSpec{
					Kind:        kind,
					Metric:      m,
					Granularity: agg.Granularity,
					Title:       ChartTitle(kind, agg.Granularity, m),
					XLabel:      agg.Granularity.AxisLabel(),
					YLabel:      m.Column(),
					Series:      series,
					Caption:     caption,
				}
				if kind == entity.ChartMeanSplit {
					s := split
					spec.Split = &s
				}
				specs = append(specs, spec)
			}
		}
	}
	return specs, nil
}

// renderCharts hands every spec to the renderer. A failed chart is logged and skipped.
func (uc *AnalysisUseCase) renderCharts(charts repository.ChartRepository, specs []entity.ChartSpec) []entity.ChartFile {
	progress := uc.console.ProgressWithTotal("Rendering charts", len(specs))
	defer progress.Stop()

	files := make([]entity.ChartFile, 0, len(specs))
	var failed int
	for _, spec := range specs {
		file, err := charts.Render(spec)
		progress.Increment()
		if err != nil {
			failed++
			uc.console.LogError("Failed to render %q: %s", spec.Title, err)
			continue
		}
		files = append(files, file)
	}

	if failed == 0 && len(files) > 0 {
		uc.console.LogSuccess("Rendered %d charts", len(files))
	}
	return files
}
