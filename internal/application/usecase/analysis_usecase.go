package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/service"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// Constructors of the adapters that depend on the resolved configuration.
type (
	StorageFactory func(profile, region string) repository.StorageRepository
	DatasetFactory func(storage repository.StorageRepository) repository.DatasetRepository
	ChartFactory   func(outputDir, format string, width, height int) repository.ChartRepository
)

// AnalysisUseCase runs the load, clean, aggregate, report and plot pipeline.
type AnalysisUseCase struct {
	configRepo repository.ConfigRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface

	newStorage StorageFactory
	newDataset DatasetFactory
	newCharts  ChartFactory

	aggregator *service.Aggregator
	now        func() time.Time
	newRunID   func() string
}

// NewAnalysisUseCase creates a new analysis use case.
func NewAnalysisUseCase(
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	newStorage StorageFactory,
	newDataset DatasetFactory,
	newCharts ChartFactory,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		configRepo: configRepo,
		exportRepo: exportRepo,
		console:    console,
		newStorage: newStorage,
		newDataset: newDataset,
		newCharts:  newCharts,
		aggregator: service.NewAggregator(),
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
}

// Run resolves the configuration from the CLI arguments and runs the analysis.
func (uc *AnalysisUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.configRepo.Resolve(args)
	if err != nil {
		return err
	}

	_, err = uc.RunAnalysis(ctx, cfg)
	return err
}

// RunAnalysis executa o pipeline completo e retorna o relatório produzido.
func (uc *AnalysisUseCase) RunAnalysis(ctx context.Context, cfg *types.Config) (*entity.AnalysisReport, error) {
	metrics, err := entity.ParseMetrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	grans, err := entity.ParseGranularities(cfg.Granularity)
	if err != nil {
		return nil, err
	}

	var storage repository.StorageRepository
	if strings.HasPrefix(cfg.Input, "s3://") || cfg.Upload != "" {
		storage = uc.newStorage(cfg.Profile, cfg.Region)
	}

	status := uc.console.Status(fmt.Sprintf("Loading %s...", cfg.Input))
	raw, err := uc.newDataset(storage).Load(ctx, cfg.Input, repository.LoadOptions{
		Delimiter: delimiterRune(cfg.Delimiter),
		Sheet:     cfg.Sheet,
	})
	status.Stop()
	if err != nil {
		return nil, fmt.Errorf("error loading dataset: %w", err)
	}
	uc.console.LogInfo("Loaded %d rows from %s", len(raw.Rows), cfg.Input)

	cleaner := service.NewCleaner(service.CleanOptions{
		DateLayouts: cfg.DateLayouts,
		DayFirst:    cfg.DayFirst,
		Strict:      cfg.Strict,
	})
	ds, stats, err := cleaner.Clean(raw)
	if err != nil {
		return nil, err
	}

	uc.displayCleanStats(stats)
	if ds.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", cfg.Input, types.ErrNoData)
	}

	describe, err := service.Describe(ds, metrics)
	if err != nil {
		return nil, err
	}
	uc.displayDescribe(describe)

	// Cada granularidade é agregada e reportada antes da próxima: diária, semanal, mensal.
	aggregations := make([]entity.Aggregation, 0, len(grans))
	summaries := make([]entity.MetricSummary, 0, len(grans)*len(metrics))
	for _, g := range grans {
		agg, err := uc.aggregator.Aggregate(ds, g)
		if err != nil {
			return nil, err
		}
		aggSummaries, err := summarize(agg, metrics)
		if err != nil {
			return nil, err
		}
		uc.displaySummaries(g, aggSummaries, ds)

		aggregations = append(aggregations, agg)
		summaries = append(summaries, aggSummaries...)
	}

	if cfg.Trend {
		uc.displayTrends(aggregations, metrics)
	}

	report := &entity.AnalysisReport{
		RunID:        uc.newRunID(),
		Source:       cfg.Input,
		GeneratedAt:  uc.now(),
		Clean:        stats,
		Describe:     describe,
		Aggregations: aggregations,
		Summaries:    summaries,
	}

	if cfg.ChartsEnabled() {
		specs, err := BuildChartSpecs(aggregations, metrics, chartCaption(report))
		if err != nil {
			return nil, err
		}
		charts := uc.newCharts(cfg.Dir, cfg.ChartFormat, cfg.ChartWidth, cfg.ChartHeight)
		report.Charts = uc.renderCharts(charts, specs)
	}

	exported := uc.exportReports(report, cfg)

	if cfg.Upload != "" {
		uc.upload(ctx, storage, cfg.Upload, report, exported)
	}

	return report, nil
}

// summarize computes one MetricSummary per metric of the aggregation.
func summarize(agg entity.Aggregation, metrics []entity.Metric) ([]entity.MetricSummary, error) {
	summaries := make([]entity.MetricSummary, 0, len(metrics))
	for _, m := range metrics {
		s, err := service.Summarize(agg.Series(m))
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", agg.Granularity, m.Column(), err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func chartCaption(report *entity.AnalysisReport) string {
	return fmt.Sprintf("Source: %s | Generated %s", report.Source, report.GeneratedAt.Format("2006-01-02 15:04"))
}

func delimiterRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
