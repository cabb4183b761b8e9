package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

type fakeConsole struct {
	infos, warnings, errors, successes []string
	trendTitles                        []string
	printed                            []string
	progressTotal                      int
	progressSteps                      int
}

func (c *fakeConsole) Print(a ...interface{})                 {}
func (c *fakeConsole) Printf(format string, a ...interface{}) {
	c.printed = append(c.printed, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Println(a ...interface{})               {}
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Status(string) types.StatusHandle { return fakeHandle{} }
func (c *fakeConsole) ProgressWithTotal(_ string, total int) types.ProgressHandle {
	c.progressTotal = total
	return &fakeProgress{console: c}
}
func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{} }
func (c *fakeConsole) DisplayTrendBars(title string, _ []types.BarValue) {
	c.trendTitles = append(c.trendTitles, title)
}

type fakeHandle struct{}

func (fakeHandle) Update(string) {}
func (fakeHandle) Stop()         {}

type fakeProgress struct{ console *fakeConsole }

func (p *fakeProgress) Increment() { p.console.progressSteps++ }
func (p *fakeProgress) Stop()      {}

type fakeTable struct{ rows int }

func (t *fakeTable) AddColumn(string, ...interface{}) {}
func (t *fakeTable) AddRow(...interface{})            { t.rows++ }
func (t *fakeTable) Render() string                   { return "" }

type fakeConfigRepo struct {
	cfg *types.Config
	err error
}

func (f *fakeConfigRepo) LoadConfigFile(string) (*types.Config, error) { return f.cfg, f.err }
func (f *fakeConfigRepo) Resolve(*types.CLIArgs) (*types.Config, error) {
	return f.cfg, f.err
}

type fakeDataset struct {
	table      *entity.RawTable
	err        error
	gotSource  string
	gotOpts    repository.LoadOptions
	gotStorage repository.StorageRepository
}

func (f *fakeDataset) Load(_ context.Context, source string, opts repository.LoadOptions) (*entity.RawTable, error) {
	f.gotSource, f.gotOpts = source, opts
	return f.table, f.err
}

type fakeCharts struct {
	specs  []entity.ChartSpec
	failOn entity.ChartKind
}

func (f *fakeCharts) Render(spec entity.ChartSpec) (entity.ChartFile, error) {
	f.specs = append(f.specs, spec)
	if spec.Kind == f.failOn {
		return entity.ChartFile{}, errors.New("render failed")
	}
	return entity.ChartFile{
		Kind:        spec.Kind,
		Metric:      spec.Metric,
		Granularity: spec.Granularity,
		Title:       spec.Title,
		Path:        filepath.Join("charts", fmt.Sprintf("%s_%s_%s.png", spec.Granularity, spec.Metric.Key(), spec.Kind)),
	}, nil
}

type fakeExport struct {
	calls  []string
	failOn string
}

func (f *fakeExport) export(kind, name string) (string, error) {
	f.calls = append(f.calls, kind)
	if kind == f.failOn {
		return "", errors.New("disk full")
	}
	return name + "." + kind, nil
}

func (f *fakeExport) ExportToCSV(_ *entity.AnalysisReport, name, _ string) (string, error) {
	return f.export("csv", name)
}
func (f *fakeExport) ExportToJSON(_ *entity.AnalysisReport, name, _ string) (string, error) {
	return f.export("json", name)
}
func (f *fakeExport) ExportToPDF(_ *entity.AnalysisReport, name, _ string) (string, error) {
	return f.export("pdf", name)
}
func (f *fakeExport) ExportToXLSX(_ *entity.AnalysisReport, name, _ string) (string, error) {
	return f.export("xlsx", name)
}

type fakeStorage struct {
	uploaded []string
	failOn   string
}

func (f *fakeStorage) Download(context.Context, string, string) (string, error) {
	return "", errors.New("not used")
}
func (f *fakeStorage) Upload(_ context.Context, localPath, prefix string) (string, error) {
	if localPath == f.failOn {
		return "", errors.New("access denied")
	}
	f.uploaded = append(f.uploaded, localPath)
	return prefix + "/" + filepath.Base(localPath), nil
}
func (f *fakeStorage) CallerAccount(context.Context) (string, error) { return "123456789012", nil }
