package chart

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// ChartsDir is the sub-directory of the output directory that receives the charts.
const ChartsDir = "charts"

type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

// ChartRepositoryImpl desenha os gráficos com go-chart e grava um arquivo por gráfico.
type ChartRepositoryImpl struct {
	outputDir string
	format    string
	width     int
	height    int
}

// NewChartRepository cria uma nova implementação do ChartRepository.
func NewChartRepository(outputDir, format string, width, height int) repository.ChartRepository {
	if format != FormatSVG {
		format = FormatPNG
	}
	return &ChartRepositoryImpl{
		outputDir: outputDir,
		format:    format,
		width:     width,
		height:    height,
	}
}

// Render draws spec and writes it under <outputDir>/charts.
func (r *ChartRepositoryImpl) Render(spec entity.ChartSpec) (entity.ChartFile, error) {
	if len(spec.Series.Points) == 0 {
		return entity.ChartFile{}, fmt.Errorf("%s: %w", spec.Title, types.ErrNoData)
	}

	var c renderable
	switch spec.Kind {
	case entity.ChartLine:
		c = r.lineChart(spec)
	case entity.ChartScatter:
		c = r.scatterChart(spec)
	case entity.ChartBar:
		c = r.barChart(spec)
	case entity.ChartMeanSplit:
		if spec.Split == nil {
			return entity.ChartFile{}, fmt.Errorf("%s: mean split chart without split", spec.Title)
		}
		c = r.meanSplitChart(spec)
	default:
		return entity.ChartFile{}, fmt.Errorf("unsupported chart kind: %s", spec.Kind)
	}

	provider := gochart.PNG
	if r.format == FormatSVG {
		provider = gochart.SVG
	}

	var buf bytes.Buffer
	if err := c.Render(provider, &buf); err != nil {
		return entity.ChartFile{}, fmt.Errorf("error rendering %q: %w", spec.Title, err)
	}

	data := buf.Bytes()
	if r.format == FormatPNG && spec.Caption != "" {
		stamped, err := stampCaption(data, spec.Caption)
		if err != nil {
			return entity.ChartFile{}, fmt.Errorf("error stamping caption on %q: %w", spec.Title, err)
		}
		data = stamped
	}

	dir := filepath.Join(r.outputDir, ChartsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return entity.ChartFile{}, fmt.Errorf("error creating chart directory: %w", err)
	}

	path := filepath.Join(dir, FileName(spec, r.format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return entity.ChartFile{}, fmt.Errorf("error writing chart: %w", err)
	}

	return entity.ChartFile{
		Kind:        spec.Kind,
		Metric:      spec.Metric,
		Granularity: spec.Granularity,
		Title:       spec.Title,
		Path:        path,
	}, nil
}

// FileName returns <granularity>_<metric>_<kind>.<format>, e.g. weekly_cases_bar.png.
func FileName(spec entity.ChartSpec, format string) string {
	return fmt.Sprintf("%s_%s_%s.%s", spec.Granularity, spec.Metric.Key(), spec.Kind, format)
}
