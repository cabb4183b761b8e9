package chart

import (
	"fmt"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
)

// maxTicks bounds the number of labelled x ticks; longer series label every n-th point.
const maxTicks = 30

var (
	colorAbove = gochart.ColorRed
	colorBelow = gochart.ColorGreen
	colorTrend = gochart.ColorBlue
	colorMean  = gochart.ColorAlternateGray
)

var background = gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 24, Bottom: 40}}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

func (r *ChartRepositoryImpl) lineChart(spec entity.ChartSpec) gochart.Chart {
	xAxis, xs := categoryAxis(spec.XLabel, spec.Series.Labels())
	ys := spec.Series.Values()

	return gochart.Chart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: background,
		XAxis:      xAxis,
		YAxis:      valueAxis(spec.YLabel, ys),
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Metric.Column(),
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: colorTrend,
					StrokeWidth: 2,
					DotColor:    colorTrend,
					DotWidth:    3,
				},
			},
		},
	}
}

func (r *ChartRepositoryImpl) scatterChart(spec entity.ChartSpec) gochart.Chart {
	xAxis, xs := categoryAxis(spec.XLabel, spec.Series.Labels())
	ys := spec.Series.Values()

	return gochart.Chart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: background,
		XAxis:      xAxis,
		YAxis:      valueAxis(spec.YLabel, ys),
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Metric.Column(),
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(colorTrend),
			},
		},
	}
}

// meanSplitChart draws points above the mean in red and the rest in green, with the mean as a dashed line.
func (r *ChartRepositoryImpl) meanSplitChart(spec entity.ChartSpec) gochart.Chart {
	xAxis, xs := categoryAxis(spec.XLabel, spec.Series.Labels())
	ys := spec.Series.Values()
	mean := spec.Split.Mean

	var aboveX, aboveY, belowX, belowY []float64
	for i, y := range ys {
		if y > mean {
			aboveX, aboveY = append(aboveX, xs[i]), append(aboveY, y)
		} else {
			belowX, belowY = append(belowX, xs[i]), append(belowY, y)
		}
	}

	series := []gochart.Series{
		gochart.ContinuousSeries{
			Name:    fmt.Sprintf("Mean (%s)", formatNumber(mean)),
			XValues: []float64{xAxis.Range.GetMin(), xAxis.Range.GetMax()},
			YValues: []float64{mean, mean},
			Style: gochart.Style{
				StrokeColor:     colorMean,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5, 5},
			},
		},
	}
	// go-chart rejects series without values.
	if len(aboveX) > 0 {
		series = append(series, gochart.ContinuousSeries{Name: "Above average", XValues: aboveX, YValues: aboveY, Style: pointStyle(colorAbove)})
	}
	if len(belowX) > 0 {
		series = append(series, gochart.ContinuousSeries{Name: "Below or equal to average", XValues: belowX, YValues: belowY, Style: pointStyle(colorBelow)})
	}

	c := gochart.Chart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: background,
		XAxis:      xAxis,
		YAxis:      valueAxis(spec.YLabel, append(ys, mean)),
		Series:     series,
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	return c
}

func (r *ChartRepositoryImpl) barChart(spec entity.ChartSpec) gochart.BarChart {
	points := spec.Series.Points
	step := tickStep(len(points))

	bars := make([]gochart.Value, len(points))
	for i, p := range points {
		label := ""
		if i%step == 0 {
			label = p.Period.Label
		}
		bars[i] = gochart.Value{Value: p.Value, Label: label}
	}

	barWidth, spacing := barGeometry(len(points))
	width := r.width
	if need := len(points)*(barWidth+spacing) + 160; need > width {
		width = need
	}

	return gochart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     r.height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: background,
		XAxis:      gochart.Style{TextRotationDegrees: 45},
		YAxis:      valueAxis(spec.YLabel, spec.Series.Values()),
		Bars:       bars,
		Elements:   []gochart.Renderable{axisName(spec.XLabel, width, r.height)},
	}
}

// categoryAxis places one x position per label at 1..n and labels at most maxTicks of them.
func categoryAxis(name string, labels []string) (gochart.XAxis, []float64) {
	n := len(labels)
	step := tickStep(n)
	xs := make([]float64, n)
	ticks := make([]gochart.Tick, 0, n/step+2)
	for i, label := range labels {
		xs[i] = float64(i + 1)
		if i%step == 0 {
			ticks = append(ticks, gochart.Tick{Value: xs[i], Label: label})
		}
	}

	maxR := float64(n) + 0.5
	if len(ticks) == 1 {
		ticks = append(ticks, gochart.Tick{Value: maxR, Label: ""})
	}

	return gochart.XAxis{
		Name:  name,
		Ticks: ticks,
		Range: &gochart.ContinuousRange{Min: 0.5, Max: maxR},
		Style: gochart.Style{TextRotationDegrees: 45},
	}, xs
}

// valueAxis anchors the y range at zero (or the most negative value) with a small head room.
func valueAxis(name string, values []float64) gochart.YAxis {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	hi += span * 0.05
	if lo < 0 {
		lo -= span * 0.05
	}

	return gochart.YAxis{
		Name:           name,
		Range:          &gochart.ContinuousRange{Min: lo, Max: hi},
		ValueFormatter: formatValue,
	}
}

// axisName writes the x-axis title under a bar chart, which go-chart does not label itself.
func axisName(name string, width, height int) gochart.Renderable {
	return func(r gochart.Renderer, _ gochart.Box, defaults gochart.Style) {
		if name == "" {
			return
		}
		style := gochart.Style{FontSize: 10, FontColor: drawing.ColorBlack}.InheritFrom(defaults)
		style.WriteTextOptionsToRenderer(r)
		tb := r.MeasureText(name)
		r.Text(name, (width-tb.Width())/2, height-22)
	}
}

func tickStep(n int) int {
	if n <= maxTicks {
		return 1
	}
	return int(math.Ceil(float64(n) / maxTicks))
}

func barGeometry(n int) (width, spacing int) {
	switch {
	case n <= 20:
		return 30, 10
	case n <= 80:
		return 10, 4
	default:
		return 4, 1
	}
}

func formatValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return formatNumber(f)
	}
	return fmt.Sprintf("%v", v)
}

func formatNumber(v float64) string {
	switch av := math.Abs(v); {
	case av == 0:
		return "0"
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
