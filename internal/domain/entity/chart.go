package entity

// ChartKind is one of the four chart types drawn per metric and granularity.
type ChartKind string

const (
	ChartLine      ChartKind = "line"
	ChartScatter   ChartKind = "scatter"
	ChartBar       ChartKind = "bar"
	ChartMeanSplit ChartKind = "mean_split"
)

// AllChartKinds lists the chart kinds in drawing order.
var AllChartKinds = []ChartKind{ChartLine, ChartScatter, ChartBar, ChartMeanSplit}

// ChartSpec is a fully described chart handed to the renderer.
type ChartSpec struct {
	Kind        ChartKind
	Metric      Metric
	Granularity Granularity
	Title       string
	XLabel      string
	YLabel      string
	Series      Series
	// Split is only set for ChartMeanSplit.
	Split *MeanSplit
	// Caption is printed in small type at the bottom of raster charts.
	Caption string
}

// ChartFile is a chart written by the renderer.
type ChartFile struct {
	Kind        ChartKind   `json:"kind"`
	Metric      Metric      `json:"metric"`
	Granularity Granularity `json:"granularity"`
	Title       string      `json:"title"`
	Path        string      `json:"path"`
}
