package model

// ChartType selects how a renderer should draw a ChartSpec.
type ChartType string

const (
	ChartLine    ChartType = "line"
	ChartBar     ChartType = "bar"
	ChartBubble  ChartType = "bubble"
	ChartScatter ChartType = "scatter"
)

// Dataset is one labeled series within a chart.
type Dataset struct {
	Label  string
	Data   []float64
	Dashed bool // display hint: projected/forecast series
}

// ChartOptions carries axis and tooltip formatting hints.
// Colors and fonts are the renderer's business, not ours.
type ChartOptions struct {
	YFormat string // "money", "count", "percent"
	YLabel  string
}

// ChartSpec is the declarative chart contract handed to a renderer.
// The pipeline fills exactly these fields and nothing else.
type ChartSpec struct {
	Type     ChartType
	Title    string
	Labels   []string
	Datasets []Dataset
	Options  ChartOptions
}
