package plot

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/aperture/internal/keypoints"
)

// BoxSeries is one condition of an aperture comparison, already scaled to
// the display unit.
type BoxSeries struct {
	Label  string
	Values []float64
}

// BoxSpec describes an aperture comparison chart. Y ticks run from YMin up
// to, but not including, YMax in steps of YStep.
type BoxSpec struct {
	Title  string
	XLabel string
	YLabel string
	YMin   float64
	YMax   float64
	YStep  float64
	Series []BoxSeries
}

// boxWidth is the rendered width of each box.
var boxWidth = vg.Points(40)

// meanHalfWidth is half the length of the mean marker, in x data units.
const meanHalfWidth = 0.2

// Labels returns the x-axis label of every series.
func (s BoxSpec) Labels() []string {
	labels := make([]string, len(s.Series))
	for i, b := range s.Series {
		labels[i] = b.Label
	}
	return labels
}

// Plot draws the chart with gonum/plot: whiskers at 1.5 IQR, outliers as
// red plus signs, a dashed mean line instead of the median, and boxes
// alternating dark khaki and royal blue over a light horizontal grid.
func (s BoxSpec) Plot() (*gplot.Plot, error) {
	if len(s.Series) == 0 {
		return nil, fmt.Errorf("box plot has no series")
	}

	p := gplot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = lightGrey
	p.Add(grid)

	for i, series := range s.Series {
		vals := finiteValues(series.Values)
		if len(vals) == 0 {
			continue
		}

		box, err := plotter.NewBoxPlot(boxWidth, float64(i), vals)
		if err != nil {
			return nil, fmt.Errorf("box %q: %w", series.Label, err)
		}
		box.FillColor = BoxFill(i)
		box.BoxStyle.Color = black
		box.WhiskerStyle.Color = black
		box.MedianStyle.Width = 0
		box.GlyphStyle = draw.GlyphStyle{Color: red, Radius: vg.Points(3), Shape: draw.PlusGlyph{}}
		p.Add(box)

		sum := keypoints.Summarize(vals)
		mean, err := plotter.NewLine(plotter.XYs{
			{X: float64(i) - meanHalfWidth, Y: sum.Mean},
			{X: float64(i) + meanHalfWidth, Y: sum.Mean},
		})
		if err != nil {
			return nil, fmt.Errorf("mean line %q: %w", series.Label, err)
		}
		mean.Color = meanGreen
		mean.Width = vg.Points(1)
		mean.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(mean)
	}

	p.NominalX(s.Labels()...)
	p.X.Min = -0.5
	p.X.Max = float64(len(s.Series)) - 0.5

	if ticks := rangeTicks(s.YMin, s.YMax, s.YStep); ticks != nil {
		p.Y.Tick.Marker = gplot.ConstantTicks(ticks)
	}
	p.Y.Min = math.Min(p.Y.Min, s.YMin)
	p.Y.Max = math.Max(p.Y.Max, s.YMax)

	return p, nil
}

// HTML builds the interactive version of the chart: one box per condition
// with its outliers overlaid as a scatter series.
func (s BoxSpec) HTML() Renderable {
	boxes := make([]opts.BoxPlotData, len(s.Series))
	var outliers []opts.ScatterData
	for i, series := range s.Series {
		sum := keypoints.Summarize(series.Values)
		if sum.Count == 0 {
			boxes[i] = opts.BoxPlotData{Name: series.Label}
			continue
		}
		boxes[i] = opts.BoxPlotData{
			Name:      series.Label,
			Value:     []float64{sum.LowWhisker, sum.Quartile1, sum.Median, sum.Quartile3, sum.HighWhisker},
			ItemStyle: &opts.ItemStyle{Color: hexColor(BoxFill(i)), BorderColor: hexColor(black)},
		}
		for _, v := range sum.Outliers {
			outliers = append(outliers, opts.ScatterData{Value: []interface{}{i, v}})
		}
	}

	chart := charts.NewBoxPlot()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: s.Title, Width: "1000px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XLabel, NameLocation: "middle", NameGap: 45}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         s.YLabel,
			NameLocation: "middle",
			NameGap:      35,
			Min:          s.YMin,
			Max:          s.YMax,
			SplitLine:    &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: hexColor(lightGrey)}},
		}),
	)
	chart.SetXAxis(s.Labels()).AddSeries("aperture", boxes)

	if len(outliers) > 0 {
		out := charts.NewScatter()
		out.AddSeries("outliers", outliers,
			charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "cross", SymbolSize: 8}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(red)}))
		chart.Overlap(out)
	}
	return chart
}

func finiteValues(vals []float64) plotter.Values {
	out := make(plotter.Values, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
