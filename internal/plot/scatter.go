package plot

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ScatterSeries is the x/y cloud of one keypoint. Missing coordinates are
// NaN and are skipped.
type ScatterSeries struct {
	Name string
	X    []float64
	Y    []float64
}

// Landmark is an annotated reference point.
type Landmark struct {
	Label string
	X, Y  float64
}

// ScatterSpec describes a keypoint cloud chart. Axes are fixed to the
// given ranges; ticks follow the same rule as BoxSpec.
type ScatterSpec struct {
	Title        string
	XLabel       string
	YLabel       string
	XMin, XMax   float64
	YMin, YMax   float64
	XStep, YStep float64
	Series       []ScatterSeries
	GroundTruth  []Landmark
}

// SeriesStats are the per-axis population statistics of one keypoint cloud.
type SeriesStats struct {
	Name         string
	Count        int
	MeanX, MeanY float64
	StdX, StdY   float64
}

// Stats computes the mean and population standard deviation of every
// series over its finite points.
func (s ScatterSpec) Stats() []SeriesStats {
	out := make([]SeriesStats, len(s.Series))
	for i, series := range s.Series {
		xys := finiteXYs(series.X, series.Y)
		st := SeriesStats{Name: series.Name, Count: len(xys)}
		if len(xys) == 0 {
			st.MeanX, st.MeanY, st.StdX, st.StdY = math.NaN(), math.NaN(), math.NaN(), math.NaN()
			out[i] = st
			continue
		}
		xs := make([]float64, len(xys))
		ys := make([]float64, len(xys))
		for j, p := range xys {
			xs[j], ys[j] = p.X, p.Y
		}
		st.MeanX, st.StdX = stat.PopMeanStdDev(xs, nil)
		st.MeanY, st.StdY = stat.PopMeanStdDev(ys, nil)
		out[i] = st
	}
	return out
}

// meanErrors pairs mean points with their one standard deviation spread.
type meanErrors struct {
	plotter.XYs
	plotter.XErrors
	plotter.YErrors
}

// Plot draws one coloured cloud per keypoint, the ground-truth landmarks
// with their labels, and each keypoint's mean with one standard deviation
// error bars.
func (s ScatterSpec) Plot() (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = lightGrey
	grid.Horizontal.Color = lightGrey
	p.Add(grid)

	for i, series := range s.Series {
		xys := finiteXYs(series.X, series.Y)
		if len(xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", series.Name, err)
		}
		sc.GlyphStyle = draw.GlyphStyle{Color: Cycle(i), Radius: vg.Points(1), Shape: draw.CircleGlyph{}}
		p.Add(sc)
		p.Legend.Add(series.Name, sc)
	}

	if len(s.GroundTruth) > 0 {
		if err := s.addGroundTruth(p); err != nil {
			return nil, err
		}
	}

	if err := s.addMeans(p); err != nil {
		return nil, err
	}

	p.X.Min, p.X.Max = s.XMin, s.XMax
	p.Y.Min, p.Y.Max = s.YMin, s.YMax
	if ticks := rangeTicks(s.XMin, s.XMax, s.XStep); ticks != nil {
		p.X.Tick.Marker = gplot.ConstantTicks(ticks)
	}
	if ticks := rangeTicks(s.YMin, s.YMax, s.YStep); ticks != nil {
		p.Y.Tick.Marker = gplot.ConstantTicks(ticks)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

func (s ScatterSpec) addGroundTruth(p *gplot.Plot) error {
	xys := make(plotter.XYs, len(s.GroundTruth))
	labels := make([]string, len(s.GroundTruth))
	for i, lm := range s.GroundTruth {
		xys[i] = plotter.XY{X: lm.X, Y: lm.Y}
		labels[i] = lm.Label
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("ground truth: %w", err)
	}
	sc.GlyphStyle = draw.GlyphStyle{Color: Cycle(len(s.Series)), Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
	p.Add(sc)

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("ground truth labels: %w", err)
	}
	lbl.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
	p.Add(lbl)
	return nil
}

func (s ScatterSpec) addMeans(p *gplot.Plot) error {
	var m meanErrors
	for _, st := range s.Stats() {
		if st.Count == 0 {
			continue
		}
		m.XYs = append(m.XYs, plotter.XY{X: st.MeanX, Y: st.MeanY})
		m.XErrors = append(m.XErrors, struct{ Low, High float64 }{st.StdX, st.StdX})
		m.YErrors = append(m.YErrors, struct{ Low, High float64 }{st.StdY, st.StdY})
	}
	if len(m.XYs) == 0 {
		return nil
	}

	xerr, err := plotter.NewXErrorBars(m)
	if err != nil {
		return fmt.Errorf("mean x error bars: %w", err)
	}
	yerr, err := plotter.NewYErrorBars(m)
	if err != nil {
		return fmt.Errorf("mean y error bars: %w", err)
	}
	xerr.Color, yerr.Color = black, black

	marker, err := plotter.NewScatter(m.XYs)
	if err != nil {
		return fmt.Errorf("mean markers: %w", err)
	}
	marker.GlyphStyle = draw.GlyphStyle{Color: black, Radius: vg.Points(4), Shape: draw.RingGlyph{}}

	p.Add(xerr, yerr, marker)
	p.Legend.Add("Mean", marker)
	return nil
}

// HTML builds the interactive version of the chart.
func (s ScatterSpec) HTML() Renderable {
	chart := charts.NewScatter()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: s.Title, Width: "1000px", Height: "800px"}),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: s.XMin, Max: s.XMax, Name: s.XLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: s.YMin, Max: s.YMax, Name: s.YLabel, NameLocation: "middle", NameGap: 40}),
	)

	for i, series := range s.Series {
		xys := finiteXYs(series.X, series.Y)
		data := make([]opts.ScatterData, len(xys))
		for j, p := range xys {
			data[j] = opts.ScatterData{Value: []interface{}{p.X, p.Y}}
		}
		chart.AddSeries(series.Name, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(Cycle(i))}))
	}

	if len(s.GroundTruth) > 0 {
		data := make([]opts.ScatterData, len(s.GroundTruth))
		for i, lm := range s.GroundTruth {
			data[i] = opts.ScatterData{Name: lm.Label, Value: []interface{}{lm.X, lm.Y}}
		}
		chart.AddSeries("Ground Truth", data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(Cycle(len(s.Series)))}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right", Formatter: "{b}"}))
	}

	var means []opts.ScatterData
	for _, st := range s.Stats() {
		if st.Count == 0 {
			continue
		}
		means = append(means, opts.ScatterData{Name: st.Name, Value: []interface{}{st.MeanX, st.MeanY}})
	}
	if len(means) > 0 {
		chart.AddSeries("Mean", means,
			charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "emptyCircle", SymbolSize: 12}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(black)}))
	}
	return chart
}

func finiteXYs(xs, ys []float64) plotter.XYs {
	n := min(len(xs), len(ys))
	out := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		out = append(out, plotter.XY{X: x, Y: y})
	}
	return out
}
