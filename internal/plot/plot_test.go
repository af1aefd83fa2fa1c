package plot

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/aperture/internal/fsutil"
	"github.com/banshee-data/aperture/internal/timeutil"
)

func sampleBox() BoxSpec {
	return BoxSpec{
		Title:  "Aperture",
		XLabel: "Distribution",
		YLabel: "Aperture in cm",
		YMin:   0,
		YMax:   15,
		YStep:  1,
		Series: []BoxSeries{
			{Label: "5cm\nTotal messages: 6", Values: []float64{4.8, 5.1, 5.0, 4.9, 5.2, 12}},
			{Label: "4cm\nTotal messages: 5", Values: []float64{3.9, 4.1, math.NaN(), 4.0, 4.2}},
			{Label: "empty\nTotal messages: 0"},
		},
	}
}

func sampleScatter() ScatterSpec {
	return ScatterSpec{
		Title:  "Keypoints",
		XLabel: "x-axis (in m)",
		YLabel: "y-axis (in m)",
		XMin:   -0.4, XMax: 0,
		YMin: -0.2, YMax: 0.2,
		XStep: 0.05, YStep: 0.05,
		Series: []ScatterSeries{
			{Name: "index_tip", X: []float64{-0.2, -0.21, math.NaN()}, Y: []float64{0.07, 0.08, 0.1}},
			{Name: "thumb_tip", X: []float64{-0.25, -0.26}, Y: []float64{0, 0.01}},
			{Name: "lost", X: []float64{math.NaN()}, Y: []float64{math.NaN()}},
		},
		GroundTruth: []Landmark{
			{Label: "Ground Truth\nIndex Tip", X: -0.2, Y: 0.07},
			{Label: "Ground Truth\nThumb Tip", X: -0.25, Y: 0},
		},
	}
}

func TestRangeTicks(t *testing.T) {
	t.Parallel()

	ticks := rangeTicks(0, 15, 1)
	require.Len(t, ticks, 15)
	assert.Equal(t, 0.0, ticks[0].Value)
	assert.Equal(t, "14", ticks[14].Label)

	ticks = rangeTicks(-0.4, 0, 0.01)
	require.Len(t, ticks, 40)
	assert.Equal(t, "-0.40", ticks[0].Label)
	assert.Equal(t, "-0.01", ticks[39].Label)

	ticks = rangeTicks(-0.2, 0.2, 0.1)
	require.Len(t, ticks, 4)
	assert.Equal(t, "0.0", ticks[2].Label)

	assert.Nil(t, rangeTicks(1, 0, 1))
	assert.Nil(t, rangeTicks(0, 1, 0))
}

func TestDecimalsFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, decimalsFor(1))
	assert.Equal(t, 2, decimalsFor(0.01))
	assert.Equal(t, 1, decimalsFor(2.5))
	assert.Equal(t, 6, decimalsFor(math.Pi))
}

func TestColors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Cycle(0), Cycle(6))
	assert.Equal(t, "#0000ff", hexColor(Cycle(0)))
	assert.Equal(t, "#ff0000", hexColor(Cycle(1)))
	assert.Equal(t, "#bdb76b", hexColor(BoxFill(0)))
	assert.Equal(t, "#4169e1", hexColor(BoxFill(1)))
	assert.Equal(t, BoxFill(0), BoxFill(2))
}

func TestBoxSpec_Plot(t *testing.T) {
	t.Parallel()

	p, err := sampleBox().Plot()
	require.NoError(t, err)
	assert.Equal(t, "Aperture", p.Title.Text)
	assert.Equal(t, -0.5, p.X.Min)
	assert.Equal(t, 2.5, p.X.Max)
	assert.LessOrEqual(t, p.Y.Min, 0.0)
	assert.GreaterOrEqual(t, p.Y.Max, 15.0)

	_, err = BoxSpec{}.Plot()
	assert.Error(t, err)
}

func TestScatterSpec_Stats(t *testing.T) {
	t.Parallel()

	stats := sampleScatter().Stats()
	require.Len(t, stats, 3)

	assert.Equal(t, 2, stats[0].Count)
	assert.InDelta(t, -0.205, stats[0].MeanX, 1e-12)
	assert.InDelta(t, 0.075, stats[0].MeanY, 1e-12)
	assert.InDelta(t, 0.005, stats[0].StdX, 1e-12)

	assert.Equal(t, 0, stats[2].Count)
	assert.True(t, math.IsNaN(stats[2].MeanX))
}

func TestScatterSpec_Plot(t *testing.T) {
	t.Parallel()

	p, err := sampleScatter().Plot()
	require.NoError(t, err)
	assert.Equal(t, -0.4, p.X.Min)
	assert.Equal(t, 0.0, p.X.Max)
	assert.Equal(t, -0.2, p.Y.Min)
	assert.Equal(t, 0.2, p.Y.Max)
}

func TestFiniteXYs(t *testing.T) {
	t.Parallel()

	xys := finiteXYs([]float64{1, math.NaN(), 3, math.Inf(1)}, []float64{1, 2, math.NaN(), 4, 5})
	require.Len(t, xys, 1)
	assert.Equal(t, 1.0, xys[0].X)
}

func TestHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, sampleBox().HTML().Render(&buf))
	assert.Contains(t, buf.String(), "echarts")
	assert.Contains(t, buf.String(), "outliers")

	buf.Reset()
	require.NoError(t, sampleScatter().HTML().Render(&buf))
	assert.Contains(t, buf.String(), "thumb_tip")
	assert.Contains(t, buf.String(), "Ground Truth")
}

func TestWriter_OutputDir(t *testing.T) {
	t.Parallel()

	clock := timeutil.NewMockClock(time.Date(2026, 1, 7, 17, 31, 29, 0, time.UTC))
	w := NewWriter(fsutil.NewMemoryFileSystem(), clock, []string{"png"}, 10, 6)

	assert.Equal(t, filepath.Join("plots", "open_hand", "20260107_173129"), w.OutputDir("plots", "open hand"))
}

func TestWriter_Save(t *testing.T) {
	t.Parallel()

	fs := fsutil.NewMemoryFileSystem()
	w := NewWriter(fs, timeutil.NewMockClock(time.Unix(0, 0)), []string{"png", "svg", "html"}, 4, 3)

	paths, err := w.Save("/out", "boxplot", sampleBox())
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/boxplot.png", "/out/boxplot.svg", "/out/boxplot.html"}, paths)

	png, ok := fs.File("/out/boxplot.png")
	require.True(t, ok)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "png signature")

	svg, ok := fs.File("/out/boxplot.svg")
	require.True(t, ok)
	assert.Contains(t, string(svg), "<svg")

	html, ok := fs.File("/out/boxplot.html")
	require.True(t, ok)
	assert.True(t, strings.Contains(string(html), "<html"), "html page")
}

func TestWriter_SaveErrors(t *testing.T) {
	t.Parallel()

	fs := fsutil.NewMemoryFileSystem()

	_, err := NewWriter(fs, nil, []string{"gif"}, 4, 3).Save("/out", "x", sampleBox())
	assert.Error(t, err)

	_, err = NewWriter(fs, nil, []string{"pdf"}, 4, 3).Save("/out", "x", BoxSpec{})
	assert.Error(t, err)

	// HTML alone never builds the static plot.
	paths, err := NewWriter(fs, nil, []string{"html"}, 4, 3).Save("/out", "empty", BoxSpec{Title: "t"})
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}
