package keypoints

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize([]float64{8, 3, 100, 1, 5, 2, 7, math.NaN(), 4, 6})

	assert.Equal(t, 9, s.Count)
	assert.InDelta(t, 136.0/9, s.Mean, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.Equal(t, 5.0, s.Median)
	assert.Equal(t, 2.5, s.Quartile1)
	assert.Equal(t, 7.0, s.Quartile3)
	assert.Equal(t, 1.0, s.LowWhisker)
	assert.Equal(t, 8.0, s.HighWhisker)
	assert.Equal(t, []float64{100}, s.Outliers)
}

func TestSummarize_Small(t *testing.T) {
	t.Parallel()

	s := Summarize([]float64{2})
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 2.0, s.Median)
	assert.Equal(t, 0.0, s.Std)
	assert.Equal(t, 2.0, s.LowWhisker)
	assert.Equal(t, 2.0, s.HighWhisker)

	s = Summarize([]float64{1, 3})
	assert.Equal(t, 2.0, s.Median)
	assert.Equal(t, 1.0, s.Std)
	assert.Empty(t, s.Outliers)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	s := Summarize([]float64{math.NaN()})
	assert.Equal(t, 0, s.Count)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Median))
}
