package keypoints

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WhiskerFactor scales the interquartile range to place the box-plot fences.
const WhiskerFactor = 1.5

// Summary describes a distribution the way a Tukey box plot draws it.
// Quartiles are the medians of the lower and upper halves of the sorted
// data, matching gonum/plot's BoxPlot so printed numbers agree with the
// rendered boxes.
type Summary struct {
	Count                        int
	Mean, Std                    float64 // population standard deviation
	Min, Max                     float64
	Median, Quartile1, Quartile3 float64
	LowWhisker, HighWhisker      float64
	Outliers                     []float64
}

// Summarize computes a Summary over the finite values of vals. An empty
// input yields a zero Count and NaN statistics.
func Summarize(vals []float64) Summary {
	sorted := finite(vals)
	sort.Float64s(sorted)

	s := Summary{Count: len(sorted)}
	if len(sorted) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Max = nan, nan, nan, nan
		s.Median, s.Quartile1, s.Quartile3 = nan, nan, nan
		s.LowWhisker, s.HighWhisker = nan, nan
		return s
	}

	s.Mean, s.Std = stat.PopMeanStdDev(sorted, nil)
	s.Min, s.Max = floats.Min(sorted), floats.Max(sorted)

	if len(sorted) == 1 {
		s.Median, s.Quartile1, s.Quartile3 = sorted[0], sorted[0], sorted[0]
	} else {
		s.Median = sortedMedian(sorted)
		s.Quartile1 = sortedMedian(sorted[:len(sorted)/2])
		s.Quartile3 = sortedMedian(sorted[len(sorted)/2:])
	}

	iqr := s.Quartile3 - s.Quartile1
	low := s.Quartile1 - WhiskerFactor*iqr
	high := s.Quartile3 + WhiskerFactor*iqr
	s.LowWhisker, s.HighWhisker = math.Inf(1), math.Inf(-1)
	for _, v := range sorted {
		if v < low || v > high {
			s.Outliers = append(s.Outliers, v)
			continue
		}
		s.LowWhisker = math.Min(s.LowWhisker, v)
		s.HighWhisker = math.Max(s.HighWhisker, v)
	}
	return s
}

func sortedMedian(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
