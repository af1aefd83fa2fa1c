package keypoints

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultZThreshold is the absolute z-score at or above which a cell marks
// its row as an outlier.
const DefaultZThreshold = 2.698

// NaNPolicy selects how missing cells take part in z-score filtering.
type NaNPolicy string

const (
	// NaNPropagate lets a missing cell poison its column's mean and
	// standard deviation. Every z-score of that column becomes NaN and no
	// row survives the filter.
	NaNPropagate NaNPolicy = "propagate"

	// NaNOmit computes column statistics over finite cells only and does
	// not let a missing cell reject its row.
	NaNOmit NaNPolicy = "omit"
)

// ParseNaNPolicy validates a policy name. The empty string selects
// NaNPropagate.
func ParseNaNPolicy(s string) (NaNPolicy, error) {
	switch NaNPolicy(s) {
	case "", NaNPropagate:
		return NaNPropagate, nil
	case NaNOmit:
		return NaNOmit, nil
	default:
		return "", fmt.Errorf("unknown nan policy %q (want %q or %q)", s, NaNPropagate, NaNOmit)
	}
}

// ZScores returns the population z-score of every value in vals (mean and
// standard deviation with ddof=0).
func ZScores(vals []float64, policy NaNPolicy) []float64 {
	sample := vals
	if policy == NaNOmit {
		sample = finite(vals)
	}

	z := make([]float64, len(vals))
	if len(sample) == 0 {
		for i := range z {
			z[i] = math.NaN()
		}
		return z
	}

	mean, std := stat.PopMeanStdDev(sample, nil)
	for i, v := range vals {
		switch {
		case policy == NaNOmit && math.IsNaN(v):
			z[i] = math.NaN()
		case policy == NaNOmit && std == 0:
			z[i] = 0
		default:
			z[i] = (v - mean) / std
		}
	}
	return z
}

// RemoveOutliers drops every row in which any numeric column has
// |z| >= threshold and returns the number of rows dropped. Under
// NaNPropagate a NaN z-score also rejects the row; under NaNOmit missing
// cells are ignored.
func RemoveOutliers(t *Table, threshold float64, policy NaNPolicy) int {
	keep := make([]bool, t.Len())
	for i := range keep {
		keep[i] = true
	}

	for _, name := range t.columns {
		vals, err := t.Float(name)
		if err != nil {
			continue
		}
		for row, z := range ZScores(vals, policy) {
			if policy == NaNOmit && math.IsNaN(vals[row]) {
				continue
			}
			if !(math.Abs(z) < threshold) {
				keep[row] = false
			}
		}
	}
	return t.keepRows(keep)
}

func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
