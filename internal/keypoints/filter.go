package keypoints

import (
	"math"

	"github.com/banshee-data/aperture/internal/monitoring"
)

// DefaultDecimals is the rounding applied to every retained coordinate.
// Blacklist matching is exact on rounded values, so rounding must happen
// before any comparison.
const DefaultDecimals = 7

// DefaultRetentionDivisor sets the retention bar at a quarter of the
// candidate keypoint count.
const DefaultRetentionDivisor = 4

// RetentionThreshold is the minimum non-zero row count (exclusive) a
// keypoint column needs to be retained: candidates/divisor with integer
// division. It is computed once from the discovered candidate count.
func RetentionThreshold(candidates, divisor int) int {
	if divisor <= 0 {
		divisor = DefaultRetentionDivisor
	}
	return candidates / divisor
}

// Round rounds half to even at the given number of decimals. NaN and
// infinities pass through.
func Round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow10(decimals)
	return math.RoundToEven(v*p) / p
}

// FilterValid keeps the keypoints whose x, y and z columns each have more
// than threshold non-zero rows and copies their coordinates, rounded to
// decimals, into a new table with the same rows. Missing cells count as
// non-zero. Dropped keypoints are not copied.
func FilterValid(t *Table, sets []ColumnSet, threshold, decimals int) ([]ColumnSet, *Table, error) {
	out := &Table{
		index:  make(map[string]int),
		rowIDs: append([]int(nil), t.rowIDs...),
	}

	var retained []ColumnSet
	for _, cs := range sets {
		var cols [3][]float64
		keep := true
		for j, name := range cs.Columns() {
			vals, err := t.Float(name)
			if err != nil {
				return nil, nil, err
			}
			cols[j] = vals
			if n := countNonZero(vals); n <= threshold {
				keep = false
			}
		}
		if !keep {
			monitoring.Debugf("keypoint %d (%s) dropped: too few non-zero rows (threshold %d)", cs.Index, cs.Label(), threshold)
			continue
		}

		retained = append(retained, cs)
		for j, name := range cs.Columns() {
			rounded := make([]float64, len(cols[j]))
			for row, v := range cols[j] {
				rounded[row] = Round(v, decimals)
			}
			if err := out.AddColumn(name, rounded); err != nil {
				return nil, nil, err
			}
		}
	}
	return retained, out, nil
}

// MarkMissing replaces every cell equal to zero with NaN so zero-valued
// sensor noise drops out of statistics and plots without removing the row.
// It returns the number of cells replaced.
func MarkMissing(t *Table) int {
	n := 0
	for c := range t.columns {
		vals, err := t.Float(t.columns[c])
		if err != nil {
			// Non-numeric metadata columns are left alone.
			continue
		}
		for row, v := range vals {
			if v == 0 {
				vals[row] = math.NaN()
				n++
			}
		}
	}
	return n
}

func countNonZero(vals []float64) int {
	n := 0
	for _, v := range vals {
		if v != 0 {
			n++
		}
	}
	return n
}
