package keypoints

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ApertureSeries holds one aperture value per row that produced a finite
// distance.
type ApertureSeries []float64

// Scaled returns a copy of s multiplied by f.
func (s ApertureSeries) Scaled(f float64) ApertureSeries {
	out := make(ApertureSeries, len(s))
	for i, v := range s {
		out[i] = v * f
	}
	return out
}

// ComputeAperture returns sqrt((xA-xB)^2 + (yA-yB)^2) for every row of t.
// Rows where the result is NaN, which happens when a coordinate was marked
// missing, are left out.
func ComputeAperture(t *Table, a, b ColumnSet) (ApertureSeries, error) {
	var cols [4][]float64
	for i, name := range []string{a.X, a.Y, b.X, b.Y} {
		vals, err := t.Float(name)
		if err != nil {
			return nil, err
		}
		cols[i] = vals
	}
	xA, yA, xB, yB := cols[0], cols[1], cols[2], cols[3]

	out := make(ApertureSeries, 0, t.Len())
	for row := 0; row < t.Len(); row++ {
		dx := xA[row] - xB[row]
		dy := yA[row] - yB[row]
		d := math.Sqrt(dx*dx + dy*dy)
		if math.IsNaN(d) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// ResolveKeypoint finds the keypoint a reference points at. A reference
// that parses as an integer is a discovery index; anything else is matched
// against display names, case-insensitively.
func ResolveKeypoint(sets []ColumnSet, ref string) (ColumnSet, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ColumnSet{}, fmt.Errorf("%w: empty keypoint reference", ErrData)
	}
	if idx, err := strconv.Atoi(ref); err == nil {
		for _, cs := range sets {
			if cs.Index == idx {
				return cs, nil
			}
		}
		return ColumnSet{}, fmt.Errorf("%w: keypoint %d is not among the retained keypoints %s", ErrData, idx, describe(sets))
	}
	for _, cs := range sets {
		if strings.EqualFold(cs.Name, ref) {
			return cs, nil
		}
	}
	return ColumnSet{}, fmt.Errorf("%w: no retained keypoint named %q (retained: %s)", ErrData, ref, describe(sets))
}

func describe(sets []ColumnSet) string {
	if len(sets) == 0 {
		return "none"
	}
	parts := make([]string, len(sets))
	for i, cs := range sets {
		parts[i] = fmt.Sprintf("%d=%s", cs.Index, cs.Label())
	}
	return strings.Join(parts, ", ")
}
