package keypoints

import "math"

// Coordinate is an x/y pair in metres.
type Coordinate struct {
	X float64 `koanf:"x" json:"x"`
	Y float64 `koanf:"y" json:"y"`
}

// DefaultBlacklist lists coordinates the tracker reports when it loses the
// hand. They show up as frozen values across many rows.
func DefaultBlacklist() []Coordinate {
	return []Coordinate{
		{X: -0.153134927441, Y: 0.929576465814},
		{X: -0.180600002403, Y: 0.986484451679},
		{X: -0.238413722605, Y: 0.0289434800859},
		{X: -0.194435179098, Y: 0.0676014466519},
	}
}

// RemoveBlacklist drops every row whose rounded value in any x column equals
// a rounded blacklist x, or whose rounded value in any y column equals a
// rounded blacklist y. The two axes match independently. It returns the
// number of rows dropped.
func RemoveBlacklist(t *Table, xCols, yCols []string, blacklist []Coordinate, decimals int) int {
	badX := make(map[float64]bool, len(blacklist))
	badY := make(map[float64]bool, len(blacklist))
	for _, c := range blacklist {
		badX[Round(c.X, decimals)] = true
		badY[Round(c.Y, decimals)] = true
	}

	keep := make([]bool, t.Len())
	for i := range keep {
		keep[i] = true
	}
	mark := func(cols []string, bad map[float64]bool) {
		for _, name := range cols {
			vals, err := t.Float(name)
			if err != nil {
				continue
			}
			for row, v := range vals {
				if math.IsNaN(v) {
					continue
				}
				if bad[Round(v, decimals)] {
					keep[row] = false
				}
			}
		}
	}
	mark(xCols, badX)
	mark(yCols, badY)
	return t.keepRows(keep)
}
