package keypoints

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPrefix is the topic prefix written by the hand tracker's bag export.
const DefaultPrefix = "/topic_transform"

var keypointColumnRe = regexp.MustCompile(`^(.*)/keypoints/[0-9]+/points/point/[xyz]$`)

// ColumnSet names the three coordinate columns of one keypoint.
type ColumnSet struct {
	Index int
	Name  string
	X     string
	Y     string
	Z     string
}

// Columns returns the x, y and z column identifiers in that order.
func (c ColumnSet) Columns() [3]string {
	return [3]string{c.X, c.Y, c.Z}
}

// Label returns the display name, or a positional label when the log did
// not carry one.
func (c ColumnSet) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("keypoint %d", c.Index)
}

// AxisColumn builds the column identifier for one keypoint axis.
func AxisColumn(prefix string, index int, axis string) string {
	return fmt.Sprintf("%s/keypoints/%d/points/point/%s", prefix, index, axis)
}

// InferPrefix returns the topic prefix of the first keypoint coordinate
// column, or "" when the table has none.
func InferPrefix(t *Table) string {
	for _, col := range t.columns {
		if m := keypointColumnRe.FindStringSubmatch(col); m != nil {
			return m[1]
		}
	}
	return ""
}

// Discover returns one ColumnSet per keypoint index, starting at 0 and
// stopping at the first index that lacks any of its x, y or z columns, so
// the indices are always contiguous. An empty prefix is inferred from the
// table.
func Discover(t *Table, prefix string) []ColumnSet {
	if prefix == "" {
		prefix = InferPrefix(t)
		if prefix == "" {
			return nil
		}
	}

	// Columns whose identifier mentions "name", skipping the leading
	// timestamp column, in file order.
	var nameCols []string
	for _, col := range t.columns[min(1, len(t.columns)):] {
		if strings.Contains(col, "name") {
			nameCols = append(nameCols, col)
		}
	}

	var sets []ColumnSet
	for i := 0; ; i++ {
		cs := ColumnSet{
			Index: i,
			X:     AxisColumn(prefix, i, "x"),
			Y:     AxisColumn(prefix, i, "y"),
			Z:     AxisColumn(prefix, i, "z"),
		}
		if !t.HasColumn(cs.X) || !t.HasColumn(cs.Y) || !t.HasColumn(cs.Z) {
			break
		}
		if col := nameColumnFor(nameCols, prefix, i); col != "" && t.Len() > 0 {
			cs.Name = strings.TrimSpace(t.Cell(col, 0))
		}
		sets = append(sets, cs)
	}
	return sets
}

// nameColumnFor prefers a name column scoped to the keypoint and falls back
// to the i-th name column in file order.
func nameColumnFor(nameCols []string, prefix string, i int) string {
	scope := fmt.Sprintf("%s/keypoints/%d/", prefix, i)
	for _, col := range nameCols {
		if strings.HasPrefix(col, scope) {
			return col
		}
	}
	if i < len(nameCols) {
		return nameCols[i]
	}
	return ""
}
