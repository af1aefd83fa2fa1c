// Package testutil provides shared test utilities and fixtures.
//
// The main fixture is Fixture, which builds hand keypoint logs in the same
// column layout the tracker's bag export produces.
package testutil

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

// DefaultPrefix matches the topic prefix of recorded hand-tracking logs.
const DefaultPrefix = "/topic_transform"

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Fixture builds a keypoint CSV log. The first column is a timestamp;
// each keypoint contributes an optional name column followed by its x, y
// and z columns.
type Fixture struct {
	Prefix    string
	Keypoints int
	Names     []string
	rows      [][]float64
}

// NewFixture returns an empty fixture with the given number of keypoints.
func NewFixture(prefix string, keypoints int) *Fixture {
	return &Fixture{Prefix: prefix, Keypoints: keypoints}
}

// WithNames sets the display names written in each keypoint's name column.
func (f *Fixture) WithNames(names ...string) *Fixture {
	f.Names = names
	return f
}

// AddRow appends one row. coords holds x, y, z per keypoint in order;
// missing trailing values are zero.
func (f *Fixture) AddRow(coords ...float64) *Fixture {
	row := make([]float64, 3*f.Keypoints)
	copy(row, coords)
	f.rows = append(f.rows, row)
	return f
}

// Fill appends n rows whose coordinates come from fn.
func (f *Fixture) Fill(n int, fn func(row, keypoint int) (x, y, z float64)) *Fixture {
	for r := 0; r < n; r++ {
		row := make([]float64, 3*f.Keypoints)
		for k := 0; k < f.Keypoints; k++ {
			row[3*k], row[3*k+1], row[3*k+2] = fn(len(f.rows), k)
		}
		f.rows = append(f.rows, row)
	}
	return f
}

// Rows returns the number of data rows.
func (f *Fixture) Rows() int {
	return len(f.rows)
}

// Column returns the identifier of one keypoint axis column.
func (f *Fixture) Column(keypoint int, axis string) string {
	return fmt.Sprintf("%s/keypoints/%d/points/point/%s", f.Prefix, keypoint, axis)
}

// Header returns the CSV header row.
func (f *Fixture) Header() []string {
	header := []string{"%time"}
	for k := 0; k < f.Keypoints; k++ {
		if k < len(f.Names) {
			header = append(header, fmt.Sprintf("%s/keypoints/%d/name", f.Prefix, k))
		}
		header = append(header, f.Column(k, "x"), f.Column(k, "y"), f.Column(k, "z"))
	}
	return header
}

// CSV renders the fixture.
func (f *Fixture) CSV() string {
	var b strings.Builder
	b.WriteString(strings.Join(f.Header(), ","))
	b.WriteByte('\n')
	for r, row := range f.rows {
		cells := []string{strconv.Itoa(1600000000000 + r*33)}
		for k := 0; k < f.Keypoints; k++ {
			if k < len(f.Names) {
				cells = append(cells, f.Names[k])
			}
			for a := 0; a < 3; a++ {
				cells = append(cells, strconv.FormatFloat(row[3*k+a], 'f', -1, 64))
			}
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// Bytes renders the fixture as bytes.
func (f *Fixture) Bytes() []byte {
	return []byte(f.CSV())
}
