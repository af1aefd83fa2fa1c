package keypoints

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/banshee-data/aperture/internal/fsutil"
)

// Table is a column-oriented view of one keypoint log. Every column has the
// same number of rows. A loaded table holds the raw text cells; tables built
// by FilterValid hold float64 values only.
type Table struct {
	columns []string
	index   map[string]int
	text    [][]string  // text[col][row]; nil for derived columns
	values  [][]float64 // values[col][row]; nil until a column is numeric
	rowIDs  []int       // original data row numbers, kept across drops
}

// NewTable returns an empty numeric table with rows rows. Row IDs are
// 0..rows-1.
func NewTable(rows int) *Table {
	ids := make([]int, rows)
	for i := range ids {
		ids[i] = i
	}
	return &Table{index: make(map[string]int), rowIDs: ids}
}

// Load reads a CSV file with a header row from fsys.
func Load(fsys fsutil.FileSystem, path string) (*Table, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrInput, path, err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses CSV text with a header row. Ragged rows and empty input
// are input errors.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file, no header row", ErrInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrInput, err)
	}

	t := &Table{
		columns: append([]string(nil), header...),
		index:   make(map[string]int, len(header)),
		text:    make([][]string, len(header)),
		values:  make([][]float64, len(header)),
	}
	for i, name := range header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInput, err)
		}
		for i, cell := range rec {
			t.text[i] = append(t.text[i], cell)
		}
		t.rowIDs = append(t.rowIDs, row)
	}
	return t, nil
}

// Columns returns the column identifiers in file order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rowIDs)
}

// RowIDs returns the original row numbers of the remaining rows.
func (t *Table) RowIDs() []int {
	return append([]int(nil), t.rowIDs...)
}

// HasColumn reports whether the table has a column with this identifier.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the raw text of a cell. Numeric-only columns are formatted.
func (t *Table) Cell(name string, row int) string {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= t.Len() {
		return ""
	}
	if t.text[i] != nil {
		return t.text[i][row]
	}
	return formatFloat(t.values[i][row])
}

// Float returns a column as float64 values, parsing text on first use.
// Empty and "nan" cells become NaN. The returned slice is shared with the
// table.
func (t *Table) Float(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: no column %q", ErrData, name)
	}
	if t.values[i] != nil || t.text[i] == nil {
		return t.values[i], nil
	}

	vals := make([]float64, len(t.text[i]))
	for row, cell := range t.text[i] {
		v, err := parseCell(cell)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d: %w", ErrInput, name, t.rowIDs[row], err)
		}
		vals[row] = v
	}
	t.values[i] = vals
	return vals, nil
}

// AddColumn appends a numeric column. The slice length must match Len.
func (t *Table) AddColumn(name string, vals []float64) error {
	if len(vals) != t.Len() {
		return fmt.Errorf("column %q has %d rows, table has %d", name, len(vals), t.Len())
	}
	if i, ok := t.index[name]; ok {
		t.values[i] = vals
		t.text[i] = nil
		return nil
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	t.text = append(t.text, nil)
	t.values = append(t.values, vals)
	return nil
}

// keepRows compacts every column to the rows where keep is true and returns
// the number of rows dropped.
func (t *Table) keepRows(keep []bool) int {
	n := 0
	for row, k := range keep {
		if !k {
			continue
		}
		for c := range t.columns {
			if t.text[c] != nil {
				t.text[c][n] = t.text[c][row]
			}
			if t.values[c] != nil {
				t.values[c][n] = t.values[c][row]
			}
		}
		t.rowIDs[n] = t.rowIDs[row]
		n++
	}
	dropped := len(keep) - n
	for c := range t.columns {
		if t.text[c] != nil {
			t.text[c] = t.text[c][:n]
		}
		if t.values[c] != nil {
			t.values[c] = t.values[c][:n]
		}
	}
	t.rowIDs = t.rowIDs[:n]
	return dropped
}

func parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
