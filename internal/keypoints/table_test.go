package keypoints

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/aperture/internal/fsutil"
)

func TestReadTable(t *testing.T) {
	t.Parallel()

	tbl, err := ReadTable(strings.NewReader("a,b\n1,2\n,4.5\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []int{0, 1}, tbl.RowIDs())
	assert.True(t, tbl.HasColumn("b"))
	assert.False(t, tbl.HasColumn("c"))
	assert.Equal(t, "4.5", tbl.Cell("b", 1))
	assert.Equal(t, "", tbl.Cell("c", 0))

	a, err := tbl.Float("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, a[0])
	assert.True(t, math.IsNaN(a[1]), "empty cell should parse as NaN")
}

func TestReadTable_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"ragged", "a,b\n1,2\n3\n"},
		{"bare quote", "a,b\n1,\"2\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadTable(strings.NewReader(tt.input))
			require.ErrorIs(t, err, ErrInput)
		})
	}
}

func TestTable_Float(t *testing.T) {
	t.Parallel()

	tbl, err := ReadTable(strings.NewReader("a,b\n1,oops\n"))
	require.NoError(t, err)

	_, err = tbl.Float("b")
	assert.ErrorIs(t, err, ErrInput)

	_, err = tbl.Float("missing")
	assert.ErrorIs(t, err, ErrData)

	// Parsing is cached and shared.
	first, err := tbl.Float("a")
	require.NoError(t, err)
	first[0] = 9
	again, err := tbl.Float("a")
	require.NoError(t, err)
	assert.Equal(t, 9.0, again[0])
}

func TestTable_AddColumn(t *testing.T) {
	t.Parallel()

	tbl := NewTable(2)
	require.NoError(t, tbl.AddColumn("x", []float64{1, math.NaN()}))
	assert.Error(t, tbl.AddColumn("y", []float64{1}))

	assert.Equal(t, "1", tbl.Cell("x", 0))
	assert.Equal(t, "", tbl.Cell("x", 1))

	require.NoError(t, tbl.AddColumn("x", []float64{3, 4}))
	assert.Equal(t, []string{"x"}, tbl.Columns())
	assert.Equal(t, "4", tbl.Cell("x", 1))
}

func TestTable_KeepRows(t *testing.T) {
	t.Parallel()

	tbl, err := ReadTable(strings.NewReader("a\n1\n2\n3\n4\n"))
	require.NoError(t, err)
	_, err = tbl.Float("a")
	require.NoError(t, err)

	dropped := tbl.keepRows([]bool{true, false, true, false})
	assert.Equal(t, 2, dropped)
	assert.Equal(t, []int{0, 2}, tbl.RowIDs())
	assert.Equal(t, "3", tbl.Cell("a", 1))

	vals, err := tbl.Float("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, vals)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fs := fsutil.NewMemoryFileSystem()
	fs.AddFile("/data/run.csv", []byte("a\n1\n"))

	tbl, err := Load(fs, "/data/run.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	_, err = Load(fs, "/data/missing.csv")
	assert.ErrorIs(t, err, ErrInput)
}
