package keypoints

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/aperture/internal/testutil"
)

func mustRead(t *testing.T, csv string) *Table {
	t.Helper()
	tbl, err := ReadTable(strings.NewReader(csv))
	require.NoError(t, err)
	return tbl
}

func TestDiscover_Contiguous(t *testing.T) {
	t.Parallel()

	p := "/p"
	header := []string{
		"%time",
		AxisColumn(p, 0, "x"), AxisColumn(p, 0, "y"), AxisColumn(p, 0, "z"),
		AxisColumn(p, 1, "x"), AxisColumn(p, 1, "y"), AxisColumn(p, 1, "z"),
		// Index 2 is missing; 3 must not be picked up.
		AxisColumn(p, 3, "x"), AxisColumn(p, 3, "y"), AxisColumn(p, 3, "z"),
	}
	row := strings.Repeat(",1", len(header)-1)
	tbl := mustRead(t, strings.Join(header, ",")+"\n0"+row+"\n")

	sets := Discover(tbl, p)
	require.Len(t, sets, 2)
	for i, cs := range sets {
		assert.Equal(t, i, cs.Index)
	}
}

func TestDiscover_StopsAtIncompleteAxis(t *testing.T) {
	t.Parallel()

	p := "/p"
	header := []string{
		AxisColumn(p, 0, "x"), AxisColumn(p, 0, "y"), AxisColumn(p, 0, "z"),
		AxisColumn(p, 1, "x"), AxisColumn(p, 1, "y"),
		AxisColumn(p, 2, "x"), AxisColumn(p, 2, "y"), AxisColumn(p, 2, "z"),
	}
	tbl := mustRead(t, strings.Join(header, ",")+"\n")

	sets := Discover(tbl, p)
	require.Len(t, sets, 1)
	assert.Equal(t, AxisColumn(p, 0, "z"), sets[0].Z)
}

func TestDiscover_Names(t *testing.T) {
	t.Parallel()

	fx := testutil.NewFixture(testutil.DefaultPrefix, 2).
		WithNames("index_tip", "thumb_tip").
		AddRow(0.1, 0.2, 0.3, 0.4, 0.5, 0.6)
	tbl := mustRead(t, fx.CSV())

	got := Discover(tbl, testutil.DefaultPrefix)
	want := []ColumnSet{
		{Index: 0, Name: "index_tip", X: fx.Column(0, "x"), Y: fx.Column(0, "y"), Z: fx.Column(0, "z")},
		{Index: 1, Name: "thumb_tip", X: fx.Column(1, "x"), Y: fx.Column(1, "y"), Z: fx.Column(1, "z")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_PositionalNameFallback(t *testing.T) {
	t.Parallel()

	p := "/p"
	header := []string{
		"name_of_run",
		"/hand/name",
		AxisColumn(p, 0, "x"), AxisColumn(p, 0, "y"), AxisColumn(p, 0, "z"),
		"/hand/other_name",
		AxisColumn(p, 1, "x"), AxisColumn(p, 1, "y"), AxisColumn(p, 1, "z"),
	}
	tbl := mustRead(t, strings.Join(header, ",")+"\nrun1,wrist,1,1,1,palm,1,1,1\n")

	sets := Discover(tbl, p)
	require.Len(t, sets, 2)
	assert.Equal(t, "wrist", sets[0].Name)
	assert.Equal(t, "palm", sets[1].Name)
}

func TestDiscover_InfersPrefix(t *testing.T) {
	t.Parallel()

	fx := testutil.NewFixture("/custom_topic", 1).AddRow(1, 1, 1)
	tbl := mustRead(t, fx.CSV())

	assert.Equal(t, "/custom_topic", InferPrefix(tbl))
	assert.Len(t, Discover(tbl, ""), 1)
	assert.Empty(t, Discover(tbl, DefaultPrefix))
	assert.Empty(t, Discover(mustRead(t, "a,b\n1,2\n"), ""))
}

func TestColumnSet_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "thumb", ColumnSet{Index: 1, Name: "thumb"}.Label())
	assert.Equal(t, "keypoint 3", ColumnSet{Index: 3}.Label())
}
