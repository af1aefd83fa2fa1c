package testutil

import (
	"errors"
	"strings"
	"testing"
)

func TestAssertHelpers(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
	AssertError(t, errors.New("boom"))
}

func TestFixture_Header(t *testing.T) {
	t.Parallel()

	f := NewFixture("/p", 2).WithNames("index_tip", "thumb_tip")
	want := []string{
		"%time",
		"/p/keypoints/0/name", "/p/keypoints/0/points/point/x", "/p/keypoints/0/points/point/y", "/p/keypoints/0/points/point/z",
		"/p/keypoints/1/name", "/p/keypoints/1/points/point/x", "/p/keypoints/1/points/point/y", "/p/keypoints/1/points/point/z",
	}
	got := f.Header()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Header() = %v, want %v", got, want)
	}
}

func TestFixture_CSV(t *testing.T) {
	t.Parallel()

	f := NewFixture(DefaultPrefix, 1).
		AddRow(0.5, -0.25, 1).
		Fill(2, func(row, kp int) (float64, float64, float64) {
			return float64(row), 0, 0
		})

	if f.Rows() != 3 {
		t.Fatalf("Rows() = %d, want 3", f.Rows())
	}

	lines := strings.Split(strings.TrimSpace(f.CSV()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasSuffix(lines[1], ",0.5,-0.25,1") {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if !strings.HasSuffix(lines[3], ",2,0,0") {
		t.Errorf("unexpected fill row %q", lines[3])
	}
}

func TestFixture_AddRowPadsWithZero(t *testing.T) {
	t.Parallel()

	f := NewFixture("/p", 2).AddRow(1, 2)
	lines := strings.Split(strings.TrimSpace(f.CSV()), "\n")
	if !strings.HasSuffix(lines[1], ",1,2,0,0,0,0") {
		t.Errorf("unexpected padded row %q", lines[1])
	}
}
