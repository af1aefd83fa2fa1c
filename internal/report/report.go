// Package report prints run summaries as text tables.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/banshee-data/aperture/internal/keypoints"
	"github.com/banshee-data/aperture/internal/plot"
)

// Report writes summary tables for one run. Every table carries the run ID
// so terminal output can be matched with the plot directory logs.
type Report struct {
	RunID string
	w     io.Writer
}

// New returns a Report writing to w with a fresh run ID.
func New(w io.Writer) *Report {
	return &Report{RunID: uuid.NewString(), w: w}
}

// ApertureRow is the summary of one condition.
type ApertureRow struct {
	Label   string
	Source  string
	Summary keypoints.Summary
}

// Apertures prints count, mean, std, median, quartiles and range per
// condition. Values are in unit.
func (r *Report) Apertures(unit string, rows []ApertureRow) {
	t := r.newTable(fmt.Sprintf("Aperture (%s)", unit))
	t.AppendHeader(table.Row{"Condition", "File", "Count", "Mean", "Std", "Median", "Q1", "Q3", "Min", "Max", "Outliers"})
	for _, row := range rows {
		s := row.Summary
		t.AppendRow(table.Row{
			oneLine(row.Label), row.Source, s.Count,
			num(s.Mean), num(s.Std), num(s.Median), num(s.Quartile1), num(s.Quartile3),
			num(s.Min), num(s.Max), len(s.Outliers),
		})
	}
	t.Render()
}

// Stages prints the table shape after every pipeline stage of res.
func (r *Report) Stages(res *keypoints.Result) {
	t := r.newTable("Stages: " + res.Source)
	t.AppendHeader(table.Row{"Stage", "Rows", "Columns", "Changed"})
	for _, s := range res.Stages {
		t.AppendRow(table.Row{s.Stage, s.Rows, s.Columns, s.Changed})
	}
	t.AppendFooter(table.Row{"threshold", res.Threshold, fmt.Sprintf("%d/%d kept", len(res.Retained), len(res.Candidates)), ""})
	t.Render()
}

// Keypoints prints the mean and standard deviation of every keypoint cloud.
func (r *Report) Keypoints(stats []plot.SeriesStats) {
	t := r.newTable("Keypoints (m)")
	t.AppendHeader(table.Row{"Keypoint", "Points", "Mean X", "Std X", "Mean Y", "Std Y"})
	for _, s := range stats {
		t.AppendRow(table.Row{s.Name, s.Count, num(s.MeanX), num(s.StdX), num(s.MeanY), num(s.StdY)})
	}
	t.Render()
}

func (r *Report) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s  [run %s]", title, r.RunID))
	return t
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " / ")
}
