package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/aperture/internal/keypoints"
	"github.com/banshee-data/aperture/internal/monitoring"
	"github.com/banshee-data/aperture/internal/plot"
	"github.com/banshee-data/aperture/internal/report"
	"github.com/banshee-data/aperture/internal/units"
)

// NewBoxPlotCmd creates the boxplot command.
func NewBoxPlotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boxplot <file>...",
		Short: "Compare aperture distributions across recordings",
		Long: `Compute the aperture between two fingertip keypoints for every row of each
file and draw one box per file. Files are processed in the order given and
the boxes keep that order.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: boxplot needs at least one file", errUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBoxPlot(args)
		},
	}

	f := cmd.Flags()
	f.StringSlice("labels", nil, "condition label per file, in order (default: file name)")
	f.IntSlice("messages", nil, "message count per file shown under each box (default: rows read)")
	f.String("first", "0", "first aperture keypoint: discovery index or name")
	f.String("second", "1", "second aperture keypoint: discovery index or name")

	return cmd
}

func (a *app) runBoxPlot(files []string) error {
	cfg := a.cfg
	pipe := keypoints.NewPipeline(cfg.PipelineConfig(), a.fs)
	factor := units.LengthFactor(cfg.Aperture.Unit)
	rep := report.New(a.out)
	monitoring.Debugf("run %s: boxplot over %d files", rep.RunID, len(files))

	chart := plot.BoxSpec{
		Title:  cfg.BoxPlot.Title,
		XLabel: cfg.BoxPlot.XLabel,
		YLabel: cfg.BoxPlot.YLabel,
		YMin:   cfg.BoxPlot.YMin,
		YMax:   cfg.BoxPlot.YMax,
		YStep:  cfg.BoxPlot.YStep,
	}
	rows := make([]report.ApertureRow, 0, len(files))

	for i, path := range files {
		series, res, err := pipe.ExtractAperture(path)
		if err != nil {
			return err
		}
		if monitoring.Verbose() {
			rep.Stages(res)
		}

		scaled := series.Scaled(factor)
		label := cfg.BoxLabel(i, path, res.LoadedRows())
		chart.Series = append(chart.Series, plot.BoxSeries{Label: label, Values: scaled})
		rows = append(rows, report.ApertureRow{Label: label, Source: path, Summary: keypoints.Summarize(scaled)})
	}

	w := plot.NewWriter(a.fs, a.clock, cfg.Output.Formats, cfg.Output.Width, cfg.Output.Height)
	paths, err := w.Save(w.OutputDir(cfg.Output.Dir, "boxplot"), "aperture_boxplot", chart)
	if err != nil {
		return err
	}

	rep.Apertures(cfg.Aperture.Unit, rows)
	a.openHTML(paths)
	return nil
}
