package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/aperture/internal/fsutil"
	"github.com/banshee-data/aperture/internal/keypoints"
	"github.com/banshee-data/aperture/internal/monitoring"
	"github.com/banshee-data/aperture/internal/plot"
	"github.com/banshee-data/aperture/internal/report"
)

// NewPlotKeypointsCmd creates the plotkeypoints command.
func NewPlotKeypointsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plotkeypoints <file>",
		Short: "Scatter the keypoint clouds of one recording",
		Long: `Clean one file with outlier removal, dump the cleaned table for inspection
and plot every retained keypoint's x/y positions against the ground-truth
reference points.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 || args[0] == "" {
				return fmt.Errorf("%w: invalid file name given", errUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlotKeypoints(args[0])
		},
	}

	f := cmd.Flags()
	f.String("debug-csv", "", "where to dump the cleaned table (default $XDG_CACHE_HOME/aperture/keypoints_debug.csv)")
	f.Bool("with-outliers", false, "skip z-score outlier removal")

	return cmd
}

func (a *app) runPlotKeypoints(path string) error {
	cfg := a.cfg
	pipe := keypoints.NewPipeline(cfg.PipelineConfig(), a.fs)
	rep := report.New(a.out)

	opts := keypoints.ScatterOptions
	if cfg.Scatter.WithOutliers {
		opts.RemoveOutliers = false
	}
	monitoring.Debugf("run %s: plotkeypoints %s (outlier removal %t)", rep.RunID, path, opts.RemoveOutliers)

	res, err := pipe.Run(path, opts)
	if err != nil {
		return err
	}
	if len(res.Retained) == 0 {
		return fmt.Errorf("%w: %s: none of %d keypoints passed the validity filter", keypoints.ErrData, path, len(res.Candidates))
	}
	if res.Table.Len() == 0 {
		monitoring.Logf("warning: %s: every row was removed; missing cells poison z-scores under nan_policy %q, try --nan-policy omit",
			path, pipe.Config().NaNPolicy)
	}

	if dump := cfg.Output.DebugCSV; dump != "" {
		if err := keypoints.DumpCSV(a.fs, dump, res.Table); err != nil {
			return err
		}
		monitoring.Logf("wrote %s", dump)
	}

	chart := plot.ScatterSpec{
		Title:  cfg.Scatter.Title,
		XLabel: cfg.Scatter.XLabel,
		YLabel: cfg.Scatter.YLabel,
		XMin:   cfg.Scatter.XMin,
		XMax:   cfg.Scatter.XMax,
		YMin:   cfg.Scatter.YMin,
		YMax:   cfg.Scatter.YMax,
		XStep:  cfg.Scatter.XStep,
		YStep:  cfg.Scatter.YStep,
	}
	for _, cs := range res.Retained {
		xs, err := res.Table.Float(cs.X)
		if err != nil {
			return err
		}
		ys, err := res.Table.Float(cs.Y)
		if err != nil {
			return err
		}
		chart.Series = append(chart.Series, plot.ScatterSeries{Name: cs.Label(), X: xs, Y: ys})
	}
	for _, lm := range cfg.Scatter.GroundTruth {
		chart.GroundTruth = append(chart.GroundTruth, plot.Landmark{Label: lm.Label, X: lm.X, Y: lm.Y})
	}

	w := plot.NewWriter(a.fs, a.clock, cfg.Output.Formats, cfg.Output.Width, cfg.Output.Height)
	paths, err := w.Save(w.OutputDir(cfg.Output.Dir, fsutil.Stem(path)), "keypoints", chart)
	if err != nil {
		return err
	}

	rep.Stages(res)
	rep.Keypoints(chart.Stats())
	a.openHTML(paths)
	return nil
}
