package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/banshee-data/aperture/internal/config"
	"github.com/banshee-data/aperture/internal/fsutil"
	"github.com/banshee-data/aperture/internal/keypoints"
	"github.com/banshee-data/aperture/internal/monitoring"
	"github.com/banshee-data/aperture/internal/timeutil"
	"github.com/banshee-data/aperture/internal/version"
)

// errUsage marks command-line mistakes: an unknown mode, a missing file or
// a bad flag.
var errUsage = errors.New("usage")

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
	exitData  = 3
)

// app carries the dependencies the commands share, so tests can swap the
// filesystem, the clock and the browser launcher.
type app struct {
	fs     fsutil.FileSystem
	clock  timeutil.Clock
	out    io.Writer
	errOut io.Writer
	open   func(path string) error

	cfgFile string
	cfg     *config.Config
}

func newApp() *app {
	return &app{
		fs:     fsutil.OSFileSystem{},
		clock:  timeutil.RealClock{},
		out:    os.Stdout,
		errOut: os.Stderr,
		open:   openBrowser,
	}
}

// NewRootCmd creates the root command.
func NewRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aperture",
		Short: "Clean hand keypoint logs and plot fingertip aperture",
		Long: `aperture reads CSV logs of tracked hand keypoints, drops keypoints that were
rarely tracked, marks untracked coordinates as missing, removes z-score
outliers and rows frozen on known tracker-loss coordinates, and then either
compares the index/thumb aperture across recordings (boxplot) or plots the
raw keypoint clouds of one recording (plotkeypoints).`,
		Version:       version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			monitoring.SetVerbose(cfg.Verbose)
			if cfg.File != "" {
				monitoring.Debugf("config: %s", cfg.File)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: no mode given. Select \"boxplot\" or \"plotkeypoints\"", errUsage)
			}
			return fmt.Errorf("%w: wrong keyword %q. Select \"boxplot\" or \"plotkeypoints\"", errUsage, args[0])
		},
	}
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./aperture.yaml, then $XDG_CONFIG_HOME/aperture/config.yaml)")
	pf.BoolP("verbose", "v", false, "log every pipeline stage")
	pf.StringP("output-dir", "o", "plots", "base directory for generated plots")
	pf.StringSlice("format", []string{config.FormatPNG}, "output formats: png, svg, pdf, html")
	pf.Bool("open", false, "open generated HTML charts in the browser")
	pf.String("prefix", keypoints.DefaultPrefix, "topic prefix of the keypoint columns (empty to infer)")
	pf.Float64("zscore", keypoints.DefaultZThreshold, "absolute z-score at which a row is an outlier")
	pf.String("nan-policy", string(keypoints.NaNPropagate), "how missing cells enter outlier filtering: propagate or omit")
	pf.String("unit", "cm", "aperture unit: m, cm or mm")

	cmd.AddCommand(NewBoxPlotCmd(a))
	cmd.AddCommand(NewPlotKeypointsCmd(a))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(a *app, args []string) int {
	cmd := NewRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(a.errOut, "aperture: %v\n", err)
	code := exitCode(err)
	if code == exitUsage {
		fmt.Fprintln(a.errOut, "Run 'aperture --help' for usage.")
	}
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, keypoints.ErrData):
		return exitData
	default:
		return exitError
	}
}
