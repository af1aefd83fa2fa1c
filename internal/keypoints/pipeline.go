package keypoints

import (
	"fmt"

	"github.com/banshee-data/aperture/internal/fsutil"
	"github.com/banshee-data/aperture/internal/monitoring"
)

// Config carries every constant the cleaning stages depend on.
type Config struct {
	// Prefix is the topic prefix of the keypoint columns. Empty infers it
	// from the first keypoint column in the file.
	Prefix string

	// RetentionDivisor sets the FilterValid threshold to
	// candidates/RetentionDivisor.
	RetentionDivisor int

	// Decimals is the rounding applied to retained coordinates.
	Decimals int

	// ZThreshold is the RemoveOutliers cut-off.
	ZThreshold float64

	NaNPolicy NaNPolicy
	Blacklist []Coordinate

	// First and Second select the aperture keypoints, by discovery index
	// ("0") or by display name ("index_tip").
	First  string
	Second string
}

// DefaultConfig returns the settings the hand-tracking datasets were
// recorded against.
func DefaultConfig() Config {
	return Config{
		Prefix:           DefaultPrefix,
		RetentionDivisor: DefaultRetentionDivisor,
		Decimals:         DefaultDecimals,
		ZThreshold:       DefaultZThreshold,
		NaNPolicy:        NaNPropagate,
		Blacklist:        DefaultBlacklist(),
		First:            "0",
		Second:           "1",
	}
}

// Options toggles the optional stages.
type Options struct {
	MarkMissing    bool
	RemoveOutliers bool
}

var (
	// ApertureOptions keeps outliers: aperture statistics are computed on
	// the unfiltered table.
	ApertureOptions = Options{MarkMissing: true}

	// ScatterOptions removes outliers before plotting raw keypoint clouds.
	ScatterOptions = Options{MarkMissing: true, RemoveOutliers: true}
)

// Stage names one step of a run.
type Stage string

const (
	StageLoad            Stage = "load"
	StageDiscover        Stage = "discover"
	StageFilterValid     Stage = "filter_valid"
	StageMarkMissing     Stage = "mark_missing"
	StageRemoveOutliers  Stage = "remove_outliers"
	StageRemoveBlacklist Stage = "remove_blacklist"
)

// StageReport records the table shape after one stage.
type StageReport struct {
	Stage   Stage
	Rows    int
	Columns int
	// Changed counts dropped rows, or replaced cells for StageMarkMissing.
	Changed int
}

// Result is the outcome of one pipeline run.
type Result struct {
	Source     string
	Candidates []ColumnSet
	Retained   []ColumnSet
	Threshold  int
	Table      *Table
	Stages     []StageReport
}

// LoadedRows returns the row count of the input file.
func (r *Result) LoadedRows() int {
	if len(r.Stages) == 0 {
		return 0
	}
	return r.Stages[0].Rows
}

// XColumns returns the x column of every retained keypoint.
func (r *Result) XColumns() []string {
	return r.axis(func(cs ColumnSet) string { return cs.X })
}

// YColumns returns the y column of every retained keypoint.
func (r *Result) YColumns() []string {
	return r.axis(func(cs ColumnSet) string { return cs.Y })
}

func (r *Result) axis(pick func(ColumnSet) string) []string {
	cols := make([]string, len(r.Retained))
	for i, cs := range r.Retained {
		cols[i] = pick(cs)
	}
	return cols
}

// Pipeline runs the cleaning stages over keypoint logs read from a
// FileSystem.
type Pipeline struct {
	cfg Config
	fs  fsutil.FileSystem
}

// NewPipeline returns a Pipeline. Zero-valued numeric settings fall back to
// the defaults.
func NewPipeline(cfg Config, fsys fsutil.FileSystem) *Pipeline {
	def := DefaultConfig()
	if cfg.RetentionDivisor <= 0 {
		cfg.RetentionDivisor = def.RetentionDivisor
	}
	if cfg.Decimals <= 0 {
		cfg.Decimals = def.Decimals
	}
	if cfg.ZThreshold <= 0 {
		cfg.ZThreshold = def.ZThreshold
	}
	if cfg.NaNPolicy == "" {
		cfg.NaNPolicy = def.NaNPolicy
	}
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	return &Pipeline{cfg: cfg, fs: fsys}
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run loads path and runs every stage selected by opts.
func (p *Pipeline) Run(path string, opts Options) (*Result, error) {
	t, err := Load(p.fs, path)
	if err != nil {
		return nil, err
	}
	return p.Process(t, path, opts)
}

// Process runs the stages after Load on an already parsed table. The table
// is consumed.
func (p *Pipeline) Process(t *Table, source string, opts Options) (*Result, error) {
	res := &Result{Source: source}
	record := func(stage Stage, tbl *Table, changed int) {
		rep := StageReport{Stage: stage, Rows: tbl.Len(), Columns: len(tbl.columns), Changed: changed}
		res.Stages = append(res.Stages, rep)
		monitoring.Debugf("%s: %s rows=%d columns=%d changed=%d", source, stage, rep.Rows, rep.Columns, changed)
	}
	record(StageLoad, t, 0)

	res.Candidates = Discover(t, p.cfg.Prefix)
	record(StageDiscover, t, 0)
	if len(res.Candidates) == 0 {
		return nil, fmt.Errorf("%w: %s: no keypoint columns found (prefix %q)", ErrData, source, p.cfg.Prefix)
	}

	res.Threshold = RetentionThreshold(len(res.Candidates), p.cfg.RetentionDivisor)
	retained, clean, err := FilterValid(t, res.Candidates, res.Threshold, p.cfg.Decimals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	res.Retained = retained
	record(StageFilterValid, clean, len(res.Candidates)-len(retained))

	if opts.MarkMissing {
		record(StageMarkMissing, clean, MarkMissing(clean))
	}
	if opts.RemoveOutliers {
		record(StageRemoveOutliers, clean, RemoveOutliers(clean, p.cfg.ZThreshold, p.cfg.NaNPolicy))
	}

	dropped := RemoveBlacklist(clean, res.XColumns(), res.YColumns(), p.cfg.Blacklist, p.cfg.Decimals)
	record(StageRemoveBlacklist, clean, dropped)

	res.Table = clean
	return res, nil
}

// Aperture computes the aperture series between the configured First and
// Second keypoints of a finished run.
func (p *Pipeline) Aperture(res *Result) (ApertureSeries, error) {
	if len(res.Retained) < 2 {
		return nil, fmt.Errorf("%w: %s: aperture needs two valid keypoints, %d of %d retained",
			ErrData, res.Source, len(res.Retained), len(res.Candidates))
	}
	a, err := ResolveKeypoint(res.Retained, p.cfg.First)
	if err != nil {
		return nil, fmt.Errorf("%s: first keypoint: %w", res.Source, err)
	}
	b, err := ResolveKeypoint(res.Retained, p.cfg.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: second keypoint: %w", res.Source, err)
	}
	if a.Index == b.Index {
		return nil, fmt.Errorf("%w: %s: aperture keypoints must differ, both resolve to %d", ErrData, res.Source, a.Index)
	}
	return ComputeAperture(res.Table, a, b)
}

// ExtractAperture runs path with ApertureOptions and returns its aperture
// series together with the run result.
func (p *Pipeline) ExtractAperture(path string) (ApertureSeries, *Result, error) {
	res, err := p.Run(path, ApertureOptions)
	if err != nil {
		return nil, nil, err
	}
	series, err := p.Aperture(res)
	if err != nil {
		return nil, res, err
	}
	return series, res, nil
}
