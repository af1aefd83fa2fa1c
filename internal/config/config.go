// Package config holds the tunable settings of the aperture tool and loads
// them from defaults, a YAML file, APERTURE_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/banshee-data/aperture/internal/fsutil"
	"github.com/banshee-data/aperture/internal/keypoints"
	"github.com/banshee-data/aperture/internal/units"
)

// Output formats understood by the renderers.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

// ValidFormats lists every supported output format.
var ValidFormats = []string{FormatPNG, FormatSVG, FormatPDF, FormatHTML}

// Config is the root configuration.
type Config struct {
	// File is the config file that was loaded, if any.
	File string `koanf:"-"`

	Verbose bool `koanf:"verbose"`

	Keypoints KeypointsConfig `koanf:"keypoints"`
	Filter    FilterConfig    `koanf:"filter"`
	Aperture  ApertureConfig  `koanf:"aperture"`
	BoxPlot   BoxPlotConfig   `koanf:"boxplot"`
	Scatter   ScatterConfig   `koanf:"scatter"`
	Output    OutputConfig    `koanf:"output"`
}

// KeypointsConfig controls discovery and the validity filter.
type KeypointsConfig struct {
	Prefix           string `koanf:"prefix"`
	RetentionDivisor int    `koanf:"retention_divisor"`
	Decimals         int    `koanf:"decimals"`
}

// FilterConfig controls outlier and blacklist removal.
type FilterConfig struct {
	ZScore    float64                `koanf:"zscore"`
	NaNPolicy string                 `koanf:"nan_policy"`
	Blacklist []keypoints.Coordinate `koanf:"blacklist"`
}

// ApertureConfig selects the two fingertips and the reporting unit.
type ApertureConfig struct {
	First  string `koanf:"first"`
	Second string `koanf:"second"`
	Unit   string `koanf:"unit"`
}

// BoxPlotConfig configures the aperture comparison chart. Labels and
// MessageCounts are matched to input files by position; files past the end
// of either list fall back to the file name and the loaded row count.
type BoxPlotConfig struct {
	Title         string   `koanf:"title"`
	XLabel        string   `koanf:"x_label"`
	YLabel        string   `koanf:"y_label"`
	Labels        []string `koanf:"labels"`
	MessageCounts []int    `koanf:"message_counts"`
	YMin          float64  `koanf:"y_min"`
	YMax          float64  `koanf:"y_max"`
	YStep         float64  `koanf:"y_step"`
}

// Landmark is an annotated reference point drawn on the scatter plot.
type Landmark struct {
	Label string  `koanf:"label"`
	X     float64 `koanf:"x"`
	Y     float64 `koanf:"y"`
}

// ScatterConfig configures the keypoint cloud chart. Coordinates are in
// metres.
type ScatterConfig struct {
	Title        string     `koanf:"title"`
	XLabel       string     `koanf:"x_label"`
	YLabel       string     `koanf:"y_label"`
	XMin         float64    `koanf:"x_min"`
	XMax         float64    `koanf:"x_max"`
	YMin         float64    `koanf:"y_min"`
	YMax         float64    `koanf:"y_max"`
	XStep        float64    `koanf:"x_step"`
	YStep        float64    `koanf:"y_step"`
	WithOutliers bool       `koanf:"with_outliers"`
	GroundTruth  []Landmark `koanf:"ground_truth"`
}

// OutputConfig controls where and how charts are written. Width and Height
// are in inches.
type OutputConfig struct {
	Dir      string   `koanf:"dir"`
	Formats  []string `koanf:"formats"`
	Width    float64  `koanf:"width"`
	Height   float64  `koanf:"height"`
	DebugCSV string   `koanf:"debug_csv"`
	Open     bool     `koanf:"open"`
}

// DefaultDebugCSVPath is where the cleaned scatter table is dumped unless
// output.debug_csv says otherwise.
func DefaultDebugCSVPath() string {
	return filepath.Join(xdg.CacheHome, "aperture", "keypoints_debug.csv")
}

// defaults returns the flattened default values loaded before any file.
func defaults() map[string]interface{} {
	bl := keypoints.DefaultBlacklist()
	blacklist := make([]interface{}, len(bl))
	for i, c := range bl {
		blacklist[i] = map[string]interface{}{"x": c.X, "y": c.Y}
	}

	return map[string]interface{}{
		"verbose": false,

		"keypoints.prefix":            keypoints.DefaultPrefix,
		"keypoints.retention_divisor": keypoints.DefaultRetentionDivisor,
		"keypoints.decimals":          keypoints.DefaultDecimals,

		"filter.zscore":     keypoints.DefaultZThreshold,
		"filter.nan_policy": string(keypoints.NaNPropagate),
		"filter.blacklist":  blacklist,

		"aperture.first":  "0",
		"aperture.second": "1",
		"aperture.unit":   units.CM,

		"boxplot.title":   "Comparison of Aperture Discriminability",
		"boxplot.x_label": "Distribution",
		"boxplot.y_label": "Aperture in cm",
		"boxplot.y_min":   0.0,
		"boxplot.y_max":   15.0,
		"boxplot.y_step":  1.0,

		"scatter.title":         "Index-Thumb Ground Truth",
		"scatter.x_label":       "x-axis (in m)",
		"scatter.y_label":       "y-axis (in m)",
		"scatter.x_min":         -0.4,
		"scatter.x_max":         0.0,
		"scatter.y_min":         -0.2,
		"scatter.y_max":         0.2,
		"scatter.x_step":        0.01,
		"scatter.y_step":        0.01,
		"scatter.with_outliers": false,
		"scatter.ground_truth": []interface{}{
			map[string]interface{}{"label": "Ground Truth\nIndex Tip", "x": -0.2, "y": 0.07},
			map[string]interface{}{"label": "Ground Truth\nThumb Tip", "x": -0.25, "y": 0.0},
		},

		"output.dir":       "plots",
		"output.formats":   []interface{}{FormatPNG},
		"output.width":     10.0,
		"output.height":    6.0,
		"output.debug_csv": DefaultDebugCSVPath(),
		"output.open":      false,
	}
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Keypoints.RetentionDivisor < 1 {
		return fmt.Errorf("keypoints.retention_divisor must be at least 1, got %d", c.Keypoints.RetentionDivisor)
	}
	if c.Keypoints.Decimals < 0 || c.Keypoints.Decimals > 15 {
		return fmt.Errorf("keypoints.decimals must be between 0 and 15, got %d", c.Keypoints.Decimals)
	}

	if c.Filter.ZScore <= 0 {
		return fmt.Errorf("filter.zscore must be positive, got %f", c.Filter.ZScore)
	}
	if _, err := keypoints.ParseNaNPolicy(c.Filter.NaNPolicy); err != nil {
		return fmt.Errorf("filter.nan_policy: %w", err)
	}

	if strings.TrimSpace(c.Aperture.First) == "" || strings.TrimSpace(c.Aperture.Second) == "" {
		return fmt.Errorf("aperture.first and aperture.second must both be set")
	}
	if strings.EqualFold(strings.TrimSpace(c.Aperture.First), strings.TrimSpace(c.Aperture.Second)) {
		return fmt.Errorf("aperture.first and aperture.second must differ, both are %q", c.Aperture.First)
	}
	if !units.IsValid(c.Aperture.Unit) {
		return fmt.Errorf("invalid aperture.unit '%s'; must be one of: %s", c.Aperture.Unit, units.GetValidUnitsString())
	}

	if err := checkAxis("boxplot.y", c.BoxPlot.YMin, c.BoxPlot.YMax, c.BoxPlot.YStep); err != nil {
		return err
	}
	for i, n := range c.BoxPlot.MessageCounts {
		if n < 0 {
			return fmt.Errorf("boxplot.message_counts[%d] must be non-negative, got %d", i, n)
		}
	}

	if err := checkAxis("scatter.x", c.Scatter.XMin, c.Scatter.XMax, c.Scatter.XStep); err != nil {
		return err
	}
	if err := checkAxis("scatter.y", c.Scatter.YMin, c.Scatter.YMax, c.Scatter.YStep); err != nil {
		return err
	}

	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("output.formats must name at least one format")
	}
	for _, f := range c.Output.Formats {
		if !isValidFormat(f) {
			return fmt.Errorf("invalid output format '%s'; must be one of: %s", f, strings.Join(ValidFormats, ", "))
		}
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output.width and output.height must be positive, got %gx%g", c.Output.Width, c.Output.Height)
	}

	return nil
}

func checkAxis(name string, lo, hi, step float64) error {
	if hi <= lo {
		return fmt.Errorf("%s_max (%g) must be greater than %s_min (%g)", name, hi, name, lo)
	}
	if step <= 0 {
		return fmt.Errorf("%s_step must be positive, got %g", name, step)
	}
	return nil
}

func isValidFormat(f string) bool {
	for _, v := range ValidFormats {
		if f == v {
			return true
		}
	}
	return false
}

// PipelineConfig converts the settings the cleaning stages need.
func (c *Config) PipelineConfig() keypoints.Config {
	policy, _ := keypoints.ParseNaNPolicy(c.Filter.NaNPolicy)
	return keypoints.Config{
		Prefix:           c.Keypoints.Prefix,
		RetentionDivisor: c.Keypoints.RetentionDivisor,
		Decimals:         c.Keypoints.Decimals,
		ZThreshold:       c.Filter.ZScore,
		NaNPolicy:        policy,
		Blacklist:        append([]keypoints.Coordinate(nil), c.Filter.Blacklist...),
		First:            c.Aperture.First,
		Second:           c.Aperture.Second,
	}
}

// BoxLabel returns the x-axis label for the i-th input file of a box plot.
// loaded is the row count of that file, used when no message count is
// configured.
func (c *Config) BoxLabel(i int, path string, loaded int) string {
	label := fsutil.Stem(path)
	if i < len(c.BoxPlot.Labels) && c.BoxPlot.Labels[i] != "" {
		label = c.BoxPlot.Labels[i]
	}
	count := loaded
	if i < len(c.BoxPlot.MessageCounts) {
		count = c.BoxPlot.MessageCounts[i]
	}
	return fmt.Sprintf("%s\nTotal messages: %d", label, count)
}
