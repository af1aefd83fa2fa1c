package plot

import (
	"fmt"
	"io"
	"path/filepath"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/aperture/internal/fsutil"
	"github.com/banshee-data/aperture/internal/monitoring"
	"github.com/banshee-data/aperture/internal/timeutil"
)

// Renderable is an HTML chart.
type Renderable interface {
	Render(w io.Writer) error
}

// Chart can be drawn both as a static image and as an HTML page.
type Chart interface {
	Plot() (*gplot.Plot, error)
	HTML() Renderable
}

// Writer saves charts to a FileSystem in every configured format.
type Writer struct {
	fs      fsutil.FileSystem
	clock   timeutil.Clock
	formats []string
	width   vg.Length
	height  vg.Length
}

// NewWriter returns a Writer producing the given formats ("png", "svg",
// "pdf", "html") at widthIn x heightIn inches.
func NewWriter(fsys fsutil.FileSystem, clock timeutil.Clock, formats []string, widthIn, heightIn float64) *Writer {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Writer{
		fs:      fsys,
		clock:   clock,
		formats: append([]string(nil), formats...),
		width:   vg.Length(widthIn) * vg.Inch,
		height:  vg.Length(heightIn) * vg.Inch,
	}
}

// OutputDir returns a timestamped directory for one run:
// <baseDir>/<name>/<timestamp>. name is usually the input file stem.
func (w *Writer) OutputDir(baseDir, name string) string {
	return filepath.Join(baseDir, fsutil.SanitizeFilename(name), timeutil.Stamp(w.clock))
}

// Save writes c as <dir>/<name>.<format> for every format and returns the
// written paths in format order.
func (w *Writer) Save(dir, name string, c Chart) ([]string, error) {
	var (
		p     *gplot.Plot
		paths []string
	)
	for _, format := range w.formats {
		path := filepath.Join(dir, name+"."+format)

		var src io.WriterTo
		switch format {
		case "html":
			src = renderTo{c.HTML()}
		case "png", "svg", "pdf":
			if p == nil {
				var err error
				if p, err = c.Plot(); err != nil {
					return paths, fmt.Errorf("build %s: %w", name, err)
				}
			}
			wt, err := p.WriterTo(w.width, w.height, format)
			if err != nil {
				return paths, fmt.Errorf("encode %s: %w", path, err)
			}
			src = wt
		default:
			return paths, fmt.Errorf("unsupported output format %q", format)
		}

		if err := fsutil.WriteTo(w.fs, path, src); err != nil {
			return paths, fmt.Errorf("save %s: %w", path, err)
		}
		monitoring.Logf("wrote %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// renderTo adapts a Renderable to io.WriterTo.
type renderTo struct {
	r Renderable
}

func (rt renderTo) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := rt.r.Render(cw)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
