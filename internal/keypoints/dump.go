package keypoints

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/aperture/internal/fsutil"
)

// WriteCSV writes t with a leading unnamed index column holding each row's
// original row number. Missing values are written as empty cells.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, t.columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for r := 0; r < t.Len(); r++ {
		row[0] = strconv.Itoa(t.rowIDs[r])
		for c, name := range t.columns {
			row[c+1] = t.Cell(name, r)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DumpCSV writes t to path on fsys, creating parent directories.
func DumpCSV(fsys fsutil.FileSystem, path string, t *Table) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := fsutil.WriteTo(fsys, path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
