package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spectralab/guestat/internal/scan"
)

// WriteZerosCSV writes one channel's zero locations as a two-column table
// (index, t) to zeros_<channel>.csv and returns the file path.
func (w *Writer) WriteZerosCSV(channel string, zeros scan.Zeros) (string, error) {
	path := w.path(fmt.Sprintf("zeros_%s.csv", channel))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"index", "t"}); err != nil {
		return "", fmt.Errorf("report: failed to write header: %w", err)
	}
	for i, t := range zeros {
		record := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(t, 'f', 12, 64),
		}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("report: failed to write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("report: failed to flush %s: %w", path, err)
	}

	w.log.Debugw("Wrote zeros table", "channel", channel, "path", path, "zeros", len(zeros))
	return path, nil
}
