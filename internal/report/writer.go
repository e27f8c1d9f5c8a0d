// Package report serializes experiment results: per-channel zero tables,
// an aggregated JSON summary, terminal rendering, and optional plots.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spectralab/guestat/internal/logger"
)

// Writer writes experiment outputs under a single directory.
type Writer struct {
	dir string
	log *logger.Logger
}

// NewWriter creates a writer rooted at dir, creating it if needed.
func NewWriter(dir string, log *logger.Logger) (*Writer, error) {
	if dir == "" {
		return nil, fmt.Errorf("report: output directory is required")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("report: failed to create output dir: %w", err)
	}
	return &Writer{dir: dir, log: log}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

func (w *Writer) path(name string) string {
	return filepath.Join(w.dir, name)
}
