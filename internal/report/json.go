package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/spectralab/guestat/internal/config"
	"github.com/spectralab/guestat/internal/experiment"
)

// SummaryFile is the aggregated summary written per run.
const SummaryFile = "summary.json"

// scanJSON mirrors the scan parameters into the summary.
type scanJSON struct {
	TMin     float64 `json:"t_min"`
	TMax     float64 `json:"t_max"`
	Dt       float64 `json:"dt"`
	MaxZeros int     `json:"max_zeros"`
}

// spacingSummaryJSON flattens one channel's metrics record.
type spacingSummaryJSON struct {
	N          int      `json:"n"`
	Mean       *float64 `json:"mean"`
	Var        *float64 `json:"var"`
	RMean      *float64 `json:"r_mean"`
	KSPoissonD *float64 `json:"ks_poisson_D"`
	KSPoissonP *float64 `json:"ks_poisson_p"`
	KSGueD     *float64 `json:"ks_gue_D"`
	KSGueP     *float64 `json:"ks_gue_p"`
}

// channelJSON is one channel's entry in the summary.
type channelJSON struct {
	Scan           scanJSON            `json:"scan"`
	PMax           int                 `json:"p_max"`
	KMax           int                 `json:"k_max"`
	Seed           uint64              `json:"seed"`
	ZerosFound     int                 `json:"zeros_found"`
	Degenerate     bool                `json:"degenerate"`
	SpacingSummary *spacingSummaryJSON `json:"spacing_summary,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// jsonFloat maps NaN/Inf to null so the summary stays valid JSON.
func jsonFloat(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// WriteSummaryJSON aggregates all channel results into summary.json,
// preserving the run's channel order, and returns the file path.
func (w *Writer) WriteSummaryJSON(cfg *config.Config, result *experiment.Result) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")

	first := true
	for el := result.Channels.Front(); el != nil; el = el.Next() {
		cr := el.Value
		entry := channelJSON{
			Scan: scanJSON{
				TMin:     cfg.Scan.TMin,
				TMax:     cfg.Scan.TMax,
				Dt:       cfg.Scan.Dt,
				MaxZeros: cfg.Scan.MaxZeros,
			},
			PMax:       cfg.Model.PMax,
			KMax:       cfg.Model.KMax,
			Seed:       cfg.Model.Seed,
			ZerosFound: len(cr.Zeros),
			Degenerate: cr.Degenerate,
		}
		if cr.Err != nil {
			entry.Error = cr.Err.Error()
		} else {
			m := cr.Metrics
			entry.SpacingSummary = &spacingSummaryJSON{
				N:          m.N,
				Mean:       jsonFloat(m.Mean),
				Var:        jsonFloat(m.Variance),
				RMean:      jsonFloat(m.MeanR),
				KSPoissonD: jsonFloat(m.KSPoisson.D),
				KSPoissonP: jsonFloat(m.KSPoisson.P),
				KSGueD:     jsonFloat(m.KSGUE.D),
				KSGueP:     jsonFloat(m.KSGUE.P),
			}
		}
		data, err := json.MarshalIndent(entry, "  ", "  ")
		if err != nil {
			return "", fmt.Errorf("report: failed to marshal channel %s: %w", el.Key, err)
		}
		if !first {
			buf.WriteString(",\n")
		}
		first = false
		fmt.Fprintf(&buf, "  %q: %s", el.Key, data)
	}
	buf.WriteString("\n}\n")

	path := w.path(SummaryFile)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("report: failed to write %s: %w", path, err)
	}

	w.log.Debugw("Wrote summary", "path", path, "channels", result.Channels.Len())
	return path, nil
}
