package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/spectralab/guestat/internal/config"
	"github.com/spectralab/guestat/internal/experiment"
	"github.com/spectralab/guestat/internal/logger"
	"github.com/spectralab/guestat/internal/scan"
	"github.com/spectralab/guestat/internal/spacing"
	"github.com/spectralab/guestat/internal/unfold"
)

func quietLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return log
}

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	w, err := NewWriter(filepath.Join(t.TempDir(), "out"), quietLogger(t))
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	return w
}

// sampleResult builds a two-channel result: one healthy, one failed.
func sampleResult() *experiment.Result {
	ok := &experiment.ChannelResult{
		Channel:  "riemann_siegel",
		Zeros:    scan.Zeros{14.13, 21.02, 25.01},
		Spacings: unfold.Spacings{0.9, 1.1},
		Metrics: spacing.Metrics{
			N:         2,
			Mean:      1.0,
			Variance:  0.02,
			MeanR:     0.55,
			KSPoisson: spacing.KS{D: 0.4, P: 0.01},
			KSGUE:     spacing.KS{D: 0.1, P: 0.8},
		},
		Degenerate: true,
	}
	failed := &experiment.ChannelResult{
		Channel: "full_zeta",
		Err:     errors.New("precision underflow"),
	}

	channels := orderedmap.NewOrderedMap[string, *experiment.ChannelResult]()
	channels.Set(ok.Channel, ok)
	channels.Set(failed.Channel, failed)
	return &experiment.Result{Channels: channels, Errors: []error{failed.Err}}
}

func TestNewWriterRequiresDir(t *testing.T) {
	if _, err := NewWriter("", quietLogger(t)); err == nil {
		t.Error("expected error for empty output directory")
	}
}

func TestNewWriterCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, err := NewWriter(dir, quietLogger(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestWriteZerosCSVRoundTrip(t *testing.T) {
	w := newTestWriter(t)
	zeros := scan.Zeros{14.134725141735, 21.022039638771, 25.010857580146}

	path, err := w.WriteZerosCSV("full_zeta", zeros)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "zeros_full_zeta.csv" {
		t.Errorf("unexpected file name %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	if len(records) != len(zeros)+1 {
		t.Fatalf("expected header plus %d rows, got %d", len(zeros), len(records))
	}
	if records[0][0] != "index" || records[0][1] != "t" {
		t.Errorf("unexpected header %v", records[0])
	}
	for i, z := range zeros {
		row := records[i+1]
		if row[0] != strconv.Itoa(i) {
			t.Errorf("row %d index = %s", i, row[0])
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			t.Fatalf("row %d: unparseable t %q", i, row[1])
		}
		if math.Abs(v-z) > 1e-10 {
			t.Errorf("row %d t = %v, want %v", i, v, z)
		}
	}
}

func TestWriteZerosCSVEmpty(t *testing.T) {
	w := newTestWriter(t)
	path, err := w.WriteZerosCSV("riemann_siegel", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	if strings.TrimSpace(string(data)) != "index,t" {
		t.Errorf("empty table must still carry the header, got %q", data)
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	w := newTestWriter(t)
	cfg := config.DefaultConfig()
	result := sampleResult()

	path, err := w.WriteSummaryJSON(cfg, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}

	var decoded map[string]struct {
		Scan struct {
			TMin     float64 `json:"t_min"`
			TMax     float64 `json:"t_max"`
			Dt       float64 `json:"dt"`
			MaxZeros int     `json:"max_zeros"`
		} `json:"scan"`
		PMax           int    `json:"p_max"`
		ZerosFound     int    `json:"zeros_found"`
		Degenerate     bool   `json:"degenerate"`
		SpacingSummary *struct {
			N          int      `json:"n"`
			Mean       *float64 `json:"mean"`
			RMean      *float64 `json:"r_mean"`
			KSPoissonD *float64 `json:"ks_poisson_D"`
			KSGueP     *float64 `json:"ks_gue_p"`
		} `json:"spacing_summary"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}

	ok := decoded["riemann_siegel"]
	if ok.Scan.TMin != 10 || ok.Scan.TMax != 200 || ok.Scan.Dt != 0.02 || ok.Scan.MaxZeros != 120 {
		t.Errorf("scan parameters not mirrored: %+v", ok.Scan)
	}
	if ok.PMax != 2000 {
		t.Errorf("p_max = %d, want 2000", ok.PMax)
	}
	if ok.ZerosFound != 3 || !ok.Degenerate {
		t.Errorf("channel summary wrong: %+v", ok)
	}
	if ok.SpacingSummary == nil || ok.SpacingSummary.N != 2 {
		t.Fatalf("spacing summary missing or wrong: %+v", ok.SpacingSummary)
	}
	if ok.SpacingSummary.Mean == nil || *ok.SpacingSummary.Mean != 1.0 {
		t.Errorf("mean not serialized: %+v", ok.SpacingSummary.Mean)
	}
	if ok.Error != "" {
		t.Errorf("healthy channel must have no error, got %q", ok.Error)
	}

	failed := decoded["full_zeta"]
	if failed.Error != "precision underflow" {
		t.Errorf("failed channel error = %q", failed.Error)
	}
	if failed.SpacingSummary != nil {
		t.Errorf("failed channel must omit the spacing summary")
	}

	// Channel order in the file follows the run order, not key sorting.
	text := string(data)
	if strings.Index(text, `"riemann_siegel"`) > strings.Index(text, `"full_zeta"`) {
		t.Error("summary lost the run's channel order")
	}
}

func TestWriteSummaryJSONNaNBecomesNull(t *testing.T) {
	w := newTestWriter(t)

	empty := &experiment.ChannelResult{
		Channel: "rs_phase_randomized",
		Metrics: spacing.Metrics{
			N:         0,
			Mean:      math.NaN(),
			Variance:  math.NaN(),
			MeanR:     math.NaN(),
			KSPoisson: spacing.KS{D: math.NaN(), P: math.NaN()},
			KSGUE:     spacing.KS{D: math.NaN(), P: math.NaN()},
		},
		Degenerate: true,
	}
	channels := orderedmap.NewOrderedMap[string, *experiment.ChannelResult]()
	channels.Set(empty.Channel, empty)

	path, err := w.WriteSummaryJSON(config.DefaultConfig(), &experiment.Result{Channels: channels})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}

	var decoded map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("summary with NaN metrics is not valid JSON: %v", err)
	}
	summary := decoded["rs_phase_randomized"]["spacing_summary"].(map[string]any)
	if summary["mean"] != nil || summary["ks_gue_p"] != nil {
		t.Errorf("NaN metrics must serialize as null, got %v", summary)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleResult())

	for _, want := range []string{"CHANNEL", "VERDICT", "riemann_siegel", "full_zeta"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	// KS_GUE D < KS_Poisson D, but the sample is degenerate.
	if !strings.Contains(out, "degenerate") {
		t.Errorf("expected degenerate verdict:\n%s", out)
	}
	if !strings.Contains(out, "error") {
		t.Errorf("expected error verdict for failed channel:\n%s", out)
	}
}

func TestRenderTableVerdicts(t *testing.T) {
	mk := func(poissonD, gueD float64) *experiment.Result {
		cr := &experiment.ChannelResult{
			Channel: "riemann_siegel",
			Metrics: spacing.Metrics{
				N:         150,
				Mean:      1,
				MeanR:     0.5,
				KSPoisson: spacing.KS{D: poissonD, P: 0.5},
				KSGUE:     spacing.KS{D: gueD, P: 0.5},
			},
		}
		channels := orderedmap.NewOrderedMap[string, *experiment.ChannelResult]()
		channels.Set(cr.Channel, cr)
		return &experiment.Result{Channels: channels}
	}

	if out := RenderTable(mk(0.4, 0.1)); !strings.Contains(out, "GUE (repulsion)") {
		t.Errorf("expected GUE verdict:\n%s", out)
	}
	if out := RenderTable(mk(0.1, 0.4)); !strings.Contains(out, "Poisson") {
		t.Errorf("expected Poisson verdict:\n%s", out)
	}
}

func TestRenderHistogram(t *testing.T) {
	if out := RenderHistogram(nil); !strings.Contains(out, "no spacings") {
		t.Errorf("empty input: %q", out)
	}

	s := make(unfold.Spacings, 200)
	for i := range s {
		s[i] = 3 * float64(i) / float64(len(s))
	}
	out := RenderHistogram(s)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != histBins+1 {
		t.Fatalf("expected header plus %d bin lines, got %d", histBins, len(lines))
	}
	if !strings.Contains(out, "█") {
		t.Error("histogram has no bars")
	}
	if !strings.Contains(out, "P") || !strings.Contains(out, "G") {
		t.Error("histogram missing reference law markers")
	}
}

func TestSavePlot(t *testing.T) {
	w := newTestWriter(t)

	path, err := w.SavePlot("riemann_siegel", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("empty spacings must skip the plot, got %q", path)
	}

	s := make(unfold.Spacings, 100)
	for i := range s {
		s[i] = 0.5 + 2*float64(i)/float64(len(s))
	}
	path, err = w.SavePlot("riemann_siegel", s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
	if filepath.Base(path) != "spacing_hist_riemann_siegel.png" {
		t.Errorf("unexpected plot file name %s", path)
	}
}
