package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/spectralab/guestat/internal/experiment"
)

// tableColumns defines the summary table header.
var tableColumns = []string{
	"CHANNEL", "ZEROS", "N", "MEAN", "MEAN_R",
	"KS_POISSON", "KS_GUE", "VERDICT",
}

// RenderTable formats all channel results as an aligned, color-coded table.
// The verdict column states which reference law fits better: green for a GUE
// repulsion signal, yellow for Poisson, dim for degenerate samples, red for
// channel errors. Colors are applied after width alignment so ANSI escapes
// never skew the columns.
func RenderTable(result *experiment.Result) string {
	rows := make([][]string, 0, result.Channels.Len())
	verdicts := make([]func(string) string, 0, result.Channels.Len())

	for el := result.Channels.Front(); el != nil; el = el.Next() {
		cr := el.Value
		if cr.Err != nil {
			rows = append(rows, []string{
				cr.Channel, "-", "-", "-", "-", "-", "-", "error",
			})
			verdicts = append(verdicts, color.Red.Text)
			continue
		}

		m := cr.Metrics
		verdict, paint := classify(cr)
		rows = append(rows, []string{
			cr.Channel,
			fmt.Sprintf("%d", len(cr.Zeros)),
			fmt.Sprintf("%d", m.N),
			fmtFloat(m.Mean, 3),
			fmtFloat(m.MeanR, 3),
			fmt.Sprintf("D=%s p=%s", fmtFloat(m.KSPoisson.D, 3), fmtFloat(m.KSPoisson.P, 3)),
			fmt.Sprintf("D=%s p=%s", fmtFloat(m.KSGUE.D, 3), fmtFloat(m.KSGUE.P, 3)),
			verdict,
		})
		verdicts = append(verdicts, paint)
	}

	widths := make([]int, len(tableColumns))
	for i, h := range tableColumns {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, paint func(string) string) {
		for i, cell := range cells {
			padded := runewidth.FillRight(cell, widths[i])
			if i == len(cells)-1 && paint != nil {
				padded = paint(padded)
			}
			b.WriteString(padded)
			if i < len(cells)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	writeRow(tableColumns, color.Bold.Text)
	for i, row := range rows {
		writeRow(row, verdicts[i])
	}
	return b.String()
}

// classify names the better-fitting reference law for one channel result.
func classify(cr *experiment.ChannelResult) (string, func(string) string) {
	m := cr.Metrics
	switch {
	case math.IsNaN(m.KSPoisson.D) || math.IsNaN(m.KSGUE.D):
		return "no data", color.Gray.Text
	case cr.Degenerate:
		return "degenerate", color.Gray.Text
	case m.KSGUE.D < m.KSPoisson.D:
		return "GUE (repulsion)", color.Green.Text
	default:
		return "Poisson", color.Yellow.Text
	}
}

func fmtFloat(f float64, prec int) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return fmt.Sprintf("%.*f", prec, f)
}
