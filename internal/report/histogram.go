package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/spectralab/guestat/internal/spacing"
	"github.com/spectralab/guestat/internal/unfold"
)

// Histogram rendering bounds. Unfolded spacings beyond smax are rare under
// both reference laws; they land in the last bin.
const (
	histBins  = 24
	histSMax  = 3.0
	histWidth = 48
)

// RenderHistogram draws an ASCII histogram of the unfolded spacing density
// with the two reference laws overlaid: 'P' marks the Poisson expectation for
// each bin and 'G' the GUE Wigner-surmise expectation. Where an expectation
// falls inside the empirical bar it is drawn over it.
func RenderHistogram(spacings unfold.Spacings) string {
	if len(spacings) == 0 {
		return "(no spacings)\n"
	}

	binW := histSMax / float64(histBins)
	counts := make([]int, histBins)
	for _, s := range spacings {
		i := int(s / binW)
		if i >= histBins {
			i = histBins - 1
		}
		if i < 0 {
			i = 0
		}
		counts[i]++
	}

	// Empirical density per bin, and the reference densities at bin centers.
	n := float64(len(spacings))
	maxDensity := 0.0
	density := make([]float64, histBins)
	poisson := make([]float64, histBins)
	gue := make([]float64, histBins)
	for i := range counts {
		mid := (float64(i) + 0.5) * binW
		density[i] = float64(counts[i]) / (n * binW)
		poisson[i] = math.Exp(-mid)
		gue[i] = spacing.GUEWignerPDF(mid)
		maxDensity = math.Max(maxDensity, math.Max(density[i], math.Max(poisson[i], gue[i])))
	}
	if maxDensity == 0 {
		maxDensity = 1
	}

	col := func(d float64) int {
		c := int(math.Round(d / maxDensity * histWidth))
		if c > histWidth {
			c = histWidth
		}
		return c
	}

	var b strings.Builder
	b.WriteString("s        density (█ empirical, P Poisson, G GUE)\n")
	for i := range counts {
		line := []rune(strings.Repeat("█", col(density[i])) + strings.Repeat(" ", histWidth))
		line = line[:histWidth]
		if p := col(poisson[i]); p > 0 {
			line[p-1] = 'P'
		}
		if g := col(gue[i]); g > 0 {
			line[g-1] = 'G'
		}
		label := runewidth.FillRight(fmt.Sprintf("%.3f", float64(i)*binW), 8)
		fmt.Fprintf(&b, "%s %s\n", label, string(line))
	}
	return b.String()
}
