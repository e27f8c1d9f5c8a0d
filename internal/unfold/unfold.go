// Package unfold rescales raw zero spacings to unit mean density.
//
// For the zeta family the mean density of zeros up to height t grows like
// log(t/2pi)/(2pi), so the unfolded spacing is
//
//	s_n = (t_{n+1} - t_n) * log(t_n / 2pi) / (2pi).
//
// The empirical mean of the result is ~1, never exactly 1: finite-sample
// noise and the discreteness of the density approximation both contribute.
// Raw (non-unfolded) spacings are invalid input to every downstream
// statistic; the distinct Spacings type and the statistics stage's mean check
// enforce that together.
package unfold

import (
	"fmt"
	"math"

	"github.com/spectralab/guestat/internal/scan"
)

// Spacings is a sequence of unfolded consecutive spacings.
type Spacings []float64

// Unfold transforms an ordered zero sequence into unfolded spacings.
// Fewer than two zeros yield an empty sequence. Zeros at or below 2pi are
// rejected: the density law is non-positive there and the transform would be
// silently meaningless.
func Unfold(zeros scan.Zeros) (Spacings, error) {
	if len(zeros) < 2 {
		return Spacings{}, nil
	}

	s := make(Spacings, 0, len(zeros)-1)
	for i := 0; i+1 < len(zeros); i++ {
		if zeros[i] <= 2*math.Pi {
			return nil, fmt.Errorf("unfold: zero t=%g is not above 2*pi; density law undefined", zeros[i])
		}
		density := math.Log(zeros[i]/(2*math.Pi)) / (2 * math.Pi)
		s = append(s, (zeros[i+1]-zeros[i])*density)
	}
	return s, nil
}
