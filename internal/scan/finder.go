// Package scan locates real zeros of a model channel along the scan line by
// grid bracketing followed by bisection refinement.
package scan

import (
	"fmt"
	"math"

	"github.com/spectralab/guestat/internal/logger"
	"github.com/spectralab/guestat/internal/model"
)

// Zeros is an ordered sequence of zero locations, strictly increasing.
// Immutable once returned by a Finder.
type Zeros []float64

// Config controls one zero scan.
type Config struct {
	TMin     float64
	TMax     float64
	Dt       float64
	MaxZeros int

	// RefineTol is the absolute bracket-width tolerance for bisection.
	// Zero selects Dt*1e-6, well below the grid step.
	RefineTol float64
	// RefineMaxIter caps bisection iterations per bracket. Zero selects 80.
	RefineMaxIter int
}

// Finder scans a channel over a grid and refines sign-change brackets by
// bisection, which never leaves the initial bracket. Zeros closer together
// than Dt can be missed entirely; that is the precision/cost trade-off of the
// grid scan.
type Finder struct {
	cfg Config
	log *logger.Logger
}

// NewFinder validates the scan configuration and returns a Finder.
func NewFinder(cfg Config, log *logger.Logger) (*Finder, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("scan: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.TMin >= cfg.TMax {
		return nil, fmt.Errorf("scan: t_min %g must be less than t_max %g", cfg.TMin, cfg.TMax)
	}
	if cfg.MaxZeros <= 0 {
		return nil, fmt.Errorf("scan: max_zeros must be positive, got %d", cfg.MaxZeros)
	}
	if cfg.RefineTol == 0 {
		cfg.RefineTol = cfg.Dt * 1e-6
	}
	if cfg.RefineMaxIter == 0 {
		cfg.RefineMaxIter = 80
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Finder{cfg: cfg, log: log}, nil
}

// Find walks the grid from TMin to TMax at step Dt, records every strict
// sign change (a zero-valued sample counts as a degenerate bracket), and
// refines each bracket by bisection. It stops once MaxZeros zeros have been
// refined or the grid is exhausted. An empty result is not an error: the
// window may hold no zeros, or Dt may be too coarse to see them.
//
// Roots closer than max(Dt, 1e-6) to the previous accepted root are dropped
// as rediscoveries of the same zero from adjacent grid cells.
func (f *Finder) Find(ch model.Channel) (Zeros, error) {
	cfg := f.cfg
	minSep := math.Max(cfg.Dt, 1e-6)

	var zeros Zeros
	accept := func(z float64) {
		if len(zeros) > 0 && z-zeros[len(zeros)-1] <= minSep {
			return
		}
		zeros = append(zeros, z)
	}

	t := cfg.TMin
	fa, err := ch.Evaluate(t)
	if err != nil {
		return nil, fmt.Errorf("scan %s at t=%g: %w", ch.Name(), t, err)
	}

	for t < cfg.TMax && len(zeros) < cfg.MaxZeros {
		t2 := math.Min(cfg.TMax, t+cfg.Dt)
		fb, err := ch.Evaluate(t2)
		if err != nil {
			return nil, fmt.Errorf("scan %s at t=%g: %w", ch.Name(), t2, err)
		}

		switch {
		case fa == 0:
			accept(t)
		case fb == 0:
			accept(t2)
		case fa*fb < 0:
			z, err := f.refine(ch, t, t2, fa, fb)
			if err != nil {
				return nil, err
			}
			accept(z)
		}

		t, fa = t2, fb
	}

	return zeros, nil
}

// refine bisects the bracket [a,b] with f(a) and f(b) of opposite sign,
// halving while the sign invariant holds, until the width falls below the
// tolerance. Hitting the iteration cap is a recoverable event: the current
// midpoint is returned as a best estimate with a warning, never an error, so
// one stubborn bracket cannot abort the surrounding scan.
func (f *Finder) refine(ch model.Channel, a, b, fa, fb float64) (float64, error) {
	lo, hi := a, b
	flo := fa

	for i := 0; i < f.cfg.RefineMaxIter; i++ {
		mid := (lo + hi) / 2
		if hi-lo < f.cfg.RefineTol {
			return mid, nil
		}
		fm, err := ch.Evaluate(mid)
		if err != nil {
			return 0, fmt.Errorf("refine %s at t=%g: %w", ch.Name(), mid, err)
		}
		if fm == 0 {
			return mid, nil
		}
		if flo*fm < 0 {
			hi = mid
		} else {
			lo, flo = mid, fm
		}
	}

	mid := (lo + hi) / 2
	f.log.Warnw("bisection hit iteration cap, returning midpoint",
		"channel", ch.Name(),
		"bracket_lo", lo,
		"bracket_hi", hi,
		"width", hi-lo,
	)
	return mid, nil
}
