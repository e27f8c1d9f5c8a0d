// Package model implements the spectral test functions Z(t) whose real zeros
// the experiment compares against Poisson and GUE spacing laws.
//
// Z(t) is defined so that zeta(1/2+it) = Z(t) * exp(-i*theta(t)); the full
// zeta channel realizes that identity, the others approximate or deliberately
// break it.
package model

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
)

// Channel names form a closed set; dispatch is exhaustive over these five.
const (
	IndependentPrimes = "independent_primes"
	RiemannSiegel     = "riemann_siegel"
	FullZeta          = "full_zeta"
	FakePrimesJitter  = "fake_primes_jitter"
	RSPhaseRandomized = "rs_phase_randomized"
)

// Names lists the channels in canonical order.
func Names() []string {
	return []string{IndependentPrimes, RiemannSiegel, FullZeta, FakePrimesJitter, RSPhaseRandomized}
}

// Params configures channel construction.
type Params struct {
	PMax        int     // max prime for the Euler product channels
	KMax        int     // Euler factor power truncation, >= 1
	Seed        uint64  // seed for the negative controls
	JitterWidth float64 // uniform half-width for prime jitter
	Precision   float64 // target truncation error for full_zeta
}

// Channel is a real-valued test function sampled along the scan line.
// Evaluate is deterministic for fixed construction parameters; the two
// randomized controls are deterministic functions of their seed.
type Channel interface {
	Name() string
	Evaluate(t float64) (float64, error)
}

// New constructs the named channel. Unknown names are a configuration defect.
func New(name string, p Params) (Channel, error) {
	switch name {
	case IndependentPrimes:
		return &eulerChannel{
			name:   IndependentPrimes,
			primes: floatPrimes(PrimesUpTo(p.PMax)),
			kMax:   p.KMax,
		}, nil
	case FakePrimesJitter:
		return &eulerChannel{
			name:   FakePrimesJitter,
			primes: JitterPrimes(PrimesUpTo(p.PMax), p.JitterWidth, p.Seed),
			kMax:   p.KMax,
		}, nil
	case RiemannSiegel:
		return &rsChannel{}, nil
	case RSPhaseRandomized:
		return newPhaseRandomized(p.Seed), nil
	case FullZeta:
		return &zetaChannel{precision: p.Precision}, nil
	default:
		return nil, fmt.Errorf("unknown channel %q", name)
	}
}

// eulerChannel is the partial Euler product baseline. Both the coherent
// channel and the jittered negative control are this type; they differ only
// in the prime values fed to the product, so the control isolates exactly the
// arithmetic coherence of the primes.
type eulerChannel struct {
	name   string
	primes []float64
	kMax   int
}

func (c *eulerChannel) Name() string { return c.name }

// Evaluate returns Re prod_p sum_{k=0..kMax} p^(-k(1/2+it)), the real part
// of the Euler product with each factor truncated at power kMax.
func (c *eulerChannel) Evaluate(t float64) (float64, error) {
	prod := complex(1, 0)
	for _, p := range c.primes {
		// x = p^(-1/2-it); the factor is the geometric partial sum
		// 1 + x + ... + x^kMax.
		x := complex(1/math.Sqrt(p), 0) * cmplx.Exp(complex(0, -t*math.Log(p)))
		factor := complex(1, 0)
		pw := complex(1, 0)
		for k := 1; k <= c.kMax; k++ {
			pw *= x
			factor += pw
		}
		prod *= factor
	}
	return real(prod), nil
}

// rsChannel is the Riemann-Siegel main-sum approximation
//
//	Z(t) = 2 * sum_{n=1}^{N} cos(t*log n - theta(t)) / sqrt(n)
//
// with N = floor(sqrt(t/2pi)). No remainder terms: the suite only needs the
// functional-equation symmetry the main sum already carries.
type rsChannel struct{}

func (c *rsChannel) Name() string { return RiemannSiegel }

func (c *rsChannel) Evaluate(t float64) (float64, error) {
	if t <= 0 {
		return 0, nil
	}
	th := Theta(t)
	sum := 0.0
	for n := 1; n <= rsTerms(t); n++ {
		sum += math.Cos(t*math.Log(float64(n))-th) / math.Sqrt(float64(n))
	}
	return 2 * sum, nil
}

// phaseStream is the PCG stream constant for phase randomization.
const phaseStream = 0x70687365 // "phse"

// phaseChannel keeps the Riemann-Siegel amplitude envelope 1/sqrt(n) and term
// count N(t) but replaces the coherent phase -theta(t) with a fixed seeded
// phase per term. phi_n is drawn sequentially from the generator, so the
// sequence depends only on the seed, never on evaluation order.
type phaseChannel struct {
	rng    *rand.Rand
	phases []float64
}

func newPhaseRandomized(seed uint64) *phaseChannel {
	return &phaseChannel{rng: rand.New(rand.NewPCG(seed, phaseStream))}
}

func (c *phaseChannel) Name() string { return RSPhaseRandomized }

func (c *phaseChannel) phase(n int) float64 {
	for len(c.phases) < n {
		c.phases = append(c.phases, 2*math.Pi*c.rng.Float64())
	}
	return c.phases[n-1]
}

func (c *phaseChannel) Evaluate(t float64) (float64, error) {
	if t <= 0 {
		return 0, nil
	}
	sum := 0.0
	for n := 1; n <= rsTerms(t); n++ {
		sum += math.Cos(t*math.Log(float64(n))+c.phase(n)) / math.Sqrt(float64(n))
	}
	return 2 * sum, nil
}

// zetaChannel is the ground-truth reference: zeta on the critical line,
// remapped to the real-valued Z(t) via the theta phase factor,
//
//	Z(t) = Re(zeta(1/2+it) * exp(i*theta(t))).
type zetaChannel struct {
	precision float64
}

func (c *zetaChannel) Name() string { return FullZeta }

func (c *zetaChannel) Evaluate(t float64) (float64, error) {
	z, err := Zeta(complex(0.5, t), c.precision)
	if err != nil {
		return 0, fmt.Errorf("full_zeta at t=%g: %w", t, err)
	}
	return real(z * cmplx.Exp(complex(0, Theta(t)))), nil
}
