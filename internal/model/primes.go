package model

import "math/rand/v2"

// PrimesUpTo returns all primes <= n by sieve of Eratosthenes.
func PrimesUpTo(n int) []int {
	if n < 2 {
		return nil
	}
	sieve := make([]bool, n+1)
	var primes []int
	for p := 2; p <= n; p++ {
		if sieve[p] {
			continue
		}
		primes = append(primes, p)
		for q := p * p; q <= n; q += p {
			sieve[q] = true
		}
	}
	return primes
}

// jitterStream is the PCG stream constant for prime jittering, fixed so the
// same seed reproduces the same pseudo-primes across runs.
const jitterStream = 0x6a747472 // "jttr"

// JitterPrimes returns pseudo-primes r_k ~ Uniform(p_k-width, p_k+width),
// drawn once from a generator seeded by the caller. Width zero returns the
// primes unchanged, which is what makes the control isolate coherence.
func JitterPrimes(primes []int, width float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, jitterStream))
	out := make([]float64, len(primes))
	for i, p := range primes {
		out[i] = float64(p) + width*(2*rng.Float64()-1)
	}
	return out
}

func floatPrimes(primes []int) []float64 {
	out := make([]float64, len(primes))
	for i, p := range primes {
		out[i] = float64(p)
	}
	return out
}
