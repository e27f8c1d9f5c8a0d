package model

import "math"

// Theta evaluates the Riemann-Siegel theta function
//
//	theta(t) = Im(log Gamma(1/4 + i*t/2)) - (t/2)*log(pi)
//
// via its Stirling asymptotic expansion
//
//	theta(t) ~ (t/2)*log(t/2pi) - t/2 - pi/8 + 1/(48t) + 7/(5760 t^3)
//
// which is accurate to ~1e-10 for t >= 10. Config validation keeps scan
// windows above 2*pi, inside the expansion's useful range.
func Theta(t float64) float64 {
	return t/2*math.Log(t/(2*math.Pi)) - t/2 - math.Pi/8 +
		1/(48*t) + 7/(5760*t*t*t)
}

// rsTerms is the Riemann-Siegel main-sum length N = floor(sqrt(t/2pi)),
// at least 1.
func rsTerms(t float64) int {
	if t <= 0 {
		return 1
	}
	n := int(math.Floor(math.Sqrt(t / (2 * math.Pi))))
	if n < 1 {
		n = 1
	}
	return n
}
