package model

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestZetaKnownRealValues(t *testing.T) {
	tests := []struct {
		name string
		s    complex128
		want float64
		tol  float64
	}{
		{"zeta(2) = pi^2/6", complex(2, 0), math.Pi * math.Pi / 6, 1e-12},
		{"zeta(3) = Apery", complex(3, 0), 1.2020569031595943, 1e-12},
		{"zeta(1/2)", complex(0.5, 0), -1.4603545088095868, 1e-10},
		{"zeta(4) = pi^4/90", complex(4, 0), math.Pow(math.Pi, 4) / 90, 1e-12},
	}

	for _, tc := range tests {
		z, err := Zeta(tc.s, 1e-10)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if math.Abs(real(z)-tc.want) > tc.tol {
			t.Errorf("%s: got %v, want %v", tc.name, real(z), tc.want)
		}
		if math.Abs(imag(z)) > tc.tol {
			t.Errorf("%s: imaginary part %v should vanish", tc.name, imag(z))
		}
	}
}

func TestZetaVanishesAtFirstNontrivialZero(t *testing.T) {
	// First zero of zeta on the critical line: t = 14.134725141734693...
	z, err := Zeta(complex(0.5, 14.1347251417346937), 1e-10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmplx.Abs(z) > 1e-8 {
		t.Errorf("|zeta| at first zero = %v, expected < 1e-8", cmplx.Abs(z))
	}
}

func TestZetaPoleSurfaced(t *testing.T) {
	if _, err := Zeta(complex(1, 0), 1e-10); !errors.Is(err, ErrPrecision) {
		t.Errorf("expected ErrPrecision at the pole, got %v", err)
	}
}

func TestZetaPrecisionUnderflowSurfaced(t *testing.T) {
	// An unreachable target precision must be reported, not masked.
	_, err := Zeta(complex(0.5, 100), 1e-40)
	if !errors.Is(err, ErrPrecision) {
		t.Errorf("expected ErrPrecision for 1e-40 target, got %v", err)
	}
}

func TestThetaIncreasingAboveTwoPi(t *testing.T) {
	prev := Theta(10)
	for tt := 10.5; tt <= 200; tt += 0.5 {
		cur := Theta(tt)
		if cur <= prev {
			t.Fatalf("theta must be increasing above 2*pi; theta(%g)=%v <= theta(%g)=%v", tt, cur, tt-0.5, prev)
		}
		prev = cur
	}
}

func TestRSTerms(t *testing.T) {
	if n := rsTerms(-1); n != 1 {
		t.Errorf("rsTerms(-1) = %d, want 1", n)
	}
	if n := rsTerms(10); n != 1 {
		t.Errorf("rsTerms(10) = %d, want 1 (sqrt(10/2pi) = 1.26)", n)
	}
	if n := rsTerms(200); n != 5 {
		t.Errorf("rsTerms(200) = %d, want 5 (sqrt(200/2pi) = 5.64)", n)
	}
}
