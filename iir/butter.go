package iir

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

// Butterworth designs a digital low-pass Butterworth filter of the given order.
//
// The cutoff is a fraction of the Nyquist frequency and must lie in (0, 1). The design goes
// through the analog prototype, pre-warps the cutoff and maps the poles with the bilinear
// transform. The returned numerator `b` and denominator `a` both have order+1 coefficients,
// with a[0] == 1.
func Butterworth(order int, cutoff float64) (b, a []float64, err error) {
	if order < 1 {
		return nil, nil, errors.Errorf("filter order must be positive, got %d", order)
	}
	if !(cutoff > 0 && cutoff < 1) {
		return nil, nil, errors.Errorf("cutoff must be in (0, 1) as a fraction of Nyquist, got %v", cutoff)
	}

	// Sampling frequency 2 makes Nyquist 1, so the cutoff is already normalized.
	const fs = 2.0
	warped := 2 * fs * math.Tan(math.Pi*cutoff/fs)

	poles := make([]complex128, order)
	for k := range poles {
		m := float64(2*k - order + 1)
		poles[k] = -cmplx.Exp(complex(0, math.Pi*m/float64(2*order))) * complex(warped, 0)
	}
	gain := math.Pow(warped, float64(order))

	fs2 := complex(2*fs, 0)
	denom := complex(1, 0)
	for i, p := range poles {
		denom *= fs2 - p
		poles[i] = (fs2 + p) / (fs2 - p)
	}
	gain *= real(1 / denom)

	zeros := make([]complex128, order)
	for i := range zeros {
		zeros[i] = -1
	}

	b = realParts(poly(zeros))
	for i := range b {
		b[i] *= gain
	}
	a = realParts(poly(poles))
	return b, a, nil
}

// poly returns the coefficients of the monic polynomial with the given roots, highest power first.
func poly(roots []complex128) []complex128 {
	c := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(c)+1)
		copy(next, c)
		for j := 1; j < len(next); j++ {
			next[j] -= r * c[j-1]
		}
		c = next
	}
	return c
}

func realParts(c []complex128) []float64 {
	result := make([]float64, len(c))
	for i, v := range c {
		result[i] = real(v)
	}
	return result
}
