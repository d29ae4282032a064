package iir

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultFlopoco     = "./flopoco"
	DefaultOrder       = 3
	DefaultCutoff      = 0.1
	DefaultLsbIn       = -12
	DefaultMsbOut      = 2
	DefaultLsbOut      = -12
	DefaultTestVectors = 100
)

// Params describes one FixIIR generation.
type Params struct {
	// Flopoco is the generator executable.
	Flopoco string
	// Order of the Butterworth low-pass filter.
	Order int
	// Cutoff as a fraction of the Nyquist frequency.
	Cutoff float64

	LsbIn  int
	MsbOut int
	LsbOut int
	// PeakGain is the worst-case peak gain `h`. Zero leaves it to the generator.
	PeakGain float64
	// TestVectors is the number of random test vectors of the generated test bench.
	TestVectors int
	// Figures asks the generator for its SVG figures (`generateFigures=1`).
	Figures bool
}

// DefaultParams returns the compiled-in generation parameters.
func DefaultParams() Params {
	return Params{
		Flopoco:     DefaultFlopoco,
		Order:       DefaultOrder,
		Cutoff:      DefaultCutoff,
		LsbIn:       DefaultLsbIn,
		MsbOut:      DefaultMsbOut,
		LsbOut:      DefaultLsbOut,
		TestVectors: DefaultTestVectors,
		Figures:     true,
	}
}

// Command designs the filter described by `p` and renders the generator command line.
//
// The denominator list omits a[0]: the generator assumes a normalized leading coefficient and
// only takes the feedback terms.
func Command(p Params) (string, error) {
	if p.TestVectors < 0 {
		return "", errors.Errorf("test vector count must not be negative, got %d", p.TestVectors)
	}
	if p.LsbOut > p.MsbOut {
		return "", errors.Errorf("lsbOut (%d) is above msbOut (%d)", p.LsbOut, p.MsbOut)
	}
	b, a, err := Butterworth(p.Order, p.Cutoff)
	if err != nil {
		return "", errors.Wrap(err, "failed to design filter")
	}

	args := []string{p.Flopoco}
	if p.Figures {
		args = append(args, "generateFigures=1")
	}
	args = append(args,
		"FixIIR",
		fmt.Sprintf("coeffb=%q", JoinHex(b)),
		fmt.Sprintf("coeffa=%q", JoinHex(a[1:])),
		fmt.Sprintf("lsbIn=%d", p.LsbIn),
		fmt.Sprintf("msbOut=%d", p.MsbOut),
		fmt.Sprintf("lsbOut=%d", p.LsbOut),
	)
	if p.PeakGain != 0 {
		args = append(args, fmt.Sprintf("h=%s", FormatHex(p.PeakGain)))
	}
	args = append(args, "TestBench", fmt.Sprintf("n=%d", p.TestVectors))
	return strings.Join(args, " "), nil
}
