package iir

import (
	"strconv"
	"strings"

	"github.com/daedaleanai/runsyn/util"
)

// CoefficientSeparator separates coefficients in FixIIR coefficient lists.
const CoefficientSeparator = ":"

// FormatHex renders a finite float as an exact hexadecimal floating-point literal,
// for instance 0x1.999999999999ap-4, so that no decimal rounding happens on the way to the
// filter generator. Parsing the literal back yields exactly `x`.
func FormatHex(x float64) string {
	s := strconv.FormatFloat(x, 'x', -1, 64)
	idx := strings.IndexByte(s, 'p')
	if idx < 0 || idx+2 > len(s) {
		return s
	}
	mantissa, sign, exponent := s[:idx], s[idx+1], strings.TrimLeft(s[idx+2:], "0")
	if exponent == "" {
		exponent = "0"
	}
	return mantissa + "p" + string(sign) + exponent
}

// JoinHex formats every coefficient with FormatHex and joins them with CoefficientSeparator.
func JoinHex(coefficients []float64) string {
	return strings.Join(util.MappedSlice(coefficients, FormatHex), CoefficientSeparator)
}
