package scale

import (
	"math"

	"github.com/jmylchreest/tintscale/internal/colour"
)

// CIE L* knee: below it L* is linear in Y.
const (
	lstarEpsilon = 0.0088564516
	lstarKappa   = 903.2962962
)

// LuminanceToLstar converts relative luminance to CIE L* in [0, 100].
func LuminanceToLstar(y float64) float64 {
	y = clamp01(y)
	if y <= lstarEpsilon {
		return y * lstarKappa
	}
	return 116*math.Cbrt(y) - 16
}

// LstarToLightness maps L* onto the OKHSL lightness axis with the rational
// toe mapping. This is the search path form.
func LstarToLightness(lstar float64) float64 {
	if lstar <= 0 {
		return 0
	}
	if lstar >= 100 {
		return 1
	}
	lt := lstar / 100
	return clamp01((lt * (lt + colour.ToeK1)) / (colour.ToeK3 * (lt + colour.ToeK2)))
}

// LuminanceToLightness converts relative luminance straight to OKHSL
// lightness with the closed-form toe. OKLab lightness of a grey is cbrt(Y),
// so this is exact for achromatic colours only. This is the fast path form
// and must not be combined with LstarToLightness.
func LuminanceToLightness(y float64) float64 {
	return clamp01(colour.Toe(math.Cbrt(clamp01(y))))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
