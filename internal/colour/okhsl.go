// Package colour provides the perceptual colour space used to build scales.
package colour

import (
	"math"
)

// Toe constants shared by the OKHSL lightness axis and the scale codec.
const (
	ToeK1 = 0.206
	ToeK2 = 0.03
	ToeK3 = (1 + ToeK1) / (1 + ToeK2)
)

// OKHSL is a colour in the OKHSL space.
// H is hue in degrees, S and L are in [0, 1].
type OKHSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Toe maps an OKLab lightness to the OKHSL lightness axis.
func Toe(x float64) float64 {
	y := ToeK3*x - ToeK1
	return 0.5 * (y + math.Sqrt(y*y+4*ToeK2*ToeK3*x))
}

// ToeInv maps an OKHSL lightness back to OKLab lightness.
func ToeInv(x float64) float64 {
	return (x*x + ToeK1*x) / (ToeK3 * (x + ToeK2))
}

// okhslToLinearRGB converts OKHSL to linear sRGB. The result may fall
// slightly outside [0, 1] and is NaN when the gamut model degenerates.
func okhslToLinearRGB(h, s, l float64) (r, g, b float64) {
	if l >= 1 {
		return 1, 1, 1
	}
	if l <= 0 {
		return 0, 0, 0
	}

	rad := 2 * math.Pi * h / 360
	a := math.Cos(rad)
	bb := math.Sin(rad)
	L := ToeInv(l)

	c0, cMid, cMax := chromaBounds(L, a, bb)

	const mid = 0.8
	const midInv = 1.25

	var c float64
	if s < mid {
		t := midInv * s
		k1 := mid * c0
		k2 := 1 - k1/cMid
		c = t * k1 / (1 - k2*t)
	} else {
		t := (s - mid) / (1 - mid)
		k0 := cMid
		k1 := (1 - mid) * cMid * cMid * midInv * midInv / c0
		k2 := 1 - k1/(cMax-cMid)
		c = k0 + t*k1/(1-k2*t)
	}

	return oklabToLinearRGB(L, c*a, c*bb)
}

// oklabToLinearRGB uses the direct OKLab to linear sRGB matrices. The gamut
// fits in maxSaturation and gamutIntersection are derived against these,
// not against the XYZ route.
func oklabToLinearRGB(L, a, b float64) (float64, float64, float64) {
	l := L + 0.3963377774*a + 0.2158037573*b
	m := L - 0.1055613458*a - 0.0638541728*b
	s := L - 0.0894841775*a - 1.2914855480*b

	l = l * l * l
	m = m * m * m
	s = s * s * s

	return +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		-1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		-0.0041960863*l - 0.7034186147*m + 1.7076147010*s
}

// maxSaturation finds the saturation S = C/L at which a hue (a, b must be
// normalised so a^2 + b^2 == 1) leaves the sRGB gamut. A polynomial guess
// is refined with a single Halley step.
func maxSaturation(a, b float64) float64 {
	var k0, k1, k2, k3, k4, wl, wm, ws float64

	switch {
	case -1.88170328*a-0.80936493*b > 1:
		// red component goes below zero first
		k0, k1, k2, k3, k4 = 1.19086277, 1.76576728, 0.59662641, 0.75515197, 0.56771245
		wl, wm, ws = 4.0767416621, -3.3077115913, 0.2309699292
	case 1.81444104*a-1.19445276*b > 1:
		// green
		k0, k1, k2, k3, k4 = 0.73956515, -0.45954404, 0.08285427, 0.12541070, 0.14503204
		wl, wm, ws = -1.2684380046, 2.6097574011, -0.3413193965
	default:
		// blue
		k0, k1, k2, k3, k4 = 1.35733652, -0.00915799, -1.15130210, -0.50559606, 0.00692167
		wl, wm, ws = -0.0041960863, -0.7034186147, 1.7076147010
	}

	S := k0 + k1*a + k2*b + k3*a*a + k4*a*b

	kl := 0.3963377774*a + 0.2158037573*b
	km := -0.1055613458*a - 0.0638541728*b
	ks := -0.0894841775*a - 1.2914855480*b

	lc := 1 + S*kl
	mc := 1 + S*km
	sc := 1 + S*ks

	l := lc * lc * lc
	m := mc * mc * mc
	s := sc * sc * sc

	ldS := 3 * kl * lc * lc
	mdS := 3 * km * mc * mc
	sdS := 3 * ks * sc * sc

	ldS2 := 6 * kl * kl * lc
	mdS2 := 6 * km * km * mc
	sdS2 := 6 * ks * ks * sc

	f := wl*l + wm*m + ws*s
	f1 := wl*ldS + wm*mdS + ws*sdS
	f2 := wl*ldS2 + wm*mdS2 + ws*sdS2

	return S - f*f1/(f1*f1-0.5*f*f2)
}

type cusp struct {
	L, C float64
}

// findCusp returns the lightness and chroma of the most saturated in-gamut
// colour for a hue.
func findCusp(a, b float64) cusp {
	S := maxSaturation(a, b)
	r, g, bl := oklabToLinearRGB(1, S*a, S*b)
	L := math.Cbrt(1 / math.Max(math.Max(r, g), bl))
	return cusp{L: L, C: L * S}
}

// gamutIntersection finds t such that the line L = L0*(1-t) + t*L1,
// C = t*C1 meets the sRGB gamut boundary.
func gamutIntersection(a, b, L1, C1, L0 float64, cu cusp) float64 {
	if (L1-L0)*cu.C-(cu.L-L0)*C1 <= 0 {
		// lower half, the triangle approximation is exact enough
		return cu.C * L0 / (C1*cu.L + cu.C*(L0-L1))
	}

	t := cu.C * (L0 - 1) / (C1*(cu.L-1) + cu.C*(L0-L1))

	dL := L1 - L0
	dC := C1

	kl := 0.3963377774*a + 0.2158037573*b
	km := -0.1055613458*a - 0.0638541728*b
	ks := -0.0894841775*a - 1.2914855480*b

	ldt := dL + dC*kl
	mdt := dL + dC*km
	sdt := dL + dC*ks

	L := L0*(1-t) + t*L1
	C := t * C1

	lc := L + C*kl
	mc := L + C*km
	sc := L + C*ks

	l := lc * lc * lc
	m := mc * mc * mc
	s := sc * sc * sc

	dl := 3 * ldt * lc * lc
	dm := 3 * mdt * mc * mc
	ds := 3 * sdt * sc * sc

	dl2 := 6 * ldt * ldt * lc
	dm2 := 6 * mdt * mdt * mc
	ds2 := 6 * sdt * sdt * sc

	step := func(wl, wm, ws float64) float64 {
		v := wl*l + wm*m + ws*s - 1
		v1 := wl*dl + wm*dm + ws*ds
		v2 := wl*dl2 + wm*dm2 + ws*ds2
		u := v1 / (v1*v1 - 0.5*v*v2)
		if u < 0 {
			return math.MaxFloat64
		}
		return -v * u
	}

	tr := step(4.0767416621, -3.3077115913, 0.2309699292)
	tg := step(-1.2684380046, 2.6097574011, -0.3413193965)
	tb := step(-0.0041960863, -0.7034186147, 1.7076147010)

	return t + math.Min(tr, math.Min(tg, tb))
}

// chromaBounds returns the chroma reached at saturation 0.8 interpolation
// points: near-grey (c0), the mid point (cMid) and the gamut edge (cMax).
func chromaBounds(L, a, b float64) (c0, cMid, cMax float64) {
	cu := findCusp(a, b)
	cMax = gamutIntersection(a, b, L, 1, L, cu)

	sMax := cu.C / cu.L
	tMax := cu.C / (1 - cu.L)

	sMid := 0.11516993 + 1/(7.44778970+4.15901240*b+
		a*(-2.19557347+1.75198401*b+
			a*(-2.13704948-10.02301043*b+
				a*(-4.24894561+5.38770819*b+4.69891013*a))))
	tMid := 0.11239642 + 1/(1.61320320-0.68124379*b+
		a*(0.40370612+0.90148123*b+
			a*(-0.27087943+0.61223990*b+
				a*(0.00299215-0.45399568*b-0.14661872*a))))

	k := cMax / math.Min(L*sMax, (1-L)*tMax)

	ca := L * sMid
	cb := (1 - L) * tMid
	cMid = 0.9 * k * math.Sqrt(math.Sqrt(1/(1/(ca*ca*ca*ca)+1/(cb*cb*cb*cb))))

	ca = L * 0.4
	cb = (1 - L) * 0.8
	c0 = math.Sqrt(1 / (1/(ca*ca) + 1/(cb*cb)))

	return c0, cMid, cMax
}
