package scale

import (
	"math"
)

// Targets are the continuous perceptual targets for one palette index.
type Targets struct {
	T          float64 `json:"t"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Contrast   float64 `json:"targetContrast"`
}

// Shaping holds the tuned constants used by MapIndexToTargets.
type Shaping struct {
	HueDrift                      float64
	NeutralSaturationMultiplier   float64
	ChromaticSaturationMultiplier float64
	ContrastMultiplier            float64
}

// ShapingFromConfig extracts the shaping constants from a configuration.
func ShapingFromConfig(c Config) Shaping {
	return Shaping{
		HueDrift:                      c.HueDrift,
		NeutralSaturationMultiplier:   c.NeutralSaturationMultiplier,
		ChromaticSaturationMultiplier: c.ChromaticSaturationMultiplier,
		ContrastMultiplier:            c.ContrastMultiplier,
	}
}

// Normalize returns t = index / maxIndex.
func Normalize(index, maxIndex int) float64 {
	return float64(index) / float64(maxIndex)
}

// Hue returns the scale hue at t. Neutral scales hold the base hue;
// chromatic scales drift by up to HueDrift degrees towards the light end.
func (s Shaping) Hue(t, baseHue float64, neutral bool) float64 {
	if neutral {
		return baseHue
	}
	return baseHue + s.HueDrift*(1-t)
}

// Saturation returns a downward parabola over t that equals minSat at both
// ends and peaks at t = 0.5.
func (s Shaping) Saturation(t, minSat, maxSat float64, neutral bool) float64 {
	k := s.ChromaticSaturationMultiplier
	if neutral {
		k = s.NeutralSaturationMultiplier
	}
	d := maxSat - minSat
	return -k*d*t*t + k*d*t + minSat
}

// TargetContrast returns the contrast ratio aimed for at t.
func (s Shaping) TargetContrast(t float64) float64 {
	if t <= 0 {
		return 1
	}
	return math.Exp(s.ContrastMultiplier * t)
}

// MapIndexToTargets turns a palette index into hue, saturation and target
// contrast.
func MapIndexToTargets(index, maxIndex int, baseHue, minSat, maxSat float64, neutral bool, shaping Shaping) Targets {
	t := Normalize(index, maxIndex)
	return Targets{
		T:          t,
		Hue:        shaping.Hue(t, baseHue, neutral),
		Saturation: shaping.Saturation(t, minSat, maxSat, neutral),
		Contrast:   shaping.TargetContrast(t),
	}
}
