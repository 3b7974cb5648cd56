package scale

import (
	"math"
	"testing"
)

func defaultShaping() Shaping {
	return ShapingFromConfig(DefaultConfig())
}

func TestMapIndexToTargets_Hue(t *testing.T) {
	shaping := defaultShaping()

	t.Run("neutral hue is constant", func(t *testing.T) {
		for _, idx := range DefaultIndices {
			got := MapIndexToTargets(idx, 1000, 250, 0.15, 0.85, true, shaping)
			if got.Hue != 250 {
				t.Errorf("index %d: Hue = %v, want 250", idx, got.Hue)
			}
		}
	})

	t.Run("chromatic hue strictly decreases", func(t *testing.T) {
		prev := math.Inf(1)
		for _, idx := range DefaultIndices {
			got := MapIndexToTargets(idx, 1000, 250, 0.15, 0.85, false, shaping)
			if got.Hue >= prev {
				t.Errorf("index %d: Hue = %v, not below previous %v", idx, got.Hue, prev)
			}
			prev = got.Hue
		}
	})

	t.Run("chromatic hue spans the drift", func(t *testing.T) {
		first := MapIndexToTargets(0, 1000, 250, 0.15, 0.85, false, shaping)
		last := MapIndexToTargets(1000, 1000, 250, 0.15, 0.85, false, shaping)
		if first.Hue != 255 || last.Hue != 250 {
			t.Errorf("hue range = [%v, %v], want [255, 250]", first.Hue, last.Hue)
		}
	})
}

func TestMapIndexToTargets_Saturation(t *testing.T) {
	shaping := defaultShaping()

	for _, neutral := range []bool{true, false} {
		name := "chromatic"
		if neutral {
			name = "neutral"
		}
		t.Run(name, func(t *testing.T) {
			const minSat, maxSat = 0.15, 0.85

			start := shaping.Saturation(0, minSat, maxSat, neutral)
			end := shaping.Saturation(1, minSat, maxSat, neutral)
			if math.Abs(start-minSat) > 1e-12 || math.Abs(end-minSat) > 1e-12 {
				t.Errorf("endpoints = %v, %v, want %v", start, end, minSat)
			}

			peak := shaping.Saturation(0.5, minSat, maxSat, neutral)
			for i := 0; i <= 100; i++ {
				tv := float64(i) / 100
				s := shaping.Saturation(tv, minSat, maxSat, neutral)
				if s > peak+1e-12 {
					t.Errorf("Saturation(%v) = %v exceeds value at 0.5 (%v)", tv, s, peak)
				}
				if s < minSat-1e-12 || s > maxSat+1e-12 {
					t.Errorf("Saturation(%v) = %v outside [%v, %v]", tv, s, minSat, maxSat)
				}
			}
		})
	}

	t.Run("chromatic peak reaches max", func(t *testing.T) {
		peak := shaping.Saturation(0.5, 0.15, 0.85, false)
		if math.Abs(peak-0.85) > 1e-12 {
			t.Errorf("peak = %v, want 0.85", peak)
		}
	})

	t.Run("neutral peak is a fifth of the range", func(t *testing.T) {
		peak := shaping.Saturation(0.5, 0.15, 0.85, true)
		if math.Abs(peak-(0.15+0.2*0.7)) > 1e-12 {
			t.Errorf("peak = %v, want %v", peak, 0.15+0.2*0.7)
		}
	})
}

func TestTargetContrast(t *testing.T) {
	shaping := defaultShaping()

	if got := shaping.TargetContrast(0); got != 1 {
		t.Errorf("TargetContrast(0) = %v, want 1", got)
	}
	if got := shaping.TargetContrast(-0.5); got != 1 {
		t.Errorf("TargetContrast(-0.5) = %v, want 1", got)
	}

	prev := 0.0
	for _, idx := range append([]int{0}, DefaultIndices...) {
		got := shaping.TargetContrast(Normalize(idx, 1000))
		if got <= prev {
			t.Errorf("TargetContrast at %d = %v, not above %v", idx, got, prev)
		}
		prev = got
	}

	mid := shaping.TargetContrast(0.5)
	if mid < 4.5 || mid > 4.6 {
		t.Errorf("TargetContrast(0.5) = %v, want just above 4.5", mid)
	}
	if top := shaping.TargetContrast(1); top > 21 {
		t.Errorf("TargetContrast(1) = %v, above the WCAG maximum", top)
	}
}
