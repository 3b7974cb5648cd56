package colour

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestContrastRatio(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}

	tests := []struct {
		name string
		a, b colorful.Color
		want float64
	}{
		{name: "black on white", a: black, b: white, want: 21},
		{name: "white on black", a: white, b: black, want: 21},
		{name: "same colour", a: white, b: white, want: 1},
		{name: "mid grey on white", a: colorful.Color{R: 0.4627, G: 0.4627, B: 0.4627}, b: white, want: 4.54},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContrastRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("ContrastRatio() = %.3f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 1, want: "fail"},
		{ratio: 4.49, want: "fail"},
		{ratio: 4.5, want: "AA"},
		{ratio: 6.99, want: "AA"},
		{ratio: 7, want: "AAA"},
		{ratio: 21, want: "AAA"},
	}

	for _, tt := range tests {
		if got := Level(tt.ratio); got != tt.want {
			t.Errorf("Level(%v) = %s, want %s", tt.ratio, got, tt.want)
		}
	}
}
