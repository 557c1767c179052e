package survey

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestNormalizeDeg(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0}, {360, 0}, {370, 10}, {-10, 350}, {-370, 350}, {720, 0}, {180, 180},
	}
	for _, tt := range tests {
		if got := normalizeDeg(tt.in); got != tt.want {
			t.Errorf("normalizeDeg(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestAngularDiffDeg(t *testing.T) {
	tests := []struct{ a, b, want float64 }{
		{10, 10, 0},
		{10, 30, 20},
		{350, 10, 20},
		{2, 358, 4},
		{0, 180, 180},
		{270, 90, 180},
	}
	for _, tt := range tests {
		if got := angularDiffDeg(tt.a, tt.b); got != tt.want {
			t.Errorf("angularDiffDeg(%g, %g) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCircularMeanDeg(t *testing.T) {
	tests := []struct{ a, b, want float64 }{
		{10, 10, 10},
		{10, 30, 20},
		{350, 10, 0},
		{2, 0, 1},
		{170, 190, 180},
	}
	for _, tt := range tests {
		got := circularMeanDeg(tt.a, tt.b)
		if angularDiffDeg(got, tt.want) > 1e-9 {
			t.Errorf("circularMeanDeg(%g, %g) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBacksightCorrections(t *testing.T) {
	if got := correctedAzimuthBack(190); got != 10 {
		t.Errorf("correctedAzimuthBack(190) = %g, want 10", got)
	}
	if got := correctedAzimuthBack(170); got != 350 {
		t.Errorf("correctedAzimuthBack(170) = %g, want 350", got)
	}
	if got := correctedInclinationBack(-12.5); !scalar.EqualWithinAbs(got, 12.5, 1e-12) {
		t.Errorf("correctedInclinationBack(-12.5) = %g, want 12.5", got)
	}
}
