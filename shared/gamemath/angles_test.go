package gamemath

import (
	"math"
	"testing"
)

func TestAngleShortRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, -90, 179.5, -179.5} {
		got := ShortToAngle(AngleToShort(deg))
		if math.Abs(got-deg) > 360.0/65536.0 {
			t.Fatalf("ShortToAngle(AngleToShort(%v)) = %v", deg, got)
		}
	}
	if got := AngleToShort(-1); got != 65354 {
		t.Fatalf("AngleToShort(-1) = %d, want 65354", got)
	}
}

func TestWrapYaw(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{181, -179},
		{-181, 179},
		{180, 180},
		{-180, 180},
		{12.5, 12.5},
	}
	for _, tt := range tests {
		if got := WrapYaw(tt.in); got != tt.want {
			t.Fatalf("WrapYaw(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampChar(t *testing.T) {
	if got := ClampChar(300); got != 127 {
		t.Fatalf("ClampChar(300) = %d", got)
	}
	if got := ClampChar(-300); got != -128 {
		t.Fatalf("ClampChar(-300) = %d", got)
	}
	if got := ClampChar(-5); got != -5 {
		t.Fatalf("ClampChar(-5) = %d", got)
	}
}

func TestAngleSubtract(t *testing.T) {
	if got := AngleSubtract(170, -170); got != -20 {
		t.Fatalf("AngleSubtract(170, -170) = %v, want -20", got)
	}
	if got := AngleSubtract(-170, 170); got != 20 {
		t.Fatalf("AngleSubtract(-170, 170) = %v, want 20", got)
	}
}
