package ray

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approxEqual(a, b mgl32.Vec3, eps float32) bool {
	return abs(a.X()-b.X()) < eps && abs(a.Y()-b.Y()) < eps && abs(a.Z()-b.Z()) < eps
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestAtIsOriginPlusTTimesDirection(t *testing.T) {
	r := New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, -1})
	for _, tt := range []float32{0, 1, 2.5, -3} {
		got := r.At(tt)
		want := r.Origin.Add(r.Dir.Mul(tt))
		if !approxEqual(got, want, 1e-6) {
			t.Errorf("At(%v) = %v, want %v", tt, got, want)
		}
	}
}

func TestUnitDirIsNormalized(t *testing.T) {
	r := New(mgl32.Vec3{}, mgl32.Vec3{3, 0, 4})
	u := r.UnitDir()
	if abs(u.Len()-1) > 1e-5 {
		t.Errorf("UnitDir() length = %v, want 1", u.Len())
	}
}
