package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/hit"
	"github.com/dkang2024/pathtracer/internal/core/interval"
	"github.com/dkang2024/pathtracer/internal/core/ray"
	"github.com/dkang2024/pathtracer/pkg/mathutil"
)

func freshRec() hit.Record {
	rec := hit.New(interval.New(0.001, 1e10))
	rec.Point = mgl32.Vec3{0, 0, 0}
	rec.Normal = mgl32.Vec3{0, 1, 0}
	rec.FrontFace = true
	rec.IncomingDir = mgl32.Vec3{0, -1, 0}
	return rec
}

func TestLambertianScattersAboveHemisphere(t *testing.T) {
	m := NewLambertian(mgl32.Vec3{0.5, 0.5, 0.5})
	rng := mathutil.NewSeededRNG(42)

	var meanY float32
	const samples = 10000
	for i := 0; i < samples; i++ {
		rec := freshRec()
		if !m.Scatter(&rec, rng) {
			t.Fatal("Lambertian should always scatter")
		}
		dir := rec.ScatteredRay.Dir.Normalize()
		if dir.Dot(rec.Normal) < -1e-5 {
			t.Fatal("scattered direction points into the surface:", dir)
		}
		meanY += dir.Y()
	}
	meanY /= samples
	// Cosine-weighted scattering about the normal {0,1,0} should average
	// a positive Y component well above zero.
	if meanY < 0.3 {
		t.Error("mean scattered Y =", meanY, "want a clearly positive lobe mean")
	}
}

func TestReflectiveMirrorsIncomingRay(t *testing.T) {
	m := NewReflective(mgl32.Vec3{1, 1, 1}, 0)
	rng := mathutil.NewSeededRNG(1)
	rec := freshRec()
	if !m.Scatter(&rec, rng) {
		t.Fatal("expected a scatter with zero fuzz and a normal-facing incoming ray")
	}
	want := mgl32.Vec3{0, 1, 0}
	dir := rec.ScatteredRay.Dir.Normalize()
	if dir.Sub(want).Len() > 1e-4 {
		t.Error("reflected dir =", dir, "want", want)
	}
}

func TestDielectricAlwaysScatters(t *testing.T) {
	m := NewDielectric(1.5)
	rng := mathutil.NewSeededRNG(7)
	for i := 0; i < 100; i++ {
		rec := freshRec()
		rec.IncomingDir = mgl32.Vec3{0.3, -1, 0.1}
		if !m.Scatter(&rec, rng) {
			t.Fatal("Dielectric should always scatter (refract or reflect)")
		}
	}
}
