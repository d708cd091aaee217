package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/material"
	"github.com/dkang2024/pathtracer/internal/core/ray"
	"github.com/dkang2024/pathtracer/internal/scene"
	"github.com/dkang2024/pathtracer/pkg/mathutil"
)

func twoSphereScene() *scene.Scene {
	sc := scene.New()
	ground := sc.AddMaterial(material.NewLambertian(mgl32.Vec3{0.8, 0.8, 0}))
	center := sc.AddMaterial(material.NewLambertian(mgl32.Vec3{0.1, 0.2, 0.5}))
	sc.AddSphere(mgl32.Vec3{0, -100.5, -1}, 100, ground)
	sc.AddSphere(mgl32.Vec3{0, 0, -1}, 0.5, center)
	sc.Build()
	return sc
}

func TestRenderFillsEveryPixelWithFiniteColor(t *testing.T) {
	sc := twoSphereScene()
	cam := NewCamera(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, -1}, 60, 16, 12)
	cam.Update()
	kernel := NewKernel(0.001, 1e10, 4, 4)
	fb := NewFramebuffer(16, 12)

	kernel.Render(sc, cam, fb)

	for i, v := range fb.Pixels {
		if v < 0 || v > 10 || v != v { // v != v catches NaN
			t.Fatalf("pixel component %d = %v, want a small finite non-negative value", i, v)
		}
	}
}

func TestRenderOnEmptySceneProducesSkyEverywhere(t *testing.T) {
	sc := scene.New()
	sc.Build()
	cam := NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 90, 4, 4)
	cam.Update()
	kernel := NewKernel(0.001, 1e10, 1, 1)
	fb := NewFramebuffer(4, 4)

	kernel.Render(sc, cam, fb)

	for i := 0; i < len(fb.Pixels); i += 3 {
		r, g, b := fb.Pixels[i], fb.Pixels[i+1], fb.Pixels[i+2]
		// Sky gradient never produces pure black.
		if r == 0 && g == 0 && b == 0 {
			t.Fatalf("pixel at offset %d is black, expected a sky color", i)
		}
	}
}

func TestTraceOnFuzzedReflectionProducesNoNaN(t *testing.T) {
	sc := scene.New()
	mat := sc.AddMaterial(material.NewReflective(mgl32.Vec3{0.8, 0.6, 0.2}, 1.0))
	sc.AddSphere(mgl32.Vec3{0, 0, -1}, 0.5, mat)
	sc.Build()

	kernel := NewKernel(0.001, 1e10, 1, 4)
	r := ray.New(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	rng := mathutil.NewSeededRNG(1)
	color := kernel.trace(sc, r, rng)
	for _, c := range []float32{color.X(), color.Y(), color.Z()} {
		if c != c {
			t.Fatal("trace produced NaN:", color)
		}
	}
}
