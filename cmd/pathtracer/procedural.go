package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/material"
	"github.com/dkang2024/pathtracer/internal/core/noise"
	"github.com/dkang2024/pathtracer/internal/scene"
)

// addProceduralSphereField seeds a gridSize x gridSize field of small
// Lambertian spheres whose height comes from fractal Brownian motion
// rather than a heightmap file — the teacher's terrain-generation noise
// (internal/core/noise), repurposed from voxel-column heights to
// sphere centers. This is the no-file counterpart to
// loadHeightmapSpheres: both populate a grid of spheres from a height
// field, one sampled procedurally, one decoded from a PNG.
func addProceduralSphereField(sc *scene.Scene, seed int64, gridSize int, spacing, maxHeight, radius float32) {
	simplex := noise.NewSimplexNoise(seed)
	fbm := noise.NewFBM(noise.FBMConfig{
		Octaves:     4,
		Lacunarity:  2.0,
		Persistence: 0.5,
		Scale:       0.15,
	})

	mat := sc.AddMaterial(material.NewLambertian(mgl32.Vec3{0.5, 0.45, 0.4}))

	origin := float32(gridSize-1) * spacing * 0.5
	for gz := 0; gz < gridSize; gz++ {
		for gx := 0; gx < gridSize; gx++ {
			sample := fbm.Sample2D(simplex, float64(gx), float64(gz)) // in [-1,1]
			height := (float32(sample) + 1) * 0.5 * maxHeight
			center := mgl32.Vec3{
				float32(gx)*spacing - origin,
				height,
				float32(gz)*spacing - origin,
			}
			sc.AddSphere(center, radius, mat)
		}
	}
}
