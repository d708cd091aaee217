package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/material"
	"github.com/dkang2024/pathtracer/internal/scene"
)

// loadHeightmapSpheres seeds additional spheres from a grayscale PNG
// heightmap: the image is resampled to gridSize x gridSize, and each
// sample becomes a small Lambertian sphere whose height is proportional
// to pixel brightness. This is an out-of-core scene-construction
// convenience (spec.md §1 names "the scene-construction script" an
// external collaborator, out of scope for the core itself); it is not
// invoked unless a heightmap path is supplied.
func loadHeightmapSpheres(sc *scene.Scene, path string, gridSize int, spacing, maxHeight, radius float32) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open heightmap %s: %w", path, err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decode heightmap %s: %w", path, err)
	}

	// Resample to the target grid with the Catmull-Rom kernel so a
	// high-resolution source heightmap still yields exactly gridSize²
	// samples.
	dst := image.NewGray(image.Rect(0, 0, gridSize, gridSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	mat := sc.AddMaterial(material.NewLambertian(mgl32.Vec3{0.45, 0.55, 0.45}))

	origin := float32(gridSize-1) * spacing * 0.5
	for gy := 0; gy < gridSize; gy++ {
		for gx := 0; gx < gridSize; gx++ {
			level := grayAt(dst, gx, gy)
			height := level * maxHeight
			center := mgl32.Vec3{
				float32(gx)*spacing - origin,
				height,
				float32(gy)*spacing - origin,
			}
			sc.AddSphere(center, radius, mat)
		}
	}
	return nil
}

// grayAt returns the normalized [0,1] luminance of pixel (x,y).
func grayAt(img *image.Gray, x, y int) float32 {
	g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
	return float32(g.Y) / 255.0
}
