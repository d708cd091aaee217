package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dkang2024/pathtracer/internal/scene"
)

func writeTestHeightmap(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) * 4)})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadHeightmapSpheresPopulatesGrid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heightmap.png")
	writeTestHeightmap(t, path)

	sc := scene.New()
	before := sc.Len()
	if err := loadHeightmapSpheres(sc, path, 8, 0.5, 2, 0.1); err != nil {
		t.Fatal(err)
	}
	if got, want := sc.Len()-before, 8*8; got != want {
		t.Errorf("Len() added %d spheres, want %d", got, want)
	}
}

func TestLoadHeightmapSpheresReportsMissingFile(t *testing.T) {
	sc := scene.New()
	if err := loadHeightmapSpheres(sc, "/nonexistent/heightmap.png", 4, 0.5, 2, 0.1); err == nil {
		t.Error("expected an error for a missing heightmap file")
	}
}
