// Path Tracer - Main entry point
// An interactive Monte-Carlo path tracer written in Go with OpenGL presentation
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/config"
	"github.com/dkang2024/pathtracer/internal/core/material"
	"github.com/dkang2024/pathtracer/internal/render"
	"github.com/dkang2024/pathtracer/internal/scene"
)

// Build metadata - injected at build time via ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// App holds all runtime state for the demo driver.
type App struct {
	engine *render.Engine
	camera *render.Camera
	scene  *scene.Scene
	kernel *render.Kernel
	fb     *render.Framebuffer

	cfg config.Config
}

func main() {
	// core: crucial for OpenGL on macOS
	runtime.LockOSThread()

	fmt.Println("═══════════════════════════════════════════")
	fmt.Printf("  Path Tracer  v%s\n", Version)
	fmt.Println("═══════════════════════════════════════════")
	fmt.Printf("  Build:  %s\n", BuildDate)
	fmt.Printf("  Commit: %s\n", GitCommit)
	fmt.Println("═══════════════════════════════════════════")
	fmt.Println()
	fmt.Println("Controls:")
	fmt.Println("  W/S        - Move toward / away from look-at")
	fmt.Println("  A/D        - Move left / right")
	fmt.Println("  Space/Shift- Move up / down")
	fmt.Println("  Mouse      - Look around")
	fmt.Println("  ESC        - Quit")
	fmt.Println()

	app, err := NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start path tracer: %v\n", err)
		os.Exit(1)
	}
	defer app.engine.Cleanup()

	app.Run()
}

// NewApp builds the engine, camera, kernel, and demo scene.
func NewApp() (*App, error) {
	cfg := config.New(
		config.WithImageWidth(640),
		config.WithAspectRatio(16.0/9.0),
		config.WithFOV(90),
		config.WithSampling(16, 10),
	)
	imageHeight := cfg.ImageHeight()

	engineCfg := render.DefaultConfig()
	engineCfg.Title = "Path Tracer"
	engineCfg.Width = cfg.ImageWidth
	engineCfg.Height = imageHeight
	engineCfg.ImageWidth = cfg.ImageWidth
	engineCfg.ImageHeight = imageHeight

	engine, err := render.NewEngine(engineCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	sc := buildFourSphereScene()
	switch heightmapPath := os.Getenv("PATHTRACER_HEIGHTMAP"); {
	case heightmapPath != "":
		if err := loadHeightmapSpheres(sc, heightmapPath, 12, 0.3, 1.5, 0.12); err != nil {
			fmt.Fprintf(os.Stderr, "heightmap scene augmentation skipped: %v\n", err)
		}
	case os.Getenv("PATHTRACER_PROCEDURAL_FIELD") != "":
		addProceduralSphereField(sc, 1, 12, 0.3, 1.5, 0.12)
	}
	sc.Build()

	cam := render.NewCamera(
		mgl32.Vec3{-2, 2, 1},
		mgl32.Vec3{0, 0, -1},
		cfg.FOVVerticalDeg,
		cfg.ImageWidth,
		imageHeight,
	)
	cam.UpHint = cfg.UpHint
	cam.Speed = cfg.CameraSpeed

	kernel := render.NewKernel(cfg.TMin, cfg.TMax, cfg.SamplesPerPixel, cfg.MaxDepth)
	fb := render.NewFramebuffer(cfg.ImageWidth, imageHeight)

	return &App{
		engine: engine,
		camera: cam,
		scene:  sc,
		kernel: kernel,
		fb:     fb,
		cfg:    cfg,
	}, nil
}

// buildFourSphereScene reproduces spec.md §8 scenario 2: a ground
// sphere, a diffuse center sphere, a dielectric sphere, and a fuzzed
// reflective sphere.
func buildFourSphereScene() *scene.Scene {
	sc := scene.New()

	ground := sc.AddMaterial(material.NewLambertian(mgl32.Vec3{0.8, 0.8, 0}))
	center := sc.AddMaterial(material.NewLambertian(mgl32.Vec3{0.1, 0.2, 0.5}))
	left := sc.AddMaterial(material.NewDielectric(1.0 / 1.3))
	right := sc.AddMaterial(material.NewReflective(mgl32.Vec3{0.8, 0.6, 0.2}, 1.0))

	sc.AddSphere(mgl32.Vec3{0, -100.5, -1}, 100, ground)
	sc.AddSphere(mgl32.Vec3{0, 0, -1}, 0.5, center)
	sc.AddSphere(mgl32.Vec3{-1, 0, -1}, 0.5, left)
	sc.AddSphere(mgl32.Vec3{1, 0, -1}, 0.5, right)

	return sc
}

// Run drives the engine's main loop: buffer input, update the camera,
// rebuild the scene if dirty, trace the frame, and present it (spec.md
// §6's per-frame driver: set_input_dir/set_cursor/update_camera/render).
func (a *App) Run() {
	a.engine.Run(a.update, a.render)
}

func (a *App) update(dt float32) {
	input := a.engine.GetInput()
	input.ApplyTo(a.camera)
	a.camera.Update()
	a.scene.Build()
}

func (a *App) render() {
	a.kernel.Render(a.scene, a.camera, a.fb)
	a.engine.UploadFrame(a.fb)
	a.engine.DrawFrame()
}
