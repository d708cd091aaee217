// Package render's kernel.go implements the per-pixel path-trace loop
// and its row-parallel dispatch (spec.md §4.8, §5). The row-claiming
// atomic counter and per-worker goroutine pool are grounded on
// deepteams-webp's encodeFrameParallel/RowWorker pattern, adapted from
// macroblock rows to pixel rows since a pixel's trace has no
// cross-pixel context to synchronize.
package render

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/hit"
	"github.com/dkang2024/pathtracer/internal/core/interval"
	"github.com/dkang2024/pathtracer/internal/core/ray"
	"github.com/dkang2024/pathtracer/internal/scene"
	"github.com/dkang2024/pathtracer/pkg/mathutil"
)

// Framebuffer is the reused W×H×3 pixel buffer handed to the canvas
// (spec.md §5: "allocated once at image dimensions and reused every
// frame", §6: render() returns a view of it).
type Framebuffer struct {
	Width, Height int
	Pixels        []float32 // row-major, 3 floats per pixel, each in [0,1]
}

// NewFramebuffer allocates a buffer for the given image dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pixels: make([]float32, width*height*3)}
}

// Kernel holds the per-frame sampling configuration the trace loop
// needs beyond the scene and camera (spec.md §6's enumerated
// configuration).
type Kernel struct {
	TMin, TMax      float32
	SamplesPerPixel int
	MaxDepth        int

	frame int32 // bumped once per Render call, feeds the per-pixel RNG seed
}

// NewKernel builds a kernel with the given sampling parameters.
func NewKernel(tMin, tMax float32, samplesPerPixel, maxDepth int) *Kernel {
	return &Kernel{TMin: tMin, TMax: tMax, SamplesPerPixel: samplesPerPixel, MaxDepth: maxDepth}
}

// Render dispatches one frame's trace over fb, a pool of row workers
// claiming rows from a shared atomic counter (spec.md §5: "dispatch as
// parallel work units ... no shared mutation except atomic writes to
// the pixel buffer at that pixel's unique index").
func (k *Kernel) Render(sc *scene.Scene, cam *Camera, fb *Framebuffer) {
	frame := atomic.AddInt32(&k.frame, 1)

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > fb.Height {
		numWorkers = fb.Height
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	var nextRow atomic.Int32
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for {
				y := int(nextRow.Add(1) - 1)
				if y >= fb.Height {
					return
				}
				k.renderRow(sc, cam, fb, y, int(frame))
			}
		}()
	}
	wg.Wait()
}

func (k *Kernel) renderRow(sc *scene.Scene, cam *Camera, fb *Framebuffer, y, frame int) {
	for x := 0; x < fb.Width; x++ {
		rng := mathutil.NewPixelRNG(x, y, frame)

		accum := mgl32.Vec3{}
		for s := 0; s < k.SamplesPerPixel; s++ {
			jx := rng.NextFloat32() - 0.5
			jy := rng.NextFloat32() - 0.5
			r := cam.RayFor(x, y, jx, jy)
			accum = accum.Add(k.trace(sc, r, rng))
		}
		color := accum.Mul(1 / float32(k.SamplesPerPixel))
		color = gamma(clampFinite(color))

		idx := (y*fb.Width + x) * 3
		fb.Pixels[idx+0] = color.X()
		fb.Pixels[idx+1] = color.Y()
		fb.Pixels[idx+2] = color.Z()
	}
}

// trace is the iterative bounce loop of spec.md §4.8: throughput starts
// at (1,1,1), light at (0,0,0). Each bounce either scatters (tracing
// continues with the scattered ray), absorbs (terminates at 0), or
// misses (terminates at the sky color). Exhausting the depth bound
// without a miss terminates at 0, same as an absorb.
func (k *Kernel) trace(sc *scene.Scene, r ray.Ray, rng *mathutil.SeededRNG) mgl32.Vec3 {
	throughput := mgl32.Vec3{1, 1, 1}
	light := mgl32.Vec3{}

	for depth := 0; depth < k.MaxDepth; depth++ {
		rec := hit.New(interval.New(k.TMin, k.TMax))
		if !sc.ClosestHit(r, &rec) {
			light = sky(r)
			break
		}

		mat := sc.Material(rec.MaterialID)
		if !mat.Scatter(&rec, rng) {
			return mgl32.Vec3{}
		}

		throughput = mulVec(throughput, rec.Attenuation)
		r = rec.ScatteredRay
	}

	return mulVec(throughput, light)
}

// sky is the canonical background gradient of spec.md §4.8.
func sky(r ray.Ray) mgl32.Vec3 {
	unit := r.UnitDir()
	t := 0.5 * (unit.Y() + 1)
	white := mgl32.Vec3{1, 1, 1}
	blue := mgl32.Vec3{0.5, 0.7, 1.0}
	return white.Mul(1 - t).Add(blue.Mul(t))
}

// gamma approximates sRGB encoding with a componentwise square root
// (spec.md §4.8).
func gamma(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{sqrtf(c.X()), sqrtf(c.Y()), sqrtf(c.Z())}
}

func sqrtf(x float32) float32 {
	if x < 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}

// clampFinite replaces any non-finite component with 0 before gamma
// correction, so no NaN or Inf pixel is ever emitted (spec.md §7).
func clampFinite(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{finite(c.X()), finite(c.Y()), finite(c.Z())}
}

func finite(x float32) float32 {
	if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
		return 0
	}
	return x
}

// mulVec returns the componentwise product of a and b, the throughput
// update spec.md §4.8 calls for at each scattering bounce.
func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}
