// Package render hosts the pinhole camera, input buffering, the
// per-pixel render kernel, and the GL display host — kept apart from
// Scene (internal/scene), which owns primitives/materials/BVH, per
// spec.md §9's "split them" design note.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/ray"
)

// Camera is a pinhole camera: position/look-at/up-hint pose plus the
// FOV-driven viewport derived from it (spec.md §4.7). Adapted from the
// teacher's yaw/pitch FPS Camera: the basis recompute (updateVectors)
// is kept in spirit, generalized from Euler angles to a look-at target
// and to the spec's mouse-angle pose update.
type Camera struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	UpHint   mgl32.Vec3

	FOVVerticalDeg float32
	ImageWidth     int
	ImageHeight    int
	Speed          float32

	// Derived basis and viewport, recomputed by Update.
	i, j, k             mgl32.Vec3
	pixelOrigin, du, dv mgl32.Vec3

	// Buffered per-frame input (spec.md §6).
	inputDir         mgl32.Vec3 // x,y,z each in {-1,0,1}
	cursorX, cursorY float32    // in [0,1]
}

// NewCamera builds a camera at position looking at lookAt, with default
// up-hint (0,1,0) and camera_speed (spec.md §6).
func NewCamera(position, lookAt mgl32.Vec3, fovVerticalDeg float32, imageWidth, imageHeight int) *Camera {
	c := &Camera{
		Position:       position,
		LookAt:         lookAt,
		UpHint:         mgl32.Vec3{0, 1, 0},
		FOVVerticalDeg: fovVerticalDeg,
		ImageWidth:     imageWidth,
		ImageHeight:    imageHeight,
		Speed:          0.1,
		cursorX:        0.5,
		cursorY:        0.5,
	}
	c.recomputeBasis()
	return c
}

// SetInputDir buffers the per-frame movement direction; each component
// is expected in {-1,0,1} (spec.md §6).
func (c *Camera) SetInputDir(x, y, z float32) {
	c.inputDir = mgl32.Vec3{x, y, z}
}

// SetCursor buffers the normalized cursor position (spec.md §6).
func (c *Camera) SetCursor(mx, my float32) {
	c.cursorX = mx
	c.cursorY = my
}

// Update applies buffered input to the pose and recomputes the basis
// and viewport (spec.md §4.7, §6's update_camera). Update mutates
// Position and LookAt: a buffered direction translates both again on
// every call (the basis vectors stay the same, the viewport origin
// moves), and an off-centre cursor rotates LookAt again on every call.
// With a zero direction and a centred cursor, repeated calls leave the
// pose, basis, and viewport unchanged.
func (c *Camera) Update() {
	c.recomputeBasis()
	c.move(1.0)
	c.applyCursor()
	c.recomputeBasis()
}

// move translates Position and LookAt together by the buffered input
// direction, scaled by Speed and dtFrames (spec.md §4.7; the dtFrames
// multiplier is the frame-rate-independent extension of SPEC_FULL.md
// §4 — passing 1.0 reproduces spec.md §8 scenario 5's "5 frames at
// speed 0.1" behavior exactly). Update always passes 1.0.
func (c *Camera) move(dtFrames float32) {
	if c.inputDir.Len() == 0 {
		return
	}
	delta := c.i.Mul(c.inputDir.X()).
		Add(c.j.Mul(c.inputDir.Y())).
		Add(c.k.Mul(c.inputDir.Z())).
		Mul(c.Speed * dtFrames)
	c.Position = c.Position.Add(delta)
	c.LookAt = c.LookAt.Add(delta)
}

// applyCursor maps the buffered cursor position to a post-rotation
// look-at per spec.md §4.7's tangent-angle formula. The literal 178°
// mapping constant is kept as spec.md specifies (see DESIGN.md's Open
// Questions section for why it was not made configurable).
func (c *Camera) applyCursor() {
	d := c.Position.Sub(c.LookAt).Len()
	if d == 0 {
		return
	}
	const mouseFOVDeg = 178.0
	alpha := mouseFOVDeg * (c.cursorX - 0.5)
	beta := mouseFOVDeg * (c.cursorY - 0.5)

	alphaRad := float64(alpha) * math.Pi / 180.0
	betaRad := float64(beta) * math.Pi / 180.0

	c.LookAt = c.LookAt.
		Add(c.i.Mul(d * float32(math.Tan(alphaRad)))).
		Add(c.j.Mul(d * float32(math.Tan(betaRad))))
}

// recomputeBasis derives the orthonormal (i,j,k) frame and the per-
// pixel viewport deltas from Position/LookAt/UpHint/FOV (spec.md §4.7).
func (c *Camera) recomputeBasis() {
	k := c.Position.Sub(c.LookAt)
	if k.Len() < 1e-8 {
		k = mgl32.Vec3{0, 0, 1}
	} else {
		k = k.Normalize()
	}

	i := c.UpHint.Cross(k)
	if i.Len() < 1e-6 {
		i = mgl32.Vec3{0, 0, 1}.Cross(k)
	}
	i = i.Normalize()
	j := k.Cross(i)

	c.i, c.j, c.k = i, j, k

	focalLength := c.Position.Sub(c.LookAt).Len()
	if focalLength == 0 {
		focalLength = 1e-4
	}

	viewportHeight := 2 * float32(math.Tan(float64(mgl32.DegToRad(c.FOVVerticalDeg))/2)) * focalLength
	viewportWidth := viewportHeight * float32(c.ImageWidth) / float32(c.ImageHeight)

	viewportU := i.Mul(viewportWidth)
	viewportV := j.Mul(viewportHeight)

	c.du = viewportU.Mul(1 / float32(c.ImageWidth))
	c.dv = viewportV.Mul(1 / float32(c.ImageHeight))

	topLeft := c.Position.
		Sub(k.Mul(focalLength)).
		Sub(viewportU.Mul(0.5)).
		Sub(viewportV.Mul(0.5))
	c.pixelOrigin = topLeft.Add(c.du.Add(c.dv).Mul(0.5))
}

// RayFor constructs the ray for pixel (x,y) with a jitter in [-0.5,0.5]²
// for antialiasing (spec.md §4.7, §4.8). The direction is returned
// un-normalized: the slab test and sphere intersection are
// scale-invariant in t.
func (c *Camera) RayFor(x, y int, jitterX, jitterY float32) ray.Ray {
	pixel := c.pixelOrigin.
		Add(c.du.Mul(float32(x) + jitterX)).
		Add(c.dv.Mul(float32(y) + jitterY))
	dir := pixel.Sub(c.Position)
	return ray.New(c.Position, dir)
}
