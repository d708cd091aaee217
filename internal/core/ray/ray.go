// Package ray provides the parametric ray type shared by every
// intersection query in the tracer.
package ray

import "github.com/go-gl/mathgl/mgl32"

// Ray is a parametric ray Origin + t*Dir. Dir is never renormalized by
// callers that only need parametric t (the slab test and sphere
// intersection are scale-invariant in t), but UnitDir() is provided
// for the places that need a unit direction (the sky lookup).
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// New builds a ray. Dir must be nonzero; this is a caller precondition,
// not something the core guards against (spec.md §7).
func New(origin, dir mgl32.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// At returns the point origin + t*direction.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// UnitDir returns the normalized ray direction.
func (r Ray) UnitDir() mgl32.Vec3 {
	return r.Dir.Normalize()
}
