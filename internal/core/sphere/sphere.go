// Package sphere implements the tracer's one analytic primitive:
// spheres, with closed-form ray intersection (spec.md §4.2).
package sphere

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/aabb"
	"github.com/dkang2024/pathtracer/internal/core/hit"
	"github.com/dkang2024/pathtracer/internal/core/ray"
)

// Sphere is immutable once built (spec.md §3): created at scene build,
// never mutated thereafter.
type Sphere struct {
	Center     mgl32.Vec3
	Radius     float32
	MaterialID int
}

// New builds a sphere. Radius must be > 0 (caller precondition).
func New(center mgl32.Vec3, radius float32, materialID int) Sphere {
	return Sphere{Center: center, Radius: radius, MaterialID: materialID}
}

// Bounds returns the sphere's axis-aligned bounding box.
func (s Sphere) Bounds() aabb.AABB {
	r := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	return aabb.FromPoints(s.Center.Sub(r), s.Center.Add(r))
}

// Hit tests r against the sphere, tightening rec.TInterval.Max and
// filling in the hit fields on success. It returns whether a closer hit
// was found within the incoming window.
func (s Sphere) Hit(r ray.Ray, rec *hit.Record) bool {
	oc := s.Center.Sub(r.Origin)
	a := r.Dir.Dot(r.Dir)
	h := r.Dir.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return false
	}
	sqrtd := float32(math.Sqrt(float64(discriminant)))

	root := (h - sqrtd) / a
	if !rec.TInterval.Surrounds(root) {
		root = (h + sqrtd) / a
		if !rec.TInterval.Surrounds(root) {
			return false
		}
	}

	rec.HitAnything = true
	rec.TInterval.Max = root
	rec.Point = r.At(root)
	rec.IncomingDir = r.Dir
	outwardNormal := rec.Point.Sub(s.Center).Mul(1 / s.Radius)
	rec.SetFaceNormal(r, outwardNormal)
	rec.MaterialID = s.MaterialID
	return true
}
