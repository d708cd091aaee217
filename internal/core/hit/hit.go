// Package hit defines the aggregate intersection result threaded through
// LBVH traversal, sphere intersection, and material scatter (spec.md §3).
package hit

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/interval"
	"github.com/dkang2024/pathtracer/internal/core/ray"
)

// Record aggregates one ray's closest intersection and, once a material
// has processed it, the outcome of that material's scatter law.
//
// Invariant: when HitAnything is true, Point == ray.At(TInterval.Max)
// and Dot(Normal, IncomingDir) <= 0.
type Record struct {
	HitAnything bool
	Point       mgl32.Vec3
	IncomingDir mgl32.Vec3
	Normal      mgl32.Vec3
	FrontFace   bool
	TInterval   interval.Interval // Max holds the hit distance once set

	MaterialID int

	DidScatter   bool
	ScatteredRay ray.Ray
	Attenuation  mgl32.Vec3
}

// New returns a fresh record with the given ray-t search window and no
// hit recorded yet.
func New(tWindow interval.Interval) Record {
	return Record{TInterval: tWindow}
}

// SetFaceNormal orients Normal against the incoming ray direction and
// records whether the hit was on the outward-facing side.
func (rec *Record) SetFaceNormal(r ray.Ray, outwardNormal mgl32.Vec3) {
	rec.FrontFace = r.Dir.Dot(outwardNormal) < 0
	if rec.FrontFace {
		rec.Normal = outwardNormal
	} else {
		rec.Normal = outwardNormal.Mul(-1)
	}
}
