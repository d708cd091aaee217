// Package aabb provides axis-aligned bounding boxes and the slab-method
// ray test used both by the LBVH traversal and by per-primitive bounds
// derivation (spec.md §4.1).
package aabb

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/interval"
	"github.com/dkang2024/pathtracer/internal/core/ray"
)

// AABB is three per-axis intervals.
type AABB struct {
	X, Y, Z interval.Interval
}

// FromPoints builds the AABB spanning two corner points (in any order).
func FromPoints(a, b mgl32.Vec3) AABB {
	return AABB{
		X: orderedInterval(a.X(), b.X()),
		Y: orderedInterval(a.Y(), b.Y()),
		Z: orderedInterval(a.Z(), b.Z()),
	}
}

func orderedInterval(a, b float32) interval.Interval {
	if a <= b {
		return interval.New(a, b)
	}
	return interval.New(b, a)
}

// Empty returns the AABB that contains no points.
func Empty() AABB {
	return AABB{X: interval.Empty(), Y: interval.Empty(), Z: interval.Empty()}
}

// Axis returns the interval for axis i (0=X, 1=Y, 2=Z).
func (b AABB) Axis(i int) interval.Interval {
	switch i {
	case 0:
		return b.X
	case 1:
		return b.Y
	default:
		return b.Z
	}
}

// Centroid returns the midpoint of the box.
func (b AABB) Centroid() mgl32.Vec3 {
	return mgl32.Vec3{
		(b.X.Min + b.X.Max) / 2,
		(b.Y.Min + b.Y.Max) / 2,
		(b.Z.Min + b.Z.Max) / 2,
	}
}

// SurfaceArea returns 2(xy+xz+yz) over the box's axis lengths.
func (b AABB) SurfaceArea() float32 {
	dx, dy, dz := b.X.Size(), b.Y.Size(), b.Z.Size()
	return 2 * (dx*dy + dx*dz + dy*dz)
}

// Union returns the smallest AABB enclosing both a and b.
func Union(a, b AABB) AABB {
	return AABB{
		X: interval.Union(a.X, b.X),
		Y: interval.Union(a.Y, b.Y),
		Z: interval.Union(a.Z, b.Z),
	}
}

// Hit runs the slab method against r, narrowing tWindow. It returns
// whether the (possibly narrowed) window is still non-empty, i.e.
// whether the ray intersects the box within the original window. The
// window is consumed by value so callers can reuse the original.
func (b AABB) Hit(r ray.Ray, tWindow interval.Interval) (bool, interval.Interval) {
	for axis := 0; axis < 3; axis++ {
		iv := b.Axis(axis)
		origin := component(r.Origin, axis)
		dir := component(r.Dir, axis)

		// Division by zero is tolerated: Go float32 division by 0
		// yields +/-Inf per IEEE 754, which orders t0/t1 correctly
		// without a branch (spec.md §4.1).
		invD := 1 / dir

		t0 := (iv.Min - origin) * invD
		t1 := (iv.Max - origin) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > tWindow.Min {
			tWindow.Min = t0
		}
		if t1 < tWindow.Max {
			tWindow.Max = t1
		}
		if tWindow.Max <= tWindow.Min {
			return false, tWindow
		}
	}
	return true, tWindow
}

func component(v mgl32.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X()
	case 1:
		return v.Y()
	default:
		return v.Z()
	}
}

