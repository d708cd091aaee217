package lbvh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/hit"
	"github.com/dkang2024/pathtracer/internal/core/interval"
	"github.com/dkang2024/pathtracer/internal/core/ray"
	"github.com/dkang2024/pathtracer/internal/core/sphere"
	"github.com/dkang2024/pathtracer/pkg/mathutil"
)

// randRange32 scales NextFloat32's [0,1) output to [lo, hi).
func randRange32(rng *mathutil.SeededRNG, lo, hi float32) float32 {
	return lo + rng.NextFloat32()*(hi-lo)
}

func randomSpheres(rng *mathutil.SeededRNG, n int) []sphere.Sphere {
	out := make([]sphere.Sphere, n)
	for i := range out {
		center := mgl32.Vec3{
			randRange32(rng, -20, 20),
			randRange32(rng, -20, 20),
			randRange32(rng, -20, 20),
		}
		radius := randRange32(rng, 0.2, 2)
		out[i] = sphere.New(center, radius, i)
	}
	return out
}

// bruteForceHit mirrors ClosestHit by testing every primitive linearly.
func bruteForceHit(prims []sphere.Sphere, r ray.Ray, tWindow interval.Interval) hit.Record {
	rec := hit.New(tWindow)
	for _, s := range prims {
		s.Hit(r, &rec)
	}
	return rec
}

func TestClosestHitMatchesBruteForce(t *testing.T) {
	rng := mathutil.NewSeededRNG(99)
	prims := randomSpheres(rng, 100)
	tree := Build(prims)

	const numRays = 10000
	for i := 0; i < numRays; i++ {
		origin := mgl32.Vec3{
			randRange32(rng, -30, 30),
			randRange32(rng, -30, 30),
			randRange32(rng, -30, 30),
		}
		dir := mgl32.Vec3{
			randRange32(rng, -1, 1),
			randRange32(rng, -1, 1),
			randRange32(rng, -1, 1),
		}
		if dir.Dot(dir) < 1e-10 {
			continue
		}
		r := ray.New(origin, dir)
		window := interval.New(0.001, 1e10)

		bvhRec := hit.New(window)
		bvhHit := tree.ClosestHit(r, &bvhRec)
		bruteRec := bruteForceHit(tree.Primitives, r, window)

		if bvhHit != bruteRec.HitAnything {
			t.Fatalf("ray %d: BVH hit=%v, brute force hit=%v", i, bvhHit, bruteRec.HitAnything)
		}
		if bvhHit {
			if diff := abs(bvhRec.TInterval.Max - bruteRec.TInterval.Max); diff > 1e-3 {
				t.Fatalf("ray %d: BVH t=%v, brute force t=%v", i, bvhRec.TInterval.Max, bruteRec.TInterval.Max)
			}
		}
	}
}

func TestRootBoundsEncloseEveryPrimitive(t *testing.T) {
	rng := mathutil.NewSeededRNG(7)
	prims := randomSpheres(rng, 50)
	tree := Build(prims)

	rootBounds := tree.boundsOf(tree.Root)
	for _, s := range tree.Primitives {
		b := s.Bounds()
		if !encloses(rootBounds, b) {
			t.Fatal("root bounds do not enclose primitive bounds", b)
		}
	}
}

func encloses(outer, inner interface {
	Axis(int) interval.Interval
}) bool {
	for axis := 0; axis < 3; axis++ {
		o := outer.Axis(axis)
		in := inner.Axis(axis)
		if in.Min < o.Min-1e-4 || in.Max > o.Max+1e-4 {
			return false
		}
	}
	return true
}

func TestBuildIsDeterministicAcrossRuns(t *testing.T) {
	rng := mathutil.NewSeededRNG(5)
	prims := randomSpheres(rng, 30)

	a := Build(prims)
	b := Build(prims)
	if len(a.Morton) != len(b.Morton) {
		t.Fatal("rebuild changed primitive count")
	}
	for i := range a.Morton {
		if a.Morton[i] != b.Morton[i] {
			t.Fatal("rebuild over the same input produced a different Morton order at", i)
		}
		if a.Primitives[i].Center != b.Primitives[i].Center {
			t.Fatal("rebuild over the same input reordered primitives differently at", i)
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
