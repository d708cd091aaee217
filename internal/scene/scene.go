// Package scene owns the primitive list, the material table, and the
// cached LBVH — split out from the camera, which owns only pose and
// viewport (spec.md §9 design note: "Split them"). Grounded on
// internal/world.World's role as the composition root that the camera
// used to be mixed into by inheritance in the teacher's source
// language; here Scene plays that role for primitives instead of
// chunks.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/hit"
	"github.com/dkang2024/pathtracer/internal/core/lbvh"
	"github.com/dkang2024/pathtracer/internal/core/material"
	"github.com/dkang2024/pathtracer/internal/core/ray"
	"github.com/dkang2024/pathtracer/internal/core/sphere"
)

// Handle identifies a sphere added to the scene, stable across Build
// calls and across AddSphere/RemoveSphere, so UI code (an out-of-core
// collaborator per spec.md §6) can reference "the sphere I just added"
// without re-deriving its index after a rebuild.
type Handle uint32

type entry struct {
	handle Handle
	sphere sphere.Sphere
}

// Scene owns primitives, materials, and the acceleration structure
// built over them. It is immutable during rendering (spec.md §5): all
// mutation happens through AddSphere/RemoveSphere/Build on the frame
// thread, between input processing and dispatch.
type Scene struct {
	entries   []entry
	nextHandle Handle
	materials []material.Material

	tree  *lbvh.Tree
	dirty bool
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{dirty: true}
}

// AddMaterial appends m to the material table and returns its index,
// to be passed as the MaterialID on AddSphere.
func (s *Scene) AddMaterial(m material.Material) int {
	s.materials = append(s.materials, m)
	return len(s.materials) - 1
}

// Material returns the material at index id.
func (s *Scene) Material(id int) material.Material {
	return s.materials[id]
}

// AddSphere adds a sphere to the scene and marks the acceleration
// structure stale. Returns a handle stable across rebuilds.
func (s *Scene) AddSphere(center mgl32.Vec3, radius float32, materialID int) Handle {
	h := s.nextHandle
	s.nextHandle++
	s.entries = append(s.entries, entry{handle: h, sphere: sphere.New(center, radius, materialID)})
	s.dirty = true
	return h
}

// RemoveSphere removes the sphere with the given handle, if present,
// and marks the acceleration structure stale (supplemental feature,
// SPEC_FULL.md §4: spec.md §5 already requires a rebuild whenever
// primitives are added or removed; this is the removal half of that).
func (s *Scene) RemoveSphere(h Handle) bool {
	for i, e := range s.entries {
		if e.handle == h {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.dirty = true
			return true
		}
	}
	return false
}

// Len returns the current primitive count.
func (s *Scene) Len() int {
	return len(s.entries)
}

// Build rebuilds the LBVH from the current primitive list if it is
// stale, and is a no-op otherwise (spec.md §5: "rebuilt only when
// primitives are added or removed; pose changes do not invalidate
// it"). It is always safe to call once per frame.
func (s *Scene) Build() {
	if !s.dirty && s.tree != nil {
		return
	}
	prims := make([]sphere.Sphere, len(s.entries))
	for i, e := range s.entries {
		prims[i] = e.sphere
	}
	s.tree = lbvh.Build(prims)
	s.dirty = false
}

// ClosestHit queries the acceleration structure for the closest hit
// along r within rec's t-window. A zero-primitive scene is a no-op
// (spec.md §7): traversal simply reports no hit for every ray.
func (s *Scene) ClosestHit(r ray.Ray, rec *hit.Record) bool {
	if s.tree == nil {
		return false
	}
	return s.tree.ClosestHit(r, rec)
}

// Tree exposes the built acceleration structure, primarily for tests
// that cross-check traversal against brute force (spec.md §8 scenario
// 4).
func (s *Scene) Tree() *lbvh.Tree {
	return s.tree
}
