// Package lbvh builds and traverses a Linear BVH over Morton-sorted
// spheres (spec.md §4.5, §4.6). It supersedes the teacher's
// render.BVH/BVHNode, whose buildRecursive used a per-axis bubble-sort
// median split; this is a real Karras radix-tree construction over a
// Morton-ordered primitive list (see DESIGN.md).
package lbvh

import (
	"math/bits"
	"sort"

	"github.com/dkang2024/pathtracer/internal/core/aabb"
	"github.com/dkang2024/pathtracer/internal/core/hit"
	"github.com/dkang2024/pathtracer/internal/core/morton"
	"github.com/dkang2024/pathtracer/internal/core/ray"
	"github.com/dkang2024/pathtracer/internal/core/sphere"
)

// Node is an internal radix-tree node. Left/Right are ChildRefs: a
// value < N addresses a primitive leaf, a value >= N addresses internal
// node (value-N). Root is always node 0 once built with N>1 primitives.
type Node struct {
	Bounds aabb.AABB
	Left   int32
	Right  int32
}

// Tree is the flat, index-addressed acceleration structure described in
// spec.md §3: Primitives reordered by Morton code, Morton codes sorted
// ascending, Internal holding exactly N-1 nodes for N>1 primitives.
type Tree struct {
	Primitives []sphere.Sphere
	Morton     []uint32
	Internal   []Node
	Root       int32 // ChildRef of the root (leaf ref when N==1)
	n          int
}

// Build constructs an LBVH over prims. It does not mutate prims; the
// returned Tree owns its own reordered copy.
func Build(prims []sphere.Sphere) *Tree {
	n := len(prims)
	t := &Tree{n: n}
	if n == 0 {
		return t
	}

	centroids := make([][3]float32, n)
	cmin := [3]float32{posInf, posInf, posInf}
	cmax := [3]float32{negInf, negInf, negInf}
	for i, s := range prims {
		c := s.Bounds().Centroid()
		centroids[i] = [3]float32{c.X(), c.Y(), c.Z()}
		for axis := 0; axis < 3; axis++ {
			if centroids[i][axis] < cmin[axis] {
				cmin[axis] = centroids[i][axis]
			}
			if centroids[i][axis] > cmax[axis] {
				cmax[axis] = centroids[i][axis]
			}
		}
	}

	codes := make([]uint32, n)
	for i := range prims {
		nx, ny, nz := morton.NormalizeCentroid(centroids[i], cmin, cmax)
		codes[i] = morton.Encode(nx, ny, nz)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Stable sort on (morton, original index) so a non-stable platform
	// sort would still be deterministic (spec.md §4.5, §9).
	sort.Slice(order, func(a, b int) bool {
		oa, ob := order[a], order[b]
		if codes[oa] != codes[ob] {
			return codes[oa] < codes[ob]
		}
		return oa < ob
	})

	t.Primitives = make([]sphere.Sphere, n)
	t.Morton = make([]uint32, n)
	for newIdx, oldIdx := range order {
		t.Primitives[newIdx] = prims[oldIdx]
		t.Morton[newIdx] = codes[oldIdx]
	}

	if n == 1 {
		t.Root = 0
		return t
	}

	t.Internal = make([]Node, n-1)
	for i := 0; i < n-1; i++ {
		first, last := t.findRange(i)
		split := t.findSplit(first, last)

		lo, hi := first, last
		if lo > hi {
			lo, hi = hi, lo
		}

		var left, right int32
		if lo == split {
			left = t.leafRef(split)
		} else {
			left = t.internalRef(split)
		}
		if hi == split+1 {
			right = t.leafRef(split + 1)
		} else {
			right = t.internalRef(split + 1)
		}
		t.Internal[i] = Node{Left: left, Right: right}
	}

	t.Root = t.internalRef(0)
	t.computeBounds(t.Root)
	return t
}

const (
	posInf = float32(1e38)
	negInf = float32(-1e38)
)

func (t *Tree) leafRef(i int) int32     { return int32(i) }
func (t *Tree) internalRef(i int) int32 { return int32(t.n) + int32(i) }
func (t *Tree) isLeaf(ref int32) bool   { return int(ref) < t.n }

// delta returns the length of the common binary prefix of morton[i] and
// morton[j], extended by the item index to break ties between equal
// codes (the standard way a Karras tree tolerates duplicate Morton
// codes away from the split point spec.md §4.5 calls out explicitly).
// Returns -1 if j is out of [0, n).
func (t *Tree) delta(i, j int) int {
	if j < 0 || j >= t.n {
		return -1
	}
	if t.Morton[i] != t.Morton[j] {
		return bits.LeadingZeros32(t.Morton[i] ^ t.Morton[j])
	}
	return 32 + bits.LeadingZeros32(uint32(i)^uint32(j))
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	return 1
}

// findRange determines node i's range [first,last] by direction-walking,
// per Karras' algorithm (spec.md §4.5).
func (t *Tree) findRange(i int) (first, last int) {
	d := sign(t.delta(i, i+1) - t.delta(i, i-1))
	deltaMin := t.delta(i, i-d)

	lmax := 2
	for t.delta(i, i+lmax*d) > deltaMin {
		lmax *= 2
	}

	l := 0
	for step := lmax / 2; step >= 1; step /= 2 {
		if t.delta(i, i+(l+step)*d) > deltaMin {
			l += step
		}
	}
	j := i + l*d
	return i, j
}

// findSplit finds the split point in [first,last) as the largest index
// whose common Morton prefix with morton[first] exceeds the range's
// prefix, via binary search. Duplicate Morton codes spanning the whole
// range are bisected by index midpoint (spec.md §4.5, §7).
func (t *Tree) findSplit(first, last int) int {
	lo, hi := first, last
	if lo > hi {
		lo, hi = hi, lo
	}
	if t.Morton[lo] == t.Morton[hi] {
		return (lo + hi) >> 1
	}

	commonPrefix := t.delta(lo, hi)
	split := lo
	step := hi - lo
	for {
		step = (step + 1) >> 1
		newSplit := split + step
		if newSplit < hi {
			splitPrefix := t.delta(lo, newSplit)
			if splitPrefix > commonPrefix {
				split = newSplit
			}
		}
		if step <= 1 {
			break
		}
	}
	return split
}

func (t *Tree) boundsOf(ref int32) aabb.AABB {
	if t.isLeaf(ref) {
		return t.Primitives[ref].Bounds()
	}
	return t.Internal[int(ref)-t.n].Bounds
}

// computeBounds propagates AABBs bottom-up via a sequential postorder
// walk (spec.md §4.5 allows this given the tree is small).
func (t *Tree) computeBounds(ref int32) aabb.AABB {
	if t.isLeaf(ref) {
		return t.Primitives[ref].Bounds()
	}
	node := &t.Internal[int(ref)-t.n]
	leftB := t.computeBounds(node.Left)
	rightB := t.computeBounds(node.Right)
	node.Bounds = aabb.Union(leftB, rightB)
	return node.Bounds
}

// maxStackDepth bounds the explicit traversal stack (spec.md §4.6, §9):
// 64 entries suffice for N <= 2^20 balanced Morton trees.
const maxStackDepth = 64

// ClosestHit runs an iterative BVH query for r, narrowing rec.TInterval
// as closer primitives are found. It returns whether any primitive was
// hit within the original window.
func (t *Tree) ClosestHit(r ray.Ray, rec *hit.Record) bool {
	if t.n == 0 {
		return false
	}
	if t.n == 1 {
		return t.Primitives[0].Hit(r, rec)
	}

	var stack [maxStackDepth]int32
	sp := 0
	stack[sp] = t.Root
	sp++

	hitAny := false
	for sp > 0 {
		sp--
		ref := stack[sp]

		if t.isLeaf(ref) {
			if t.Primitives[ref].Hit(r, rec) {
				hitAny = true
			}
			continue
		}

		node := &t.Internal[int(ref)-t.n]
		if hitBox, _ := node.Bounds.Hit(r, rec.TInterval); !hitBox {
			continue
		}

		leftBox := t.boundsOf(node.Left)
		rightBox := t.boundsOf(node.Right)
		hitL, wL := leftBox.Hit(r, rec.TInterval)
		hitR, wR := rightBox.Hit(r, rec.TInterval)

		switch {
		case hitL && hitR:
			// Push the far child first so the near child (smaller
			// entry t) is popped and processed first, tightening the
			// window before the far subtree is tested (spec.md §4.6).
			if wL.Min <= wR.Min {
				stack[sp] = node.Right
				sp++
				stack[sp] = node.Left
				sp++
			} else {
				stack[sp] = node.Left
				sp++
				stack[sp] = node.Right
				sp++
			}
		case hitL:
			stack[sp] = node.Left
			sp++
		case hitR:
			stack[sp] = node.Right
			sp++
		}
	}
	return hitAny
}

// N returns the number of primitives in the tree.
func (t *Tree) N() int { return t.n }
