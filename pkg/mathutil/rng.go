// Package mathutil provides mathematical utilities including seeded RNG
package mathutil

import "math"

// SeededRNG is a Linear Congruential Generator for deterministic random numbers
type SeededRNG struct {
	state uint64
	m     uint64
	a     uint64
	c     uint64
}

// NewSeededRNG creates a new seeded random number generator
func NewSeededRNG(seed int64) *SeededRNG {
	return &SeededRNG{
		state: uint64(seed),
		m:     0x80000000, // 2^31
		a:     1103515245,
		c:     12345,
	}
}

// NewPixelRNG returns a generator seeded from a pixel coordinate and a
// frame counter, so each work item in the render kernel gets its own
// thread-local stream without contention or a shared lock (spec.md §5).
func NewPixelRNG(x, y, frame int) *SeededRNG {
	seed := int64(HashCoords(x, y, frame))
	return NewSeededRNG(seed)
}

// NextFloat32 returns a random float32 in [0, 1).
func (r *SeededRNG) NextFloat32() float32 {
	f := float32(r.Next())
	if f >= 1 {
		// float32 rounding maps states just below 2^31 to exactly 1.
		f = math.Nextafter32(1, 0)
	}
	return f
}

// Next returns a random float64 in [0, 1)
func (r *SeededRNG) Next() float64 {
	r.state = (r.a*r.state + r.c) % r.m
	return float64(r.state) / float64(r.m)
}

