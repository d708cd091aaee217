// Package noise provides procedural noise algorithms for terrain generation
package noise

import (
	"math"
)

// SimplexNoise implements 2D Simplex Noise
// Based on Ken Perlin's and Stefan Gustavson's algorithm
type SimplexNoise struct {
	seed      int64
	perm      [512]uint8
	permMod12 [512]uint8

	// Constants for 2D
	f2 float64
	g2 float64
}

// Gradients for 2D (the third component is unused, kept so the table
// matches the teacher's original 12-gradient set)
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// NewSimplexNoise creates a new Simplex Noise generator with the given seed
func NewSimplexNoise(seed int64) *SimplexNoise {
	s := &SimplexNoise{
		seed: seed,
		f2:   0.5 * (math.Sqrt(3.0) - 1.0),
		g2:   (3.0 - math.Sqrt(3.0)) / 6.0,
	}
	s.initPermutation()
	return s
}

func (s *SimplexNoise) initPermutation() {
	p := make([]uint8, 256)

	// Initialize with identity
	for i := 0; i < 256; i++ {
		p[i] = uint8(i)
	}

	// Fisher-Yates shuffle with seed
	seed := s.seed
	for i := 255; i > 0; i-- {
		seed = (seed * 16807) % 2147483647
		j := int(seed) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}

	// Duplicate to avoid overflow
	for i := 0; i < 512; i++ {
		s.perm[i] = p[i&255]
		s.permMod12[i] = s.perm[i] % 12
	}
}

// Noise2D generates 2D Simplex Noise at the given coordinates
// Returns a value in the range [-1, 1]
func (s *SimplexNoise) Noise2D(xin, yin float64) float64 {
	var n0, n1, n2 float64

	// Skew input space
	t := (xin + yin) * s.f2
	i := int(math.Floor(xin + t))
	j := int(math.Floor(yin + t))

	// Unskew back
	t2 := float64(i+j) * s.g2
	x0 := xin - (float64(i) - t2)
	y0 := yin - (float64(j) - t2)

	// Determine which simplex
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + s.g2
	y1 := y0 - float64(j1) + s.g2
	x2 := x0 - 1.0 + 2.0*s.g2
	y2 := y0 - 1.0 + 2.0*s.g2

	// Hash coordinates
	ii := i & 255
	jj := j & 255
	gi0 := int(s.permMod12[ii+int(s.perm[jj])])
	gi1 := int(s.permMod12[ii+i1+int(s.perm[jj+j1])])
	gi2 := int(s.permMod12[ii+1+int(s.perm[jj+1])])

	// Calculate contribution from each corner
	t0 := 0.5 - x0*x0 - y0*y0
	if t0 < 0 {
		n0 = 0.0
	} else {
		t0 *= t0
		n0 = t0 * t0 * (grad3[gi0][0]*x0 + grad3[gi0][1]*y0)
	}

	t1 := 0.5 - x1*x1 - y1*y1
	if t1 < 0 {
		n1 = 0.0
	} else {
		t1 *= t1
		n1 = t1 * t1 * (grad3[gi1][0]*x1 + grad3[gi1][1]*y1)
	}

	t3 := 0.5 - x2*x2 - y2*y2
	if t3 < 0 {
		n2 = 0.0
	} else {
		t3 *= t3
		n2 = t3 * t3 * (grad3[gi2][0]*x2 + grad3[gi2][1]*y2)
	}

	// Return value in range [-1, 1]
	return 70.0 * (n0 + n1 + n2)
}
