// Package interval provides a closed scalar range used by the ray-t
// windows that gate intersection tests throughout the tracer.
package interval

// Interval is a scalar range [Min, Max]. An interval with Max <= Min is
// considered empty.
type Interval struct {
	Min, Max float32
}

// Empty returns the canonical empty interval.
func Empty() Interval {
	return Interval{Min: 0, Max: -1}
}

// Universe returns the interval [-1e38, 1e38], used as an effectively
// unbounded window; infinities and finite values beyond ±1e38 lie
// outside it.
func Universe() Interval {
	return Interval{Min: negInf, Max: posInf}
}

const (
	posInf = float32(1e38)
	negInf = float32(-1e38)
)

// New builds an interval directly from bounds.
func New(min, max float32) Interval {
	return Interval{Min: min, Max: max}
}

// Size returns Max-Min.
func (iv Interval) Size() float32 {
	return iv.Max - iv.Min
}

// IsEmpty reports whether the interval contains no points.
func (iv Interval) IsEmpty() bool {
	return iv.Max <= iv.Min
}

// Contains reports whether x lies in [Min, Max] inclusive of both ends.
func (iv Interval) Contains(x float32) bool {
	return iv.Min <= x && x <= iv.Max
}

// Surrounds reports whether x lies strictly inside (Min, Max). This is
// the test used by ray-t windows to discard grazing or coincident hits.
func (iv Interval) Surrounds(x float32) bool {
	return iv.Min < x && x < iv.Max
}

// Clamp restricts x to [Min, Max].
func (iv Interval) Clamp(x float32) float32 {
	if x < iv.Min {
		return iv.Min
	}
	if x > iv.Max {
		return iv.Max
	}
	return x
}

// Union returns the smallest interval enclosing both a and b.
func Union(a, b Interval) Interval {
	min := a.Min
	if b.Min < min {
		min = b.Min
	}
	max := a.Max
	if b.Max > max {
		max = b.Max
	}
	return Interval{Min: min, Max: max}
}

// Expand pads the interval symmetrically by delta/2 on each side.
func (iv Interval) Expand(delta float32) Interval {
	padding := delta / 2
	return Interval{Min: iv.Min - padding, Max: iv.Max + padding}
}
