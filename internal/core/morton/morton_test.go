package morton

import "testing"

func TestEncodeDecodeRoundTrips(t *testing.T) {
	cases := []struct{ px, py, pz float32 }{
		{0, 0, 0},
		{1, 1, 1},
		{0.5, 0.25, 0.75},
		{0.999, 0.001, 0.5},
	}
	for _, c := range cases {
		code := Encode(c.px, c.py, c.pz)
		x, y, z := Decode(code)
		wantX, wantY, wantZ := quantize(c.px), quantize(c.py), quantize(c.pz)
		if x != wantX || y != wantY || z != wantZ {
			t.Error("Decode(Encode(", c, ")) =", x, y, z, "want", wantX, wantY, wantZ)
		}
	}
}

func TestEncodeOrdersAlongEachAxis(t *testing.T) {
	lo := Encode(0.1, 0, 0)
	hi := Encode(0.9, 0, 0)
	if lo >= hi {
		t.Error("Encode should increase with x; got lo =", lo, "hi =", hi)
	}
	lo = Encode(0, 0.1, 0)
	hi = Encode(0, 0.9, 0)
	if lo >= hi {
		t.Error("Encode should increase with y; got lo =", lo, "hi =", hi)
	}
	lo = Encode(0, 0, 0.1)
	hi = Encode(0, 0, 0.9)
	if lo >= hi {
		t.Error("Encode should increase with z; got lo =", lo, "hi =", hi)
	}
}

func TestNormalizeCentroidZeroExtentMapsToZero(t *testing.T) {
	x, y, z := NormalizeCentroid([3]float32{5, 5, 5}, [3]float32{5, 5, 5}, [3]float32{5, 5, 5})
	if x != 0 || y != 0 || z != 0 {
		t.Error("NormalizeCentroid on degenerate bounds =", x, y, z, "want 0,0,0")
	}
}
