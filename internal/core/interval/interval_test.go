package interval

import "testing"

func TestEmptyIsEmpty(t *testing.T) {
	if !Empty().IsEmpty() {
		t.Error("Empty() should be empty")
	}
}

func TestUniverseContainsEverything(t *testing.T) {
	u := Universe()
	for _, x := range []float32{-1e30, 0, 1e30} {
		if !u.Contains(x) {
			t.Error("Universe() does not contain", x)
		}
	}
}

func TestSurroundsExcludesEndpoints(t *testing.T) {
	iv := New(0, 1)
	if iv.Surrounds(0) || iv.Surrounds(1) {
		t.Error("Surrounds should exclude both endpoints")
	}
	if !iv.Surrounds(0.5) {
		t.Error("Surrounds(0.5) should hold for [0,1]")
	}
}

func TestClampRestrictsToBounds(t *testing.T) {
	iv := New(2, 5)
	cases := map[float32]float32{1: 2, 3: 3, 8: 5}
	for in, want := range cases {
		if got := iv.Clamp(in); got != want {
			t.Error("Clamp", in, "=", got, "want", want)
		}
	}
}

func TestUnionEnclosesBoth(t *testing.T) {
	a := New(0, 2)
	b := New(-1, 1)
	u := Union(a, b)
	if u.Min != -1 || u.Max != 2 {
		t.Error("Union =", u, "want [-1,2]")
	}
}
