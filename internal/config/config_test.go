package config

import "testing"

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	c := Default()
	if c.TMin != 0.001 {
		t.Error("TMin =", c.TMin, "want 0.001")
	}
	if c.CameraSpeed != 0.1 {
		t.Error("CameraSpeed =", c.CameraSpeed, "want 0.1")
	}
	if c.UpHint.Y() != 1 {
		t.Error("UpHint =", c.UpHint, "want (0,1,0)")
	}
}

func TestNewAppliesOptionsOverDefault(t *testing.T) {
	c := New(WithImageWidth(800), WithFOV(45))
	if c.ImageWidth != 800 {
		t.Error("ImageWidth =", c.ImageWidth, "want 800")
	}
	if c.FOVVerticalDeg != 45 {
		t.Error("FOVVerticalDeg =", c.FOVVerticalDeg, "want 45")
	}
	// Untouched fields keep their defaults.
	if c.MaxDepth != Default().MaxDepth {
		t.Error("MaxDepth should be unchanged by unrelated options")
	}
}

func TestImageHeightRoundsUpAndFloorsAtOne(t *testing.T) {
	c := New(WithImageWidth(3), WithAspectRatio(16.0/9.0))
	if h := c.ImageHeight(); h < 1 {
		t.Error("ImageHeight =", h, "want >= 1")
	}

	wide := New(WithImageWidth(1920), WithAspectRatio(16.0/9.0))
	if h := wide.ImageHeight(); h != 1080 {
		t.Error("ImageHeight(1920, 16:9) =", h, "want 1080")
	}
}
