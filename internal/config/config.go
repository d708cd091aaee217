// Package config defines the tracer's construction-time settings,
// built with the functional-options pattern (spec.md §6's enumerated
// configuration). There is no file or environment-variable parsing:
// the core consults neither (spec.md §6), so every field is set in Go
// by the caller that embeds the tracer.
package config

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Config holds every value spec.md §6 enumerates as "Configuration".
type Config struct {
	ImageWidth  int
	AspectRatio float32

	FOVVerticalDeg float32

	TMin float32
	TMax float32

	SamplesPerPixel int
	MaxDepth        int

	CameraSpeed float32
	UpHint      mgl32.Vec3
}

// Option mutates a Config under construction.
type Option func(*Config)

// Default returns the configuration spec.md §6 specifies as defaults,
// at 16:9 and a moderate sample count.
func Default() Config {
	return Config{
		ImageWidth:      1280,
		AspectRatio:     16.0 / 9.0,
		FOVVerticalDeg:  60,
		TMin:            0.001,
		TMax:            1e10,
		SamplesPerPixel: 16,
		MaxDepth:        8,
		CameraSpeed:     0.1,
		UpHint:          mgl32.Vec3{0, 1, 0},
	}
}

// New builds a Config starting from Default and applying opts in order.
func New(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithImageWidth sets the rendered image width in pixels.
func WithImageWidth(width int) Option {
	return func(c *Config) { c.ImageWidth = width }
}

// WithAspectRatio sets the width:height ratio used to derive image
// height (spec.md §6: "image height = ceil(width/aspect), >= 1").
func WithAspectRatio(aspect float32) Option {
	return func(c *Config) { c.AspectRatio = aspect }
}

// WithFOV sets the vertical field of view in degrees.
func WithFOV(deg float32) Option {
	return func(c *Config) { c.FOVVerticalDeg = deg }
}

// WithTWindow sets the ray-t search window.
func WithTWindow(tMin, tMax float32) Option {
	return func(c *Config) { c.TMin, c.TMax = tMin, tMax }
}

// WithSampling sets the samples-per-pixel and max bounce depth.
func WithSampling(samplesPerPixel, maxDepth int) Option {
	return func(c *Config) { c.SamplesPerPixel, c.MaxDepth = samplesPerPixel, maxDepth }
}

// WithCameraSpeed sets the per-frame-per-key movement speed.
func WithCameraSpeed(speed float32) Option {
	return func(c *Config) { c.CameraSpeed = speed }
}

// WithUpHint sets the camera's up-hint vector.
func WithUpHint(up mgl32.Vec3) Option {
	return func(c *Config) { c.UpHint = up }
}

// ImageHeight derives the image height from width and aspect ratio,
// rounded up and floored at 1 (spec.md §6).
func (c Config) ImageHeight() int {
	h := int(math.Ceil(float64(c.ImageWidth) / float64(c.AspectRatio)))
	if h < 1 {
		h = 1
	}
	return h
}
