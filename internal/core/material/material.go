// Package material implements the scatter laws of spec.md §4.3 as a
// single tagged-variant struct rather than per-class virtual dispatch
// (spec.md §9 design note): one discriminator plus a shared payload,
// referenced by material index from Scene's material table so the
// primitive array stays cache-dense and the hot trace loop never makes
// an interface call.
package material

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dkang2024/pathtracer/internal/core/hit"
	"github.com/dkang2024/pathtracer/internal/core/ray"
	"github.com/dkang2024/pathtracer/internal/core/vecutil"
	"github.com/dkang2024/pathtracer/pkg/mathutil"
)

// Kind discriminates the scatter law a Material applies.
type Kind uint8

const (
	// Lambertian scatters with a cosine-weighted diffuse lobe.
	Lambertian Kind = iota
	// Reflective mirrors the incoming ray, fuzzed by Fuzz.
	Reflective
	// Dielectric refracts or (via Schlick/TIR) reflects.
	Dielectric
)

// Material is the tagged variant: Albedo/Fuzz apply to Lambertian and
// Reflective, RefractionIndex applies to Dielectric.
type Material struct {
	Kind            Kind
	Albedo          mgl32.Vec3
	Fuzz            float32 // clamped to [0,1] at construction
	RefractionIndex float32
}

// NewLambertian builds a diffuse material with the given albedo.
func NewLambertian(albedo mgl32.Vec3) Material {
	return Material{Kind: Lambertian, Albedo: albedo}
}

// NewReflective builds a glossy-specular material; fuzz is clamped to
// [0,1] per spec.md §3.
func NewReflective(albedo mgl32.Vec3, fuzz float32) Material {
	if fuzz < 0 {
		fuzz = 0
	}
	if fuzz > 1 {
		fuzz = 1
	}
	return Material{Kind: Reflective, Albedo: albedo, Fuzz: fuzz}
}

// NewDielectric builds a dielectric (glass-like) material with the given
// refraction index.
func NewDielectric(refractionIndex float32) Material {
	return Material{Kind: Dielectric, RefractionIndex: refractionIndex}
}

// Scatter applies this material's law to rec, which must already carry
// a valid hit (Point/Normal/FrontFace/IncomingDir set). It sets
// rec.DidScatter, rec.ScatteredRay, and rec.Attenuation and returns
// rec.DidScatter for convenience.
func (m Material) Scatter(rec *hit.Record, rng *mathutil.SeededRNG) bool {
	switch m.Kind {
	case Lambertian:
		return m.scatterLambertian(rec, rng)
	case Reflective:
		return m.scatterReflective(rec, rng)
	case Dielectric:
		return m.scatterDielectric(rec, rng)
	default:
		rec.DidScatter = false
		return false
	}
}

func (m Material) scatterLambertian(rec *hit.Record, rng *mathutil.SeededRNG) bool {
	dir := rec.Normal.Add(vecutil.RandomUnitVector(rng))
	if vecutil.NearZero(dir) {
		dir = rec.Normal
	}
	rec.ScatteredRay = ray.New(rec.Point, dir)
	rec.Attenuation = m.Albedo
	rec.DidScatter = true
	return true
}

func (m Material) scatterReflective(rec *hit.Record, rng *mathutil.SeededRNG) bool {
	reflected := vecutil.Reflect(rec.IncomingDir, rec.Normal).Normalize()
	dir := reflected.Add(vecutil.RandomUnitVector(rng).Mul(m.Fuzz))
	rec.ScatteredRay = ray.New(rec.Point, dir)
	rec.Attenuation = m.Albedo
	rec.DidScatter = dir.Dot(rec.Normal) > 0
	return rec.DidScatter
}

func (m Material) scatterDielectric(rec *hit.Record, rng *mathutil.SeededRNG) bool {
	rec.Attenuation = mgl32.Vec3{1, 1, 1}

	eta := m.RefractionIndex
	if rec.FrontFace {
		eta = 1 / m.RefractionIndex
	}

	unitDir := rec.IncomingDir.Normalize()
	cosTheta := min32(unitDir.Mul(-1).Dot(rec.Normal), 1)
	sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))

	cannotRefract := eta*sinTheta > 1
	var dir mgl32.Vec3
	if cannotRefract || vecutil.Reflectance(cosTheta, eta) > rng.NextFloat32() {
		dir = vecutil.Reflect(unitDir, rec.Normal)
	} else {
		dir = vecutil.Refract(unitDir, rec.Normal, eta)
	}

	rec.ScatteredRay = ray.New(rec.Point, dir)
	rec.DidScatter = true
	return true
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
