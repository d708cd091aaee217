// Package noise provides Fractal Brownian Motion for natural terrain
package noise

// FBMConfig contains configuration for FBM noise
type FBMConfig struct {
	Octaves     int     // Number of noise layers
	Lacunarity  float64 // Frequency multiplier per octave
	Persistence float64 // Amplitude multiplier per octave
	Scale       float64 // Base scale
	OffsetX     float64 // X offset
	OffsetZ     float64 // Z offset
}

// FBM implements Fractal Brownian Motion for natural-looking terrain
type FBM struct {
	Config FBMConfig
}

// NewFBM creates a new FBM generator with the given configuration
func NewFBM(config FBMConfig) *FBM {
	return &FBM{Config: config}
}

// Sample2D samples FBM noise in 2D
// Returns a value in the approximate range [-1, 1]
func (f *FBM) Sample2D(noise *SimplexNoise, x, z float64) float64 {
	value := 0.0
	amplitude := 1.0
	frequency := f.Config.Scale
	maxValue := 0.0

	for i := 0; i < f.Config.Octaves; i++ {
		value += amplitude * noise.Noise2D(
			(x+f.Config.OffsetX)*frequency,
			(z+f.Config.OffsetZ)*frequency,
		)
		maxValue += amplitude
		amplitude *= f.Config.Persistence
		frequency *= f.Config.Lacunarity
	}

	return value / maxValue
}
