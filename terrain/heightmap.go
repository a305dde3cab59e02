// Package terrain provides a procedural heightmap for creature foot
// placement. The simulation only needs point height queries.
package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Heightmap samples fractal simplex noise to produce terrain height.
// Construction is deterministic in the seed; sampling is read-only and
// safe for concurrent use.
type Heightmap struct {
	noise      opensimplex.Noise
	scale      float64
	octaves    int
	lacunarity float64
	gain       float64
	amplitude  float64
}

// Params configures heightmap generation.
type Params struct {
	Seed       int64
	Scale      float64 // base noise frequency per metre
	Octaves    int
	Lacunarity float64 // frequency multiplier per octave
	Gain       float64 // amplitude multiplier per octave
	Amplitude  float64 // peak height in metres
}

// DefaultParams returns gently rolling terrain.
func DefaultParams() Params {
	return Params{
		Seed:       1337,
		Scale:      0.002,
		Octaves:    5,
		Lacunarity: 2.0,
		Gain:       0.5,
		Amplitude:  24.0,
	}
}

// New creates a heightmap. Zero-valued params fall back to defaults.
func New(p Params) *Heightmap {
	def := DefaultParams()
	if p.Scale <= 0 {
		p.Scale = def.Scale
	}
	if p.Octaves <= 0 {
		p.Octaves = def.Octaves
	}
	if p.Lacunarity <= 0 {
		p.Lacunarity = def.Lacunarity
	}
	if p.Gain <= 0 {
		p.Gain = def.Gain
	}
	if p.Amplitude <= 0 {
		p.Amplitude = def.Amplitude
	}
	return &Heightmap{
		noise:      opensimplex.NewNormalized(p.Seed),
		scale:      p.Scale,
		octaves:    p.Octaves,
		lacunarity: p.Lacunarity,
		gain:       p.Gain,
		amplitude:  p.Amplitude,
	}
}

// GetHeight returns the terrain height at a world XZ position via FBM over
// normalized simplex noise. The result lies in [0, amplitude].
func (h *Heightmap) GetHeight(x, z float32) float32 {
	sum := 0.0
	amp := 0.5
	freq := h.scale
	norm := 0.0

	for o := 0; o < h.octaves; o++ {
		sum += amp * h.noise.Eval2(float64(x)*freq, float64(z)*freq)
		norm += amp
		freq *= h.lacunarity
		amp *= h.gain
	}
	if norm > 0 {
		sum /= norm
	}
	return float32(sum * h.amplitude)
}
