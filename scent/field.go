// Package scent implements the 3D scent voxel field: emission with Moore
// spill, diffusion, semi-Lagrangian wind advection, and decay over a
// double-buffered grid.
package scent

import (
	"math"

	"github.com/paddocklabs/paddock/vecmath"
)

const (
	// DefaultGridSize is the default edge length of the cubic grid.
	DefaultGridSize = 32

	diffusionRate = 0.15 // blend rate toward the neighbor average, per second
	decayRate     = 0.02 // concentration loss per second
	spillFactor   = 0.3  // fraction of an emission deposited in each Moore neighbor
)

// Field is a double-buffered cubic voxel grid of scent concentrations.
// Cells are indexed x + y*G + z*G*G. World X and Z are centered about the
// origin; Y maps from zero upward. Concentrations never go negative.
type Field struct {
	size     int
	cellSize float32

	bufA, bufB []float32
	useA       bool
}

// NewField allocates a field of size^3 cells, each cellSize meters across.
// Non-positive arguments fall back to the defaults.
func NewField(size int, cellSize float32) *Field {
	if size <= 0 {
		size = DefaultGridSize
	}
	if cellSize <= 0 {
		cellSize = 1
	}
	n := size * size * size
	return &Field{
		size:     size,
		cellSize: cellSize,
		bufA:     make([]float32, n),
		bufB:     make([]float32, n),
		useA:     true,
	}
}

// Size returns the grid edge length.
func (f *Field) Size() int { return f.size }

// CellSize returns the world-space size of one cell.
func (f *Field) CellSize() float32 { return f.cellSize }

func (f *Field) current() []float32 {
	if f.useA {
		return f.bufA
	}
	return f.bufB
}

func (f *Field) back() []float32 {
	if f.useA {
		return f.bufB
	}
	return f.bufA
}

// worldToGrid maps a world position to grid coordinates. The returned
// coordinates may be out of bounds; callers check.
func (f *Field) worldToGrid(pos vecmath.Vec3) (int, int, int) {
	half := float32(f.size) / 2
	gx := int(pos.X/f.cellSize + half)
	gy := int(pos.Y / f.cellSize)
	gz := int(pos.Z/f.cellSize + half)
	return gx, gy, gz
}

func (f *Field) inBounds(x, y, z int) bool {
	return x >= 0 && x < f.size && y >= 0 && y < f.size && z >= 0 && z < f.size
}

func (f *Field) index(x, y, z int) int {
	return x + y*f.size + z*f.size*f.size
}

// EmitScent deposits amount at the cell containing worldPos and
// spillFactor*amount into each of its 26 Moore neighbors. Cells outside the
// grid are skipped.
func (f *Field) EmitScent(worldPos vecmath.Vec3, amount float32) {
	cx, cy, cz := f.worldToGrid(worldPos)
	cur := f.current()
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				x, y, z := cx+dx, cy+dy, cz+dz
				if !f.inBounds(x, y, z) {
					continue
				}
				if dx == 0 && dy == 0 && dz == 0 {
					cur[f.index(x, y, z)] += amount
				} else {
					cur[f.index(x, y, z)] += amount * spillFactor
				}
			}
		}
	}
}

// Update advances the field by dt seconds under the given wind: diffusion
// toward the six-neighbor average, semi-Lagrangian advection against the
// wind (nearest cell, clamped to the grid), then decay. Results are written
// to the back buffer and the buffers swap.
func (f *Field) Update(dt float32, wind vecmath.Vec3) {
	src := f.current()
	dst := f.back()

	windLen := wind.Length()
	advectWeight := 0.3 * windLen
	if advectWeight > 1 {
		advectWeight = 1
	}

	n := f.size
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				i := f.index(x, y, z)
				c := src[i]

				// Six-neighbor diffusion.
				var sum float32
				var count int
				if x > 0 {
					sum += src[i-1]
					count++
				}
				if x < n-1 {
					sum += src[i+1]
					count++
				}
				if y > 0 {
					sum += src[i-n]
					count++
				}
				if y < n-1 {
					sum += src[i+n]
					count++
				}
				if z > 0 {
					sum += src[i-n*n]
					count++
				}
				if z < n-1 {
					sum += src[i+n*n]
					count++
				}
				diffused := c
				if count > 0 {
					avg := sum / float32(count)
					diffused = c + diffusionRate*dt*(avg-c)
				}

				// Advect: sample upstream of the wind, clamped to bounds.
				sx := clampInt(int(float32(x)-wind.X*dt), 0, n-1)
				sy := clampInt(int(float32(y)-wind.Y*dt), 0, n-1)
				sz := clampInt(int(float32(z)-wind.Z*dt), 0, n-1)
				advected := src[f.index(sx, sy, sz)]

				v := diffused*(1-advectWeight) + advected*advectWeight
				v *= 1 - decayRate*dt
				if v < 0 {
					v = 0
				}
				dst[i] = v
			}
		}
	}

	f.useA = !f.useA
}

// Concentration returns the scent level at worldPos, or 0 outside the grid.
func (f *Field) Concentration(worldPos vecmath.Vec3) float32 {
	x, y, z := f.worldToGrid(worldPos)
	if !f.inBounds(x, y, z) {
		return 0
	}
	return f.current()[f.index(x, y, z)]
}

// Gradient returns the normalized central-difference gradient at worldPos.
// Axes whose neighbors fall off the grid contribute zero. Positions outside
// the grid, or flat fields, return the zero vector.
func (f *Field) Gradient(worldPos vecmath.Vec3) vecmath.Vec3 {
	x, y, z := f.worldToGrid(worldPos)
	if !f.inBounds(x, y, z) {
		return vecmath.Vec3{}
	}
	cur := f.current()
	var g vecmath.Vec3
	if x > 0 && x < f.size-1 {
		g.X = cur[f.index(x+1, y, z)] - cur[f.index(x-1, y, z)]
	}
	if y > 0 && y < f.size-1 {
		g.Y = cur[f.index(x, y+1, z)] - cur[f.index(x, y-1, z)]
	}
	if z > 0 && z < f.size-1 {
		g.Z = cur[f.index(x, y, z+1)] - cur[f.index(x, y, z-1)]
	}
	return g.Normalize()
}

// TotalMass returns the sum over all cells of the current buffer.
func (f *Field) TotalMass() float64 {
	var sum float64
	for _, v := range f.current() {
		sum += float64(v)
	}
	return sum
}

// Peak returns the largest concentration in the current buffer.
func (f *Field) Peak() float32 {
	var max float32
	for _, v := range f.current() {
		max = float32(math.Max(float64(max), float64(v)))
	}
	return max
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
