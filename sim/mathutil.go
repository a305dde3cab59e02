package sim

import (
	"math"

	"github.com/paddocklabs/paddock/genetics"
	"github.com/paddocklabs/paddock/vecmath"
)

// float32 wrappers to keep the tick loop free of conversion noise.

func sinf(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func cosf(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

func atan2f(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func vec3Splat(v float32) vecmath.Vec3 {
	return vecmath.Vec3{X: v, Y: v, Z: v}
}

// unitDraw advances the seed and maps the draw to [0,1).
func unitDraw(seed *uint32) float32 {
	return float32(genetics.XorShift32(seed)) / float32(math.MaxUint32)
}
