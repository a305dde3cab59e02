// Package behavior implements the creature decision layer: response curves
// mapping need deficits to urgency, the closed action catalogue, and the
// utility-scored need controller.
package behavior

import "math"

// CurveKind selects a response-curve shape.
type CurveKind uint8

const (
	CurveLinear CurveKind = iota
	CurveExponential
	CurveLogarithmic
	CurveLogistic
	CurveSine
)

// Curve is a parameterized response curve with domain and codomain [0,1].
// Inputs are clamped before evaluation, outputs after.
type Curve struct {
	Kind       CurveKind
	Slope      float32
	Exponent   float32
	YIntercept float32
	XIntercept float32
}

// Evaluate maps x through the curve. Both x and the result are clamped to
// [0,1].
func (c Curve) Evaluate(x float32) float32 {
	x = clamp01(x)
	var y float32
	switch c.Kind {
	case CurveLinear:
		y = c.Slope*x + c.YIntercept
	case CurveExponential:
		y = float32(math.Pow(float64(x), float64(c.Exponent))) + c.YIntercept
	case CurveLogarithmic:
		// Convex root form; an exponent below 1 degenerates to linear.
		e := c.Exponent
		if e < 1 {
			e = 1
		}
		y = float32(math.Pow(float64(x), 1/float64(e)))
	case CurveLogistic:
		y = float32(1 / (1 + math.Exp(-float64(c.Exponent)*(float64(x)-0.5))))
	case CurveSine:
		y = float32(math.Sin(math.Pi * float64(x)))
	}
	return clamp01(y)
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
