package vecmath

import "math"

// Quat is a unit quaternion (X, Y, Z imaginary parts, W real part).
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle builds a rotation of angle radians about axis. The axis
// is normalized internally; a degenerate axis yields the identity.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return QuatIdentity()
	}
	half := float64(angle) * 0.5
	s := float32(math.Sin(half))
	return Quat{n.X * s, n.Y * s, n.Z * s, float32(math.Cos(half))}
}

// Mul returns the Hamilton product q * o. Applying the result rotates by o
// first, then by q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Rotate rotates v by q using the cross-product form
// v' = v + 2w*(u x v) + 2*(u x (u x v)).
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Dot returns the 4D dot product of q and o.
func (q Quat) Dot(o Quat) float32 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Normalize returns q scaled to unit length. Near-zero quaternions return
// the identity.
func (q Quat) Normalize() Quat {
	l := float32(math.Sqrt(float64(q.Dot(q))))
	if l < Epsilon {
		return QuatIdentity()
	}
	inv := 1 / l
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Slerp spherically interpolates from q to o by t in [0,1]. The short path
// is taken by negating one operand when the dot product is negative; nearly
// parallel inputs fall back to a normalized linear blend.
func (q Quat) Slerp(o Quat, t float32) Quat {
	d := q.Dot(o)
	if d < 0 {
		o = Quat{-o.X, -o.Y, -o.Z, -o.W}
		d = -d
	}

	if d > 0.9995 {
		// Nearly parallel: lerp then renormalize.
		return Quat{
			q.X + (o.X-q.X)*t,
			q.Y + (o.Y-q.Y)*t,
			q.Z + (o.Z-q.Z)*t,
			q.W + (o.W-q.W)*t,
		}.Normalize()
	}

	theta := math.Acos(float64(d))
	sinTheta := math.Sin(theta)
	wa := float32(math.Sin((1-float64(t))*theta) / sinTheta)
	wb := float32(math.Sin(float64(t)*theta) / sinTheta)
	return Quat{
		q.X*wa + o.X*wb,
		q.Y*wa + o.Y*wb,
		q.Z*wa + o.Z*wb,
		q.W*wa + o.W*wb,
	}
}
