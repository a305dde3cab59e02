package vecmath

import "math"

// Mat4 is a 4x4 matrix in column-major order: M[col*4+row].
type Mat4 struct {
	M [16]float32
}

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	var m Mat4
	m.M[0] = 1
	m.M[5] = 1
	m.M[10] = 1
	m.M[15] = 1
	return m
}

// Mat4Translation returns a translation matrix.
func Mat4Translation(t Vec3) Mat4 {
	m := Mat4Identity()
	m.M[12] = t.X
	m.M[13] = t.Y
	m.M[14] = t.Z
	return m
}

// Mat4Scale returns a non-uniform scale matrix.
func Mat4Scale(s Vec3) Mat4 {
	var m Mat4
	m.M[0] = s.X
	m.M[5] = s.Y
	m.M[10] = s.Z
	m.M[15] = 1
	return m
}

// Mat4FromQuat converts a unit quaternion to a rotation matrix.
func Mat4FromQuat(q Quat) Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	m := Mat4Identity()
	m.M[0] = 1 - 2*(y*y+z*z)
	m.M[1] = 2 * (x*y + z*w)
	m.M[2] = 2 * (x*z - y*w)
	m.M[4] = 2 * (x*y - z*w)
	m.M[5] = 1 - 2*(x*x+z*z)
	m.M[6] = 2 * (y*z + x*w)
	m.M[8] = 2 * (x*z + y*w)
	m.M[9] = 2 * (y*z - x*w)
	m.M[10] = 1 - 2*(x*x+y*y)
	return m
}

// Mul returns the matrix product m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.M[k*4+row] * o.M[col*4+k]
			}
			r.M[col*4+row] = sum
		}
	}
	return r
}

// TransformPoint applies m to a point, including translation and the
// perspective divide.
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	x := m.M[0]*v.X + m.M[4]*v.Y + m.M[8]*v.Z + m.M[12]
	y := m.M[1]*v.X + m.M[5]*v.Y + m.M[9]*v.Z + m.M[13]
	z := m.M[2]*v.X + m.M[6]*v.Y + m.M[10]*v.Z + m.M[14]
	w := m.M[3]*v.X + m.M[7]*v.Y + m.M[11]*v.Z + m.M[15]
	if w > Epsilon || w < -Epsilon {
		inv := 1 / w
		return Vec3{x * inv, y * inv, z * inv}
	}
	return Vec3{x, y, z}
}

// TransformDir applies only the rotational/scale part of m to a direction.
func (m Mat4) TransformDir(v Vec3) Vec3 {
	return Vec3{
		m.M[0]*v.X + m.M[4]*v.Y + m.M[8]*v.Z,
		m.M[1]*v.X + m.M[5]*v.Y + m.M[9]*v.Z,
		m.M[2]*v.X + m.M[6]*v.Y + m.M[10]*v.Z,
	}
}

// Mat4Perspective builds a perspective projection. fovY is in radians. The
// Y axis is flipped to match the target NDC convention (Y down).
func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovY)*0.5))
	var m Mat4
	m.M[0] = f / aspect
	m.M[5] = -f // Y-flip
	m.M[10] = far / (near - far)
	m.M[11] = -1
	m.M[14] = near * far / (near - far)
	return m
}

// Mat4LookAt builds a right-handed view matrix looking from eye toward
// target with the given up vector.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	fwd := target.Sub(eye).Normalize()
	right := fwd.Cross(up).Normalize()
	realUp := right.Cross(fwd)

	m := Mat4Identity()
	m.M[0] = right.X
	m.M[4] = right.Y
	m.M[8] = right.Z
	m.M[1] = realUp.X
	m.M[5] = realUp.Y
	m.M[9] = realUp.Z
	m.M[2] = -fwd.X
	m.M[6] = -fwd.Y
	m.M[10] = -fwd.Z
	m.M[12] = -right.Dot(eye)
	m.M[13] = -realUp.Dot(eye)
	m.M[14] = fwd.Dot(eye)
	return m
}
