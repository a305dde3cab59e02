package vecmath

import (
	"math"
	"testing"
)

const tol = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tol
}

func vecNear(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	if got := a.Add(b); !vecNear(got, Vec3{5, -3, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); !vecNear(got, Vec3{-3, 7, -3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); !vecNear(got, Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); !near(got, 4-10+18) {
		t.Errorf("Dot = %v", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	if got := x.Cross(y); !vecNear(got, Vec3{0, 0, 1}) {
		t.Errorf("x cross y = %v, want +z", got)
	}
	if got := y.Cross(x); !vecNear(got, Vec3{0, 0, -1}) {
		t.Errorf("y cross x = %v, want -z", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if !near(v.Length(), 1) {
		t.Errorf("normalized length = %v", v.Length())
	}
	if !vecNear(v, Vec3{0.6, 0, 0.8}) {
		t.Errorf("Normalize = %v", v)
	}

	// Near-zero vectors collapse to zero instead of exploding.
	z := Vec3{1e-7, 0, 0}.Normalize()
	if z != (Vec3{}) {
		t.Errorf("near-zero Normalize = %v, want zero", z)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float32
		in    Vec3
		want  Vec3
	}{
		{"quarter turn about y", Vec3{0, 1, 0}, math.Pi / 2, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"half turn about z", Vec3{0, 0, 1}, math.Pi, Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
		{"identity", Vec3{0, 1, 0}, 0, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"unnormalized axis", Vec3{0, 10, 0}, math.Pi / 2, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, tt.angle)
			got := q.Rotate(tt.in)
			if got.Sub(tt.want).Length() > 1e-4 {
				t.Errorf("Rotate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuatMulComposes(t *testing.T) {
	// Two quarter turns about y equal one half turn.
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	half := q.Mul(q)
	got := half.Rotate(Vec3{0, 0, 1})
	if got.Sub(Vec3{0, 0, -1}).Length() > 1e-4 {
		t.Errorf("composed rotation = %v, want (0,0,-1)", got)
	}
}

func TestSlerpIdentity(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 2, 3}, 0.7)
	for _, f := range []float32{0, 0.25, 0.5, 0.75, 1} {
		got := q.Slerp(q, f)
		if math.Abs(float64(got.Dot(q))) < 1-1e-5 {
			t.Errorf("Slerp(q,q,%v) = %v, want %v", f, got, q)
		}
	}
}

func TestSlerpShortPath(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, 0)
	b := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	mid := a.Slerp(b, 0.5)
	want := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/4)
	if math.Abs(float64(mid.Dot(want))) < 1-1e-4 {
		t.Errorf("Slerp midpoint = %v, want %v", mid, want)
	}

	// Negated operand takes the same short path.
	nb := Quat{-b.X, -b.Y, -b.Z, -b.W}
	mid2 := a.Slerp(nb, 0.5)
	if math.Abs(float64(mid2.Dot(want))) < 1-1e-4 {
		t.Errorf("Slerp with negated input = %v, want %v", mid2, want)
	}
}

func TestSlerpStaysUnit(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{1, 0, 0}, 0.3)
	b := QuatFromAxisAngle(Vec3{0, 1, 1}, 2.1)
	for f := float32(0); f <= 1; f += 0.1 {
		q := a.Slerp(b, f)
		l := float32(math.Sqrt(float64(q.Dot(q))))
		if math.Abs(float64(l-1)) > 1e-4 {
			t.Errorf("Slerp(%v) length = %v", f, l)
		}
	}
}

func TestMat4TransformPoint(t *testing.T) {
	m := Mat4Translation(Vec3{1, 2, 3})
	if got := m.TransformPoint(Vec3{1, 1, 1}); !vecNear(got, Vec3{2, 3, 4}) {
		t.Errorf("translate point = %v", got)
	}
	// Directions ignore translation.
	if got := m.TransformDir(Vec3{1, 1, 1}); !vecNear(got, Vec3{1, 1, 1}) {
		t.Errorf("translate dir = %v", got)
	}
}

func TestMat4Compose(t *testing.T) {
	s := Mat4Scale(Vec3{2, 2, 2})
	tr := Mat4Translation(Vec3{1, 0, 0})
	// Translate then scale: (1,0,0) -> (2,0,0) -> scaled after translate.
	m := s.Mul(tr)
	got := m.TransformPoint(Vec3{0, 0, 0})
	if !vecNear(got, Vec3{2, 0, 0}) {
		t.Errorf("compose = %v, want (2,0,0)", got)
	}
}

func TestMat4FromQuatMatchesRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}, 1.2)
	m := Mat4FromQuat(q)
	v := Vec3{0.3, -0.7, 0.5}
	a := q.Rotate(v)
	b := m.TransformDir(v)
	if a.Sub(b).Length() > 1e-4 {
		t.Errorf("quat rotate %v != matrix rotate %v", a, b)
	}
}

func TestMat4LookAt(t *testing.T) {
	m := Mat4LookAt(Vec3{0, 0, 5}, Vec3{0, 0, 0}, Vec3{0, 1, 0})
	// The target lies on the -Z axis in view space.
	got := m.TransformPoint(Vec3{0, 0, 0})
	if !vecNear(got, Vec3{0, 0, -5}) {
		t.Errorf("look-at origin = %v, want (0,0,-5)", got)
	}
}

func TestMat4PerspectiveFlipsY(t *testing.T) {
	p := Mat4Perspective(math.Pi/2, 1, 0.1, 100)
	v := p.TransformPoint(Vec3{0, 1, -10})
	if v.Y >= 0 {
		t.Errorf("projected Y = %v, want negative (Y-flip)", v.Y)
	}
}
