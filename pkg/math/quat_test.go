package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatSlerp(t *testing.T) {
	// Test endpoints
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// At t=0, should equal q1
	result0 := q1.Slerp(q2, 0)
	if math.Abs(float64(result0.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1")
	}

	// At t=1, should equal q2
	result1 := q1.Slerp(q2, 1)
	if math.Abs(float64(result1.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// At t=0.5, should be halfway
	result5 := q1.Slerp(q2, 0.5)
	// For 90 degree rotation, halfway should be 45 degrees
	expectedW := float32(math.Cos(float64(math.Pi / 8))) // cos(45/2 degrees)
	if math.Abs(float64(result5.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, result5.W)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// Should have Y component and W = cos(45deg)
	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotateVec(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
		in    Vec3
		want  Vec3
	}{
		{"y 90 turns x to -z", Vec3Y, math.Pi / 2, Vec3X, Vec3{Z: -1}},
		{"x 90 turns y to z", Vec3X, math.Pi / 2, Vec3Y, Vec3Z},
		{"z 180 flips x", Vec3Z, math.Pi, Vec3X, Vec3{X: -1}},
		{"identity", Vec3Y, 0, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, float32(tt.angle))
			got := q.RotateVec(tt.in)
			if got.Distance(tt.want) > 0.001 {
				t.Errorf("RotateVec(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuatPremultiply(t *testing.T) {
	a := QuatFromAxisAngle(Vec3Y, float32(math.Pi/2))
	b := QuatFromAxisAngle(Vec3X, float32(math.Pi/2))

	// a first, then b
	got := a.Premultiply(b).RotateVec(Vec3X)
	want := b.RotateVec(a.RotateVec(Vec3X))
	if got.Distance(want) > 0.001 {
		t.Errorf("Premultiply: got %v, want %v", got, want)
	}
}

func TestQuatAngleTo(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3Y, float32(math.Pi/3))

	got := q1.AngleTo(q2)
	if math.Abs(float64(got)-math.Pi/3) > 0.001 {
		t.Errorf("AngleTo: expected %v, got %v", math.Pi/3, got)
	}
	if q2.AngleTo(q2) > 0.001 {
		t.Errorf("AngleTo self should be 0, got %v", q2.AngleTo(q2))
	}
}

func TestQuatConjugateUndoesRotation(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}.Normalize(), 1.1)
	v := Vec3{3, -2, 5}
	back := q.Conjugate().RotateVec(q.RotateVec(v))
	if back.Distance(v) > 0.001 {
		t.Errorf("Conjugate: got %v, want %v", back, v)
	}
}
