package math

import (
	"math"
	"testing"
)

func TestAlignmentQuat(t *testing.T) {
	from := Vec3Y
	to := Vec3{1, 1, 0}

	q, ok := AlignmentQuat(from, to)
	if !ok {
		t.Fatal("expected a correction for 45 degree input")
	}
	got := q.RotateVec(from)
	if got.Distance(to.Normalize()) > 0.001 {
		t.Errorf("aligned vector = %v, want %v", got, to.Normalize())
	}
}

func TestAlignmentQuatRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
	}{
		{"parallel", Vec3Y, Vec3{0, 3, 0}},
		{"nearly parallel", Vec3Y, Vec3{0.001, 1, 0}},
		{"antiparallel", Vec3Y, Vec3{0, -1, 0}},
		{"nearly antiparallel", Vec3Y, Vec3{0.001, -1, 0}},
		{"zero target", Vec3Y, Vec3{}},
		{"zero source", Vec3{}, Vec3X},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := AlignmentQuat(tt.from, tt.to); ok {
				t.Errorf("AlignmentQuat(%v, %v) should report no correction", tt.from, tt.to)
			}
		})
	}
}

func TestAlignmentQuatOnPlane(t *testing.T) {
	// Target has an upward component that must be ignored.
	to := Vec3{1, 2, 0}
	from := Vec3{0, 0, -1}

	q, ok := AlignmentQuatOnPlane(to, from, Vec3Y)
	if !ok {
		t.Fatal("expected a correction")
	}
	got := q.RotateVec(from)
	if got.Distance(Vec3X) > 0.001 {
		t.Errorf("aligned vector = %v, want %v", got, Vec3X)
	}
}

func TestFrameFromQuat(t *testing.T) {
	f := FrameFromQuat(QuatIdentity())
	if f.Forward != (Vec3{Z: -1}) || f.Up != Vec3Y || f.Left != Vec3X {
		t.Errorf("identity frame = %+v", f)
	}

	f = FrameFromQuat(QuatFromAxisAngle(Vec3Y, float32(math.Pi/2)))
	if f.Forward.Distance(Vec3{X: -1}) > 0.001 {
		t.Errorf("yawed forward = %v, want (-1,0,0)", f.Forward)
	}
}
