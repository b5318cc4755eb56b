package math

import "math"

// AlignEpsilon bounds the angles AlignmentQuat will correct. Angles inside
// (AlignEpsilon, Pi-AlignEpsilon) produce a rotation; the rest have no stable axis.
const AlignEpsilon = 0.01

// AlignmentQuat returns the minimal rotation turning from onto to.
// ok is false for zero-length input and for near-parallel or
// near-antiparallel vectors; callers treat that as "no correction".
func AlignmentQuat(from, to Vec3) (q Quat, ok bool) {
	if from.IsZero() || to.IsZero() {
		return QuatIdentity(), false
	}
	angle := from.AngleTo(to)
	if angle <= AlignEpsilon || angle >= math.Pi-AlignEpsilon {
		return QuatIdentity(), false
	}
	axis := from.Cross(to).Normalize()
	if axis.IsZero() {
		return QuatIdentity(), false
	}
	return QuatFromAxisAngle(axis, angle), true
}

// AlignmentQuatOnPlane projects to onto the plane with the given normal and
// returns the rotation aligning from with that projection.
func AlignmentQuatOnPlane(to, from, normal Vec3) (Quat, bool) {
	projected := to.ProjectOnPlane(normal).Normalize()
	return AlignmentQuat(from, projected)
}

// AxisFrame holds the forward/up/left unit vectors of an orientation.
type AxisFrame struct {
	Forward Vec3
	Up      Vec3
	Left    Vec3
}

// FrameFromQuat derives the axis frame of q. Forward is local -Z,
// up is local +Y and left is local +X.
func FrameFromQuat(q Quat) AxisFrame {
	return AxisFrame{
		Forward: q.RotateVec(Vec3{Z: -1}),
		Up:      q.RotateVec(Vec3Y),
		Left:    q.RotateVec(Vec3X),
	}
}
