// Package character drives procedural rat locomotion: bone targets for the
// IK solver, foothold search, and the step/turn state machine.
package character

import (
	gomath "math"
	"time"

	"github.com/Faultbox/ratwalk/internal/engine/scene"
	"github.com/Faultbox/ratwalk/pkg/math"
)

// Bone indices into Rig.Bones.
const (
	BackLeft = iota
	BackRight
	FrontLeft
	FrontRight
	Head
	Tail
	BoneCount
)

var boneNames = [BoneCount]string{"back_left", "back_right", "front_left", "front_right", "head", "tail"}

// BoneName returns a stable name for a bone index.
func BoneName(i int) string {
	if i < 0 || i >= BoneCount {
		return "unknown"
	}
	return boneNames[i]
}

// BonePoint is an IK end-effector target.
// Normal is only meaningful for the front feet once HasNormal is set.
type BonePoint struct {
	Position  math.Vec3
	Normal    math.Vec3
	HasNormal bool
}

// ChainSpec describes an IK chain for the external solver.
type ChainSpec struct {
	Name   string
	Joints int
	Target int // index into Rig.Bones
}

// Rig holds everything the gait engine moves and the IK solver reads.
type Rig struct {
	Bones [BoneCount]BonePoint

	// Body is the rat's root transform.
	Body *scene.Node
	// CameraPivot trails the body; Camera hangs off it at a fixed offset.
	CameraPivot *scene.Node
	Camera      *scene.Node

	// HipHeight is the spine hip offset the IK solver applies each frame.
	HipHeight float32
}

// Rest offsets of each bone relative to the body at spawn.
var restOffsets = [BoneCount]math.Vec3{
	BackLeft:   {X: -3, Y: 0, Z: 2},
	BackRight:  {X: 3, Y: 0, Z: 2},
	FrontLeft:  {X: -3, Y: 0, Z: -10},
	FrontRight: {X: 3, Y: 0, Z: -10},
	Head:       {X: 0, Y: 7, Z: -12},
	Tail:       {X: -1, Y: 2, Z: 11},
}

// NewRig places the body, camera pivot and bones at start.
// cameraOffset is the camera's position relative to the pivot.
func NewRig(start, cameraOffset math.Vec3) *Rig {
	r := &Rig{
		Body:        scene.NewNode("body"),
		CameraPivot: scene.NewNode("camera_pivot"),
		Camera:      scene.NewNode("camera"),
	}
	r.Body.Position = start
	r.CameraPivot.Position = start
	r.Camera.Position = cameraOffset
	r.CameraPivot.Add(r.Camera)

	for i := range r.Bones {
		r.Bones[i].Position = start.Add(restOffsets[i])
	}
	return r
}

// Chains lists the IK chains a rig expects, one per end effector.
func Chains() []ChainSpec {
	return []ChainSpec{
		{Name: "back_left_leg", Joints: 4, Target: BackLeft},
		{Name: "back_right_leg", Joints: 4, Target: BackRight},
		{Name: "front_left_leg", Joints: 4, Target: FrontLeft},
		{Name: "front_right_leg", Joints: 4, Target: FrontRight},
		{Name: "spine", Joints: 5, Target: Head},
		{Name: "tail", Joints: 7, Target: Tail},
	}
}

// UpdateHip sets the breathing bob of the spine hip for the given run time.
func (r *Rig) UpdateHip(elapsed time.Duration) {
	ms := float64(elapsed.Milliseconds())
	r.HipHeight = float32(0.5 + 0.5*gomath.Sin(ms*0.001))
}

// FrontNormalSum returns the sum of the recorded front-foot normals.
func (r *Rig) FrontNormalSum() math.Vec3 {
	var sum math.Vec3
	for _, i := range []int{FrontLeft, FrontRight} {
		if r.Bones[i].HasNormal {
			sum = sum.Add(r.Bones[i].Normal)
		}
	}
	return sum
}
