package tween

import (
	"github.com/Faultbox/ratwalk/internal/engine/scene"
	"github.com/Faultbox/ratwalk/pkg/math"
)

// DefaultBlendFactor is the fraction of the remaining rotation covered per tick.
const DefaultBlendFactor = 0.1

// Blender eases a node's orientation toward a target orientation.
// The node's Orientation is the live value; the target is where
// alignment code decides it should face.
type Blender struct {
	node   *scene.Node
	target math.Quat
	factor float32
}

// NewBlender creates a blender whose target starts at the node's current orientation.
func NewBlender(node *scene.Node, factor float32) *Blender {
	if factor <= 0 || factor > 1 {
		factor = DefaultBlendFactor
	}
	return &Blender{
		node:   node,
		target: node.Orientation,
		factor: factor,
	}
}

// SetTarget replaces the target orientation.
func (b *Blender) SetTarget(q math.Quat) {
	b.target = q.Normalize()
}

// ApplyDelta applies a world-space correction on top of the current target.
func (b *Blender) ApplyDelta(q math.Quat) {
	b.target = b.target.Premultiply(q).Normalize()
}

// RotateAroundUp turns the target about its own local up axis.
func (b *Blender) RotateAroundUp(angle float32) {
	b.target = b.target.Mul(math.QuatFromAxisAngle(math.Vec3Y, angle)).Normalize()
}

// Target returns the goal orientation.
func (b *Blender) Target() math.Quat {
	return b.target
}

// Current returns the node's live orientation.
func (b *Blender) Current() math.Quat {
	return b.node.Orientation
}

// Node returns the driven node.
func (b *Blender) Node() *scene.Node {
	return b.node
}

// Tick moves the live orientation one blend step toward the target.
func (b *Blender) Tick() {
	b.node.Orientation = b.node.Orientation.Slerp(b.target, b.factor).Normalize()
}
