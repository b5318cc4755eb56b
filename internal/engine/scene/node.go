// Package scene holds the transform hierarchy and the static meshes that
// make up the walkable world.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ratwalk/pkg/math"
)

// Node is a transform in a parent/child hierarchy. Position and
// Orientation are local to the parent and may be mutated directly;
// world transforms are derived on demand.
type Node struct {
	Name        string
	Position    math.Vec3
	Orientation math.Quat
	Scale       math.Vec3

	parent   *Node
	children []*Node
}

// NewNode creates a node at the origin with identity rotation and unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:        name,
		Orientation: math.QuatIdentity(),
		Scale:       math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Add attaches child to n, detaching it from any previous parent.
// The child's local transform is kept as-is.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	child.parent = nil
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the attached child nodes.
func (n *Node) Children() []*Node {
	return n.children
}

// RotateY rotates the node about its own local up axis.
func (n *Node) RotateY(angle float32) {
	n.Orientation = n.Orientation.Mul(math.QuatFromAxisAngle(math.Vec3Y, angle)).Normalize()
}

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X, n.Position.Y, n.Position.Z)
	r := toMglQuat(n.Orientation).Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale.X, n.Scale.Y, n.Scale.Z)
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the node's transform in world space.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul4(n.LocalMatrix())
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return fromMglVec3(n.WorldMatrix().Col(3).Vec3())
}

// WorldOrientation returns the accumulated rotation of the node.
func (n *Node) WorldOrientation() math.Quat {
	if n.parent == nil {
		return n.Orientation
	}
	return n.parent.WorldOrientation().Mul(n.Orientation)
}

// LocalToWorld converts a point from this node's space to world space.
func (n *Node) LocalToWorld(p math.Vec3) math.Vec3 {
	return transformPoint(n.WorldMatrix(), p)
}

// WorldToLocal converts a world-space point into this node's space.
func (n *Node) WorldToLocal(p math.Vec3) math.Vec3 {
	return transformPoint(n.WorldMatrix().Inv(), p)
}

func transformPoint(m mgl32.Mat4, p math.Vec3) math.Vec3 {
	v := m.Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
	if v[3] != 0 && v[3] != 1 {
		return math.Vec3{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func toMglQuat(q math.Quat) mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

func fromMglVec3(v mgl32.Vec3) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
