package scene

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ratwalk/internal/engine/picking"
	"github.com/Faultbox/ratwalk/pkg/math"
)

var nextMeshID atomic.Uint32

// Mesh is static triangle geometry positioned by a Node. World-space
// triangles are cached by UpdateWorld; call it after moving the node.
type Mesh struct {
	Name string
	Node *Node

	id     uint32
	local  []picking.Triangle
	world  []picking.Triangle
	bounds picking.AABB
}

// NewMesh creates a mesh from local-space triangles.
func NewMesh(name string, tris []picking.Triangle) *Mesh {
	m := &Mesh{
		Name:  name,
		Node:  NewNode(name),
		id:    nextMeshID.Add(1),
		local: tris,
	}
	m.UpdateWorld()
	return m
}

// ID returns the mesh identity used for grid membership.
func (m *Mesh) ID() uint32 { return m.id }

// Triangles returns the cached world-space triangles.
func (m *Mesh) Triangles() []picking.Triangle { return m.world }

// Bounds returns the cached world-space bounding box.
func (m *Mesh) Bounds() picking.AABB { return m.bounds }

// UpdateWorld re-derives world-space triangles and bounds from the node.
func (m *Mesh) UpdateWorld() {
	mat := m.Node.WorldMatrix()
	m.world = make([]picking.Triangle, len(m.local))
	for i, tri := range m.local {
		m.world[i] = picking.Triangle{
			A: transformVertex(mat, tri.A),
			B: transformVertex(mat, tri.B),
			C: transformVertex(mat, tri.C),
		}
		if i == 0 {
			m.bounds = picking.AABB{Min: m.world[0].A, Max: m.world[0].A}
		}
		m.bounds = m.bounds.Expand(m.world[i].A).Expand(m.world[i].B).Expand(m.world[i].C)
	}
}

func transformVertex(m mgl32.Mat4, v math.Vec3) math.Vec3 {
	return fromMglVec3(mgl32.TransformCoordinate(mgl32.Vec3{v.X, v.Y, v.Z}, m))
}

// NewBox creates an axis-aligned box centered on its node with outward-facing triangles.
func NewBox(name string, size math.Vec3) *Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	faces := [][4]math.Vec3{
		// +X
		{{X: hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: -hz}, {X: hx, Y: hy, Z: -hz}, {X: hx, Y: hy, Z: hz}},
		// -X
		{{X: -hx, Y: -hy, Z: -hz}, {X: -hx, Y: -hy, Z: hz}, {X: -hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: -hz}},
		// +Y
		{{X: -hx, Y: hy, Z: hz}, {X: hx, Y: hy, Z: hz}, {X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz}},
		// -Y
		{{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: hz}, {X: -hx, Y: -hy, Z: hz}},
		// +Z
		{{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz}, {X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz}},
		// -Z
		{{X: hx, Y: -hy, Z: -hz}, {X: -hx, Y: -hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz}, {X: hx, Y: hy, Z: -hz}},
	}
	tris := make([]picking.Triangle, 0, 12)
	for _, f := range faces {
		tris = append(tris, quadTriangles(f)...)
	}
	return NewMesh(name, tris)
}

// NewQuad creates a horizontal rectangle in the XZ plane facing +Y.
func NewQuad(name string, width, depth float32) *Mesh {
	hw, hd := width/2, depth/2
	return NewMesh(name, quadTriangles([4]math.Vec3{
		{X: -hw, Z: hd}, {X: hw, Z: hd}, {X: hw, Z: -hd}, {X: -hw, Z: -hd},
	}))
}

func quadTriangles(q [4]math.Vec3) []picking.Triangle {
	return []picking.Triangle{
		{A: q[0], B: q[1], C: q[2]},
		{A: q[0], B: q[2], C: q[3]},
	}
}
