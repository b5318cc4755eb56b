package grid

import (
	gomath "math"

	"github.com/Faultbox/ratwalk/internal/engine/picking"
	"github.com/Faultbox/ratwalk/pkg/math"
)

// line is an infinite line used by the triangle scan.
type line struct {
	start  math.Vec3
	dir    math.Vec3 // unit
	length float32
}

func newLine(start, delta math.Vec3) line {
	return line{start: start, dir: delta.Normalize(), length: delta.Length()}
}

// closestOn returns the point on other closest to l, or false if the
// lines are parallel.
func (l line) closestOn(other line) (math.Vec3, bool) {
	nom := other.dir.Dot(l.dir)
	denom := 1 - nom*nom
	if gomath.Abs(float64(denom)) < 1e-6 {
		return math.Vec3{}, false
	}
	s := (l.start.Sub(other.start).Dot(other.dir) + other.start.Sub(l.start).Dot(l.dir)*nom) / denom
	return other.start.AddScaled(other.dir, s), true
}

// InsertSurface samples each triangle of s at cell-size spacing.
//
// The longest edge is the base. Sample points walk the side sharing the
// base's start vertex; from each one a scan line parallel to the base
// runs until it meets the opposite side, inserting at every step.
func (g *SparseGrid) InsertSurface(s picking.Surface) {
	for _, tri := range s.Triangles() {
		g.fillTriangle(s, tri)
	}
}

func (g *SparseGrid) fillTriangle(s picking.Surface, tri picking.Triangle) {
	a, b, c := tri.A, tri.B, tri.C

	// Vertices always land, so triangles smaller than a cell are indexed.
	g.InsertPoint(s, a)
	g.InsertPoint(s, b)
	g.InsertPoint(s, c)

	ab := b.Sub(a)
	ca := a.Sub(c)
	bc := c.Sub(b)
	lab, lca, lbc := ab.Length(), ca.Length(), bc.Length()

	var base, side1, side2 line
	switch {
	case lab > lca && lab > lbc:
		base = newLine(a, ab)
		side1 = newLine(a, ca.Negate())
		side2 = newLine(c, bc)
	case lca > lab && lca > lbc:
		base = newLine(c, ca)
		side1 = newLine(c, bc.Negate())
		side2 = newLine(b, ab)
	default:
		base = newLine(b, bc)
		side1 = newLine(b, ab.Negate())
		side2 = newLine(a, ca)
	}
	if base.length == 0 {
		return
	}

	stride := base.dir.Scale(g.cellSize)
	for j := float32(0); j < side1.length; j += g.cellSize {
		next := side1.start.AddScaled(side1.dir, j)
		scan := line{start: next, dir: base.dir}
		end, ok := scan.closestOn(side2)
		if !ok {
			continue
		}
		width := next.Distance(end)
		for k := float32(0); k < width; k += g.cellSize {
			g.InsertPoint(s, next)
			next = next.Add(stride)
		}
	}
}

// InsertShell registers s on the six faces of its bounding box,
// quantized outward (floor of min, ceil of max). The interior stays empty.
func (g *SparseGrid) InsertShell(s picking.Surface) {
	box := s.Bounds()
	cs := float64(g.cellSize)
	minX := int(gomath.Floor(float64(box.Min.X) / cs))
	maxX := int(gomath.Ceil(float64(box.Max.X) / cs))
	minY := int(gomath.Floor(float64(box.Min.Y) / cs))
	maxY := int(gomath.Ceil(float64(box.Max.Y) / cs))
	minZ := int(gomath.Floor(float64(box.Min.Z) / cs))
	maxZ := int(gomath.Ceil(float64(box.Max.Z) / cs))

	// top / bottom
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			g.InsertKey(s, CellKey{x, minY, z})
			g.InsertKey(s, CellKey{x, maxY, z})
		}
	}
	// front / back
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			g.InsertKey(s, CellKey{x, y, minZ})
			g.InsertKey(s, CellKey{x, y, maxZ})
		}
	}
	// left / right
	for y := minY; y <= maxY; y++ {
		for z := minZ; z <= maxZ; z++ {
			g.InsertKey(s, CellKey{minX, y, z})
			g.InsertKey(s, CellKey{maxX, y, z})
		}
	}
}
