// Package grid implements a sparse 3D hash grid over static world geometry.
//
// Cells are keyed by quantized integer coordinates. A cell holds
// non-owning references to the surfaces that cover it; surfaces are
// never removed once inserted.
package grid

import (
	"errors"
	gomath "math"

	"github.com/Faultbox/ratwalk/internal/engine/picking"
	"github.com/Faultbox/ratwalk/pkg/math"
)

// ErrInvalidCellSize is returned by New for non-positive cell sizes.
var ErrInvalidCellSize = errors.New("grid: cell size must be positive")

// Coverage selects how Insert maps a surface onto cells.
type Coverage int

const (
	// CoverageSurface samples every triangle at cell-size spacing.
	// Use it for large meshes such as ground and walls.
	CoverageSurface Coverage = iota
	// CoverageShell fills the six faces of the bounding box in cell space.
	// Use it for discrete obstacles.
	CoverageShell
)

// String returns the coverage name.
func (c Coverage) String() string {
	switch c {
	case CoverageSurface:
		return "surface"
	case CoverageShell:
		return "shell"
	default:
		return "unknown"
	}
}

// CellKey identifies a cell.
type CellKey struct {
	X, Y, Z int
}

// Cell is the set of surfaces registered at one key.
type Cell struct {
	ids      map[uint32]struct{}
	surfaces []picking.Surface
}

func (c *Cell) add(s picking.Surface) {
	if _, ok := c.ids[s.ID()]; ok {
		return
	}
	c.ids[s.ID()] = struct{}{}
	c.surfaces = append(c.surfaces, s)
}

// Surfaces returns the cell members in insertion order.
func (c *Cell) Surfaces() []picking.Surface {
	return c.surfaces
}

// SparseGrid indexes surfaces by the cells they cover.
type SparseGrid struct {
	cellSize float32
	cells    map[CellKey]*Cell
}

// New creates an empty grid with the given cell edge length.
func New(cellSize float32) (*SparseGrid, error) {
	if !(cellSize > 0) {
		return nil, ErrInvalidCellSize
	}
	return &SparseGrid{
		cellSize: cellSize,
		cells:    make(map[CellKey]*Cell),
	}, nil
}

// CellSize returns the cell edge length in world units.
func (g *SparseGrid) CellSize() float32 {
	return g.cellSize
}

// Len returns the number of populated cells.
func (g *SparseGrid) Len() int {
	return len(g.cells)
}

// Key quantizes a world position to the cell containing it.
// Coordinates round to the nearest cell center, halves toward +Inf.
func (g *SparseGrid) Key(p math.Vec3) CellKey {
	return CellKey{
		X: quantize(p.X, g.cellSize),
		Y: quantize(p.Y, g.cellSize),
		Z: quantize(p.Z, g.cellSize),
	}
}

func quantize(v, cellSize float32) int {
	return int(gomath.Floor(float64(v/cellSize) + 0.5))
}

// InsertPoint registers s in the cell containing world position p.
func (g *SparseGrid) InsertPoint(s picking.Surface, p math.Vec3) {
	g.InsertKey(s, g.Key(p))
}

// InsertKey registers s in the cell with the given raw key.
func (g *SparseGrid) InsertKey(s picking.Surface, key CellKey) {
	c, ok := g.cells[key]
	if !ok {
		c = &Cell{ids: make(map[uint32]struct{})}
		g.cells[key] = c
	}
	c.add(s)
}

// Insert registers s using the given coverage strategy.
func (g *SparseGrid) Insert(s picking.Surface, coverage Coverage) {
	switch coverage {
	case CoverageShell:
		g.InsertShell(s)
	default:
		g.InsertSurface(s)
	}
}

// At returns the cell containing world position p, or nil.
func (g *SparseGrid) At(p math.Vec3) *Cell {
	return g.cells[g.Key(p)]
}

// QueryRadius returns the distinct surfaces registered in the
// (2r+1)^3 block of cells centered on the cell containing p.
// r counts cells, not world units.
func (g *SparseGrid) QueryRadius(p math.Vec3, r int) []picking.Surface {
	if r < 0 {
		r = 0
	}
	center := g.Key(p)
	seen := make(map[uint32]struct{})
	var out []picking.Surface
	for i := -r; i <= r; i++ {
		for j := -r; j <= r; j++ {
			for k := -r; k <= r; k++ {
				c, ok := g.cells[CellKey{center.X + i, center.Y + j, center.Z + k}]
				if !ok {
					continue
				}
				for _, s := range c.surfaces {
					if _, dup := seen[s.ID()]; dup {
						continue
					}
					seen[s.ID()] = struct{}{}
					out = append(out, s)
				}
			}
		}
	}
	return out
}
