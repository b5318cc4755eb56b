package character

import (
	gomath "math"

	"github.com/Faultbox/ratwalk/internal/engine/grid"
	"github.com/Faultbox/ratwalk/internal/engine/picking"
	"github.com/Faultbox/ratwalk/pkg/math"
)

// ScanAngles are the downward fan of foothold rays, measured from forward
// about forward x up. They are tried in this order and the first
// in-range hit wins, so the order shapes the gait.
var ScanAngles = [5]float32{
	-7.5 * gomath.Pi / 8,
	-5 * gomath.Pi / 8,
	-5.5 * gomath.Pi / 8,
	-6 * gomath.Pi / 8,
	-7 * gomath.Pi / 8,
}

// Foothold is an accepted ground contact.
type Foothold struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
	Angle    int // index into ScanAngles
}

// FootholdFinder searches for ground under a scan origin.
type FootholdFinder interface {
	FindFoothold(origin math.Vec3, frame math.AxisFrame) (Foothold, bool)
}

// GridFootholdFinder raycasts the scan fan against surfaces near the origin.
type GridFootholdFinder struct {
	Grid *grid.SparseGrid
	// Radius of the grid query in cells.
	Radius int
	// Cutoff rejects hits at or beyond this distance from the origin.
	Cutoff float32
}

// FindFoothold returns the closest hit of the first scan angle whose
// closest hit lies within Cutoff. Surfaces are tested two-sided.
func (f *GridFootholdFinder) FindFoothold(origin math.Vec3, frame math.AxisFrame) (Foothold, bool) {
	surfaces := f.Grid.QueryRadius(origin, f.Radius)
	if len(surfaces) == 0 {
		return Foothold{}, false
	}

	axis := frame.Forward.Cross(frame.Up).Normalize()
	opts := picking.IntersectOptions{CullBackfaces: false}
	for i, angle := range ScanAngles {
		dir := math.QuatFromAxisAngle(axis, angle).RotateVec(frame.Forward)
		hits := picking.IntersectSurfaces(picking.NewRay(origin, dir), surfaces, opts)
		if len(hits) == 0 {
			continue
		}
		nearest := hits[0]
		if d := nearest.Point.Distance(origin); d < f.Cutoff {
			return Foothold{Point: nearest.Point, Normal: nearest.Normal, Distance: d, Angle: i}, true
		}
	}
	return Foothold{}, false
}
