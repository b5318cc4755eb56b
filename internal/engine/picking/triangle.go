package picking

import (
	"sort"

	"github.com/Faultbox/ratwalk/pkg/math"
)

const (
	triangleEpsilon = 1e-6
	boundsPadding   = 1e-3
)

// Triangle is a world-space triangle. Counter-clockwise winding faces +Normal.
type Triangle struct {
	A, B, C math.Vec3
}

// Normal returns the unit face normal derived from the winding.
func (tri Triangle) Normal() math.Vec3 {
	return tri.B.Sub(tri.A).Cross(tri.C.Sub(tri.A)).Normalize()
}

// IntersectTriangle runs the Moller-Trumbore test. When cullBackfaces is
// set, hits on the side facing away from the normal are ignored.
func (r Ray) IntersectTriangle(tri Triangle, cullBackfaces bool) (t float32, hit bool) {
	edge1 := tri.B.Sub(tri.A)
	edge2 := tri.C.Sub(tri.A)

	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if cullBackfaces {
		if a < triangleEpsilon {
			return 0, false
		}
	} else if a > -triangleEpsilon && a < triangleEpsilon {
		return 0, false // Parallel to the plane
	}

	f := 1 / a
	s := r.Origin.Sub(tri.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = f * edge2.Dot(q)
	if t <= triangleEpsilon {
		return 0, false
	}
	return t, true
}

// Surface is a piece of static world geometry that rays can hit and the
// spatial grid can index. Implementations must return world-space data.
type Surface interface {
	ID() uint32
	Triangles() []Triangle
	Bounds() AABB
}

// Hit is a ray intersection with a surface.
type Hit struct {
	Distance float32
	Point    math.Vec3
	Normal   math.Vec3 // World-space face normal, not flipped for back hits
	Surface  Surface
}

// IntersectOptions controls IntersectSurfaces.
type IntersectOptions struct {
	// CullBackfaces ignores triangles hit from behind. Leave false to
	// treat every surface as two-sided.
	CullBackfaces bool
	// Far limits hit distance; zero means unlimited.
	Far float32
}

// IntersectSurfaces returns the closest hit on each surface, nearest first.
func IntersectSurfaces(r Ray, surfaces []Surface, opts IntersectOptions) []Hit {
	var hits []Hit
	for _, s := range surfaces {
		if _, ok := r.IntersectAABB(s.Bounds().Pad(boundsPadding)); !ok {
			continue
		}
		best := Hit{Distance: -1}
		for _, tri := range s.Triangles() {
			t, ok := r.IntersectTriangle(tri, opts.CullBackfaces)
			if !ok {
				continue
			}
			if opts.Far > 0 && t > opts.Far {
				continue
			}
			if best.Distance < 0 || t < best.Distance {
				best = Hit{Distance: t, Point: r.At(t), Normal: tri.Normal(), Surface: s}
			}
		}
		if best.Distance >= 0 {
			hits = append(hits, best)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}
