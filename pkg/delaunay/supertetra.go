package delaunay

import (
	"github.com/chazu/medial/pkg/geom"
	"github.com/chazu/medial/pkg/pointset"
)

// superTetrahedron returns four corners that strictly enclose every point.
// Three corners lie on a plane one extent below the box, spread k extents
// beyond it in x and z; the fourth sits k extents above the box. points
// must be non-empty.
func superTetrahedron(points []geom.Point, k float64) [4]geom.Point {
	lo, hi, _ := pointset.Bounds(points)
	d := max(hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z)
	if d == 0 {
		d = 1
	}
	midX := (lo.X + hi.X) / 2
	midZ := (lo.Z + hi.Z) / 2
	base := lo.Y - d

	return [4]geom.Point{
		geom.Pt(lo.X-k*d, base, lo.Z-k*d),
		geom.Pt(hi.X+k*d, base, lo.Z-k*d),
		geom.Pt(midX, base, hi.Z+k*d),
		geom.Pt(midX, hi.Y+k*d, midZ),
	}
}
