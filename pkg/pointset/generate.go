package pointset

import (
	"math/rand"

	"github.com/chazu/medial/pkg/geom"
)

// Generator defaults.
const (
	DefaultGridSize     = 3
	DefaultGridSpacing  = 10.0
	DefaultRandomCount  = 50
	DefaultRandomExtent = 50.0
)

// Grid returns the n×n×n lattice with the given spacing, starting at the
// origin. Points are ordered x-major, then y, then z.
func Grid(n int, spacing float64) []geom.Point {
	if n <= 0 {
		return nil
	}
	pts := make([]geom.Point, 0, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				pts = append(pts, geom.Pt(float64(i)*spacing, float64(j)*spacing, float64(k)*spacing))
			}
		}
	}
	return pts
}

// Random returns n points drawn uniformly from [0, size)^3. The same seed
// always yields the same points.
func Random(n int, size float64, seed int64) []geom.Point {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(size*rng.Float64(), size*rng.Float64(), size*rng.Float64())
	}
	return pts
}

// Bounds returns the axis-aligned bounding box of points. ok is false when
// points is empty.
func Bounds(points []geom.Point) (lo, hi geom.Point, ok bool) {
	if len(points) == 0 {
		return geom.Point{}, geom.Point{}, false
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo = geom.Pt(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = geom.Pt(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	return lo, hi, true
}
