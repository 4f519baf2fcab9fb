package pointset

import (
	"github.com/chazu/medial/pkg/geom"
	"github.com/dhconnelly/rtreego"
)

const (
	treeMinChildren = 25
	treeMaxChildren = 50
)

// kept is a welded point in the R-tree. Its bounds are the point grown by
// the weld tolerance, so two bounds intersect whenever the points are
// within twice the tolerance on every axis.
type kept struct {
	p      geom.Point
	bounds rtreego.Rect
}

func (k *kept) Bounds() rtreego.Rect {
	return k.bounds
}

var _ rtreego.Spatial = (*kept)(nil)

// Weld drops every point within tol (Euclidean) of an earlier kept point
// and returns the survivors in first-seen order. Bit-identical duplicates
// are always dropped; with tol <= 0 nothing else is.
func Weld(points []geom.Point, tol float64) []geom.Point {
	out := make([]geom.Point, 0, len(points))
	seen := make(map[geom.PointKey]struct{}, len(points))

	var tree *rtreego.Rtree
	if tol > 0 {
		tree = rtreego.NewTree(3, treeMinChildren, treeMaxChildren)
	}
	tol2 := tol * tol

	for _, p := range points {
		k := p.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		if tree != nil {
			box := rtreego.Point{p.X, p.Y, p.Z}.ToRect(tol)
			near := tree.SearchIntersect(box, func(results []rtreego.Spatial, obj rtreego.Spatial) (bool, bool) {
				far := obj.(*kept).p.Dist2(p) > tol2
				return far, !far
			})
			if len(near) > 0 {
				continue
			}
			tree.Insert(&kept{p: p, bounds: box})
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
