package geom

import "math"

// Edge is an ordered pair of points. It is the skeleton output type and
// the ray segment of the containment test.
type Edge struct {
	P1, P2 Point
}

// NewEdge returns the edge from p1 to p2.
func NewEdge(p1, p2 Point) Edge {
	return Edge{P1: p1, P2: p2}
}

// Length returns the Euclidean length of the edge.
func (e Edge) Length() float64 {
	return math.Sqrt(e.P1.Dist2(e.P2))
}
