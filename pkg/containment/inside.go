package containment

import (
	"github.com/chazu/medial/pkg/geom"
)

// Tester answers repeated containment queries against one surface.
type Tester struct {
	shape []geom.Face
	dir   geom.Point
	opts  options
}

// NewTester returns a Tester for shape. The faces are not copied.
func NewTester(shape []geom.Face, opts ...Option) *Tester {
	o := buildOptions(opts)
	return &Tester{shape: shape, dir: o.axis.dir(), opts: o}
}

// Inside reports whether p lies inside shape. An empty shape contains
// every point.
func Inside(p geom.Point, shape []geom.Face, opts ...Option) bool {
	return NewTester(shape, opts...).Inside(p)
}

// Inside reports whether p lies inside the tester's surface.
func (t *Tester) Inside(p geom.Point) bool {
	return t.parity(p, t.shape)
}

// Ray returns the casting segment for p.
func (t *Tester) Ray(p geom.Point) geom.Edge {
	return geom.NewEdge(p, p.Add(t.dir.Scale(RayLength)))
}

func (t *Tester) parity(p geom.Point, faces []geom.Face) bool {
	if len(faces) == 0 {
		return true
	}
	ray := t.Ray(p)
	inside := false
	for i := range faces {
		if Crosses(ray, faces[i]) {
			inside = !inside
		}
	}
	return inside
}

// Crosses reports whether segment e passes through the interior of f. The
// endpoints must lie strictly on opposite sides of f's plane, and the
// segment must pass strictly inside all three edges. Grazing contacts
// count as misses.
func Crosses(e geom.Edge, f geom.Face) bool {
	n := f.Normal()
	s1 := geom.Sign(dot(n, e.P1.Sub(f.P1)))
	s2 := geom.Sign(dot(n, e.P2.Sub(f.P1)))
	if s1 == 0 || s2 == 0 || s1 == s2 {
		return false
	}

	// Orientation of the segment relative to each triangle edge, measured
	// from the near endpoint so the far endpoint's magnitude never enters
	// a subtraction.
	d := e.P2.Sub(e.P1)
	a := f.P1.Sub(e.P1)
	b := f.P2.Sub(e.P1)
	c := f.P3.Sub(e.P1)
	o1 := geom.Sign(dot(d, cross(a, b)))
	o2 := geom.Sign(dot(d, cross(b, c)))
	o3 := geom.Sign(dot(d, cross(c, a)))
	return o1 != 0 && o1 == o2 && o2 == o3
}

func dot(a, b geom.Point) float64 {
	return a.Vec().Dot(b.Vec())
}

func cross(a, b geom.Point) geom.Point {
	return geom.FromVec(a.Vec().Cross(b.Vec()))
}
