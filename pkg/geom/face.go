package geom

// Face is an unordered triangle. Two faces built from the same three
// points in any order are equal and share a key.
type Face struct {
	P1, P2, P3 Point
}

// FaceKey is the canonical identity of a face: the keys of its three
// points in ascending order.
type FaceKey [3]PointKey

// NewFace returns the face with the given corners.
func NewFace(p1, p2, p3 Point) Face {
	return Face{P1: p1, P2: p2, P3: p3}
}

// Key returns the order-independent identity of f. A face's key depends
// only on its vertex positions, never on which tetrahedron produced it.
func (f Face) Key() FaceKey {
	a, b, c := f.P1.Key(), f.P2.Key(), f.P3.Key()
	if b.Less(a) {
		a, b = b, a
	}
	if c.Less(b) {
		b, c = c, b
		if b.Less(a) {
			a, b = b, a
		}
	}
	return FaceKey{a, b, c}
}

// Equal reports whether f and o have the same corners under Point.Equal,
// in any order.
func (f Face) Equal(o Face) bool {
	perms := [6][3]Point{
		{o.P1, o.P2, o.P3},
		{o.P1, o.P3, o.P2},
		{o.P2, o.P1, o.P3},
		{o.P2, o.P3, o.P1},
		{o.P3, o.P1, o.P2},
		{o.P3, o.P2, o.P1},
	}
	for _, p := range perms {
		if f.P1.Equal(p[0]) && f.P2.Equal(p[1]) && f.P3.Equal(p[2]) {
			return true
		}
	}
	return false
}

// Normal returns the unnormalized normal (P2-P1)x(P3-P1).
func (f Face) Normal() Point {
	a := f.P2.Vec().Sub(f.P1.Vec())
	b := f.P3.Vec().Sub(f.P1.Vec())
	return FromVec(a.Cross(b))
}

// Points returns the corners in construction order.
func (f Face) Points() [3]Point {
	return [3]Point{f.P1, f.P2, f.P3}
}
