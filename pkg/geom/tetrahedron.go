package geom

import (
	"gonum.org/v1/gonum/mat"
)

// Tetrahedron is a cell of the tetrahedralization. Its circumsphere is
// computed once by NewTetrahedron; the struct is treated as immutable.
type Tetrahedron struct {
	P1, P2, P3, P4 Point

	// Circumcenter is the center of the sphere through all four corners.
	// It is non-finite when the corners are coplanar.
	Circumcenter Point
	// Circumradius2 is the squared circumradius.
	Circumradius2 float64

	alpha float64
}

// NewTetrahedron builds a tetrahedron and its circumsphere from the
// determinant formulas
//
//	alpha = |x y z 1|, Dx = |n y z 1|, Dy = -|n x z 1|, Dz = |n x y 1|
//
// where n = x²+y²+z² per row, and center = (Dx, Dy, Dz) / (2 alpha).
func NewTetrahedron(p1, p2, p3, p4 Point) Tetrahedron {
	pts := [4]Point{p1, p2, p3, p4}

	var a, dx, dy, dz [16]float64
	for i, p := range pts {
		n := p.Norm2()
		copy(a[i*4:], []float64{p.X, p.Y, p.Z, 1})
		copy(dx[i*4:], []float64{n, p.Y, p.Z, 1})
		copy(dy[i*4:], []float64{n, p.X, p.Z, 1})
		copy(dz[i*4:], []float64{n, p.X, p.Y, 1})
	}

	alpha := det4(a[:])
	cx := det4(dx[:])
	cy := -det4(dy[:])
	cz := det4(dz[:])

	center := Point{X: cx / (2 * alpha), Y: cy / (2 * alpha), Z: cz / (2 * alpha)}
	return Tetrahedron{
		P1: p1, P2: p2, P3: p3, P4: p4,
		Circumcenter:  center,
		Circumradius2: p1.Dist2(center),
		alpha:         alpha,
	}
}

func det4(data []float64) float64 {
	return mat.Det(mat.NewDense(4, 4, data))
}

// Points returns the four corners in construction order.
func (t Tetrahedron) Points() [4]Point {
	return [4]Point{t.P1, t.P2, t.P3, t.P4}
}

// IsDegenerate reports whether the corners are coplanar, i.e. the
// circumsphere is undefined.
func (t Tetrahedron) IsDegenerate() bool {
	return t.alpha == 0 || !t.Circumcenter.IsFinite() || !isFinite(t.Circumradius2)
}

// HasPoint reports whether p equals one of the corners under Point.Equal.
func (t Tetrahedron) HasPoint(p Point) bool {
	return t.P1.Equal(p) || t.P2.Equal(p) || t.P3.Equal(p) || t.P4.Equal(p)
}

// ContainsInCircumsphere reports whether p lies inside or on the
// circumsphere.
func (t Tetrahedron) ContainsInCircumsphere(p Point) bool {
	return p.Dist2(t.Circumcenter) <= t.Circumradius2
}

// Centroid returns the mean of the four corners.
func (t Tetrahedron) Centroid() Point {
	return t.P1.Add(t.P2).Add(t.P3).Add(t.P4).Scale(0.25)
}

// Faces returns the four triangular faces, each omitting one corner.
func (t Tetrahedron) Faces() [4]Face {
	return [4]Face{
		{t.P1, t.P2, t.P3},
		{t.P1, t.P2, t.P4},
		{t.P1, t.P3, t.P4},
		{t.P2, t.P3, t.P4},
	}
}

// Volume returns the signed volume; its sign follows the corner order.
func (t Tetrahedron) Volume() float64 {
	return Orient3D(t.P1, t.P2, t.P3, t.P4) / 6
}
