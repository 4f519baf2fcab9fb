package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Epsilon is the absolute tolerance used for point equality and for the
// sign of orientation predicates.
const Epsilon = 2.220446049250313e-16

// AlmostEqual reports whether a and b differ by no more than Epsilon.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Point is an immutable 3-D coordinate.
type Point struct {
	X, Y, Z float64
}

// PointKey is the exact bit pattern of a point. It is the hashing identity
// used by Face keys and by any map keyed on points.
type PointKey [3]uint64

// Pt is shorthand for Point{x, y, z}.
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// FromVec converts an r3 vector to a Point.
func FromVec(v r3.Vector) Point {
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

// Vec converts the point to an r3 vector.
func (p Point) Vec() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// Equal reports whether every coordinate of p and q differs by no more
// than Epsilon.
func (p Point) Equal(q Point) bool {
	return AlmostEqual(p.X, q.X) && AlmostEqual(p.Y, q.Y) && AlmostEqual(p.Z, q.Z)
}

// Key returns the bit-pattern identity of p. Negative zero is folded onto
// positive zero so that the two compare equal under Equal and Key alike.
// Points within Epsilon of each other but with different bit patterns get
// different keys; weld such inputs first (see package pointset).
func (p Point) Key() PointKey {
	return PointKey{coordBits(p.X), coordBits(p.Y), coordBits(p.Z)}
}

func coordBits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// Less orders keys lexicographically by coordinate bits.
func (k PointKey) Less(o PointKey) bool {
	if k[0] != o[0] {
		return k[0] < o[0]
	}
	if k[1] != o[1] {
		return k[1] < o[1]
	}
	return k[2] < o[2]
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Scale returns p*s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Dist2 returns the squared Euclidean distance between p and q.
func (p Point) Dist2(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return dx*dx + dy*dy + dz*dz
}

// Norm2 returns the squared length of p as a vector.
func (p Point) Norm2() float64 {
	return p.X*p.X + p.Y*p.Y + p.Z*p.Z
}

// IsFinite reports whether no coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}
