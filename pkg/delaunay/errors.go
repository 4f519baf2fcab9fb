package delaunay

import "github.com/pkg/errors"

var (
	// ErrNoPoints is returned when Triangulate is called with no points.
	ErrNoPoints = errors.New("delaunay: no input points")

	// ErrNonFinitePoint is returned when an input coordinate is NaN or infinite.
	ErrNonFinitePoint = errors.New("delaunay: non-finite input point")
)
