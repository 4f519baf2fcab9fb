package containment

import (
	"github.com/chazu/medial/pkg/geom"
	"go.uber.org/zap"
)

// Axis names a pure coordinate direction for the casting ray.
type Axis int

const (
	// Skewed is the default ray direction. It is not parallel to any
	// coordinate plane or diagonal, so rays from lattice-aligned points
	// rarely graze an edge of an axis-aligned mesh.
	Skewed Axis = iota
	X
	Y
	Z
)

// RayLength is the distance from the query point to the far end of the ray.
const RayLength = 1e30

var skewedDir = geom.Pt(0.2113248654, 0.3559076493, 0.9102185245)

func (a Axis) dir() geom.Point {
	switch a {
	case X:
		return geom.Pt(1, 0, 0)
	case Y:
		return geom.Pt(0, 1, 0)
	case Z:
		return geom.Pt(0, 0, 1)
	default:
		return skewedDir
	}
}

// String returns the flag spelling of a.
func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "skewed"
	}
}

// ParseAxis maps a flag value to an Axis. Unknown values select Skewed.
func ParseAxis(s string) Axis {
	switch s {
	case "x", "X", "+x":
		return X
	case "y", "Y", "+y":
		return Y
	case "z", "Z", "+z":
		return Z
	default:
		return Skewed
	}
}

type options struct {
	axis    Axis
	workers int
	logger  *zap.Logger
}

// Option configures a Tester or Filter.
type Option func(*options)

// WithAxis casts rays along axis instead of the skewed default.
func WithAxis(axis Axis) Option {
	return func(o *options) { o.axis = axis }
}

// WithWorkers sets how many goroutines Filter and InsideParallel use.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithLogger sets the logger used for filter summaries.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{workers: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
