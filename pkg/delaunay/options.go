package delaunay

import "go.uber.org/zap"

const (
	// DefaultSuperScale is the multiple of the largest bounding-box extent
	// by which the super-tetrahedron corners are pushed outwards.
	DefaultSuperScale = 20.0

	// minParallelCells is the smallest arena size worth fanning out over.
	minParallelCells = 512
)

type options struct {
	superScale float64
	workers    int
	logger     *zap.Logger
}

func defaultOptions() options {
	return options{
		superScale: DefaultSuperScale,
		workers:    1,
		logger:     zap.NewNop(),
	}
}

// Option configures a Triangulator.
type Option func(*options)

// WithSuperScale overrides DefaultSuperScale. Values <= 1 are ignored.
func WithSuperScale(k float64) Option {
	return func(o *options) {
		if k > 1 {
			o.superScale = k
		}
	}
}

// WithWorkers sets how many goroutines scan the cell arena for circumsphere
// containment during each insertion. n <= 1 keeps the scan sequential.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithLogger sets the logger used for run statistics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
