// Package pipeline chains the medial-axis stages: optional point welding,
// Delaunay tetrahedralization, containment filtering against a closed
// boundary, face adjacency and skeleton extraction.
package pipeline

import (
	"context"
	"math"
	"time"

	"github.com/chazu/medial/pkg/containment"
	"github.com/chazu/medial/pkg/delaunay"
	"github.com/chazu/medial/pkg/geom"
	"github.com/chazu/medial/pkg/pointset"
	"github.com/chazu/medial/pkg/skeleton"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Input is the data a run consumes. Boundary may be empty, in which case
// every tetrahedron is kept.
type Input struct {
	Points   []geom.Point
	Boundary []geom.Face
}

// Config tunes a run. The zero value runs single-threaded without welding.
type Config struct {
	Weld       float64          // weld tolerance; 0 disables welding
	Workers    int              // worker goroutines for scan and filter
	Axis       containment.Axis // ray direction for the parity test
	SuperScale float64          // super-tetrahedron scale; 0 uses the default
	Strict     bool             // fail on faces shared by more than two cells
	Logger     *zap.Logger
}

// Timings records wall time per stage.
type Timings struct {
	Weld      time.Duration
	Delaunay  time.Duration
	Filter    time.Duration
	Adjacency time.Duration
	Total     time.Duration
}

// Result is the output of a run.
type Result struct {
	Points     []geom.Point       // points after welding
	Tetrahedra []geom.Tetrahedron // full tetrahedralization
	Inside     []geom.Tetrahedron // tetrahedra whose centroid is inside the boundary
	Adjacency  skeleton.Adjacency // adjacency of Inside
	Edges      []geom.Edge        // medial-axis edges
	Internal   int                // faces shared by two cells
	Boundary   int                // faces owned by one cell
	Volume     float64            // summed volume of Inside
	Stats      delaunay.Stats
	Timings    Timings
}

// Run executes every stage in order.
func Run(ctx context.Context, in Input, cfg Config) (*Result, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()
	res := &Result{Points: in.Points}

	if cfg.Weld > 0 {
		t0 := time.Now()
		res.Points = pointset.Weld(in.Points, cfg.Weld)
		res.Timings.Weld = time.Since(t0)
		log.Debug("welded points",
			zap.Int("before", len(in.Points)),
			zap.Int("after", len(res.Points)),
			zap.Float64("tolerance", cfg.Weld),
		)
	}

	dopts := []delaunay.Option{
		delaunay.WithWorkers(cfg.Workers),
		delaunay.WithLogger(log),
	}
	if cfg.SuperScale > 0 {
		dopts = append(dopts, delaunay.WithSuperScale(cfg.SuperScale))
	}
	tri := delaunay.New(dopts...)

	t0 := time.Now()
	tets, err := tri.TriangulateContext(ctx, res.Points)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: triangulate")
	}
	res.Tetrahedra = tets
	res.Stats = tri.Stats()
	res.Timings.Delaunay = time.Since(t0)
	log.Info("triangulated",
		zap.Int("points", len(res.Points)),
		zap.Int("tetrahedra", len(tets)),
		zap.Duration("elapsed", res.Timings.Delaunay),
	)

	t0 = time.Now()
	if len(in.Boundary) == 0 {
		res.Inside = tets
	} else {
		tester := containment.NewTester(in.Boundary,
			containment.WithAxis(cfg.Axis),
			containment.WithWorkers(cfg.Workers),
			containment.WithLogger(log),
		)
		res.Inside, err = tester.Filter(ctx, tets)
		if err != nil {
			return nil, errors.Wrap(err, "pipeline: filter")
		}
	}
	res.Timings.Filter = time.Since(t0)
	for _, tet := range res.Inside {
		res.Volume += math.Abs(tet.Volume())
	}
	log.Info("filtered",
		zap.Int("boundary_faces", len(in.Boundary)),
		zap.Int("inside", len(res.Inside)),
		zap.Float64("volume", res.Volume),
		zap.Duration("elapsed", res.Timings.Filter),
	)

	t0 = time.Now()
	if cfg.Strict {
		res.Adjacency, err = skeleton.FaceAdjacencyStrict(res.Inside)
		if err != nil {
			return nil, errors.Wrap(err, "pipeline: adjacency")
		}
	} else {
		res.Adjacency = skeleton.FaceAdjacency(res.Inside)
	}
	res.Edges = skeleton.EdgesOf(res.Adjacency)
	res.Internal = res.Adjacency.InternalCount()
	res.Boundary = len(res.Adjacency) - res.Internal
	res.Timings.Adjacency = time.Since(t0)

	res.Timings.Total = time.Since(start)
	log.Info("extracted medial axis",
		zap.Int("edges", len(res.Edges)),
		zap.Int("internal_faces", res.Internal),
		zap.Int("boundary_faces", res.Boundary),
		zap.Duration("total", res.Timings.Total),
	)
	return res, nil
}
