package delaunay

import (
	"context"

	"github.com/chazu/medial/pkg/geom"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// sentinels is the number of super-tetrahedron corners. They occupy vertex
// indices 0..3; input point i has vertex index i+sentinels.
const sentinels = 4

// Stats summarises one Triangulate run.
type Stats struct {
	Points          int // points inserted
	CellsCreated    int // cells created to fill cavities
	CellsRemoved    int // cells found bad and removed
	Degenerate      int // new cells dropped as coplanar
	SentinelDropped int // live cells dropped for touching the super-tetrahedron
}

// Triangulator runs Bowyer–Watson insertion. A Triangulator may be reused
// but is not safe for concurrent calls.
type Triangulator struct {
	opts  options
	stats Stats
}

// New returns a Triangulator configured by opts.
func New(opts ...Option) *Triangulator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Triangulator{opts: o}
}

// Triangulate is shorthand for New(opts...).Triangulate(points).
func Triangulate(points []geom.Point, opts ...Option) ([]geom.Tetrahedron, error) {
	return New(opts...).Triangulate(points)
}

// Stats returns the statistics of the last run.
func (t *Triangulator) Stats() Stats {
	return t.stats
}

// Triangulate returns the Delaunay tetrahedralization of points.
func (t *Triangulator) Triangulate(points []geom.Point) ([]geom.Tetrahedron, error) {
	return t.TriangulateContext(context.Background(), points)
}

// TriangulateContext is Triangulate with cancellation checked between
// insertions.
func (t *Triangulator) TriangulateContext(ctx context.Context, points []geom.Point) ([]geom.Tetrahedron, error) {
	t.stats = Stats{}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	for i, p := range points {
		if !p.IsFinite() {
			return nil, errors.Wrapf(ErrNonFinitePoint, "point %d %s", i, p)
		}
	}

	super := superTetrahedron(points, t.opts.superScale)
	verts := make([]geom.Point, 0, len(points)+sentinels)
	verts = append(verts, super[:]...)
	verts = append(verts, points...)

	var a arena
	a.add(cell{
		v:   [4]int32{0, 1, 2, 3},
		tet: geom.NewTetrahedron(super[0], super[1], super[2], super[3]),
	})

	hole := make(holeSet)
	var bad []int32
	for i := range points {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "delaunay: cancelled after %d of %d points", i, len(points))
		}
		idx := int32(i + sentinels)
		p := verts[idx]

		var err error
		bad, err = t.scan(&a, p, hole, bad[:0])
		if err != nil {
			return nil, err
		}

		for _, b := range bad {
			a.kill(b)
		}
		t.stats.CellsRemoved += len(bad)

		for _, f := range hole.sorted() {
			tet := geom.NewTetrahedron(verts[f[0]], verts[f[1]], verts[f[2]], p)
			if tet.IsDegenerate() {
				t.stats.Degenerate++
				continue
			}
			a.add(cell{v: [4]int32{f[0], f[1], f[2], idx}, tet: tet})
			t.stats.CellsCreated++
		}
		hole.clear()
		t.stats.Points++
	}

	out := make([]geom.Tetrahedron, 0, a.live)
	for i := range a.cells {
		c := &a.cells[i]
		if !c.live {
			continue
		}
		if c.touches(sentinels) {
			t.stats.SentinelDropped++
			continue
		}
		out = append(out, c.tet)
	}

	t.opts.logger.Debug("tetrahedralization complete",
		zap.Int("points", t.stats.Points),
		zap.Int("tetrahedra", len(out)),
		zap.Int("created", t.stats.CellsCreated),
		zap.Int("removed", t.stats.CellsRemoved),
		zap.Int("degenerate", t.stats.Degenerate),
		zap.Int("sentinel_dropped", t.stats.SentinelDropped),
	)
	return out, nil
}

// scan marks every live cell whose circumsphere contains p as bad and
// toggles its faces into hole. The returned slice lists the bad cells.
func (t *Triangulator) scan(a *arena, p geom.Point, hole holeSet, bad []int32) ([]int32, error) {
	n := len(a.cells)
	workers := t.opts.workers
	if workers <= 1 || n < minParallelCells {
		return scanRange(a.cells, 0, n, p, hole, bad), nil
	}

	chunk := (n + workers - 1) / workers
	type part struct {
		bad  []int32
		hole holeSet
	}
	parts := make([]part, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		g.Go(func() error {
			local := make(holeSet)
			parts[w] = part{bad: scanRange(a.cells, lo, hi, p, local, nil), hole: local}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "delaunay: scan")
	}

	for _, pt := range parts {
		bad = append(bad, pt.bad...)
		if pt.hole != nil {
			hole.merge(pt.hole)
		}
	}
	return bad, nil
}

func scanRange(cells []cell, lo, hi int, p geom.Point, hole holeSet, bad []int32) []int32 {
	for i := lo; i < hi; i++ {
		c := &cells[i]
		if !c.live || !c.tet.ContainsInCircumsphere(p) {
			continue
		}
		bad = append(bad, int32(i))
		for _, f := range c.faces() {
			hole.toggle(f)
		}
	}
	return bad
}
