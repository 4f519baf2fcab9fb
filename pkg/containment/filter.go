package containment

import (
	"context"
	"sync"

	"github.com/chazu/medial/pkg/geom"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// cancelStride is how many tetrahedra Filter classifies between context
// checks.
const cancelStride = 256

// Filter returns the tetrahedra whose centroid lies inside shape, in input
// order.
func Filter(tets []geom.Tetrahedron, shape []geom.Face, opts ...Option) []geom.Tetrahedron {
	out, _ := NewTester(shape, opts...).Filter(context.Background(), tets)
	return out
}

// Filter keeps the tetrahedra whose centroid is inside. With more than one
// worker the tetrahedra are split into contiguous chunks; the result order
// does not depend on the worker count.
func (t *Tester) Filter(ctx context.Context, tets []geom.Tetrahedron) ([]geom.Tetrahedron, error) {
	keep := make([]bool, len(tets))
	workers := min(t.opts.workers, len(tets))

	if workers <= 1 {
		for i := range tets {
			if i%cancelStride == 0 {
				if err := ctx.Err(); err != nil {
					return nil, errors.Wrap(err, "containment: filter")
				}
			}
			keep[i] = t.Inside(tets[i].Centroid())
		}
	} else {
		chunk := (len(tets) + workers - 1) / workers
		g, gctx := errgroup.WithContext(ctx)
		for lo := 0; lo < len(tets); lo += chunk {
			hi := min(lo+chunk, len(tets))
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					if (i-lo)%cancelStride == 0 {
						if err := gctx.Err(); err != nil {
							return err
						}
					}
					keep[i] = t.Inside(tets[i].Centroid())
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, errors.Wrap(err, "containment: filter")
		}
	}

	out := make([]geom.Tetrahedron, 0, len(tets))
	for i, k := range keep {
		if k {
			out = append(out, tets[i])
		}
	}
	t.opts.logger.Debug("filtered tetrahedra",
		zap.Int("in", len(tets)),
		zap.Int("kept", len(out)),
		zap.Int("faces", len(t.shape)),
		zap.Stringer("axis", t.opts.axis),
	)
	return out, nil
}

// InsideParallel is Inside with the face crossings counted over the
// tester's workers. Each worker reports the parity of its chunk; the
// chunk parities are combined by XOR.
func (t *Tester) InsideParallel(p geom.Point) bool {
	n := len(t.shape)
	workers := min(t.opts.workers, n)
	if workers <= 1 {
		return t.Inside(p)
	}

	ray := t.Ray(p)
	chunk := (n + workers - 1) / workers
	parts := make([]bool, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			odd := false
			for i := lo; i < hi; i++ {
				if Crosses(ray, t.shape[i]) {
					odd = !odd
				}
			}
			parts[w] = odd
		}()
	}
	wg.Wait()

	inside := false
	for _, odd := range parts {
		inside = inside != odd
	}
	return inside
}
