package delaunay

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/chazu/medial/pkg/geom"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPoints(n int, seed int64) []geom.Point {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(50*rng.Float64(), 50*rng.Float64(), 50*rng.Float64())
	}
	return pts
}

// bipyramid is a triangle in z=0 with one apex above and one below. With
// apex height above the triangle's circumradius the Delaunay
// tetrahedralization is the two tetrahedra sharing the triangle.
func bipyramid() []geom.Point {
	return []geom.Point{
		geom.Pt(1, 0, 0),
		geom.Pt(-0.5, math.Sqrt(3)/2, 0),
		geom.Pt(-0.5, -math.Sqrt(3)/2, 0),
		geom.Pt(0.1, 0.05, 2),
		geom.Pt(-0.05, 0.1, -2),
	}
}

func countShared(a, b geom.Tetrahedron) int {
	n := 0
	for _, p := range a.Points() {
		if b.HasPoint(p) {
			n++
		}
	}
	return n
}

func TestSingleTetrahedron(t *testing.T) {
	pts := []geom.Point{
		geom.Pt(0, 0, 0),
		geom.Pt(1, 0, 0),
		geom.Pt(0, 1, 0),
		geom.Pt(0, 0, 1),
	}
	tets, err := Triangulate(pts)
	require.NoError(t, err)
	require.Len(t, tets, 1)

	tet := tets[0]
	for _, p := range pts {
		assert.True(t, tet.HasPoint(p), "missing corner %s", p)
		assert.InDelta(t, tet.Circumradius2, p.Dist2(tet.Circumcenter), 1e-9)
	}
}

func TestTwoAdjacentTetrahedra(t *testing.T) {
	tets, err := Triangulate(bipyramid())
	require.NoError(t, err)
	require.Len(t, tets, 2)
	assert.Equal(t, 3, countShared(tets[0], tets[1]))
}

func TestEmptyCircumsphere(t *testing.T) {
	pts := randomPoints(60, 7)
	tets, err := Triangulate(pts)
	require.NoError(t, err)
	require.NotEmpty(t, tets)

	for i, tet := range tets {
		require.False(t, tet.IsDegenerate(), "tetrahedron %d", i)
		tol := 1e-9 * tet.Circumradius2
		for _, p := range pts {
			if tet.HasPoint(p) {
				continue
			}
			d := p.Dist2(tet.Circumcenter)
			assert.GreaterOrEqual(t, d, tet.Circumradius2-tol,
				"point %s inside circumsphere of tetrahedron %d", p, i)
		}
	}
}

func TestCornersAreInputPoints(t *testing.T) {
	pts := randomPoints(30, 3)
	tets, err := Triangulate(pts)
	require.NoError(t, err)

	input := map[geom.PointKey]bool{}
	for _, p := range pts {
		input[p.Key()] = true
	}
	for _, tet := range tets {
		for _, p := range tet.Points() {
			assert.True(t, input[p.Key()], "corner %s is not an input point", p)
		}
	}
}

func TestParallelScanMatchesSequential(t *testing.T) {
	pts := randomPoints(300, 11)

	seq := New()
	want, err := seq.Triangulate(pts)
	require.NoError(t, err)

	par := New(WithWorkers(4))
	got, err := par.Triangulate(pts)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, seq.Stats(), par.Stats())
}

func TestDegenerateInput(t *testing.T) {
	t.Run("single point", func(t *testing.T) {
		tets, err := Triangulate([]geom.Point{geom.Pt(1, 2, 3)})
		require.NoError(t, err)
		assert.Empty(t, tets)
	})

	t.Run("three points", func(t *testing.T) {
		tets, err := Triangulate([]geom.Point{geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(0, 1, 0)})
		require.NoError(t, err)
		assert.Empty(t, tets)
	})

	t.Run("coplanar", func(t *testing.T) {
		var pts []geom.Point
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				pts = append(pts, geom.Pt(float64(i), float64(j), 0))
			}
		}
		tets, err := Triangulate(pts)
		require.NoError(t, err)
		for _, tet := range tets {
			assert.False(t, tet.IsDegenerate())
		}
	})
}

func TestInvalidInput(t *testing.T) {
	_, err := Triangulate(nil)
	assert.ErrorIs(t, err, ErrNoPoints)

	_, err = Triangulate([]geom.Point{geom.Pt(0, 0, 0), geom.Pt(math.NaN(), 0, 0)})
	require.Error(t, err)
	assert.Equal(t, ErrNonFinitePoint, errors.Cause(err))
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().TriangulateContext(ctx, randomPoints(10, 1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats(t *testing.T) {
	tr := New()
	tets, err := tr.Triangulate(bipyramid())
	require.NoError(t, err)

	s := tr.Stats()
	assert.Equal(t, 5, s.Points)
	assert.Positive(t, s.CellsCreated)
	assert.Positive(t, s.SentinelDropped)
	assert.Equal(t, 1+s.CellsCreated-s.CellsRemoved, len(tets)+s.SentinelDropped)
}
