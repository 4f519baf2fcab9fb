package pipeline

import (
	"context"
	"math"
	"testing"

	"github.com/chazu/medial/pkg/geom"
	"github.com/chazu/medial/pkg/kernel/sdfx"
	"github.com/chazu/medial/pkg/pointset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bipyramid() []geom.Point {
	h := math.Sqrt(3) / 2
	return []geom.Point{
		geom.Pt(1, 0, 0),
		geom.Pt(-0.5, h, 0),
		geom.Pt(-0.5, -h, 0),
		geom.Pt(0.1, 0.05, 2),
		geom.Pt(-0.05, 0.1, -2),
	}
}

// unitCube returns the 12 triangles of [0,1]^3.
func unitCube() []geom.Face {
	v := geom.Pt
	quad := func(a, b, c, d geom.Point) []geom.Face {
		return []geom.Face{geom.NewFace(a, b, c), geom.NewFace(a, c, d)}
	}
	var faces []geom.Face
	faces = append(faces, quad(v(0, 0, 0), v(1, 0, 0), v(1, 1, 0), v(0, 1, 0))...)
	faces = append(faces, quad(v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1))...)
	faces = append(faces, quad(v(0, 0, 0), v(1, 0, 0), v(1, 0, 1), v(0, 0, 1))...)
	faces = append(faces, quad(v(0, 1, 0), v(1, 1, 0), v(1, 1, 1), v(0, 1, 1))...)
	faces = append(faces, quad(v(0, 0, 0), v(0, 1, 0), v(0, 1, 1), v(0, 0, 1))...)
	faces = append(faces, quad(v(1, 0, 0), v(1, 1, 0), v(1, 1, 1), v(1, 0, 1))...)
	return faces
}

func TestRunBipyramid(t *testing.T) {
	res, err := Run(context.Background(), Input{Points: bipyramid()}, Config{})
	require.NoError(t, err)

	require.Len(t, res.Tetrahedra, 2)
	assert.Equal(t, res.Tetrahedra, res.Inside)
	assert.Equal(t, 1, res.Internal)
	assert.Equal(t, 6, res.Boundary)
	assert.InDelta(t, math.Sqrt(3), res.Volume, 1e-9)
	require.Len(t, res.Edges, 1)

	e := res.Edges[0]
	c1, c2 := res.Tetrahedra[0].Circumcenter, res.Tetrahedra[1].Circumcenter
	joins := (e.P1.Equal(c1) && e.P2.Equal(c2)) || (e.P1.Equal(c2) && e.P2.Equal(c1))
	assert.True(t, joins, "edge should join the two circumcenters")
}

func TestRunFiltersAgainstBoundary(t *testing.T) {
	// Random cloud over [-1,2)^3 around the unit cube.
	pts := pointset.Random(300, 3, 7)
	for i := range pts {
		pts[i] = pts[i].Sub(geom.Pt(1, 1, 1))
	}

	res, err := Run(context.Background(), Input{Points: pts, Boundary: unitCube()}, Config{Workers: 3})
	require.NoError(t, err)

	require.NotEmpty(t, res.Inside)
	assert.Less(t, len(res.Inside), len(res.Tetrahedra))
	for _, tet := range res.Inside {
		c := tet.Centroid()
		assert.True(t, c.X > 0 && c.X < 1 && c.Y > 0 && c.Y < 1 && c.Z > 0 && c.Z < 1,
			"centroid %s outside unit cube", c)
	}

	assert.Equal(t, 4*len(res.Inside), 2*res.Internal+res.Boundary)
	assert.Len(t, res.Edges, res.Internal)
	assert.Greater(t, res.Volume, 0.0)
	assert.Less(t, res.Volume, 27.0)
	assert.GreaterOrEqual(t, res.Timings.Total, res.Timings.Delaunay)
}

func TestRunWeld(t *testing.T) {
	pts := bipyramid()
	pts = append(pts, pts[0].Add(geom.Pt(1e-9, 0, 0)), pts[3].Add(geom.Pt(0, -1e-9, 0)))

	res, err := Run(context.Background(), Input{Points: pts}, Config{Weld: 1e-6})
	require.NoError(t, err)
	assert.Len(t, res.Points, 5)
	assert.Len(t, res.Edges, 1)
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), Input{}, Config{})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Input{Points: bipyramid()}, Config{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunStrict(t *testing.T) {
	res, err := Run(context.Background(), Input{Points: bipyramid()}, Config{Strict: true})
	require.NoError(t, err)
	assert.Len(t, res.Edges, 1)
}

func TestRunSdfxBox(t *testing.T) {
	k := sdfx.New()
	box, err := k.Box(2, 2, 2)
	require.NoError(t, err)
	mesh, err := k.ToMesh(box, 8)
	require.NoError(t, err)

	res, err := Run(context.Background(), Input{
		Points:   mesh.Points(),
		Boundary: mesh.Faces(),
	}, Config{Weld: 1e-6})
	require.NoError(t, err)

	require.NotEmpty(t, res.Inside)
	require.NotEmpty(t, res.Edges)
	for _, tet := range res.Inside {
		c := tet.Centroid()
		for _, v := range []float64{c.X, c.Y, c.Z} {
			assert.Less(t, math.Abs(v), 1.5)
		}
	}
}
