package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTetrahedronCircumsphere(t *testing.T) {
	tests := []struct {
		name   string
		pts    [4]Point
		center Point
	}{
		{
			name:   "unit corner",
			pts:    [4]Point{Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0), Pt(0, 0, 1)},
			center: Pt(0.5, 0.5, 0.5),
		},
		{
			name:   "regular",
			pts:    [4]Point{Pt(1, 1, 1), Pt(1, -1, -1), Pt(-1, 1, -1), Pt(-1, -1, 1)},
			center: Pt(0, 0, 0),
		},
		{
			name:   "translated",
			pts:    [4]Point{Pt(10, 20, 30), Pt(12, 20, 30), Pt(10, 22, 30), Pt(10, 20, 32)},
			center: Pt(11, 21, 31),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tet := NewTetrahedron(tt.pts[0], tt.pts[1], tt.pts[2], tt.pts[3])
			require.False(t, tet.IsDegenerate())
			assert.InDelta(t, tt.center.X, tet.Circumcenter.X, 1e-9)
			assert.InDelta(t, tt.center.Y, tet.Circumcenter.Y, 1e-9)
			assert.InDelta(t, tt.center.Z, tet.Circumcenter.Z, 1e-9)
			for _, p := range tt.pts {
				assert.InDelta(t, tet.Circumradius2, p.Dist2(tet.Circumcenter), 1e-9)
				assert.True(t, tet.HasPoint(p))
			}
		})
	}
}

func TestTetrahedronDegenerate(t *testing.T) {
	tet := NewTetrahedron(Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0), Pt(1, 1, 0))
	assert.True(t, tet.IsDegenerate())
}

func TestTetrahedronCircumsphereContainment(t *testing.T) {
	tet := NewTetrahedron(Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0), Pt(0, 0, 1))
	assert.True(t, tet.ContainsInCircumsphere(Pt(0.5, 0.5, 0.5)))
	assert.True(t, tet.ContainsInCircumsphere(Pt(0.9, 0.9, 0.9)))
	assert.False(t, tet.ContainsInCircumsphere(Pt(2, 2, 2)))
}

func TestTetrahedronFacesAndCentroid(t *testing.T) {
	tet := NewTetrahedron(Pt(0, 0, 0), Pt(4, 0, 0), Pt(0, 4, 0), Pt(0, 0, 4))
	assert.Equal(t, Pt(1, 1, 1), tet.Centroid())
	assert.InDelta(t, 64.0/6, math.Abs(tet.Volume()), 1e-12)

	seen := map[FaceKey]bool{}
	for _, f := range tet.Faces() {
		seen[f.Key()] = true
		assert.NotEqual(t, Point{}, f.Normal())
	}
	assert.Len(t, seen, 4)
}
