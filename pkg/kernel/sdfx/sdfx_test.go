package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/medial/pkg/containment"
	"github.com/chazu/medial/pkg/geom"
	"github.com/chazu/medial/pkg/kernel"
)

const cells = 32

func solid(t *testing.T, s kernel.Solid, err error) kernel.Solid {
	t.Helper()
	if err != nil {
		t.Fatalf("primitive: %v", err)
	}
	return s
}

func mesh(t *testing.T, k *SdfxKernel, s kernel.Solid) *kernel.Mesh {
	t.Helper()
	m, err := k.ToMesh(s, cells)
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("empty mesh")
	}
	return m
}

func TestSolidBounds(t *testing.T) {
	k := New()
	tests := []struct {
		name     string
		build    func() kernel.Solid
		min, max [3]float64
	}{
		{"box", func() kernel.Solid { return solid(t, k.Box(100, 50, 25)) },
			[3]float64{-50, -25, -12.5}, [3]float64{50, 25, 12.5}},
		{"sphere", func() kernel.Solid { return solid(t, k.Sphere(10)) },
			[3]float64{-10, -10, -10}, [3]float64{10, 10, 10}},
		{"cylinder along z", func() kernel.Solid { return solid(t, k.Cylinder(50, 10)) },
			[3]float64{-10, -10, -25}, [3]float64{10, 10, 25}},
		{"translated box", func() kernel.Solid { return k.Translate(solid(t, k.Box(10, 10, 10)), 100, 200, 300) },
			[3]float64{95, 195, 295}, [3]float64{105, 205, 305}},
		{"box turned onto y", func() kernel.Solid { return k.Rotate(solid(t, k.Box(100, 10, 10)), 0, 0, 90) },
			[3]float64{-5, -50, -5}, [3]float64{5, 50, 5}},
		{"union of offset boxes", func() kernel.Solid {
			return k.Union(solid(t, k.Box(50, 50, 50)), k.Translate(solid(t, k.Box(50, 50, 50)), 30, 0, 0))
		}, [3]float64{-25, -25, -25}, [3]float64{55, 25, 25}},
	}
	const tol = 0.5
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.build().BoundingBox()
			for i := 0; i < 3; i++ {
				if math.Abs(lo[i]-tt.min[i]) > tol || math.Abs(hi[i]-tt.max[i]) > tol {
					t.Errorf("axis %d: bounds [%g, %g], want [%g, %g]", i, lo[i], hi[i], tt.min[i], tt.max[i])
				}
			}
		})
	}
}

func TestPrimitiveErrors(t *testing.T) {
	k := New()
	tests := []struct {
		name string
		err  error
	}{
		{"negative sphere", second(k.Sphere(-1))},
		{"negative cylinder radius", second(k.Cylinder(10, -1))},
	}
	for _, tt := range tests {
		if tt.err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func second(_ kernel.Solid, err error) error { return err }

func TestMeshIndexing(t *testing.T) {
	k := New()
	m := mesh(t, k, solid(t, k.Box(20, 10, 5)))

	if len(m.Vertices) != len(m.Normals) {
		t.Fatalf("%d vertex floats but %d normal floats", len(m.Vertices), len(m.Normals))
	}
	if len(m.Indices) != 3*m.TriangleCount() {
		t.Fatalf("%d indices for %d triangles", len(m.Indices), m.TriangleCount())
	}
	seen := make(map[geom.PointKey]bool, m.VertexCount())
	for _, p := range m.Points() {
		if seen[p.Key()] {
			t.Fatalf("vertex %s appears twice", p)
		}
		seen[p.Key()] = true
		if math.Abs(p.X) > 11 || math.Abs(p.Y) > 6 || math.Abs(p.Z) > 3.5 {
			t.Fatalf("vertex %s outside box", p)
		}
	}
}

func TestSphereSurface(t *testing.T) {
	k := New()
	m := mesh(t, k, solid(t, k.Sphere(10)))
	for _, p := range m.Points() {
		if r := math.Sqrt(p.Norm2()); math.Abs(r-10) > 1 {
			t.Fatalf("vertex %s at radius %g", p, r)
		}
	}

	faces := m.Faces()
	for _, tc := range []struct {
		p    geom.Point
		want bool
	}{
		{geom.Pt(0, 0, 0), true},
		{geom.Pt(3, -2, 4), true},
		{geom.Pt(20, 0, 0), false},
		{geom.Pt(-8, -8, 8), false},
	} {
		if got := containment.Inside(tc.p, faces); got != tc.want {
			t.Errorf("Inside(%s) = %t, want %t", tc.p, got, tc.want)
		}
	}
}

func TestBooleanMeshes(t *testing.T) {
	k := New()
	block := solid(t, k.Box(100, 100, 100))
	plain := mesh(t, k, block)

	drilled := mesh(t, k, k.Difference(block, solid(t, k.Cylinder(120, 20))))
	if drilled.TriangleCount() <= plain.TriangleCount() {
		t.Errorf("drilled block has %d triangles, plain block %d", drilled.TriangleCount(), plain.TriangleCount())
	}
	if containment.Inside(geom.Pt(0, 0, 0), drilled.Faces()) {
		t.Error("the bore axis should be outside the drilled block")
	}

	overlap := mesh(t, k, k.Intersection(block, k.Translate(block, 50, 0, 0)))
	for _, p := range overlap.Points() {
		if p.X < -1 || p.X > 51 {
			t.Fatalf("intersection vertex %s outside x in [0, 50]", p)
		}
	}
}
