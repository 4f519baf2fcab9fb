// Package kernel defines the abstract solid-modeling interface used to
// build closed boundary surfaces for medial-axis extraction. The sdfx
// subpackage provides the implementation; the abstraction lets the rest
// of the system stay independent of the modeling backend.
package kernel

// DefaultCells is the marching-cubes resolution along the longest axis of
// a solid's bounding box.
const DefaultCells = 64

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface. Primitives are
// centered on the origin.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Sphere(radius float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// ToMesh tessellates s into a closed, indexed triangle mesh with the
	// given resolution.
	ToMesh(s Solid, cells int) (*Mesh, error)
}
