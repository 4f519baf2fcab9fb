package kernel

import "github.com/chazu/medial/pkg/geom"

// Mesh is an indexed triangle mesh. All arrays are flat: vertices has 3
// floats per vertex (x,y,z), normals has 3 floats per vertex, indices has
// 3 uint32s per triangle.
type Mesh struct {
	Vertices []float64 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float64 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene shape this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Point returns vertex i.
func (m *Mesh) Point(i int) geom.Point {
	return geom.Pt(m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2])
}

// Points returns the vertices. Each vertex appears once.
func (m *Mesh) Points() []geom.Point {
	pts := make([]geom.Point, m.VertexCount())
	for i := range pts {
		pts[i] = m.Point(i)
	}
	return pts
}

// Triangles returns the zero-based vertex indices of each triangle.
func (m *Mesh) Triangles() [][3]int {
	tris := make([][3]int, m.TriangleCount())
	for i := range tris {
		tris[i] = [3]int{int(m.Indices[3*i]), int(m.Indices[3*i+1]), int(m.Indices[3*i+2])}
	}
	return tris
}

// Faces returns the triangles as faces, suitable as a containment boundary.
func (m *Mesh) Faces() []geom.Face {
	faces := make([]geom.Face, m.TriangleCount())
	for i, t := range m.Triangles() {
		faces[i] = geom.NewFace(m.Point(t[0]), m.Point(t[1]), m.Point(t[2]))
	}
	return faces
}

// Builder accumulates triangles into a Mesh, merging corners with
// identical coordinates. Triangles that collapse to fewer than three
// distinct vertices are dropped.
type Builder struct {
	mesh  Mesh
	index map[geom.PointKey]uint32
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[geom.PointKey]uint32)}
}

// Add appends the triangle p1, p2, p3. The face normal is accumulated into
// each corner's vertex normal.
func (b *Builder) Add(p1, p2, p3 geom.Point) {
	ia, ib, ic := b.vertex(p1), b.vertex(p2), b.vertex(p3)
	if ia == ib || ib == ic || ia == ic {
		return
	}
	b.mesh.Indices = append(b.mesh.Indices, ia, ib, ic)

	n := geom.NewFace(p1, p2, p3).Normal()
	for _, i := range [3]uint32{ia, ib, ic} {
		b.mesh.Normals[3*i] += n.X
		b.mesh.Normals[3*i+1] += n.Y
		b.mesh.Normals[3*i+2] += n.Z
	}
}

func (b *Builder) vertex(p geom.Point) uint32 {
	k := p.Key()
	if i, ok := b.index[k]; ok {
		return i
	}
	i := uint32(len(b.index))
	b.index[k] = i
	b.mesh.Vertices = append(b.mesh.Vertices, p.X, p.Y, p.Z)
	b.mesh.Normals = append(b.mesh.Normals, 0, 0, 0)
	return i
}

// Mesh returns the accumulated mesh with unit vertex normals.
func (b *Builder) Mesh() *Mesh {
	m := b.mesh
	m.Normals = append([]float64(nil), b.mesh.Normals...)
	for i := 0; i+2 < len(m.Normals); i += 3 {
		v := geom.Pt(m.Normals[i], m.Normals[i+1], m.Normals[i+2]).Vec()
		if v.Norm2() == 0 {
			continue
		}
		v = v.Normalize()
		m.Normals[i], m.Normals[i+1], m.Normals[i+2] = v.X, v.Y, v.Z
	}
	return &m
}
