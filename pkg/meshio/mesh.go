package meshio

import "github.com/chazu/medial/pkg/geom"

// Mesh is an indexed triangle mesh. Triangles index into Points from zero.
type Mesh struct {
	Points    []geom.Point
	Triangles [][3]int
}

// Faces resolves the triangles into faces.
func (m *Mesh) Faces() []geom.Face {
	faces := make([]geom.Face, len(m.Triangles))
	for i, t := range m.Triangles {
		faces[i] = geom.NewFace(m.Points[t[0]], m.Points[t[1]], m.Points[t[2]])
	}
	return faces
}

// FromFaces builds an indexed mesh from a face soup. Corners with identical
// coordinates share one point.
func FromFaces(faces []geom.Face) *Mesh {
	m := &Mesh{Triangles: make([][3]int, 0, len(faces))}
	index := make(map[geom.PointKey]int)
	vertex := func(p geom.Point) int {
		k := p.Key()
		if i, ok := index[k]; ok {
			return i
		}
		index[k] = len(m.Points)
		m.Points = append(m.Points, p)
		return len(m.Points) - 1
	}
	for _, f := range faces {
		m.Triangles = append(m.Triangles, [3]int{vertex(f.P1), vertex(f.P2), vertex(f.P3)})
	}
	return m
}
