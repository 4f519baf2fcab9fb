package skeleton

import "github.com/chazu/medial/pkg/geom"

// MedialAxis returns one edge per internal face, joining the circumcenters
// of the two tetrahedra that share it. Boundary faces contribute nothing.
// Edges are ordered by face key.
func MedialAxis(tets []geom.Tetrahedron) []geom.Edge {
	return EdgesOf(FaceAdjacency(tets))
}

// EdgesOf is MedialAxis over a prebuilt adjacency.
func EdgesOf(adj Adjacency) []geom.Edge {
	internal := adj.Internal()
	edges := make([]geom.Edge, 0, len(internal))
	for _, c := range internal {
		edges = append(edges, geom.NewEdge(c.First.Circumcenter, c.Second.Circumcenter))
	}
	return edges
}
