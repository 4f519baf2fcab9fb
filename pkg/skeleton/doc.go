// Package skeleton derives the medial axis of a tetrahedralization.
//
// Two tetrahedra that share a face are neighbours; the segment joining
// their circumcenters is an edge of the Voronoi diagram of the input
// points. When the tetrahedra have been filtered to those inside a
// closed surface, these edges approximate the surface's medial axis.
package skeleton
