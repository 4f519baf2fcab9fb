// Package delaunay builds the 3-D Delaunay tetrahedralization of a point
// set with the incremental Bowyer–Watson algorithm.
//
// Points are inserted one at a time into a working set of cells seeded with
// a single super-tetrahedron that encloses every input point. For each
// point, the cells whose circumsphere contains it are removed, the boundary
// of the resulting cavity is found by toggling faces in and out of a hole
// set, and the cavity is re-filled with cells joining each boundary face to
// the new point. Cells that come out coplanar are dropped. Once all points
// are in, every cell touching one of the four super-tetrahedron corners is
// discarded.
//
// Robustness rests solely on floating-point tolerance: degenerate input such
// as a coplanar point set yields an empty or sparse result rather than an
// error. Results may differ with input order when circumsphere tests tie.
package delaunay
