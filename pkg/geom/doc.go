// Package geom defines the geometric primitives shared by the
// tetrahedralization, skeleton and containment packages: points with
// tolerance equality, edges, permutation-invariant faces and tetrahedra with
// a cached circumsphere.
package geom
