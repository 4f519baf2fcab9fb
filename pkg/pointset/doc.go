// Package pointset prepares point clouds for tetrahedralization: welding
// near-duplicates, generating test lattices and random samples, and
// measuring bounds.
package pointset
