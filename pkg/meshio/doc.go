// Package meshio reads and writes the line-oriented mesh format used by
// the medial tools.
//
// Each non-blank line starts with a record tag followed by
// whitespace-separated fields:
//
//	v x y z      vertex
//	f i j k      triangle, 1-based vertex indices
//	l i j        line segment, 1-based vertex indices (written only)
//
// Lines with any other tag are ignored on read.
package meshio
